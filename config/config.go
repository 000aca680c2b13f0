package config

import (
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// LoadEnv loads a .env file from the working directory. A missing file is not an error.
func LoadEnv(files ...string) error {
	err := godotenv.Load(files...)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug("no .env file found, using the process environment")
		return nil
	}
	return errors.Wrap(err, "failed to load the env vars")
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.WithField("key", key).Warnf("ignoring non-boolean value %q", raw)
		return def
	}
	return v
}
