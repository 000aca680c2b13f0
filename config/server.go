package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// ServerFlags holds the listen addresses of the API and metrics servers
type ServerFlags struct {
	ListenAddr  string
	MetricsAddr string
}

func NewServerFlags() *ServerFlags {
	return &ServerFlags{
		ListenAddr:  ":" + envString("PORT", "8080"),
		MetricsAddr: ":2112",
	}
}

func (f *ServerFlags) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.ListenAddr, "listen", f.ListenAddr, "The address to serve the API on")
	fs.StringVar(&f.MetricsAddr, "listen-metrics", f.MetricsAddr, "The address to serve prometheus metrics on, empty disables it")
}

func (f *ServerFlags) Validate() error {
	if f.ListenAddr == "" {
		return errors.New("--listen is required")
	}
	if f.ListenAddr == f.MetricsAddr {
		return errors.New("--listen and --listen-metrics must differ")
	}
	return nil
}
