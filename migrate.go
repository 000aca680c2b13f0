package main

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/blogem/ehs-records/config"
	"github.com/blogem/ehs-records/database"
)

func NewMigrateCommand() *cobra.Command {
	f := config.NewStorageFlags()
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.Validate(); err != nil {
				return errors.WithMessage(err, "error validating options")
			}
			if f.Backend == config.BackendMemory {
				return errors.New("the memory backend has no schema to migrate")
			}

			dialect, err := database.ParseDialect(f.Backend)
			if err != nil {
				return err
			}
			db, err := database.Open(dialect, f.DSN)
			if err != nil {
				return err
			}
			defer db.Close()

			pending, err := database.PendingMigrations(cmd.Context(), db)
			if err != nil {
				return err
			}
			if len(pending) == 0 {
				log.Info("database is up to date")
				return nil
			}
			for _, m := range pending {
				log.WithField("migration", m.Filename).Info("pending")
			}
			if dryRun {
				return nil
			}

			if err := database.RunMigrations(cmd.Context(), db); err != nil {
				return err
			}
			log.WithField("count", len(pending)).Info("migrations applied")
			return nil
		},
	}

	f.BindFlags(cmd.Flags())
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List pending migrations without applying them")
	return cmd
}
