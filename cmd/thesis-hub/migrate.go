package main

import (
	"github.com/spf13/cobra"

	"github.com/ashwinyue/thesis-hub/internal/database"
	"github.com/ashwinyue/thesis-hub/internal/model"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update tables and seed the default roles",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.New(cmd.Context(), a.cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.Migrate(cmd.Context()); err != nil {
				return err
			}
			a.log.WithField("roles", model.DefaultRoles).Info("database migrated")
			return nil
		},
	}
}
