package main

import (
	"taskboard-app/taskboard/config"
	"taskboard-app/taskboard/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			db, err := database.Setup(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			zap.L().Info("schema is up to date")
			return nil
		},
	}
}
