package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "taskboard",
		Short: "Task management API server",
		Long: `taskboard serves the project, task, tag, assignment and comment API
together with its analytics endpoints and a live websocket activity feed.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = zap.L().Sync()
		},
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())
	return rootCmd
}

// setupLogger installs the global zap logger. APP_ENV is read before the
// configuration so that config loading itself is logged.
func setupLogger() error {
	var (
		logger *zap.Logger
		err    error
	)
	if strings.EqualFold(os.Getenv("APP_ENV"), "production") {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)
	return nil
}
