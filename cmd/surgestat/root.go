package main

import (
	"log/slog"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/storm-surge-verify/internal/observability"
)

func newRootCmd() *cobra.Command {
	var logLevel string
	root := &cobra.Command{
		Use:          "surgestat",
		Short:        "Storm-surge forecast verification tools",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			slog.SetDefault(observability.NewLoggerTo(cmd.ErrOrStderr(), logLevel, "text"))
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		"log level (debug, info, warn, error)")

	root.AddCommand(newCycleCmd(), newVerifyCmd(), newPairsCmd())
	return root
}
