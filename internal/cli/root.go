// Package cli implements the rawzone command line interface.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/adlake/rawzone/internal/glue"
	"github.com/adlake/rawzone/internal/handler"
)

var (
	configPath  string
	secretsPath string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "rawzone",
		Short:        "Trigger the ad_etl Glue job from the raw landing zone",
		Long:         "Rawzone starts the ad_etl AWS Glue job on demand, on a schedule, or when raw files land in the watched zone.",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "rawzone.toml", "path to the rawzone config file")
	root.PersistentFlags().StringVar(&secretsPath, "secrets", "", "path to secrets file")

	root.AddCommand(
		newTriggerCmd(),
		newServeCmd(),
		newValidateCmd(),
		newInitCmd(),
	)

	return root
}

// newGlueStarter is the production StarterFactory: a fresh Glue client per
// invocation, credentials from the ambient environment.
func newGlueStarter(ctx context.Context) (handler.Starter, error) {
	return glue.New(ctx)
}

// Execute runs the root command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
