package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/adlake/rawzone/internal/config"
	"github.com/adlake/rawzone/internal/secrets"
	"github.com/adlake/rawzone/internal/serve"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the trigger daemon",
		Long:  "Watch the configured schedule and landing zone, and start the ad_etl Glue job when they fire.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			store, err := secrets.Load(secretsPath)
			if err != nil {
				return fmt.Errorf("loading secrets: %w", err)
			}

			srv, err := serve.NewServer(cfg, store, newGlueStarter)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return srv.Start(ctx)
		},
	}
}
