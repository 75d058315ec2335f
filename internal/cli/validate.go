package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adlake/rawzone/internal/config"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the rawzone configuration",
		Long:  "Parse the rawzone.toml file and report every configuration error found.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			errs := cfg.Validate()
			if len(errs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid.")
				return nil
			}

			for _, e := range errs {
				fmt.Fprintf(os.Stderr, "ERROR: %s\n", e)
			}
			return fmt.Errorf("validation found %d error(s)", len(errs))
		},
	}
}
