package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adlake/rawzone/internal/scaffold"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a starter rawzone.toml and secrets template",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if err := scaffold.Create(dir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote rawzone.toml and secrets.toml to %s\n", dir)
			fmt.Fprintln(cmd.OutOrStdout(), "Edit both, then run: rawzone serve --secrets secrets.toml")
			return nil
		},
	}
}
