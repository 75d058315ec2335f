package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/adlake/rawzone/internal/handler"
)

func newTriggerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trigger",
		Short: "Start the ad_etl Glue job once and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrigger(cmd.Context(), newGlueStarter, cmd.OutOrStdout())
		},
	}
}

// runTrigger invokes the handler once and writes the result mapping as JSON.
// Returns an error when the start request failed, so the process exits
// nonzero, but the result is printed either way.
func runTrigger(ctx context.Context, factory handler.StarterFactory, out io.Writer) error {
	result, _ := handler.New(factory).Handle(ctx, nil)

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}

	if errText, failed := result[handler.KeyError]; failed {
		return fmt.Errorf("start request failed: %s", errText)
	}
	return nil
}
