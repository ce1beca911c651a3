package main

import (
	"encoding/json"
	"errors"

	"github.com/dalemusser/campanion/internal/app/bootstrap"
	"github.com/spf13/cobra"
)

func newExtractCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "extract <url>",
		Short: "Print the camp fields the extractor finds on a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.cfg.GeminiAPIKey == "" {
				return errors.New("no Gemini key: set --gemini-key or CAMPANION_GEMINI_API_KEY")
			}
			ctx := cmd.Context()
			// Extraction does not touch the store.
			svcs, err := bootstrap.NewServices(ctx, c.cfg, bootstrap.DBDeps{}, c.logger)
			if err != nil {
				return err
			}
			p, err := svcs.Extract.Extract(ctx, args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(p)
		},
	}
}
