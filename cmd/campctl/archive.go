package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dalemusser/campanion/internal/app/bootstrap"
	"github.com/dalemusser/campanion/internal/app/policy/camppolicy"
	"github.com/spf13/cobra"
)

func newArchiveStartedCmd(c *cli) *cobra.Command {
	var (
		asUID  string
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "archive-started",
		Short: "Archive an admin's active camps that have already started",
		Long: `Runs the same bulk archive as POST /camps/archive-started, acting as the
admin given by --as. The admin flag is checked against the users store.
Exits non-zero when any camp failed to archive.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asUID == "" {
				return errors.New("--as is required")
			}
			ctx := cmd.Context()
			deps, done, err := c.open(ctx)
			if err != nil {
				return err
			}
			defer done()

			u, err := deps.Users.Get(ctx, asUID)
			if err != nil {
				return fmt.Errorf("load user %s: %w", asUID, err)
			}
			actor := camppolicy.Viewer{UID: u.ID, Email: u.Email, IsAdmin: u.IsAdmin}

			svcs, err := bootstrap.NewServices(ctx, c.cfg, deps, c.logger)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")

			if dryRun {
				started, err := svcs.Camps.ListStartedActive(ctx, actor)
				if err != nil {
					return err
				}
				for _, v := range started {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", v.ID, v.Name)
				}
				return nil
			}

			report, err := svcs.Camps.BulkArchiveStarted(ctx, actor)
			if err != nil {
				return err
			}
			if err := enc.Encode(report); err != nil {
				return err
			}
			if report.Failed > 0 {
				return fmt.Errorf("%d of %d camps failed to archive", report.Failed, report.Attempted)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&asUID, "as", "", "uid of the admin whose camps are archived")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list the camps that would be archived")
	return cmd
}
