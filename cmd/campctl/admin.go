package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// newGrantAdminCmd builds grant-admin (grant=true) or revoke-admin.
func newGrantAdminCmd(c *cli, grant bool) *cobra.Command {
	use, short := "grant-admin <uid>", "Give a user the admin flag"
	if !grant {
		use, short = "revoke-admin <uid>", "Remove a user's admin flag"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Long: `Sets users.isAdmin for the given identity-provider uid. The record is
created if the user has never signed in. The change applies on the user's
next request; no new sign-in is needed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			deps, done, err := c.open(ctx)
			if err != nil {
				return err
			}
			defer done()

			uid := args[0]
			if err := deps.Users.SetAdmin(ctx, uid, grant, c.now().UTC()); err != nil {
				return fmt.Errorf("set admin: %w", err)
			}
			verb := "granted"
			if !grant {
				verb = "revoked"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin %s for %s\n", verb, uid)
			return nil
		},
	}
}

func newListAdminsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list-admins",
		Short: "List users with the admin flag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			deps, done, err := c.open(ctx)
			if err != nil {
				return err
			}
			defer done()

			admins, err := deps.Users.ListAdmins(ctx)
			if err != nil {
				return fmt.Errorf("list admins: %w", err)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "UID\tEMAIL")
			for _, u := range admins {
				fmt.Fprintf(tw, "%s\t%s\n", u.ID, u.Email)
			}
			return tw.Flush()
		},
	}
}
