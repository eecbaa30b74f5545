package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/verticx-api/pkg/database"
)

func newMigrateCmd(e *env) *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if list {
				migrations, err := database.Migrations()
				if err != nil {
					return err
				}
				for _, m := range migrations {
					fmt.Fprintf(out, "%d %s\n", m.Version, m.Name)
				}
				return nil
			}

			db, logr, err := e.connect()
			if err != nil {
				return err
			}
			defer db.Close()
			defer logr.Sync() //nolint:errcheck

			ran, err := e.migrate(cmd.Context(), db, logr)
			for _, m := range ran {
				fmt.Fprintf(out, "applied %s\n", m.Name)
			}
			if err != nil {
				return err
			}
			if len(ran) == 0 {
				fmt.Fprintln(out, "schema is up to date")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "print the embedded migrations without connecting")
	return cmd
}
