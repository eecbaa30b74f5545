package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/verticx-api/internal/repository"
	"github.com/noah-isme/verticx-api/internal/service"
)

func newAddUserCmd(e *env) *cobra.Command {
	var req service.CreateUserRequest
	cmd := &cobra.Command{
		Use:   "add-user",
		Short: "Create an active account",
		Example: `  verticxctl add-user --email admin@school.test --password 'S3cret!pass' \
    --name "Site Admin" --role SUPERADMIN`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, logr, err := e.connect()
			if err != nil {
				return err
			}
			defer db.Close()
			defer logr.Sync() //nolint:errcheck

			auth := service.NewAuthService(repository.NewUserRepository(db), nil, logr, service.AuthConfig{})
			user, err := auth.CreateUser(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %s (%s, %s)\n", user.ID, user.Email, user.Role)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&req.Email, "email", "", "login email")
	flags.StringVar(&req.Password, "password", "", "initial password, at least 8 characters")
	flags.StringVar(&req.FullName, "name", "", "display name")
	flags.StringVar(&req.Role, "role", "", "SUPERADMIN, ADMIN, PRINCIPAL, REGISTRAR, TEACHER, STUDENT, LIBRARIAN or PARENT")
	flags.StringVar(&req.BranchID, "branch", "", "branch id, required for every role except SUPERADMIN")
	for _, name := range []string{"email", "password", "name", "role"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
