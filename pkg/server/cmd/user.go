/* Copyright 2025 Onlibry Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cmd

import (
	"fmt"

	"github.com/ElzarU/Onlibry/pkg/server/app"
	"github.com/ElzarU/Onlibry/pkg/server/config"
	"github.com/ElzarU/Onlibry/pkg/server/database"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	cmd.AddCommand(newUserCreateCmd())
	cmd.AddCommand(newUserRemoveCmd())
	cmd.AddCommand(newUserResetPasswordCmd())

	return cmd
}

func newUserCreateCmd() *cobra.Command {
	var (
		email    string
		password string
		role     string
		dbPath   string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new user",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := setupApp(config.Params{DBPath: dbPath})
			if err != nil {
				return err
			}
			defer cleanup()

			user, err := a.CreateUserWithRole(email, password, role)
			if err != nil {
				return errors.Wrap(err, "creating user")
			}

			fmt.Printf("User created successfully\n")
			fmt.Printf("Email: %s\n", user.Email.String)
			fmt.Printf("Role: %s\n", user.Role)

			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "User email address (required)")
	cmd.Flags().StringVar(&password, "password", "", "User password (required)")
	cmd.Flags().StringVar(&role, "role", database.RoleUser, "User role: user, librarian, or admin")
	cmd.Flags().StringVar(&dbPath, "dbPath", "", "Path to SQLite database file (env: DBPath)")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")

	return cmd
}

func newUserRemoveCmd() *cobra.Command {
	var (
		email  string
		dbPath string
	)

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a user and everything they own",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := setupApp(config.Params{DBPath: dbPath})
			if err != nil {
				return err
			}
			defer cleanup()

			user, err := a.GetUserByEmail(email)
			if err != nil {
				if errors.Is(err, app.ErrNotFound) {
					return errors.Errorf("user with email %s not found", email)
				}
				return errors.Wrap(err, "finding user")
			}

			if err := a.DeleteUser(user); err != nil {
				return errors.Wrap(err, "removing user")
			}

			fmt.Printf("User removed successfully\n")
			fmt.Printf("Email: %s\n", email)

			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "User email address (required)")
	cmd.Flags().StringVar(&dbPath, "dbPath", "", "Path to SQLite database file (env: DBPath)")
	cmd.MarkFlagRequired("email")

	return cmd
}

func newUserResetPasswordCmd() *cobra.Command {
	var (
		email    string
		password string
		dbPath   string
	)

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Reset a user's password",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := setupApp(config.Params{DBPath: dbPath})
			if err != nil {
				return err
			}
			defer cleanup()

			user, err := a.GetUserByEmail(email)
			if err != nil {
				if errors.Is(err, app.ErrNotFound) {
					return errors.Errorf("user with email %s not found", email)
				}
				return errors.Wrap(err, "finding user")
			}

			tx := a.DB.Begin()
			if err := app.UpdateUserPassword(tx, &user, password); err != nil {
				tx.Rollback()
				return errors.Wrap(err, "updating password")
			}
			if err := a.DeleteUserSessions(tx, user.ID); err != nil {
				tx.Rollback()
				return errors.Wrap(err, "deleting user sessions")
			}
			tx.Commit()

			fmt.Printf("Password reset successfully\n")
			fmt.Printf("Email: %s\n", email)

			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "User email address (required)")
	cmd.Flags().StringVar(&password, "password", "", "New password (required)")
	cmd.Flags().StringVar(&dbPath, "dbPath", "", "Path to SQLite database file (env: DBPath)")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")

	return cmd
}
