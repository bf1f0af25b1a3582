// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package commands

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/briandowns/spinner"
	"github.com/l3montree-dev/vulncorrelator/database"
	"github.com/l3montree-dev/vulncorrelator/shared"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd, func(db shared.DB) error {
				s := startSpinner(cmd, " applying migrations")
				err := database.RunMigrationsWithDB(db)
				s.Stop()
				if err != nil {
					return err
				}
				slog.Info("migrations applied")
				return nil
			})
		},
	}

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the last applied migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, err := cmd.Flags().GetInt("steps")
			if err != nil {
				return err
			}
			return withDatabase(cmd, func(db shared.DB) error {
				s := startSpinner(cmd, " rolling back migrations")
				err := database.RollbackMigrationsWithDB(db, steps)
				s.Stop()
				if err != nil {
					return err
				}
				slog.Info("migrations rolled back", "steps", steps)
				return nil
			})
		},
	}
	down.Flags().Int("steps", 1, "Number of migrations to roll back")

	version := &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd, func(db shared.DB) error {
				v, dirty, err := database.GetMigrationVersionWithDB(db)
				if err != nil {
					return err
				}
				if dirty {
					fmt.Fprintf(cmd.OutOrStdout(), "%d (dirty)\n", v)
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), v)
				return nil
			})
		},
	}

	migrate.AddCommand(up, down, version)
	return migrate
}

func startSpinner(cmd *cobra.Command, suffix string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
	s.Suffix = suffix
	s.Start()
	return s
}

func withDatabase(cmd *cobra.Command, fn func(shared.DB) error) error {
	db, closeDB, err := openDatabase(cmd.Context())
	if err != nil {
		return err
	}
	defer closeDB()
	return fn(db)
}
