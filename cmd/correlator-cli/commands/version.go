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

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/l3montree-dev/vulncorrelator/normalize"
	"github.com/spf13/cobra"
)

func newCompareCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "compare <scheme> <a> <b>",
		Short: "Compare two versions under a version scheme",
		Long: `Compare two versions under a version scheme and print -1, 0 or 1.

Without --strict, versions that do not parse under the scheme are compared byte-wise.`,
		Example: `  correlator-cli compare maven 1.0 1.0.0
  correlator-cli compare deb 1:1.0-1 2.0-1
  correlator-cli compare python 1.0rc1 1.0 --strict`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			scheme, err := normalize.ParseVersionScheme(args[0])
			if err != nil {
				return err
			}

			result := normalize.Compare(scheme, args[1], args[2])
			if strict {
				result, err = normalize.CompareStrict(scheme, args[1], args[2])
				if err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s (%s)\n", args[1], compareSymbol(result), args[2], scheme)
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on versions that do not parse under the scheme")
	return cmd
}

func compareSymbol(result int) string {
	switch {
	case result < 0:
		return "<"
	case result > 0:
		return ">"
	}
	return "=="
}

func newMatchCommand() *cobra.Command {
	var (
		low, high                   string
		lowInclusive, highInclusive bool
	)

	cmd := &cobra.Command{
		Use:   "match <scheme> <version>",
		Short: "Test whether a version lies inside a version range",
		Long: `Test whether a version lies inside a version range. A missing bound leaves the range
open on that side. The lower bound is inclusive and the upper bound exclusive by default.`,
		Example: `  # [1.0, 2.0)
  correlator-cli match maven 1.5 --low 1.0 --high 2.0

  # (, 2.0]
  correlator-cli match npm 2.0.0 --high 2.0.0 --high-inclusive`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			scheme, err := normalize.ParseVersionScheme(args[0])
			if err != nil {
				return err
			}

			r := normalize.AnyVersion(scheme)
			if low != "" {
				r.Low = &normalize.Bound{Version: low, Inclusive: lowInclusive}
			}
			if high != "" {
				r.High = &normalize.Bound{Version: high, Inclusive: highInclusive}
			}
			if err := r.Validate(); err != nil {
				return err
			}

			matched, err := normalize.Matches(normalize.NewVersion(scheme, args[1]), r)
			if err != nil {
				return err
			}

			tw := table.NewWriter()
			tw.AppendHeader(table.Row{"Version", "Range", "Scheme", "Match"})
			tw.AppendRow(table.Row{args[1], r.String(), scheme, matched})
			fmt.Fprintln(cmd.OutOrStdout(), tw.Render())
			return nil
		},
	}

	cmd.Flags().StringVar(&low, "low", "", "Lower bound")
	cmd.Flags().StringVar(&high, "high", "", "Upper bound")
	cmd.Flags().BoolVar(&lowInclusive, "low-inclusive", true, "Include the lower bound")
	cmd.Flags().BoolVar(&highInclusive, "high-inclusive", false, "Include the upper bound")
	return cmd
}
