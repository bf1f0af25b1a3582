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
	"encoding/json"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/l3montree-dev/vulncorrelator/normalize"
	"github.com/spf13/cobra"
)

func newPurlCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "purl <purl>",
		Short:   "Show the normalized identity and derived ids of a package url",
		Example: `  correlator-cli purl "pkg:deb/debian/openssl@3.0.11-1?epoch=1&arch=amd64"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			identity, err := normalize.ParsePackageIdentity(args[0])
			if err != nil {
				return err
			}

			if runtimeConfig.Output == "json" {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(identity)
			}

			tw := table.NewWriter()
			tw.AppendRows([]table.Row{
				{"Purl", identity.String()},
				{"Type", identity.Type},
				{"Namespace", identity.Namespace},
				{"Name", identity.Name},
				{"Version", identity.Version},
				{"Scheme", identity.Scheme()},
				{"Candidate", identity.CandidateVersion().String()},
				{"Base purl", identity.BasePurl()},
				{"Base id", identity.BaseID()},
				{"Versioned id", identity.VersionedID()},
				{"Qualified id", identity.QualifiedID()},
			})
			fmt.Fprintln(cmd.OutOrStdout(), tw.Render())
			return nil
		},
	}
	addOutputFlag(cmd)
	return cmd
}

func newCpeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cpe <cpe>",
		Short: "Show the attributes of a cpe 2.3 name or 2.2 uri",
		Example: `  correlator-cli cpe "cpe:2.3:a:openssl:openssl:3.0.1:*:*:*:*:*:*:*"
  correlator-cli cpe "cpe:/a:openssl:openssl:3.0.1"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cpe, err := normalize.ParsePlatformIdentity(args[0])
			if err != nil {
				return err
			}

			if runtimeConfig.Output == "json" {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(cpe)
			}

			tw := table.NewWriter()
			tw.AppendRows([]table.Row{
				{"Cpe", cpe.String()},
				{"Part", cpe.Part.String()},
				{"Vendor", cpe.Vendor.String()},
				{"Product", cpe.Product.String()},
				{"Version", cpe.Version.String()},
				{"Update", cpe.Update.String()},
				{"Target software", cpe.TargetSw.String()},
				{"Lookup key", cpe.VendorKey() + ":" + cpe.ProductKey()},
				{"Id", cpe.ID()},
			})
			fmt.Fprintln(cmd.OutOrStdout(), tw.Render())
			return nil
		},
	}
	addOutputFlag(cmd)
	return cmd
}

func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "table", "Output format: table, json or openvex (correlate only)")
}
