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
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/l3montree-dev/vulncorrelator/database/models"
	"github.com/l3montree-dev/vulncorrelator/database/repositories"
	"github.com/l3montree-dev/vulncorrelator/dtos"
	"github.com/l3montree-dev/vulncorrelator/normalize"
	"github.com/l3montree-dev/vulncorrelator/transformer"
	"github.com/l3montree-dev/vulncorrelator/vulndb/scan"
	"github.com/spf13/cobra"
)

func newCorrelateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "correlate <purl>...",
		Short: "Correlate package urls against the stored status assertions",
		Example: `  correlator-cli correlate pkg:maven/org.apache.logging.log4j/log4j-core@2.14.1
  correlator-cli correlate pkg:npm/lodash@4.17.20 pkg:pypi/django@3.2.0 -o openvex`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			identities := make([]normalize.PackageIdentity, 0, len(args))
			for _, arg := range args {
				identity, err := normalize.ParsePackageIdentity(arg)
				if err != nil {
					return err
				}
				identities = append(identities, identity)
			}

			db, closeDB, err := openDatabase(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			correlations, err := newStatusCorrelator(db).AnalyzePurls(cmd.Context(), identities)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if runtimeConfig.Output == "openvex" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(scan.BuildOpenVeX(runtimeConfig.VexAuthor, correlations))
			}

			matches := make([]map[string][]models.StatusAssertion, 0, len(correlations))
			for _, c := range correlations {
				matches = append(matches, c.Matches)
			}
			vulns, err := repositories.NewVulnerabilityRepository(db).FindByIDs(cmd.Context(), transformer.VulnerabilityIDs(matches...))
			if err != nil {
				return err
			}
			byID := transformer.VulnerabilitiesByID(vulns)

			result := make([]dtos.CorrelationDTO, 0, len(correlations))
			for _, c := range correlations {
				result = append(result, transformer.CorrelationToDTO(c.Identity.String(), c.Matches, byID))
			}

			if runtimeConfig.Output == "json" {
				return json.NewEncoder(out).Encode(result)
			}
			printCorrelations(out, result)
			return nil
		},
	}
	addOutputFlag(cmd)
	cmd.Flags().String("vex-author", "", "Author of generated OpenVEX documents")
	return cmd
}

func printCorrelations(w io.Writer, correlations []dtos.CorrelationDTO) {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"Identity", "Vulnerability", "Severity", "CVSS", "Status", "Range", "Advisory"})
	for _, c := range correlations {
		if len(c.Vulnerabilities) == 0 {
			tw.AppendRow(table.Row{c.Identity, "-", "", "", "", "", ""})
			continue
		}
		for _, v := range c.Vulnerabilities {
			for _, a := range v.Assertions {
				tw.AppendRow(table.Row{c.Identity, v.VulnerabilityID, v.Severity, v.BaseScore, a.Status, a.Range, a.AdvisoryID})
			}
		}
	}
	fmt.Fprintln(w, tw.Render())
}
