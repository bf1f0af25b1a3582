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

package scan

import (
	"fmt"
	"slices"
	"time"

	"github.com/l3montree-dev/vulncorrelator/database/models"
	"github.com/l3montree-dev/vulncorrelator/utils"
	"github.com/openvex/go-vex/pkg/vex"
	"github.com/samber/lo"
)

const affectedActionStatement = "Upgrade to a version outside the affected range"

// BuildOpenVeX turns correlation results into an openvex document. Every matching
// assertion becomes its own statement, conflicting statuses are left to the consumer.
func BuildOpenVeX(author string, correlations []models.Correlation) vex.VEX {
	doc := vex.New()

	doc.Author = author
	doc.Timestamp = utils.Ptr(time.Now())
	doc.Statements = make([]vex.Statement, 0)

	for _, correlation := range correlations {
		purl := correlation.Identity.String()
		vulnIDs := lo.Keys(correlation.Matches)
		slices.Sort(vulnIDs)

		for _, vulnID := range vulnIDs {
			for _, assertion := range correlation.Matches[vulnID] {
				statement := vex.Statement{
					ID:     fmt.Sprintf("%s/%s", assertion.AdvisoryID, assertion.ID),
					Status: assertion.Status,
					Vulnerability: vex.Vulnerability{
						Name: vex.VulnerabilityID(vulnID),
					},
					Products: []vex.Product{{
						Component: vex.Component{
							ID: purl,
							Identifiers: map[vex.IdentifierType]string{
								vex.PURL: purl,
							},
						},
					}},
					StatusNotes: fmt.Sprintf("%s reports %s for range %s", assertion.AdvisoryID, assertion.Status, assertion.Range()),
				}
				switch assertion.Status {
				case vex.StatusAffected:
					statement.ActionStatement = affectedActionStatement
				case vex.StatusNotAffected:
					statement.Justification = vex.VulnerableCodeNotPresent
				}
				doc.Statements = append(doc.Statements, statement)
			}
		}
	}

	doc.GenerateCanonicalID() // nolint:errcheck
	return doc
}
