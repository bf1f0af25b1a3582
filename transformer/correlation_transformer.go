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

package transformer

import (
	"slices"

	"github.com/l3montree-dev/vulncorrelator/database/models"
	"github.com/l3montree-dev/vulncorrelator/dtos"
	"github.com/l3montree-dev/vulncorrelator/vulndb"
	"github.com/samber/lo"
)

func AssertionToDTO(a models.StatusAssertion) dtos.AssertionDTO {
	return dtos.AssertionDTO{
		ID:         a.ID.String(),
		AdvisoryID: a.AdvisoryID,
		Status:     string(a.Status),
		Identity:   a.Identity(),
		Scheme:     a.Scheme,
		Range:      a.Range().String(),
	}
}

// CorrelationToDTO lists the matches ordered by vulnerability id. vulns provides titles and
// cvss vectors, unknown ids are reported without them.
func CorrelationToDTO(identity string, matches map[string][]models.StatusAssertion, vulns map[string]models.Vulnerability) dtos.CorrelationDTO {
	ids := lo.Keys(matches)
	slices.Sort(ids)

	result := dtos.CorrelationDTO{
		Identity:        identity,
		Vulnerabilities: make([]dtos.VulnerabilityMatchDTO, 0, len(ids)),
	}
	for _, id := range ids {
		vuln := vulns[id]
		score := vulndb.BaseScore(vuln.CVSSVector)
		result.Vulnerabilities = append(result.Vulnerabilities, dtos.VulnerabilityMatchDTO{
			VulnerabilityID: id,
			Title:           vuln.Title,
			CVSSVector:      vuln.CVSSVector,
			BaseScore:       score,
			Severity:        vulndb.Severity(score),
			Assertions:      lo.Map(matches[id], func(a models.StatusAssertion, _ int) dtos.AssertionDTO { return AssertionToDTO(a) }),
		})
	}
	return result
}

// VulnerabilityIDs collects the distinct vulnerability ids of all correlations.
func VulnerabilityIDs(matches ...map[string][]models.StatusAssertion) []string {
	var ids []string
	for _, m := range matches {
		ids = append(ids, lo.Keys(m)...)
	}
	ids = lo.Uniq(ids)
	slices.Sort(ids)
	return ids
}

func VulnerabilitiesByID(vulns []models.Vulnerability) map[string]models.Vulnerability {
	return lo.KeyBy(vulns, func(v models.Vulnerability) string { return v.ID })
}

func NodeCorrelationsToDTO(results []models.NodeCorrelation, vulns map[string]models.Vulnerability) []dtos.NodeCorrelationDTO {
	return lo.Map(results, func(r models.NodeCorrelation, _ int) dtos.NodeCorrelationDTO {
		return dtos.NodeCorrelationDTO{
			Node: GraphNodeToDTO(r.Node),
			Correlations: lo.Map(r.Correlations, func(c models.Correlation, _ int) dtos.CorrelationDTO {
				return CorrelationToDTO(c.Identity.String(), c.Matches, vulns)
			}),
		}
	})
}
