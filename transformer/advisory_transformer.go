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
	"github.com/l3montree-dev/vulncorrelator/database/models"
	"github.com/l3montree-dev/vulncorrelator/dtos"
	"github.com/l3montree-dev/vulncorrelator/normalize"
	"github.com/openvex/go-vex/pkg/vex"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

var ErrInvalidAssertion = errors.New("invalid status assertion")

func AdvisoryIngestDTOToModels(dto dtos.AdvisoryIngestDTO) (models.Advisory, []models.Vulnerability, []models.StatusAssertion, error) {
	advisory := models.Advisory{
		ID:        dto.ID,
		Source:    dto.Source,
		Title:     dto.Title,
		Published: dto.Published,
		Modified:  dto.Modified,
	}

	vulns := lo.Map(dto.Vulnerabilities, func(v dtos.VulnerabilityDTO, _ int) models.Vulnerability {
		return models.Vulnerability{
			ID:          v.ID,
			Title:       v.Title,
			Description: v.Description,
			CVSSVector:  v.CVSSVector,
			Published:   v.Published,
		}
	})

	assertions := make([]models.StatusAssertion, 0, len(dto.Assertions))
	for i, a := range dto.Assertions {
		assertion, err := StatusAssertionFromDTO(dto.ID, a)
		if err != nil {
			return advisory, nil, nil, errors.Wrapf(err, "assertion %d", i)
		}
		assertions = append(assertions, assertion)
	}
	return advisory, vulns, assertions, nil
}

func AdvisoryToDTO(advisory models.Advisory) dtos.AdvisoryDTO {
	return dtos.AdvisoryDTO{
		ID:        advisory.ID,
		Source:    advisory.Source,
		Title:     advisory.Title,
		Published: advisory.Published,
		Modified:  advisory.Modified,
		Vulnerabilities: lo.Map(advisory.Vulnerabilities, func(v models.Vulnerability, _ int) dtos.VulnerabilityDTO {
			return dtos.VulnerabilityDTO{
				ID:          v.ID,
				Title:       v.Title,
				Description: v.Description,
				CVSSVector:  v.CVSSVector,
				Published:   v.Published,
			}
		}),
		Assertions: lo.Map(advisory.Assertions, func(a models.StatusAssertion, _ int) dtos.AdvisoryAssertionDTO {
			return dtos.AdvisoryAssertionDTO{VulnerabilityID: a.VulnerabilityID, AssertionDTO: AssertionToDTO(a)}
		}),
	}
}

func StatusAssertionFromDTO(advisoryID string, dto dtos.StatusAssertionDTO) (models.StatusAssertion, error) {
	status := vex.Status(dto.Status)
	if !models.IsValidStatus(status) {
		return models.StatusAssertion{}, errors.Wrapf(ErrInvalidAssertion, "unknown status %q", dto.Status)
	}

	if dto.Purl != "" {
		identity, err := normalize.ParsePackageIdentity(dto.Purl)
		if err != nil {
			return models.StatusAssertion{}, errors.Wrapf(ErrInvalidIdentity, "%s", err)
		}
		r, err := rangeFromDTO(dto, identity.Scheme())
		if err != nil {
			return models.StatusAssertion{}, err
		}
		return models.NewPackageAssertion(advisoryID, dto.VulnerabilityID, status, identity, r), nil
	}

	cpe, err := normalize.ParsePlatformIdentity(dto.Cpe)
	if err != nil {
		return models.StatusAssertion{}, errors.Wrapf(ErrInvalidIdentity, "%s", err)
	}
	r, err := rangeFromDTO(dto, normalize.SchemeGeneric)
	if err != nil {
		return models.StatusAssertion{}, err
	}
	// a concrete cpe version without any range becomes an exact range
	if r.IsAny() && cpe.Version.Kind == normalize.CpeValue {
		r = normalize.Exact(normalize.NewVersion(r.Scheme, cpe.Version.Value))
	}
	return models.NewPlatformAssertion(advisoryID, dto.VulnerabilityID, status, cpe, r), nil
}

func rangeFromDTO(dto dtos.StatusAssertionDTO, fallback normalize.VersionScheme) (normalize.VersionRange, error) {
	scheme := fallback
	if dto.Scheme != "" {
		parsed, err := normalize.ParseVersionScheme(dto.Scheme)
		if err != nil {
			// osv feeds name the ecosystem instead of the scheme
			purlType, ok := normalize.PURLEcosystems[dto.Scheme]
			if !ok {
				return normalize.VersionRange{}, errors.Wrap(ErrInvalidAssertion, err.Error())
			}
			parsed = normalize.SchemeForPurlType(purlType)
		}
		scheme = parsed
	}

	var r normalize.VersionRange
	if dto.Low != nil || dto.High != nil {
		r = normalize.VersionRange{Scheme: scheme}
		if dto.Low != nil {
			r.Low = &normalize.Bound{Version: dto.Low.Version, Inclusive: dto.Low.Inclusive}
		}
		if dto.High != nil {
			r.High = &normalize.Bound{Version: dto.High.Version, Inclusive: dto.High.Inclusive}
		}
	} else {
		r = normalize.RangeFromEvents(scheme, dto.Introduced, dto.Fixed, dto.LastAffected)
	}

	if err := r.Validate(); err != nil {
		return normalize.VersionRange{}, errors.Wrap(ErrInvalidAssertion, err.Error())
	}
	return r, nil
}
