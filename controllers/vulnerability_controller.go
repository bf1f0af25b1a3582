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

package controllers

import (
	"context"
	"net/http"
	"os"

	"github.com/l3montree-dev/vulncorrelator/database/models"
	"github.com/l3montree-dev/vulncorrelator/dtos"
	"github.com/l3montree-dev/vulncorrelator/normalize"
	"github.com/l3montree-dev/vulncorrelator/shared"
	"github.com/l3montree-dev/vulncorrelator/transformer"
	"github.com/l3montree-dev/vulncorrelator/vulndb/scan"
	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
)

type VulnerabilityController struct {
	statusCorrelator        shared.StatusCorrelator
	vulnerabilityRepository shared.VulnerabilityRepository
}

func NewVulnerabilityController(statusCorrelator shared.StatusCorrelator, vulnerabilityRepository shared.VulnerabilityRepository) *VulnerabilityController {
	return &VulnerabilityController{
		statusCorrelator:        statusCorrelator,
		vulnerabilityRepository: vulnerabilityRepository,
	}
}

// @Summary Correlate a package URL
// @Description Returns every stored status assertion whose range contains the version of the purl, grouped by vulnerability
// @Tags Vulnerabilities
// @Produce json
// @Param purl query string true "Versioned package URL"
// @Success 200 {object} dtos.CorrelationDTO
// @Failure 400 {object} object{message=string} "Invalid purl"
// @Failure 500 {object} object{message=string} "Internal server error"
// @Router /vulnerabilities/purl [get]
func (c *VulnerabilityController) Purl(ctx shared.Context) error {
	identity, err := normalize.ParsePackageIdentity(ctx.QueryParam("purl"))
	if err != nil {
		return echo.NewHTTPError(400, "invalid purl").WithInternal(err)
	}

	matches, err := c.statusCorrelator.Correlate(ctx.Request().Context(), identity)
	if err != nil {
		return echo.NewHTTPError(500, "could not correlate purl").WithInternal(err)
	}

	vulns, err := c.lookupVulnerabilities(ctx.Request().Context(), matches)
	if err != nil {
		return echo.NewHTTPError(500, "could not fetch vulnerabilities").WithInternal(err)
	}

	return ctx.JSON(200, transformer.CorrelationToDTO(identity.String(), matches, vulns))
}

// @Summary Correlate a cpe
// @Description Matches a cpe 2.3 name (or 2.2 uri) with a concrete version against platform assertions
// @Tags Vulnerabilities
// @Produce json
// @Param cpe query string true "CPE name"
// @Success 200 {object} dtos.CorrelationDTO
// @Failure 400 {object} object{message=string} "Invalid cpe"
// @Failure 500 {object} object{message=string} "Internal server error"
// @Router /vulnerabilities/cpe [get]
func (c *VulnerabilityController) Cpe(ctx shared.Context) error {
	cpe, err := normalize.ParsePlatformIdentity(ctx.QueryParam("cpe"))
	if err != nil {
		return echo.NewHTTPError(400, "invalid cpe").WithInternal(err)
	}

	matches, err := c.statusCorrelator.CorrelatePlatform(ctx.Request().Context(), cpe)
	if err != nil {
		return echo.NewHTTPError(500, "could not correlate cpe").WithInternal(err)
	}

	vulns, err := c.lookupVulnerabilities(ctx.Request().Context(), matches)
	if err != nil {
		return echo.NewHTTPError(500, "could not fetch vulnerabilities").WithInternal(err)
	}

	return ctx.JSON(200, transformer.CorrelationToDTO(cpe.String(), matches, vulns))
}

// @Summary Correlate many package URLs
// @Tags Vulnerabilities
// @Accept json
// @Produce json
// @Param body body dtos.AnalyzePurlsRequest true "Purls"
// @Success 200 {array} dtos.CorrelationDTO
// @Failure 400 {object} object{message=string} "Invalid request"
// @Failure 500 {object} object{message=string} "Internal server error"
// @Router /vulnerabilities/analyze [post]
func (c *VulnerabilityController) Analyze(ctx shared.Context) error {
	var req dtos.AnalyzePurlsRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "could not bind request").WithInternal(err)
	}
	if err := shared.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, err.Error())
	}

	identities := make([]normalize.PackageIdentity, 0, len(req.Purls))
	for _, p := range req.Purls {
		identity, err := normalize.ParsePackageIdentity(p)
		if err != nil {
			return echo.NewHTTPError(400, "invalid purl: "+p).WithInternal(err)
		}
		identities = append(identities, identity)
	}

	correlations, err := c.statusCorrelator.AnalyzePurls(ctx.Request().Context(), identities)
	if err != nil {
		return echo.NewHTTPError(500, "could not correlate purls").WithInternal(err)
	}

	vulns, err := c.lookupVulnerabilities(ctx.Request().Context(), lo.Map(correlations, func(corr models.Correlation, _ int) map[string][]models.StatusAssertion {
		return corr.Matches
	})...)
	if err != nil {
		return echo.NewHTTPError(500, "could not fetch vulnerabilities").WithInternal(err)
	}

	return ctx.JSON(200, lo.Map(correlations, func(corr models.Correlation, _ int) dtos.CorrelationDTO {
		return transformer.CorrelationToDTO(corr.Identity.String(), corr.Matches, vulns)
	}))
}

// @Summary OpenVEX document for a package URL
// @Tags Vulnerabilities
// @Produce json
// @Param purl query string true "Versioned package URL"
// @Success 200 {object} vex.VEX
// @Failure 400 {object} object{message=string} "Invalid purl"
// @Failure 500 {object} object{message=string} "Internal server error"
// @Router /vulnerabilities/purl/openvex.json [get]
func (c *VulnerabilityController) PurlOpenVeX(ctx shared.Context) error {
	identity, err := normalize.ParsePackageIdentity(ctx.QueryParam("purl"))
	if err != nil {
		return echo.NewHTTPError(400, "invalid purl").WithInternal(err)
	}

	matches, err := c.statusCorrelator.Correlate(ctx.Request().Context(), identity)
	if err != nil {
		return echo.NewHTTPError(500, "could not correlate purl").WithInternal(err)
	}

	doc := scan.BuildOpenVeX(vexAuthor(), []models.Correlation{{Identity: identity, Matches: matches}})
	return ctx.JSONPretty(http.StatusOK, doc, "  ")
}

func (c *VulnerabilityController) lookupVulnerabilities(ctx context.Context, matches ...map[string][]models.StatusAssertion) (map[string]models.Vulnerability, error) {
	ids := transformer.VulnerabilityIDs(matches...)
	if len(ids) == 0 {
		return map[string]models.Vulnerability{}, nil
	}
	vulns, err := c.vulnerabilityRepository.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return transformer.VulnerabilitiesByID(vulns), nil
}

func vexAuthor() string {
	if author := os.Getenv("VEX_AUTHOR"); author != "" {
		return author
	}
	return "vulncorrelator"
}
