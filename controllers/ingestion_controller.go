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
	"net/http"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/l3montree-dev/vulncorrelator/dtos"
	"github.com/l3montree-dev/vulncorrelator/shared"
	"github.com/l3montree-dev/vulncorrelator/transformer"
	"github.com/labstack/echo/v4"
)

type IngestionController struct {
	ingestionService shared.IngestionService
}

func NewIngestionController(ingestionService shared.IngestionService) *IngestionController {
	return &IngestionController{
		ingestionService: ingestionService,
	}
}

// @Summary Store a normalized sbom graph
// @Description Replaces a previously stored sbom with the same id and evicts its cached graph
// @Tags Sboms
// @Accept json
// @Produce json
// @Param body body dtos.SbomIngestDTO true "Sbom graph"
// @Success 201 {object} object{id=string}
// @Failure 400 {object} object{message=string} "Invalid sbom"
// @Failure 500 {object} object{message=string} "Internal server error"
// @Router /sboms [post]
func (c *IngestionController) CreateSbom(ctx shared.Context) error {
	var req dtos.SbomIngestDTO
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "could not bind request").WithInternal(err)
	}
	if err := shared.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, err.Error())
	}

	records, err := transformer.SbomIngestDTOToRecords(req)
	if err != nil {
		return echo.NewHTTPError(400, err.Error()).WithInternal(err)
	}

	if err := c.ingestionService.IngestSbom(ctx.Request().Context(), records); err != nil {
		return echo.NewHTTPError(500, "could not store sbom").WithInternal(err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": records.Sbom.ID})
}

// @Summary Import a cyclonedx document
// @Description Stores the component graph of a cyclonedx json document. The metadata component is the root
// @Tags Sboms
// @Accept json
// @Produce json
// @Param id query string false "Sbom ID, defaults to the slug of the metadata component name"
// @Success 201 {object} object{id=string}
// @Failure 400 {object} object{message=string} "Invalid document"
// @Router /sboms/cyclonedx [post]
func (c *IngestionController) ImportCycloneDX(ctx shared.Context) error {
	var bom cdx.BOM
	if err := cdx.NewBOMDecoder(ctx.Request().Body, cdx.BOMFileFormatJSON).Decode(&bom); err != nil {
		return echo.NewHTTPError(400, "could not decode cyclonedx document").WithInternal(err)
	}

	req := transformer.CycloneDXToSbomIngestDTO(&bom, ctx.QueryParam("id"))
	if err := shared.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, err.Error())
	}
	records, err := transformer.SbomIngestDTOToRecords(req)
	if err != nil {
		return echo.NewHTTPError(400, err.Error()).WithInternal(err)
	}

	if err := c.ingestionService.IngestSbom(ctx.Request().Context(), records); err != nil {
		return echo.NewHTTPError(500, "could not store sbom").WithInternal(err)
	}
	return ctx.JSON(http.StatusCreated, map[string]string{"id": records.Sbom.ID})
}

// @Summary Delete an sbom
// @Tags Sboms
// @Param sbomID path string true "Sbom ID"
// @Success 204
// @Failure 404 {object} object{message=string} "Sbom not found"
// @Router /sboms/{sbomID} [delete]
func (c *IngestionController) DeleteSbom(ctx shared.Context) error {
	found, err := c.ingestionService.DeleteSbom(ctx.Request().Context(), shared.GetParam(ctx, "sbomID"))
	if err != nil {
		return echo.NewHTTPError(500, "could not delete sbom").WithInternal(err)
	}
	if !found {
		return sbomNotFound()
	}
	return ctx.NoContent(http.StatusNoContent)
}

// @Summary Store an advisory
// @Description Stores the advisory, its vulnerabilities and status assertions. Assertions are content addressed, storing one twice is a no-op
// @Tags Advisories
// @Accept json
// @Produce json
// @Param body body dtos.AdvisoryIngestDTO true "Advisory"
// @Success 201 {object} object{id=string,assertions=int}
// @Failure 400 {object} object{message=string} "Invalid advisory"
// @Failure 500 {object} object{message=string} "Internal server error"
// @Router /advisories [post]
func (c *IngestionController) CreateAdvisory(ctx shared.Context) error {
	var req dtos.AdvisoryIngestDTO
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "could not bind request").WithInternal(err)
	}
	if err := shared.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, err.Error())
	}

	advisory, vulns, assertions, err := transformer.AdvisoryIngestDTOToModels(req)
	if err != nil {
		return echo.NewHTTPError(400, err.Error()).WithInternal(err)
	}

	if err := c.ingestionService.IngestAdvisory(ctx.Request().Context(), advisory, vulns, assertions); err != nil {
		return echo.NewHTTPError(500, "could not store advisory").WithInternal(err)
	}

	return ctx.JSON(http.StatusCreated, map[string]any{"id": advisory.ID, "assertions": len(assertions)})
}

// @Summary Get an advisory
// @Description Returns the advisory with its vulnerabilities and status assertions
// @Tags Advisories
// @Produce json
// @Param advisoryID path string true "Advisory ID"
// @Success 200 {object} dtos.AdvisoryDTO
// @Failure 404 {object} object{message=string} "Advisory not found"
// @Router /advisories/{advisoryID} [get]
func (c *IngestionController) ReadAdvisory(ctx shared.Context) error {
	advisory, found, err := c.ingestionService.GetAdvisory(ctx.Request().Context(), shared.GetParam(ctx, "advisoryID"))
	if err != nil {
		return echo.NewHTTPError(500, "could not read advisory").WithInternal(err)
	}
	if !found {
		return echo.NewHTTPError(404, "advisory not found")
	}
	return ctx.JSON(http.StatusOK, transformer.AdvisoryToDTO(advisory))
}

// @Summary Delete an advisory and its assertions
// @Tags Advisories
// @Param advisoryID path string true "Advisory ID"
// @Success 204
// @Failure 404 {object} object{message=string} "Advisory not found"
// @Router /advisories/{advisoryID} [delete]
func (c *IngestionController) DeleteAdvisory(ctx shared.Context) error {
	found, err := c.ingestionService.DeleteAdvisory(ctx.Request().Context(), shared.GetParam(ctx, "advisoryID"))
	if err != nil {
		return echo.NewHTTPError(500, "could not delete advisory").WithInternal(err)
	}
	if !found {
		return echo.NewHTTPError(404, "advisory not found")
	}
	return ctx.NoContent(http.StatusNoContent)
}
