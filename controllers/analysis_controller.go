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
	"github.com/l3montree-dev/vulncorrelator/database/models"
	"github.com/l3montree-dev/vulncorrelator/dtos"
	"github.com/l3montree-dev/vulncorrelator/normalize"
	"github.com/l3montree-dev/vulncorrelator/shared"
	"github.com/l3montree-dev/vulncorrelator/transformer"
	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
)

type AnalysisController struct {
	analysisService         shared.AnalysisService
	vulnerabilityRepository shared.VulnerabilityRepository
}

func NewAnalysisController(analysisService shared.AnalysisService, vulnerabilityRepository shared.VulnerabilityRepository) *AnalysisController {
	return &AnalysisController{
		analysisService:         analysisService,
		vulnerabilityRepository: vulnerabilityRepository,
	}
}

func sbomNotFound() error {
	return echo.NewHTTPError(404, "sbom not found")
}

type traversal func(ctx shared.Context, sbomID, ref string, depth int) ([]normalize.GraphNode, bool, error)

func (c *AnalysisController) traverse(ctx shared.Context, fn traversal) error {
	sbomID := shared.GetParam(ctx, "sbomID")
	ref := ctx.QueryParam("ref")
	if ref == "" {
		return echo.NewHTTPError(400, "ref query parameter is required")
	}
	depth := shared.GetDepth(ctx)

	nodes, found, err := fn(ctx, sbomID, ref, depth)
	if err != nil {
		return echo.NewHTTPError(500, "could not traverse graph").WithInternal(err)
	}
	if !found {
		return sbomNotFound()
	}

	return ctx.JSON(200, dtos.TraversalDTO{
		SbomID: sbomID,
		Ref:    ref,
		Depth:  depth,
		Nodes:  transformer.GraphNodesToDTO(nodes),
	})
}

// @Summary Ancestors of a node
// @Description Breadth first list of the nodes depending on the referenced node. ref may be a node id, a purl or a cpe
// @Tags Sboms
// @Produce json
// @Param sbomID path string true "Sbom ID"
// @Param ref query string true "Node reference"
// @Param depth query int false "Maximum depth, negative or missing means unbounded"
// @Success 200 {object} dtos.TraversalDTO
// @Failure 404 {object} object{message=string} "Sbom not found"
// @Router /sboms/{sbomID}/ancestors [get]
func (c *AnalysisController) Ancestors(ctx shared.Context) error {
	return c.traverse(ctx, func(ctx shared.Context, sbomID, ref string, depth int) ([]normalize.GraphNode, bool, error) {
		return c.analysisService.Ancestors(ctx.Request().Context(), sbomID, ref, depth)
	})
}

// @Summary Descendants of a node
// @Tags Sboms
// @Produce json
// @Param sbomID path string true "Sbom ID"
// @Param ref query string true "Node reference"
// @Param depth query int false "Maximum depth, negative or missing means unbounded"
// @Success 200 {object} dtos.TraversalDTO
// @Failure 404 {object} object{message=string} "Sbom not found"
// @Router /sboms/{sbomID}/descendants [get]
func (c *AnalysisController) Descendants(ctx shared.Context) error {
	return c.traverse(ctx, func(ctx shared.Context, sbomID, ref string, depth int) ([]normalize.GraphNode, bool, error) {
		return c.analysisService.Descendants(ctx.Request().Context(), sbomID, ref, depth)
	})
}

// @Summary Root components of an sbom
// @Tags Sboms
// @Produce json
// @Param sbomID path string true "Sbom ID"
// @Success 200 {array} dtos.GraphNodeDTO
// @Failure 404 {object} object{message=string} "Sbom not found"
// @Router /sboms/{sbomID}/roots [get]
func (c *AnalysisController) Roots(ctx shared.Context) error {
	nodes, found, err := c.analysisService.RootComponents(ctx.Request().Context(), shared.GetParam(ctx, "sbomID"))
	if err != nil {
		return echo.NewHTTPError(500, "could not load graph").WithInternal(err)
	}
	if !found {
		return sbomNotFound()
	}
	return ctx.JSON(200, transformer.GraphNodesToDTO(nodes))
}

// @Summary Graphviz rendering of an sbom graph
// @Tags Sboms
// @Produce text/vnd.graphviz
// @Param sbomID path string true "Sbom ID"
// @Success 200 {string} string
// @Failure 404 {object} object{message=string} "Sbom not found"
// @Router /sboms/{sbomID}/graph.dot [get]
func (c *AnalysisController) Dot(ctx shared.Context) error {
	dot, found, err := c.analysisService.RenderDot(ctx.Request().Context(), shared.GetParam(ctx, "sbomID"))
	if err != nil {
		return echo.NewHTTPError(500, "could not render graph").WithInternal(err)
	}
	if !found {
		return sbomNotFound()
	}
	return ctx.Blob(http.StatusOK, normalize.DotMimeType, []byte(dot))
}

// @Summary CycloneDX rendering of an sbom graph
// @Tags Sboms
// @Produce json
// @Param sbomID path string true "Sbom ID"
// @Success 200 {object} cdx.BOM
// @Failure 404 {object} object{message=string} "Sbom not found"
// @Router /sboms/{sbomID}/cyclonedx.json [get]
func (c *AnalysisController) CycloneDX(ctx shared.Context) error {
	bom, found, err := c.analysisService.RenderCycloneDX(ctx.Request().Context(), shared.GetParam(ctx, "sbomID"))
	if err != nil {
		return echo.NewHTTPError(500, "could not render graph").WithInternal(err)
	}
	if !found {
		return sbomNotFound()
	}

	ctx.Response().Header().Set(echo.HeaderContentType, "application/json")
	return cdx.NewBOMEncoder(ctx.Response().Writer, cdx.BOMFileFormatJSON).Encode(bom)
}

// @Summary Correlate every node of an sbom
// @Description Correlates all purls of every node against the stored status assertions
// @Tags Sboms
// @Produce json
// @Param sbomID path string true "Sbom ID"
// @Success 200 {array} dtos.NodeCorrelationDTO
// @Failure 404 {object} object{message=string} "Sbom not found"
// @Router /sboms/{sbomID}/vulnerabilities [get]
func (c *AnalysisController) Vulnerabilities(ctx shared.Context) error {
	results, found, err := c.analysisService.AnalyzeSbom(ctx.Request().Context(), shared.GetParam(ctx, "sbomID"), nil)
	if err != nil {
		return echo.NewHTTPError(500, "could not analyze sbom").WithInternal(err)
	}
	if !found {
		return sbomNotFound()
	}

	var matches []map[string][]models.StatusAssertion
	for _, r := range results {
		matches = append(matches, lo.Map(r.Correlations, func(corr models.Correlation, _ int) map[string][]models.StatusAssertion {
			return corr.Matches
		})...)
	}

	vulns := map[string]models.Vulnerability{}
	if ids := transformer.VulnerabilityIDs(matches...); len(ids) > 0 {
		list, err := c.vulnerabilityRepository.FindByIDs(ctx.Request().Context(), ids)
		if err != nil {
			return echo.NewHTTPError(500, "could not fetch vulnerabilities").WithInternal(err)
		}
		vulns = transformer.VulnerabilitiesByID(list)
	}

	return ctx.JSON(200, transformer.NodeCorrelationsToDTO(results, vulns))
}

// @Summary Cache state of an sbom graph
// @Tags Sboms
// @Produce json
// @Param sbomID path string true "Sbom ID"
// @Success 200 {object} dtos.CacheStatusDTO
// @Router /sboms/{sbomID}/cache [get]
func (c *AnalysisController) CacheStatus(ctx shared.Context) error {
	sbomID := shared.GetParam(ctx, "sbomID")
	return ctx.JSON(200, dtos.CacheStatusDTO{
		SbomID: sbomID,
		State:  string(c.analysisService.Status(sbomID)),
	})
}

// @Summary Evict a cached sbom graph
// @Tags Sboms
// @Param sbomID path string true "Sbom ID"
// @Success 204
// @Router /sboms/{sbomID}/cache [delete]
func (c *AnalysisController) EvictCache(ctx shared.Context) error {
	c.analysisService.Evict(shared.GetParam(ctx, "sbomID"))
	return ctx.NoContent(http.StatusNoContent)
}

// @Summary Resolve the external references of a node
// @Description Follows the external document references of a node into the referenced sboms
// @Tags Sboms
// @Produce json
// @Param sbomID path string true "Sbom ID"
// @Param nodeID path string true "Node ID"
// @Success 200 {array} dtos.NodeMatchDTO
// @Failure 404 {object} object{message=string} "Sbom not found"
// @Router /sboms/{sbomID}/nodes/{nodeID}/external [get]
func (c *AnalysisController) ResolveExternal(ctx shared.Context) error {
	matches, found, err := c.analysisService.ResolveExternal(ctx.Request().Context(), shared.GetParam(ctx, "sbomID"), shared.GetParam(ctx, "nodeID"))
	if err != nil {
		return echo.NewHTTPError(500, "could not resolve external references").WithInternal(err)
	}
	if !found {
		return sbomNotFound()
	}
	return ctx.JSON(200, transformer.NodeMatchesToDTO(matches))
}

// @Summary Search nodes in every cached sbom graph
// @Tags Nodes
// @Produce json
// @Param ref query string true "Node id, purl or cpe"
// @Success 200 {array} dtos.NodeMatchDTO
// @Failure 400 {object} object{message=string} "Missing ref"
// @Router /nodes/search [get]
func (c *AnalysisController) SearchNodes(ctx shared.Context) error {
	ref := ctx.QueryParam("ref")
	if ref == "" {
		return echo.NewHTTPError(400, "ref query parameter is required")
	}
	matches, err := c.analysisService.FindNodes(ctx.Request().Context(), ref)
	if err != nil {
		return echo.NewHTTPError(500, "could not search nodes").WithInternal(err)
	}
	return ctx.JSON(200, transformer.NodeMatchesToDTO(matches))
}
