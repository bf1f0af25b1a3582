package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/l3montree-dev/vulncorrelator/database/models"
	"github.com/l3montree-dev/vulncorrelator/dtos"
	"github.com/l3montree-dev/vulncorrelator/mocks"
	"github.com/l3montree-dev/vulncorrelator/normalize"
	"github.com/l3montree-dev/vulncorrelator/shared"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sbomContext(e *echo.Echo, target string, rec *httptest.ResponseRecorder, sbomID string) echo.Context {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	ctx := e.NewContext(req, rec)
	ctx.SetParamNames("sbomID")
	ctx.SetParamValues(sbomID)
	return ctx
}

func TestAnalysisControllerTraversal(t *testing.T) {
	e := echo.New()

	t.Run("passes ref and depth to the service", func(t *testing.T) {
		svc := mocks.NewAnalysisService(t)
		svc.On("Ancestors", mock.Anything, "sbom-1", "C", 2).Return([]normalize.GraphNode{{NodeID: "B"}, {NodeID: "A"}}, true, nil)

		rec := httptest.NewRecorder()
		err := NewAnalysisController(svc, mocks.NewVulnerabilityRepository(t)).Ancestors(sbomContext(e, "/?ref=C&depth=2", rec, "sbom-1"))
		require.NoError(t, err)

		var resp dtos.TraversalDTO
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "sbom-1", resp.SbomID)
		assert.Equal(t, 2, resp.Depth)
		require.Len(t, resp.Nodes, 2)
		assert.Equal(t, "B", resp.Nodes[0].NodeID)
		assert.Equal(t, "A", resp.Nodes[1].NodeID)
	})

	t.Run("a missing depth is unbounded", func(t *testing.T) {
		svc := mocks.NewAnalysisService(t)
		svc.On("Descendants", mock.Anything, "sbom-1", "A", -1).Return([]normalize.GraphNode{}, true, nil)

		rec := httptest.NewRecorder()
		err := NewAnalysisController(svc, mocks.NewVulnerabilityRepository(t)).Descendants(sbomContext(e, "/?ref=A", rec, "sbom-1"))
		require.NoError(t, err)
		assert.Contains(t, rec.Body.String(), `"nodes":[]`)
	})

	t.Run("requires a ref", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := NewAnalysisController(mocks.NewAnalysisService(t), mocks.NewVulnerabilityRepository(t)).Ancestors(sbomContext(e, "/", rec, "sbom-1"))
		assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
	})

	t.Run("unknown sboms are not found", func(t *testing.T) {
		svc := mocks.NewAnalysisService(t)
		svc.On("Descendants", mock.Anything, "missing", "A", -1).Return(nil, false, nil)

		rec := httptest.NewRecorder()
		err := NewAnalysisController(svc, mocks.NewVulnerabilityRepository(t)).Descendants(sbomContext(e, "/?ref=A", rec, "missing"))
		assert.Equal(t, http.StatusNotFound, httpCode(t, err))
	})

	t.Run("roots", func(t *testing.T) {
		svc := mocks.NewAnalysisService(t)
		svc.On("RootComponents", mock.Anything, "sbom-1").Return([]normalize.GraphNode{{NodeID: "A", Name: "app"}}, true, nil)

		rec := httptest.NewRecorder()
		err := NewAnalysisController(svc, mocks.NewVulnerabilityRepository(t)).Roots(sbomContext(e, "/", rec, "sbom-1"))
		require.NoError(t, err)

		var resp []dtos.GraphNodeDTO
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, "app", resp[0].Name)
	})
}

func TestAnalysisControllerRendering(t *testing.T) {
	e := echo.New()

	t.Run("dot", func(t *testing.T) {
		svc := mocks.NewAnalysisService(t)
		svc.On("RenderDot", mock.Anything, "sbom-1").Return("digraph \"sbom-1\" {\n}\n", true, nil)

		rec := httptest.NewRecorder()
		err := NewAnalysisController(svc, mocks.NewVulnerabilityRepository(t)).Dot(sbomContext(e, "/", rec, "sbom-1"))
		require.NoError(t, err)
		assert.Equal(t, normalize.DotMimeType, rec.Header().Get(echo.HeaderContentType))
		assert.Contains(t, rec.Body.String(), "digraph")
	})

	t.Run("cyclonedx", func(t *testing.T) {
		bom := cdx.NewBOM()
		bom.Components = &[]cdx.Component{{BOMRef: "A", Name: "app", Type: cdx.ComponentTypeLibrary}}

		svc := mocks.NewAnalysisService(t)
		svc.On("RenderCycloneDX", mock.Anything, "sbom-1").Return(bom, true, nil)

		rec := httptest.NewRecorder()
		err := NewAnalysisController(svc, mocks.NewVulnerabilityRepository(t)).CycloneDX(sbomContext(e, "/", rec, "sbom-1"))
		require.NoError(t, err)

		var decoded cdx.BOM
		require.NoError(t, cdx.NewBOMDecoder(rec.Body, cdx.BOMFileFormatJSON).Decode(&decoded))
		require.NotNil(t, decoded.Components)
		assert.Equal(t, "A", (*decoded.Components)[0].BOMRef)
	})

	t.Run("rendering an unknown sbom is not found", func(t *testing.T) {
		svc := mocks.NewAnalysisService(t)
		svc.On("RenderDot", mock.Anything, "missing").Return("", false, nil)

		rec := httptest.NewRecorder()
		err := NewAnalysisController(svc, mocks.NewVulnerabilityRepository(t)).Dot(sbomContext(e, "/", rec, "missing"))
		assert.Equal(t, http.StatusNotFound, httpCode(t, err))
	})
}

func TestAnalysisControllerVulnerabilities(t *testing.T) {
	e := echo.New()

	lib, _ := normalize.ParsePackageIdentity("pkg:maven/com.x/lib@1.5")
	a := libAssertion(t, "CVE-2024-1")

	svc := mocks.NewAnalysisService(t)
	svc.On("AnalyzeSbom", mock.Anything, "sbom-1", mock.Anything).Return([]models.NodeCorrelation{{
		Node: normalize.GraphNode{NodeID: "C", Name: "lib", Purls: []normalize.PackageIdentity{lib}},
		Correlations: []models.Correlation{{
			Identity: lib,
			Matches:  map[string][]models.StatusAssertion{"CVE-2024-1": {a}},
		}},
	}}, true, nil)
	vulnRepo := mocks.NewVulnerabilityRepository(t)
	vulnRepo.On("FindByIDs", mock.Anything, []string{"CVE-2024-1"}).Return([]models.Vulnerability{{ID: "CVE-2024-1", Title: "rce"}}, nil)

	rec := httptest.NewRecorder()
	err := NewAnalysisController(svc, vulnRepo).Vulnerabilities(sbomContext(e, "/", rec, "sbom-1"))
	require.NoError(t, err)

	var resp []dtos.NodeCorrelationDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "C", resp[0].Node.NodeID)
	require.Len(t, resp[0].Correlations, 1)
	assert.Equal(t, "rce", resp[0].Correlations[0].Vulnerabilities[0].Title)
}

func TestAnalysisControllerCache(t *testing.T) {
	e := echo.New()

	t.Run("status", func(t *testing.T) {
		svc := mocks.NewAnalysisService(t)
		svc.On("Status", "sbom-1").Return(shared.CacheCached)

		rec := httptest.NewRecorder()
		err := NewAnalysisController(svc, mocks.NewVulnerabilityRepository(t)).CacheStatus(sbomContext(e, "/", rec, "sbom-1"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"sbomId":"sbom-1","state":"cached"}`, rec.Body.String())
	})

	t.Run("evict", func(t *testing.T) {
		svc := mocks.NewAnalysisService(t)
		svc.On("Evict", "sbom-1").Return()

		rec := httptest.NewRecorder()
		err := NewAnalysisController(svc, mocks.NewVulnerabilityRepository(t)).EvictCache(sbomContext(e, "/", rec, "sbom-1"))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestAnalysisControllerNodes(t *testing.T) {
	e := echo.New()

	t.Run("search", func(t *testing.T) {
		svc := mocks.NewAnalysisService(t)
		svc.On("FindNodes", mock.Anything, "pkg:maven/com.x/lib@1.5").Return([]models.NodeMatch{
			{SbomID: "sbom-1", Node: normalize.GraphNode{NodeID: "C"}},
			{SbomID: "sbom-2", Node: normalize.GraphNode{NodeID: "X"}},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/?ref=pkg:maven/com.x/lib@1.5", nil)
		rec := httptest.NewRecorder()
		err := NewAnalysisController(svc, mocks.NewVulnerabilityRepository(t)).SearchNodes(e.NewContext(req, rec))
		require.NoError(t, err)

		var resp []dtos.NodeMatchDTO
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp, 2)
		assert.Equal(t, "sbom-2", resp[1].SbomID)
	})

	t.Run("external references", func(t *testing.T) {
		svc := mocks.NewAnalysisService(t)
		svc.On("ResolveExternal", mock.Anything, "sbom-1", "C").Return([]models.NodeMatch{
			{SbomID: "sbom-2", Node: normalize.GraphNode{NodeID: "root"}},
		}, true, nil)

		rec := httptest.NewRecorder()
		ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		ctx.SetParamNames("sbomID", "nodeID")
		ctx.SetParamValues("sbom-1", "C")

		err := NewAnalysisController(svc, mocks.NewVulnerabilityRepository(t)).ResolveExternal(ctx)
		require.NoError(t, err)
		assert.Contains(t, rec.Body.String(), `"sbomId":"sbom-2"`)
	})
}
