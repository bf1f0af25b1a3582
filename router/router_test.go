package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/l3montree-dev/vulncorrelator/cmd/correlator/api"
	"github.com/l3montree-dev/vulncorrelator/controllers"
	"github.com/l3montree-dev/vulncorrelator/database/models"
	"github.com/l3montree-dev/vulncorrelator/middlewares"
	"github.com/l3montree-dev/vulncorrelator/mocks"
	"github.com/l3montree-dev/vulncorrelator/normalize"
	"github.com/l3montree-dev/vulncorrelator/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testAPI struct {
	srv        api.Server
	analysis   *mocks.AnalysisService
	ingestion  *mocks.IngestionService
	correlator *mocks.StatusCorrelator
}

func newTestAPI(t *testing.T) testAPI {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	a := testAPI{
		srv:        api.Server{Echo: middlewares.Server()},
		analysis:   mocks.NewAnalysisService(t),
		ingestion:  mocks.NewIngestionService(t),
		correlator: mocks.NewStatusCorrelator(t),
	}
	vulnRepo := mocks.NewVulnerabilityRepository(t)

	apiV1 := NewAPIV1Router(a.srv, db, nil)
	analysisController := controllers.NewAnalysisController(a.analysis, vulnRepo)
	ingestionController := controllers.NewIngestionController(a.ingestion)
	NewSbomRouter(apiV1, ingestionController, analysisController)
	NewAdvisoryRouter(apiV1, ingestionController)
	NewNodeRouter(apiV1, analysisController)
	NewVulnerabilityRouter(apiV1, controllers.NewVulnerabilityController(a.correlator, vulnRepo))
	return a
}

func (a testAPI) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	a.srv.Echo.ServeHTTP(rec, req)
	return rec
}

func TestOperationalRoutes(t *testing.T) {
	a := newTestAPI(t)

	t.Run("health", func(t *testing.T) {
		rec := a.do(http.MethodGet, "/api/v1/health", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
	})

	t.Run("metrics", func(t *testing.T) {
		rec := a.do(http.MethodGet, "/api/v1/metrics/", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "go_goroutines")
	})
}

func TestSbomRoutes(t *testing.T) {
	a := newTestAPI(t)

	t.Run("roots", func(t *testing.T) {
		a.analysis.On("RootComponents", mock.Anything, "sbom-1").Return([]normalize.GraphNode{{NodeID: "A"}}, true, nil).Once()

		rec := a.do(http.MethodGet, "/api/v1/sboms/sbom-1/roots", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"nodeId":"A"`)
	})

	t.Run("unknown sboms render a json 404", func(t *testing.T) {
		a.analysis.On("Ancestors", mock.Anything, "missing", "A", -1).Return(nil, false, nil).Once()

		rec := a.do(http.MethodGet, "/api/v1/sboms/missing/ancestors?ref=A", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"message":"sbom not found"}`, rec.Body.String())
	})

	t.Run("cache eviction", func(t *testing.T) {
		a.analysis.On("Evict", "sbom-1").Return().Once()
		a.analysis.On("Status", "sbom-1").Return(shared.CacheAbsent).Once()

		rec := a.do(http.MethodDelete, "/api/v1/sboms/sbom-1/cache", "")
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = a.do(http.MethodGet, "/api/v1/sboms/sbom-1/cache/", "")
		assert.JSONEq(t, `{"sbomId":"sbom-1","state":"absent"}`, rec.Body.String())
	})

	t.Run("ingest", func(t *testing.T) {
		a.ingestion.On("IngestSbom", mock.Anything, mock.Anything).Return(nil).Once()

		rec := a.do(http.MethodPost, "/api/v1/sboms/", `{"id":"sbom-2","nodes":[{"nodeId":"A"}]}`)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("cyclonedx import", func(t *testing.T) {
		a.ingestion.On("IngestSbom", mock.Anything, mock.Anything).Return(nil).Once()

		rec := a.do(http.MethodPost, "/api/v1/sboms/cyclonedx?id=sbom-3", `{"bomFormat":"CycloneDX","specVersion":"1.6","components":[{"bom-ref":"A","type":"library","name":"a"}]}`)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"id":"sbom-3"}`, rec.Body.String())
	})
}

func TestAdvisoryRoutes(t *testing.T) {
	a := newTestAPI(t)

	a.ingestion.On("GetAdvisory", mock.Anything, "GHSA-1").Return(models.Advisory{ID: "GHSA-1", Source: "osv"}, true, nil).Once()
	rec := a.do(http.MethodGet, "/api/v1/advisories/GHSA-1/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"source":"osv"`)

	a.ingestion.On("GetAdvisory", mock.Anything, "GHSA-2").Return(models.Advisory{}, false, nil).Once()
	rec = a.do(http.MethodGet, "/api/v1/advisories/GHSA-2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVulnerabilityRoutes(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(http.MethodGet, "/api/v1/vulnerabilities/purl?purl=broken", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"invalid purl"}`, rec.Body.String())
}
