package middlewares

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestServer(t *testing.T) {
	e := Server()
	e.GET("/ok/", func(ctx echo.Context) error {
		return ctx.String(200, "ok")
	})
	e.GET("/not-found/", func(ctx echo.Context) error {
		return echo.NewHTTPError(404, "sbom not found")
	})
	e.GET("/plain-error/", func(ctx echo.Context) error {
		return errors.New("connection reset")
	})
	e.GET("/panic/", func(ctx echo.Context) error {
		panic("boom")
	})

	serve := func(target string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		return rec
	}

	t.Run("adds the trailing slash before routing", func(t *testing.T) {
		rec := serve("/ok")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok", rec.Body.String())
	})

	t.Run("renders http errors as json", func(t *testing.T) {
		rec := serve("/not-found/")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"message":"sbom not found"}`, rec.Body.String())
	})

	t.Run("hides plain errors behind a 500", func(t *testing.T) {
		rec := serve("/plain-error/")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"message":"Internal Server Error"}`, rec.Body.String())
	})

	t.Run("recovers panics", func(t *testing.T) {
		rec := serve("/panic/")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"message":"internal server error"}`, rec.Body.String())
	})
}

func TestRateLimit(t *testing.T) {
	t.Setenv("RATE_LIMIT_RPS", "1")
	e := Server()
	e.GET("/ok/", func(ctx echo.Context) error {
		return ctx.String(200, "ok")
	})

	serve := func() int {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok/", nil))
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, serve())
	assert.Equal(t, http.StatusTooManyRequests, serve())
}

func TestRateLimitDisabledByDefault(t *testing.T) {
	t.Setenv("RATE_LIMIT_RPS", "")
	assert.Zero(t, rateLimit())
	t.Setenv("RATE_LIMIT_RPS", "nope")
	assert.Zero(t, rateLimit())
}
