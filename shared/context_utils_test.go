package shared

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestGetParam(t *testing.T) {
	e := echo.New()
	ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/?depth=2", nil), httptest.NewRecorder())
	ctx.SetParamNames("sbomID")
	ctx.SetParamValues("team%2Fapp/")

	assert.Equal(t, "team/app", GetParam(ctx, "sbomID"))
	assert.Equal(t, "", GetParam(ctx, "missing"))

	ctx.Set("fallback", "value")
	assert.Equal(t, "value", GetParam(ctx, "fallback"))

	assert.Equal(t, 2, GetDepth(ctx))
}
