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

package middlewares

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/l3montree-dev/vulncorrelator/monitoring"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// Server returns an echo instance with logging, metrics, panic recovery and the json
// error handler installed. Routes are expected to end with a slash.
func Server() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(99)
	registerMiddlewares(e)
	return e
}

func allowedOrigins() []string {
	origins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if origins == "" {
		return []string{"http://localhost:3000"}
	}
	return strings.Split(origins, ",")
}

func registerMiddlewares(e *echo.Echo) {
	e.Pre(middleware.AddTrailingSlash())
	e.Use(middleware.CORSWithConfig(
		middleware.CORSConfig{
			AllowOrigins: allowedOrigins(),
			AllowHeaders: middleware.DefaultCORSConfig.AllowHeaders,
			AllowMethods: middleware.DefaultCORSConfig.AllowMethods,
		},
	))
	e.Use(middleware.BodyLimit(bodyLimit()))
	if limit := rateLimit(); limit > 0 {
		e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(limit)))
	}

	e.Use(logger())
	e.Use(metrics())
	e.Use(recoverMiddleware())

	e.HTTPErrorHandler = errorHandler(e)
}

// SBOM_BODY_LIMIT caps request bodies, large sboms are the only big payloads.
func bodyLimit() string {
	if limit := os.Getenv("SBOM_BODY_LIMIT"); limit != "" {
		return limit
	}
	return "64M"
}

// RATE_LIMIT_RPS limits requests per second and client ip. Zero or unset disables the limiter.
func rateLimit() rate.Limit {
	rps, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 0
	}
	return rate.Limit(rps)
}

func errorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		he, ok := err.(*echo.HTTPError)
		if !ok {
			he = &echo.HTTPError{
				Code:     http.StatusInternalServerError,
				Message:  http.StatusText(http.StatusInternalServerError),
				Internal: err,
			}
		}

		// client errors are expected and only logged on debug
		if he.Code >= 500 {
			slog.Error(err.Error(), "method", ctx.Request().Method, "path", ctx.Request().URL)
			monitoring.Alert("request failed", err)
		} else {
			slog.Debug(err.Error(), "method", ctx.Request().Method, "path", ctx.Request().URL)
		}

		var message any = he.Message
		switch m := he.Message.(type) {
		case string:
			if e.Debug && he.Internal != nil {
				message = echo.Map{"message": m, "error": he.Internal.Error()}
			} else {
				message = echo.Map{"message": m}
			}
		case json.Marshaler:
			// formats itself
		case error:
			message = echo.Map{"message": m.Error()}
		}

		if ctx.Request().Method == http.MethodHead {
			err = ctx.NoContent(he.Code)
		} else {
			err = ctx.JSON(he.Code, message)
		}
		if err != nil {
			slog.Error("could not send error response", "error", err)
		}
	}
}
