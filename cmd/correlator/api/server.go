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

package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/l3montree-dev/vulncorrelator/middlewares"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// StartedAt is reported as uptime by the info endpoint.
var StartedAt = time.Now()

type Server struct {
	Echo *echo.Echo
}

func listenAddr() string {
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return ":8080"
}

// NewServer creates the echo server and binds it to the fx lifecycle. Routers register
// their routes before OnStart runs.
func NewServer(lc fx.Lifecycle) Server {
	e := middlewares.Server()
	e.Debug = os.Getenv("ENVIRONMENT") == "dev"

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			printRoutes(e)
			go func() {
				addr := listenAddr()
				slog.Info("starting server", "addr", addr)
				if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					slog.Error("failed to start server", "err", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown(ctx)
		},
	})

	return Server{Echo: e}
}

func printRoutes(e *echo.Echo) {
	routes := e.Routes()
	sort.Slice(routes, func(i, j int) bool {
		return routes[i].Path < routes[j].Path
	})
	for _, route := range routes {
		if route.Method != "echo_route_not_found" {
			slog.Debug(route.Path, "method", route.Method)
		}
	}
}
