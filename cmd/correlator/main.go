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

package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/l3montree-dev/vulncorrelator/cmd/correlator/api"
	"github.com/l3montree-dev/vulncorrelator/config"
	"github.com/l3montree-dev/vulncorrelator/controllers"
	"github.com/l3montree-dev/vulncorrelator/database"
	"github.com/l3montree-dev/vulncorrelator/database/repositories"
	"github.com/l3montree-dev/vulncorrelator/monitoring"
	"github.com/l3montree-dev/vulncorrelator/router"
	"github.com/l3montree-dev/vulncorrelator/services"
	"github.com/l3montree-dev/vulncorrelator/shared"
	"github.com/l3montree-dev/vulncorrelator/vulndb/scan"
	"go.uber.org/fx"

	_ "github.com/lib/pq"
)

//	@title			vulncorrelator API
//	@version		v1
//	@description	correlates package and platform identities with vulnerability status assertions and answers dependency graph questions about stored sboms

//	@license.name	AGPL-3

// @host		localhost:8080
// @BasePath	/api/v1
func main() {
	shared.LoadConfig() // nolint: errcheck
	shared.InitLogger()

	if monitoring.InitSentry(config.Version) {
		defer func() {
			if err := recover(); err != nil {
				sentry.CurrentHub().Recover(err)
				sentry.Flush(time.Second * 5)
			}
		}()
	}

	db, pool, err := shared.DatabaseFactory(context.Background())
	if err != nil {
		slog.Error(err.Error())
		panic(errors.New("Failed to setup database connection"))
	}

	if os.Getenv("DISABLE_AUTOMIGRATE") != "true" {
		slog.Info("running database migrations...")
		if err := database.RunMigrationsWithDB(db); err != nil {
			slog.Error("failed to run database migrations", "error", err)
			panic(errors.New("Failed to run database migrations"))
		}
	} else {
		slog.Info("automatic migrations disabled via DISABLE_AUTOMIGRATE=true")
	}

	fx.New(
		fx.Supply(db, pool),
		fx.Provide(brokerFactory),
		fx.Provide(api.NewServer),
		repositories.Module,
		scan.Module,
		services.Module,
		controllers.ControllerModule,
		router.RouterModule,

		// we need to invoke all routers to register their routes
		fx.Invoke(func(router.VulnerabilityRouter) {}),
		fx.Invoke(func(router.SbomRouter) {}),
		fx.Invoke(func(router.AdvisoryRouter) {}),
		fx.Invoke(func(router.NodeRouter) {}),
	).Run()
}

// brokerFactory shares cache invalidations between instances through postgres notify.
func brokerFactory(lc fx.Lifecycle, pool *pgxpool.Pool) shared.PubSubBroker {
	broker := database.NewPostgreSQLBroker(pool)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			broker.Close()
			return nil
		},
	})
	return broker
}
