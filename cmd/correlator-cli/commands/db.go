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

package commands

import (
	"context"

	"github.com/l3montree-dev/vulncorrelator/database/repositories"
	"github.com/l3montree-dev/vulncorrelator/services"
	"github.com/l3montree-dev/vulncorrelator/shared"
	"github.com/l3montree-dev/vulncorrelator/vulndb/scan"
	"github.com/pkg/errors"

	_ "github.com/lib/pq"
)

func openDatabase(ctx context.Context) (shared.DB, func(), error) {
	shared.LoadConfig() // nolint: errcheck
	db, pool, err := shared.DatabaseFactory(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not connect to database")
	}
	return db, pool.Close, nil
}

func newStatusCorrelator(db shared.DB) *scan.StatusCorrelator {
	return scan.NewStatusCorrelator(repositories.NewStatusAssertionRepository(db))
}

// the cli runs without a broker, so the analysis service only sees its own process
func newAnalysisService(db shared.DB) *services.AnalysisService {
	return services.NewAnalysisService(repositories.NewSbomRepository(db), newStatusCorrelator(db))
}
