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

package repositories

import (
	"github.com/l3montree-dev/vulncorrelator/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormRepository[T utils.Tabler] struct {
	db *gorm.DB
}

func newGormRepository[T utils.Tabler](db *gorm.DB) *GormRepository[T] {
	return &GormRepository[T]{db: db}
}

// CreateBatch inserts ts and ignores rows which already exist.
func (g *GormRepository[T]) CreateBatch(tx *gorm.DB, ts []T) error {
	if len(ts) == 0 {
		return nil
	}
	return g.GetDB(tx).Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(ts, 500).Error
}

// SaveBatch upserts ts by primary key. Creation timestamps of existing rows are kept.
// Batches exceeding the parameter limit of the postgres protocol are split in half until they fit.
func (g *GormRepository[T]) SaveBatch(tx *gorm.DB, ts []T) error {
	if len(ts) == 0 {
		return nil
	}
	err := g.GetDB(tx).Clauses(clause.OnConflict{UpdateAll: true}).Create(ts).Error
	if err != nil && isParameterLimitError(err) && len(ts) > 1 {
		half := len(ts) / 2
		if err := g.SaveBatch(tx, ts[:half]); err != nil {
			return err
		}
		return g.SaveBatch(tx, ts[half:])
	}
	return err
}

func (g *GormRepository[T]) GetDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return g.db
}

func isParameterLimitError(err error) bool {
	return err != nil && err.Error() == "extended protocol limited to 65535 parameters"
}
