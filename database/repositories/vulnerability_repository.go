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
	"context"

	"github.com/l3montree-dev/vulncorrelator/database/models"
	"github.com/l3montree-dev/vulncorrelator/utils"
	"gorm.io/gorm"
)

type vulnerabilityRepository struct {
	db *gorm.DB
	utils.Repository[models.Vulnerability, *gorm.DB]
}

func NewVulnerabilityRepository(db *gorm.DB) *vulnerabilityRepository {
	return &vulnerabilityRepository{
		db:         db,
		Repository: newGormRepository[models.Vulnerability](db),
	}
}

func (r *vulnerabilityRepository) Upsert(ctx context.Context, vulns []models.Vulnerability) error {
	return r.SaveBatch(r.db.WithContext(ctx), vulns)
}

func (r *vulnerabilityRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Vulnerability, error) {
	if len(ids) == 0 {
		return []models.Vulnerability{}, nil
	}
	var vulns []models.Vulnerability
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&vulns).Error
	return vulns, err
}
