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
	"github.com/l3montree-dev/vulncorrelator/normalize"
	"gorm.io/gorm"
)

type statusAssertionRepository struct {
	db *gorm.DB
}

func NewStatusAssertionRepository(db *gorm.DB) *statusAssertionRepository {
	return &statusAssertionRepository{db: db}
}

func (r *statusAssertionRepository) ordered(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Order("advisory_id, vulnerability_id, id")
}

// FindByBasePurl returns every package assertion made for the base purl (type, namespace and name).
func (r *statusAssertionRepository) FindByBasePurl(ctx context.Context, basePurl string) ([]models.StatusAssertion, error) {
	var assertions []models.StatusAssertion
	err := r.ordered(ctx).
		Where("identity_kind = ? AND base_purl = ?", models.IdentityPackage, basePurl).
		Find(&assertions).Error
	return assertions, err
}

// FindByPlatform returns the platform assertions whose vendor and product can match the cpe.
// Any on either side is a wildcard. Callers still have to match the remaining attributes.
func (r *statusAssertionRepository) FindByPlatform(ctx context.Context, cpe normalize.PlatformIdentity) ([]models.StatusAssertion, error) {
	var assertions []models.StatusAssertion
	query := r.ordered(ctx).Where("identity_kind = ?", models.IdentityPlatform)
	if !cpe.Vendor.IsAny() {
		query = query.Where("cpe_vendor IN ?", []string{cpe.VendorKey(), "*"})
	}
	if !cpe.Product.IsAny() {
		query = query.Where("cpe_product IN ?", []string{cpe.ProductKey(), "*"})
	}
	err := query.Find(&assertions).Error
	return assertions, err
}
