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
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type advisoryRepository struct {
	db *gorm.DB
	utils.Repository[models.Advisory, *gorm.DB]

	vulnerabilities utils.BatchModelWriter[models.Vulnerability, *gorm.DB]
	assertions      utils.BatchModelWriter[models.StatusAssertion, *gorm.DB]
}

func NewAdvisoryRepository(db *gorm.DB) *advisoryRepository {
	return &advisoryRepository{
		db:              db,
		Repository:      newGormRepository[models.Advisory](db),
		vulnerabilities: newGormRepository[models.Vulnerability](db),
		assertions:      newGormRepository[models.StatusAssertion](db),
	}
}

// SaveWithAssertions stores the advisory together with its vulnerabilities and assertions
// in one transaction. Vulnerabilities are upserted, assertions which already exist are kept as they are.
func (r *advisoryRepository) SaveWithAssertions(ctx context.Context, advisory models.Advisory, vulns []models.Vulnerability, assertions []models.StatusAssertion) error {
	advisory.Vulnerabilities = nil
	advisory.Assertions = nil

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.SaveBatch(tx, []models.Advisory{advisory}); err != nil {
			return errors.Wrap(err, "could not save advisory")
		}

		if len(vulns) > 0 {
			if err := r.vulnerabilities.SaveBatch(tx, vulns); err != nil {
				return errors.Wrap(err, "could not save vulnerabilities")
			}
			if err := tx.Model(&advisory).Association("Vulnerabilities").Append(&vulns); err != nil {
				return errors.Wrap(err, "could not link vulnerabilities")
			}
		}

		if len(assertions) == 0 {
			return nil
		}
		for i := range assertions {
			assertions[i].AdvisoryID = advisory.ID
			assertions[i].ID = assertions[i].CalculateID()
		}
		return errors.Wrap(r.assertions.CreateBatch(tx, assertions), "could not save status assertions")
	})
}

// ReadWithAssertions loads the advisory including vulnerabilities and assertions.
// The boolean is false if no advisory with that id exists.
func (r *advisoryRepository) ReadWithAssertions(ctx context.Context, id string) (models.Advisory, bool, error) {
	var advisory models.Advisory
	err := r.db.WithContext(ctx).
		Preload("Vulnerabilities", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Assertions", func(db *gorm.DB) *gorm.DB { return db.Order("vulnerability_id, id") }).
		First(&advisory, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return advisory, false, nil
	}
	return advisory, err == nil, err
}

// DeleteCascade removes the advisory and every assertion it made. Vulnerabilities are
// shared between advisories and stay. It reports whether the advisory existed.
func (r *advisoryRepository) DeleteCascade(ctx context.Context, id string) (bool, error) {
	found := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("advisory_id = ?", id).Delete(&models.StatusAssertion{}).Error; err != nil {
			return errors.Wrap(err, "could not delete status assertions")
		}
		if err := tx.Exec("DELETE FROM advisory_vulnerabilities WHERE advisory_id = ?", id).Error; err != nil {
			return errors.Wrap(err, "could not unlink vulnerabilities")
		}
		res := tx.Where("id = ?", id).Delete(&models.Advisory{})
		if res.Error != nil {
			return errors.Wrap(res.Error, "could not delete advisory")
		}
		found = res.RowsAffected > 0
		return nil
	})
	return found, err
}
