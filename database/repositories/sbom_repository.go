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

type sbomRepository struct {
	db *gorm.DB
	utils.Repository[models.Sbom, *gorm.DB]

	nodes     utils.BatchModelWriter[models.SbomNode, *gorm.DB]
	purls     utils.BatchModelWriter[models.SbomNodePurl, *gorm.DB]
	cpes      utils.BatchModelWriter[models.SbomNodeCpe, *gorm.DB]
	edges     utils.BatchModelWriter[models.SbomEdge, *gorm.DB]
	externals utils.BatchModelWriter[models.SbomExternalReference, *gorm.DB]
}

func NewSbomRepository(db *gorm.DB) *sbomRepository {
	return &sbomRepository{
		db:         db,
		Repository: newGormRepository[models.Sbom](db),
		nodes:      newGormRepository[models.SbomNode](db),
		purls:      newGormRepository[models.SbomNodePurl](db),
		cpes:       newGormRepository[models.SbomNodeCpe](db),
		edges:      newGormRepository[models.SbomEdge](db),
		externals:  newGormRepository[models.SbomExternalReference](db),
	}
}

// child tables in deletion order
var sbomChildModels = []any{
	&models.SbomNodePurl{},
	&models.SbomNodeCpe{},
	&models.SbomEdge{},
	&models.SbomExternalReference{},
	&models.SbomNode{},
}

func deleteSbomChildren(tx *gorm.DB, sbomID string) error {
	for _, m := range sbomChildModels {
		if err := tx.Where("sbom_id = ?", sbomID).Delete(m).Error; err != nil {
			return err
		}
	}
	return nil
}

// SaveGraph replaces everything stored for records.Sbom.ID.
func (r *sbomRepository) SaveGraph(ctx context.Context, records models.SbomGraphRecords) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.SaveBatch(tx, []models.Sbom{records.Sbom}); err != nil {
			return errors.Wrap(err, "could not save sbom")
		}
		if err := deleteSbomChildren(tx, records.Sbom.ID); err != nil {
			return errors.Wrap(err, "could not clear previous sbom graph")
		}

		if err := r.nodes.CreateBatch(tx, records.Nodes); err != nil {
			return errors.Wrap(err, "could not save sbom nodes")
		}
		if err := r.purls.CreateBatch(tx, records.Purls); err != nil {
			return errors.Wrap(err, "could not save sbom node purls")
		}
		if err := r.cpes.CreateBatch(tx, records.Cpes); err != nil {
			return errors.Wrap(err, "could not save sbom node cpes")
		}
		if err := r.edges.CreateBatch(tx, records.Edges); err != nil {
			return errors.Wrap(err, "could not save sbom edges")
		}
		return errors.Wrap(r.externals.CreateBatch(tx, records.Externals), "could not save external references")
	})
}

// LoadGraphRecords returns the stored rows in ordinal order. The boolean is false
// if no sbom with that id exists.
func (r *sbomRepository) LoadGraphRecords(ctx context.Context, sbomID string) (models.SbomGraphRecords, bool, error) {
	db := r.db.WithContext(ctx)
	var records models.SbomGraphRecords

	err := db.First(&records.Sbom, "id = ?", sbomID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return records, false, nil
	}
	if err != nil {
		return records, false, errors.Wrap(err, "could not load sbom")
	}

	if err := db.Where("sbom_id = ?", sbomID).Order("ordinal").Find(&records.Nodes).Error; err != nil {
		return records, true, errors.Wrap(err, "could not load sbom nodes")
	}
	if err := db.Where("sbom_id = ?", sbomID).Order("node_id, ordinal").Find(&records.Purls).Error; err != nil {
		return records, true, errors.Wrap(err, "could not load sbom node purls")
	}
	if err := db.Where("sbom_id = ?", sbomID).Order("node_id, ordinal").Find(&records.Cpes).Error; err != nil {
		return records, true, errors.Wrap(err, "could not load sbom node cpes")
	}
	if err := db.Where("sbom_id = ?", sbomID).Order("ordinal").Find(&records.Edges).Error; err != nil {
		return records, true, errors.Wrap(err, "could not load sbom edges")
	}
	if err := db.Where("sbom_id = ?", sbomID).Order("local_node_id, external_doc_ref, external_node_ref").Find(&records.Externals).Error; err != nil {
		return records, true, errors.Wrap(err, "could not load external references")
	}
	return records, true, nil
}

func (r *sbomRepository) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.Sbom{}).Order("created_at, id").Pluck("id", &ids).Error
	return ids, err
}

// FindByDocumentRef looks up the sbom an external reference points at.
func (r *sbomRepository) FindByDocumentRef(ctx context.Context, documentRef string) (models.Sbom, bool, error) {
	var sbom models.Sbom
	err := r.db.WithContext(ctx).Where("document_ref = ?", documentRef).Order("updated_at DESC").First(&sbom).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sbom, false, nil
	}
	return sbom, err == nil, err
}

// Delete removes the sbom and its graph and reports whether it existed.
func (r *sbomRepository) Delete(ctx context.Context, sbomID string) (bool, error) {
	found := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteSbomChildren(tx, sbomID); err != nil {
			return errors.Wrap(err, "could not delete sbom graph")
		}
		res := tx.Where("id = ?", sbomID).Delete(&models.Sbom{})
		if res.Error != nil {
			return errors.Wrap(res.Error, "could not delete sbom")
		}
		found = res.RowsAffected > 0
		return nil
	})
	return found, err
}
