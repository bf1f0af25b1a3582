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

package services

import (
	"context"
	"log/slog"

	"github.com/l3montree-dev/vulncorrelator/database/models"
	"github.com/l3montree-dev/vulncorrelator/shared"
	"github.com/pkg/errors"
)

type IngestionService struct {
	sbomRepository     shared.SbomRepository
	advisoryRepository shared.AdvisoryRepository
	analysisService    shared.AnalysisService
	broker             shared.PubSubBroker
}

var _ shared.IngestionService = (*IngestionService)(nil)

func NewIngestionService(sbomRepository shared.SbomRepository, advisoryRepository shared.AdvisoryRepository, analysisService shared.AnalysisService, broker shared.PubSubBroker) *IngestionService {
	return &IngestionService{
		sbomRepository:     sbomRepository,
		advisoryRepository: advisoryRepository,
		analysisService:    analysisService,
		broker:             broker,
	}
}

// IngestSbom replaces the stored graph and drops the cached one on every instance.
func (s *IngestionService) IngestSbom(ctx context.Context, records models.SbomGraphRecords) error {
	if err := s.sbomRepository.SaveGraph(ctx, records); err != nil {
		return errors.Wrap(err, "could not save sbom graph")
	}
	s.sbomChanged(ctx, records.Sbom.ID)
	return nil
}

func (s *IngestionService) DeleteSbom(ctx context.Context, sbomID string) (bool, error) {
	found, err := s.sbomRepository.Delete(ctx, sbomID)
	if err != nil {
		return false, errors.Wrap(err, "could not delete sbom")
	}
	if found {
		s.sbomChanged(ctx, sbomID)
	}
	return found, nil
}

func (s *IngestionService) IngestAdvisory(ctx context.Context, advisory models.Advisory, vulns []models.Vulnerability, assertions []models.StatusAssertion) error {
	return errors.Wrap(
		s.advisoryRepository.SaveWithAssertions(ctx, advisory, vulns, assertions),
		"could not save advisory",
	)
}

func (s *IngestionService) GetAdvisory(ctx context.Context, advisoryID string) (models.Advisory, bool, error) {
	advisory, found, err := s.advisoryRepository.ReadWithAssertions(ctx, advisoryID)
	if err != nil {
		return advisory, false, errors.Wrap(err, "could not read advisory")
	}
	return advisory, found, nil
}

func (s *IngestionService) DeleteAdvisory(ctx context.Context, advisoryID string) (bool, error) {
	found, err := s.advisoryRepository.DeleteCascade(ctx, advisoryID)
	if err != nil {
		return false, errors.Wrap(err, "could not delete advisory")
	}
	return found, nil
}

// the local entry is evicted right away, other instances follow once the notification arrives
func (s *IngestionService) sbomChanged(ctx context.Context, sbomID string) {
	s.analysisService.Evict(sbomID)
	if s.broker == nil {
		return
	}
	err := s.broker.Publish(ctx, shared.NewSimplePubSubMessage(shared.SbomChanged, map[string]any{"sbomId": sbomID}))
	if err != nil {
		slog.Warn("could not publish sbom change", "sbomID", sbomID, "err", err)
	}
}
