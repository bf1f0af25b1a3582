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

package shared

import (
	"context"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/l3montree-dev/vulncorrelator/database/models"
	"github.com/l3montree-dev/vulncorrelator/normalize"
)

type AdvisoryRepository interface {
	SaveWithAssertions(ctx context.Context, advisory models.Advisory, vulns []models.Vulnerability, assertions []models.StatusAssertion) error
	ReadWithAssertions(ctx context.Context, id string) (models.Advisory, bool, error)
	DeleteCascade(ctx context.Context, id string) (bool, error)
}

type StatusAssertionRepository interface {
	FindByBasePurl(ctx context.Context, basePurl string) ([]models.StatusAssertion, error)
	FindByPlatform(ctx context.Context, cpe normalize.PlatformIdentity) ([]models.StatusAssertion, error)
}

type VulnerabilityRepository interface {
	Upsert(ctx context.Context, vulns []models.Vulnerability) error
	FindByIDs(ctx context.Context, ids []string) ([]models.Vulnerability, error)
}

type SbomRepository interface {
	SaveGraph(ctx context.Context, records models.SbomGraphRecords) error
	LoadGraphRecords(ctx context.Context, sbomID string) (models.SbomGraphRecords, bool, error)
	ListIDs(ctx context.Context) ([]string, error)
	FindByDocumentRef(ctx context.Context, documentRef string) (models.Sbom, bool, error)
	Delete(ctx context.Context, sbomID string) (bool, error)
}

type StatusCorrelator interface {
	Correlate(ctx context.Context, identity normalize.PackageIdentity) (map[string][]models.StatusAssertion, error)
	CorrelatePlatform(ctx context.Context, cpe normalize.PlatformIdentity) (map[string][]models.StatusAssertion, error)
	AnalyzePurls(ctx context.Context, identities []normalize.PackageIdentity) ([]models.Correlation, error)
}

type CacheState string

const (
	CacheAbsent   CacheState = "absent"
	CacheBuilding CacheState = "building"
	CacheCached   CacheState = "cached"
)

// AnalysisService answers graph questions from cached sbom graphs. Every method
// taking an sbom id reports found == false for unknown sboms instead of an error.
type AnalysisService interface {
	GetOrBuild(ctx context.Context, sbomID string) (*normalize.SbomGraph, bool, error)
	Ancestors(ctx context.Context, sbomID, nodeRef string, maxDepth int) ([]normalize.GraphNode, bool, error)
	Descendants(ctx context.Context, sbomID, nodeRef string, maxDepth int) ([]normalize.GraphNode, bool, error)
	RootComponents(ctx context.Context, sbomID string) ([]normalize.GraphNode, bool, error)
	Walk(ctx context.Context, sbomID string, visitor normalize.GraphVisitor) (bool, error)
	RenderDot(ctx context.Context, sbomID string) (string, bool, error)
	RenderCycloneDX(ctx context.Context, sbomID string) (*cdx.BOM, bool, error)

	Evict(sbomID string)
	Clear()
	Status(sbomID string) CacheState
	Warm(ctx context.Context) error
	FindNodes(ctx context.Context, ref string) ([]models.NodeMatch, error)
	ResolveExternal(ctx context.Context, sbomID, nodeID string) ([]models.NodeMatch, bool, error)
	AnalyzeSbom(ctx context.Context, sbomID string, progress func(done, total int)) ([]models.NodeCorrelation, bool, error)
}

type IngestionService interface {
	IngestSbom(ctx context.Context, records models.SbomGraphRecords) error
	DeleteSbom(ctx context.Context, sbomID string) (bool, error)
	IngestAdvisory(ctx context.Context, advisory models.Advisory, vulns []models.Vulnerability, assertions []models.StatusAssertion) error
	GetAdvisory(ctx context.Context, advisoryID string) (models.Advisory, bool, error)
	DeleteAdvisory(ctx context.Context, advisoryID string) (bool, error)
}
