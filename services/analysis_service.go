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
	"time"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/l3montree-dev/vulncorrelator/database/models"
	"github.com/l3montree-dev/vulncorrelator/monitoring"
	"github.com/l3montree-dev/vulncorrelator/normalize"
	"github.com/l3montree-dev/vulncorrelator/shared"
	"github.com/pkg/errors"
)

type AnalysisService struct {
	cache            *analysisCache
	sbomRepository   shared.SbomRepository
	statusCorrelator shared.StatusCorrelator
}

var _ shared.AnalysisService = (*AnalysisService)(nil)

func NewAnalysisService(sbomRepository shared.SbomRepository, statusCorrelator shared.StatusCorrelator) *AnalysisService {
	return &AnalysisService{
		cache:            newAnalysisCache(),
		sbomRepository:   sbomRepository,
		statusCorrelator: statusCorrelator,
	}
}

// GetOrBuild returns the cached graph or loads and builds it. The build runs without
// holding the cache lock, so two first requests for the same sbom may both build.
func (s *AnalysisService) GetOrBuild(ctx context.Context, sbomID string) (*normalize.SbomGraph, bool, error) {
	if g, ok := s.cache.get(sbomID); ok {
		monitoring.AnalysisCacheLookups.WithLabelValues("hit").Inc()
		return g, true, nil
	}
	monitoring.AnalysisCacheLookups.WithLabelValues("miss").Inc()

	epoch := s.cache.beginBuild(sbomID)
	start := time.Now()

	records, found, err := s.sbomRepository.LoadGraphRecords(ctx, sbomID)
	if err != nil {
		s.cache.failBuild(sbomID, epoch)
		monitoring.GraphBuildFailures.Inc()
		return nil, false, errors.Wrapf(err, "could not load graph of sbom %s", sbomID)
	}
	if !found {
		s.cache.failBuild(sbomID, epoch)
		return nil, false, nil
	}

	g := records.Graph()
	if dropped := g.DroppedEdges(); dropped > 0 {
		monitoring.DroppedEdges.Add(float64(dropped))
	}
	s.cache.finishBuild(sbomID, epoch, g)
	monitoring.GraphBuildDuration.Observe(time.Since(start).Seconds())

	slog.Debug("built sbom graph", "sbomID", sbomID, "nodes", g.NodeCount(), "edges", g.EdgeCount(), "dropped", g.DroppedEdges())
	return g, true, nil
}

// Ancestors walks towards the root. An unresolvable node ref yields an empty result for a known sbom.
func (s *AnalysisService) Ancestors(ctx context.Context, sbomID, nodeRef string, maxDepth int) ([]normalize.GraphNode, bool, error) {
	return s.traverse(ctx, sbomID, func(g *normalize.SbomGraph) []normalize.GraphNode {
		nodes, _ := g.Ancestors(nodeRef, maxDepth)
		return nodes
	})
}

func (s *AnalysisService) Descendants(ctx context.Context, sbomID, nodeRef string, maxDepth int) ([]normalize.GraphNode, bool, error) {
	return s.traverse(ctx, sbomID, func(g *normalize.SbomGraph) []normalize.GraphNode {
		nodes, _ := g.Descendants(nodeRef, maxDepth)
		return nodes
	})
}

func (s *AnalysisService) RootComponents(ctx context.Context, sbomID string) ([]normalize.GraphNode, bool, error) {
	return s.traverse(ctx, sbomID, (*normalize.SbomGraph).RootComponents)
}

func (s *AnalysisService) traverse(ctx context.Context, sbomID string, fn func(g *normalize.SbomGraph) []normalize.GraphNode) ([]normalize.GraphNode, bool, error) {
	g, found, err := s.GetOrBuild(ctx, sbomID)
	if err != nil || !found {
		return nil, found, err
	}
	result := []normalize.GraphNode{}
	s.cache.read(func() {
		if nodes := fn(g); nodes != nil {
			result = nodes
		}
	})
	return result, true, nil
}

// Walk visits all nodes, then all edges. The visitor runs under the cache's read lock.
func (s *AnalysisService) Walk(ctx context.Context, sbomID string, visitor normalize.GraphVisitor) (bool, error) {
	g, found, err := s.GetOrBuild(ctx, sbomID)
	if err != nil || !found {
		return found, err
	}
	s.cache.read(func() {
		g.Walk(visitor)
	})
	return true, nil
}

// Render walks the sbom with the renderer produced by newRenderer and returns its artifact.
func Render[T any](ctx context.Context, s *AnalysisService, sbomID string, newRenderer func(g *normalize.SbomGraph) normalize.Renderer[T]) (T, bool, error) {
	var artifact T
	g, found, err := s.GetOrBuild(ctx, sbomID)
	if err != nil || !found {
		return artifact, found, err
	}
	s.cache.read(func() {
		artifact = normalize.Render(g, newRenderer(g))
	})
	return artifact, true, nil
}

func (s *AnalysisService) RenderDot(ctx context.Context, sbomID string) (string, bool, error) {
	return Render(ctx, s, sbomID, func(g *normalize.SbomGraph) normalize.Renderer[string] {
		return normalize.NewDotRenderer(sbomID)
	})
}

func (s *AnalysisService) RenderCycloneDX(ctx context.Context, sbomID string) (*cdx.BOM, bool, error) {
	return Render(ctx, s, sbomID, func(g *normalize.SbomGraph) normalize.Renderer[*cdx.BOM] {
		return normalize.NewCycloneDXRenderer(g)
	})
}

func (s *AnalysisService) Evict(sbomID string) {
	s.cache.evict(sbomID)
}

func (s *AnalysisService) Clear() {
	s.cache.clear()
}

func (s *AnalysisService) Status(sbomID string) shared.CacheState {
	return s.cache.status(sbomID)
}

// Warm builds every stored sbom one after another. Failing sboms are logged and skipped.
func (s *AnalysisService) Warm(ctx context.Context) error {
	ids, err := s.sbomRepository.ListIDs(ctx)
	if err != nil {
		return errors.Wrap(err, "could not list sboms")
	}
	start := time.Now()
	built := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, found, err := s.GetOrBuild(ctx, id); err != nil {
			slog.Warn("could not warm sbom graph", "sbomID", id, "err", err)
		} else if found {
			built++
		}
	}
	slog.Info("warmed analysis cache", "sboms", built, "total", len(ids), "duration", time.Since(start))
	return nil
}

// FindNodes searches every cached graph. Sboms that were never built are not searched.
func (s *AnalysisService) FindNodes(_ context.Context, ref string) ([]models.NodeMatch, error) {
	matches := []models.NodeMatch{}
	s.cache.cached(func(sbomID string, g *normalize.SbomGraph) {
		for _, n := range g.FindNodes(ref) {
			matches = append(matches, models.NodeMatch{SbomID: sbomID, Node: n})
		}
	})
	return matches, nil
}

// ResolveExternal follows the external references of a node into other stored sboms.
// References to documents that are not stored are ignored.
func (s *AnalysisService) ResolveExternal(ctx context.Context, sbomID, nodeID string) ([]models.NodeMatch, bool, error) {
	g, found, err := s.GetOrBuild(ctx, sbomID)
	if err != nil || !found {
		return nil, found, err
	}

	matches := []models.NodeMatch{}
	for _, ref := range g.ExternalsOf(nodeID) {
		target, ok, err := s.sbomRepository.FindByDocumentRef(ctx, ref.ExternalDocRef)
		if err != nil {
			return nil, true, errors.Wrapf(err, "could not look up document %s", ref.ExternalDocRef)
		}
		if !ok {
			slog.Debug("external document not stored", "sbomID", sbomID, "documentRef", ref.ExternalDocRef)
			continue
		}
		tg, ok, err := s.GetOrBuild(ctx, target.ID)
		if err != nil {
			return nil, true, err
		}
		if !ok {
			continue
		}
		var node normalize.GraphNode
		s.cache.read(func() {
			node, ok = tg.Resolve(ref.ExternalNodeRef)
		})
		if ok {
			matches = append(matches, models.NodeMatch{SbomID: target.ID, Node: node})
		}
	}
	return matches, true, nil
}

// AnalyzeSbom correlates the purls of every node. progress may be nil.
func (s *AnalysisService) AnalyzeSbom(ctx context.Context, sbomID string, progress func(done, total int)) ([]models.NodeCorrelation, bool, error) {
	g, found, err := s.GetOrBuild(ctx, sbomID)
	if err != nil || !found {
		return nil, found, err
	}

	var nodes []normalize.GraphNode
	s.cache.read(func() {
		for n := range g.Nodes() {
			if len(n.Purls) > 0 {
				nodes = append(nodes, n)
			}
		}
	})

	results := make([]models.NodeCorrelation, 0, len(nodes))
	for i, n := range nodes {
		correlations, err := s.statusCorrelator.AnalyzePurls(ctx, n.Purls)
		if err != nil {
			return nil, true, errors.Wrapf(err, "could not analyze node %s", n.NodeID)
		}
		results = append(results, models.NodeCorrelation{Node: n, Correlations: correlations})
		if progress != nil {
			progress(i+1, len(nodes))
		}
	}
	return results, true, nil
}

// ListenForChanges evicts graphs whenever any instance announces a changed sbom.
func (s *AnalysisService) ListenForChanges(ctx context.Context, broker shared.PubSubBroker) error {
	messages, err := broker.Subscribe(shared.SbomChanged)
	if err != nil {
		return errors.Wrap(err, "could not subscribe to sbom changes")
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				monitoring.RecoverAndAlert("sbom change listener panicked", r)
			}
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case payload, ok := <-messages:
				if !ok {
					return
				}
				sbomID, _ := payload["sbomId"].(string)
				if sbomID == "" {
					slog.Warn("received sbom change without id", "payload", payload)
					continue
				}
				s.Evict(sbomID)
			}
		}
	}()
	return nil
}
