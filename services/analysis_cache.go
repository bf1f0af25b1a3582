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
	"slices"
	"sync"

	"github.com/l3montree-dev/vulncorrelator/monitoring"
	"github.com/l3montree-dev/vulncorrelator/normalize"
	"github.com/l3montree-dev/vulncorrelator/shared"
)

type cacheEntry struct {
	state    shared.CacheState
	graph    *normalize.SbomGraph
	builders int

	// builds only land in the entry they were started on
	epoch uint64
}

// analysisCache owns one graph per sbom id. Graphs are immutable once stored, readers
// share them under the read lock. Builds happen outside the lock.
type analysisCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry

	// every new entry takes the next epoch, so a build started before an eviction
	// never matches the entry created after it
	lastEpoch uint64
}

func newAnalysisCache() *analysisCache {
	return &analysisCache{
		entries: make(map[string]*cacheEntry),
	}
}

func (c *analysisCache) get(sbomID string) (*normalize.SbomGraph, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[sbomID]
	if !ok || e.state != shared.CacheCached {
		return nil, false
	}
	return e.graph, true
}

// beginBuild marks the entry as building unless a graph is already cached and
// returns the epoch the build belongs to.
func (c *analysisCache) beginBuild(sbomID string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[sbomID]
	if !ok {
		c.lastEpoch++
		e = &cacheEntry{state: shared.CacheAbsent, epoch: c.lastEpoch}
		c.entries[sbomID] = e
	}
	if e.state != shared.CacheCached {
		e.state = shared.CacheBuilding
	}
	e.builders++
	return e.epoch
}

// finishBuild stores g. Concurrent builds overwrite each other, the last one wins.
func (c *analysisCache) finishBuild(sbomID string, epoch uint64, g *normalize.SbomGraph) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[sbomID]
	if !ok || e.epoch != epoch {
		return
	}
	e.builders--
	e.state = shared.CacheCached
	e.graph = g
	c.reportSize()
}

// failBuild returns the entry to absent once no other build is in flight.
func (c *analysisCache) failBuild(sbomID string, epoch uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[sbomID]
	if !ok || e.epoch != epoch {
		return
	}
	e.builders--
	if e.builders <= 0 && e.state == shared.CacheBuilding {
		delete(c.entries, sbomID)
	}
}

func (c *analysisCache) evict(sbomID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, sbomID)
	c.reportSize()
}

func (c *analysisCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
	c.reportSize()
}

func (c *analysisCache) status(sbomID string) shared.CacheState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[sbomID]
	if !ok {
		return shared.CacheAbsent
	}
	return e.state
}

// read runs fn while holding the read lock. fn must not call back into the cache.
func (c *analysisCache) read(fn func()) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fn()
}

// cached calls fn for every cached graph in sbom id order under the read lock.
func (c *analysisCache) cached(fn func(sbomID string, g *normalize.SbomGraph)) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]string, 0, len(c.entries))
	for id, e := range c.entries {
		if e.state == shared.CacheCached {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	for _, id := range ids {
		fn(id, c.entries[id].graph)
	}
}

// must be called with the write lock held
func (c *analysisCache) reportSize() {
	n := 0
	for _, e := range c.entries {
		if e.state == shared.CacheCached {
			n++
		}
	}
	monitoring.AnalysisCacheSize.Set(float64(n))
}
