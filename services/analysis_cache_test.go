package services

import (
	"fmt"
	"testing"

	"github.com/l3montree-dev/vulncorrelator/normalize"
	"github.com/l3montree-dev/vulncorrelator/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalysisCache(t *testing.T) {
	t.Run("a build started before an eviction does not land in the new entry", func(t *testing.T) {
		c := newAnalysisCache()
		stale, fresh := new(normalize.SbomGraph), new(normalize.SbomGraph)

		before := c.beginBuild("sbom-1")
		c.evict("sbom-1")
		after := c.beginBuild("sbom-1")
		assert.NotEqual(t, before, after)

		c.finishBuild("sbom-1", before, stale)
		assert.Equal(t, shared.CacheBuilding, c.status("sbom-1"))

		c.failBuild("sbom-1", before)
		assert.Equal(t, shared.CacheBuilding, c.status("sbom-1"))

		c.finishBuild("sbom-1", after, fresh)
		g, ok := c.get("sbom-1")
		require.True(t, ok)
		assert.Same(t, fresh, g)
	})

	t.Run("evicted and cleared ids leave nothing behind", func(t *testing.T) {
		c := newAnalysisCache()
		for i := range 1000 {
			id := fmt.Sprintf("sbom-%d", i)
			c.finishBuild(id, c.beginBuild(id), new(normalize.SbomGraph))
			c.evict(id)
		}
		assert.Empty(t, c.entries)

		for i := range 10 {
			id := fmt.Sprintf("sbom-%d", i)
			c.finishBuild(id, c.beginBuild(id), new(normalize.SbomGraph))
		}
		c.clear()
		assert.Empty(t, c.entries)
		assert.Equal(t, shared.CacheAbsent, c.status("sbom-1"))
	})

	t.Run("a failed build returns the entry to absent", func(t *testing.T) {
		c := newAnalysisCache()
		epoch := c.beginBuild("sbom-1")
		c.failBuild("sbom-1", epoch)
		assert.Equal(t, shared.CacheAbsent, c.status("sbom-1"))
		assert.Empty(t, c.entries)
	})
}
