//go:build integration

package repositories_test

import (
	"context"
	"testing"

	"github.com/l3montree-dev/vulncorrelator/database/models"
	"github.com/l3montree-dev/vulncorrelator/database/repositories"
	"github.com/l3montree-dev/vulncorrelator/integrationtestutil"
	"github.com/l3montree-dev/vulncorrelator/normalize"
	"github.com/openvex/go-vex/pkg/vex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoriesAgainstPostgres(t *testing.T) {
	db, _, terminate := integrationtestutil.InitDatabaseContainer()
	defer terminate()
	ctx := context.Background()

	advisories := repositories.NewAdvisoryRepository(db)
	assertions := repositories.NewStatusAssertionRepository(db)
	vulns := repositories.NewVulnerabilityRepository(db)
	sboms := repositories.NewSbomRepository(db)

	log4j, err := normalize.ParsePackageIdentity("pkg:maven/org.apache.logging.log4j/log4j-core")
	require.NoError(t, err)

	affected := normalize.VersionRange{
		Scheme: normalize.SchemeMaven,
		Low:    &normalize.Bound{Version: "2.0-beta9", Inclusive: true},
		High:   &normalize.Bound{Version: "2.15.0"},
	}

	t.Run("advisory with assertions is stored in one transaction", func(t *testing.T) {
		err := advisories.SaveWithAssertions(ctx,
			models.Advisory{ID: "GHSA-jfh8-c2jp-5v3q", Source: "ghsa"},
			[]models.Vulnerability{{ID: "CVE-2021-44228", Title: "Log4Shell"}},
			[]models.StatusAssertion{
				models.NewPackageAssertion("", "CVE-2021-44228", vex.StatusAffected, log4j, affected),
			},
		)
		require.NoError(t, err)

		found, err := assertions.FindByBasePurl(ctx, log4j.BasePurl())
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "[2.0-beta9, 2.15.0)", found[0].Range().String())

		stored, err := vulns.FindByIDs(ctx, []string{"CVE-2021-44228"})
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, "Log4Shell", stored[0].Title)
	})

	t.Run("deleting the advisory removes its assertions", func(t *testing.T) {
		deleted, err := advisories.DeleteCascade(ctx, "GHSA-jfh8-c2jp-5v3q")
		require.NoError(t, err)
		assert.True(t, deleted)

		left, err := assertions.FindByBasePurl(ctx, log4j.BasePurl())
		require.NoError(t, err)
		assert.Empty(t, left)
	})

	t.Run("sbom graph round trip", func(t *testing.T) {
		nodes := []normalize.GraphNode{
			{NodeID: "SPDXRef-DOCUMENT", Name: "doc"},
			{NodeID: "app", Name: "app", Version: "1.0.0"},
			{NodeID: "log4j", Name: "log4j-core", Version: "2.14.1", Purls: []normalize.PackageIdentity{log4j}},
		}
		edges := []normalize.GraphEdge{
			{Left: "SPDXRef-DOCUMENT", Relationship: normalize.RelDescribes, Right: "app"},
			{Left: "app", Relationship: normalize.RelDependsOn, Right: "log4j"},
		}
		sbom := models.Sbom{ID: "sbom-pg", DocumentRef: "https://example.com/sbom-pg", Name: "app"}
		require.NoError(t, sboms.SaveGraph(ctx, models.NewSbomGraphRecords(sbom, nodes, edges, nil)))

		records, found, err := sboms.LoadGraphRecords(ctx, "sbom-pg")
		require.NoError(t, err)
		require.True(t, found)
		g := records.Graph()
		assert.Equal(t, 3, g.NodeCount())

		descendants, _ := g.Descendants("app", -1)
		require.Len(t, descendants, 1)
		assert.Equal(t, "log4j", descendants[0].NodeID)

		deleted, err := sboms.Delete(ctx, "sbom-pg")
		require.NoError(t, err)
		assert.True(t, deleted)
	})
}
