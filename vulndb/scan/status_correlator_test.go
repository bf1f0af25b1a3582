package scan

import (
	"context"
	"errors"
	"testing"

	"github.com/l3montree-dev/vulncorrelator/database/models"
	"github.com/l3montree-dev/vulncorrelator/mocks"
	"github.com/l3montree-dev/vulncorrelator/normalize"
	"github.com/openvex/go-vex/pkg/vex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func mustPurl(t *testing.T, s string) normalize.PackageIdentity {
	t.Helper()
	p, err := normalize.ParsePackageIdentity(s)
	require.NoError(t, err)
	return p
}

func mustCpe(t *testing.T, s string) normalize.PlatformIdentity {
	t.Helper()
	p, err := normalize.ParsePlatformIdentity(s)
	require.NoError(t, err)
	return p
}

func mavenAssertion(t *testing.T, advisory, vuln string, status vex.Status, low, high string) models.StatusAssertion {
	a := models.NewPackageAssertion(advisory, vuln, status, mustPurl(t, "pkg:maven/com.x/lib"), normalize.VersionRange{
		Scheme: normalize.SchemeMaven,
		Low:    &normalize.Bound{Version: low, Inclusive: true},
		High:   &normalize.Bound{Version: high},
	})
	a.ID = a.CalculateID()
	return a
}

func TestCorrelate(t *testing.T) {
	ctx := context.Background()

	t.Run("maven range includes the low bound and excludes the high bound", func(t *testing.T) {
		repo := mocks.NewStatusAssertionRepository(t)
		repo.On("FindByBasePurl", mock.Anything, "pkg:maven/com.x/lib").Return([]models.StatusAssertion{
			mavenAssertion(t, "GHSA-1", "CVE-1", vex.StatusAffected, "1.0", "2.0"),
		}, nil)
		correlator := NewStatusCorrelator(repo)

		found, err := correlator.Correlate(ctx, mustPurl(t, "pkg:maven/com.x/lib@1.5"))
		require.NoError(t, err)
		require.Len(t, found["CVE-1"], 1)
		assert.Equal(t, vex.StatusAffected, found["CVE-1"][0].Status)

		found, err = correlator.Correlate(ctx, mustPurl(t, "pkg:maven/com.x/lib@2.0"))
		require.NoError(t, err)
		assert.Empty(t, found)

		found, err = correlator.Correlate(ctx, mustPurl(t, "pkg:maven/com.x/lib@1.0"))
		require.NoError(t, err)
		assert.Len(t, found, 1)
	})

	t.Run("conflicting statuses of different advisories are all returned", func(t *testing.T) {
		repo := mocks.NewStatusAssertionRepository(t)
		repo.On("FindByBasePurl", mock.Anything, "pkg:maven/com.x/lib").Return([]models.StatusAssertion{
			mavenAssertion(t, "GHSA-1", "CVE-1", vex.StatusAffected, "1.0", "2.0"),
			mavenAssertion(t, "OSV-1", "CVE-1", vex.StatusNotAffected, "1.4", "1.6"),
			mavenAssertion(t, "OSV-1", "CVE-2", vex.StatusAffected, "0.1", "0.2"),
		}, nil)

		found, err := NewStatusCorrelator(repo).Correlate(ctx, mustPurl(t, "pkg:maven/com.x/lib@1.5"))
		require.NoError(t, err)
		assert.Len(t, found, 1)
		assert.Len(t, found["CVE-1"], 2)
	})

	t.Run("identities without version never match", func(t *testing.T) {
		repo := mocks.NewStatusAssertionRepository(t)
		found, err := NewStatusCorrelator(repo).Correlate(ctx, mustPurl(t, "pkg:maven/com.x/lib"))
		require.NoError(t, err)
		assert.NotNil(t, found)
		assert.Empty(t, found)
		repo.AssertNotCalled(t, "FindByBasePurl", mock.Anything, mock.Anything)
	})

	t.Run("assertions with an unknown scheme are skipped", func(t *testing.T) {
		broken := mavenAssertion(t, "GHSA-1", "CVE-1", vex.StatusAffected, "1.0", "2.0")
		broken.Scheme = "cobol"
		repo := mocks.NewStatusAssertionRepository(t)
		repo.On("FindByBasePurl", mock.Anything, "pkg:maven/com.x/lib").Return([]models.StatusAssertion{
			broken,
			mavenAssertion(t, "GHSA-2", "CVE-2", vex.StatusAffected, "1.0", "2.0"),
		}, nil)

		found, err := NewStatusCorrelator(repo).Correlate(ctx, mustPurl(t, "pkg:maven/com.x/lib@1.5"))
		require.NoError(t, err)
		assert.Len(t, found, 1)
		assert.Contains(t, found, "CVE-2")
	})

	t.Run("repository errors are returned", func(t *testing.T) {
		repo := mocks.NewStatusAssertionRepository(t)
		repo.On("FindByBasePurl", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))
		_, err := NewStatusCorrelator(repo).Correlate(ctx, mustPurl(t, "pkg:maven/com.x/lib@1.5"))
		assert.Error(t, err)
	})
}

func TestCorrelatePlatform(t *testing.T) {
	ctx := context.Background()
	stored := models.NewPlatformAssertion("NVD-1", "CVE-9", vex.StatusAffected,
		mustCpe(t, "cpe:2.3:a:apache:http_server:*:*:*:*:*:*:*:*"),
		normalize.VersionRange{Scheme: normalize.SchemeSemver, High: &normalize.Bound{Version: "2.4.50"}},
	)
	otherUpdate := models.NewPlatformAssertion("NVD-2", "CVE-10", vex.StatusAffected,
		mustCpe(t, "cpe:2.3:a:apache:http_server:*:beta:*:*:*:*:*:*"),
		normalize.AnyVersion(normalize.SchemeGeneric),
	)

	repo := mocks.NewStatusAssertionRepository(t)
	repo.On("FindByPlatform", mock.Anything, mock.MatchedBy(func(cpe normalize.PlatformIdentity) bool {
		return cpe.VendorKey() == "apache" && cpe.ProductKey() == "http_server"
	})).Return([]models.StatusAssertion{stored, otherUpdate}, nil)
	correlator := NewStatusCorrelator(repo)

	t.Run("version inside the range", func(t *testing.T) {
		found, err := correlator.CorrelatePlatform(ctx, mustCpe(t, "cpe:2.3:a:Apache:HTTP_Server:2.4.49:-:*:*:*:*:*:*"))
		require.NoError(t, err)
		assert.Len(t, found, 1)
		assert.Contains(t, found, "CVE-9")
	})

	t.Run("version outside the range", func(t *testing.T) {
		found, err := correlator.CorrelatePlatform(ctx, mustCpe(t, "cpe:2.3:a:apache:http_server:2.4.50:-:*:*:*:*:*:*"))
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("wildcard version never matches", func(t *testing.T) {
		found, err := correlator.CorrelatePlatform(ctx, mustCpe(t, "cpe:2.3:a:apache:http_server:*:*:*:*:*:*:*:*"))
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

func TestAnalyzePurls(t *testing.T) {
	repo := mocks.NewStatusAssertionRepository(t)
	repo.On("FindByBasePurl", mock.Anything, "pkg:maven/com.x/lib").Return([]models.StatusAssertion{
		mavenAssertion(t, "GHSA-1", "CVE-1", vex.StatusAffected, "1.0", "2.0"),
	}, nil)
	repo.On("FindByBasePurl", mock.Anything, "pkg:npm/left-pad").Return([]models.StatusAssertion{}, nil)

	identities := []normalize.PackageIdentity{
		mustPurl(t, "pkg:maven/com.x/lib@1.5"),
		mustPurl(t, "pkg:npm/left-pad@1.3.0"),
		mustPurl(t, "pkg:maven/com.x/lib@3.0"),
	}
	results, err := NewStatusCorrelator(repo).AnalyzePurls(context.Background(), identities)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, identities[i].String(), r.Identity.String())
	}
	assert.Len(t, results[0].Matches, 1)
	assert.Empty(t, results[1].Matches)
	assert.Empty(t, results[2].Matches)
}

func TestBuildOpenVeX(t *testing.T) {
	affected := mavenAssertion(t, "GHSA-1", "CVE-1", vex.StatusAffected, "1.0", "2.0")
	notAffected := mavenAssertion(t, "OSV-1", "CVE-1", vex.StatusNotAffected, "1.4", "1.6")

	doc := BuildOpenVeX("vulncorrelator", []models.Correlation{{
		Identity: mustPurl(t, "pkg:maven/com.x/lib@1.5"),
		Matches:  map[string][]models.StatusAssertion{"CVE-1": {affected, notAffected}},
	}})

	require.Len(t, doc.Statements, 2)
	assert.Equal(t, "vulncorrelator", doc.Author)
	assert.Equal(t, vex.StatusAffected, doc.Statements[0].Status)
	assert.NotEmpty(t, doc.Statements[0].ActionStatement)
	assert.Equal(t, vex.VulnerableCodeNotPresent, doc.Statements[1].Justification)
	assert.Equal(t, "pkg:maven/com.x/lib@1.5", doc.Statements[0].Products[0].Component.ID)
	assert.NotEmpty(t, doc.ID)
}
