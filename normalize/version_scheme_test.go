package normalize_test

import (
	"testing"

	"github.com/l3montree-dev/vulncorrelator/normalize"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestParseVersionScheme(t *testing.T) {
	t.Run("known names and aliases", func(t *testing.T) {
		cases := map[string]normalize.VersionScheme{
			"maven":     normalize.SchemeMaven,
			"Maven":     normalize.SchemeMaven,
			"pypi":      normalize.SchemePython,
			"pep440":    normalize.SchemePython,
			"crates.io": normalize.SchemeCargo,
			"go":        normalize.SchemeGolang,
			"dart":      normalize.SchemePub,
			"":          normalize.SchemeGeneric,
		}
		for in, expected := range cases {
			s, err := normalize.ParseVersionScheme(in)
			assert.NoError(t, err, in)
			assert.Equal(t, expected, s, in)
		}
	})

	t.Run("unknown scheme falls back to generic and reports it", func(t *testing.T) {
		s, err := normalize.ParseVersionScheme("cobol")
		assert.True(t, errors.Is(err, normalize.ErrUnknownScheme))
		assert.Equal(t, normalize.SchemeGeneric, s)
	})
}

func TestCompare(t *testing.T) {
	t.Run("maven trailing zeros are insignificant", func(t *testing.T) {
		assert.Equal(t, 0, normalize.Compare(normalize.SchemeMaven, "1.8", "1.8.0"))
		assert.Equal(t, 0, normalize.Compare(normalize.SchemeMaven, "1.8.0", "1.8"))
	})

	t.Run("maven qualifiers have their own order", func(t *testing.T) {
		assert.Equal(t, -1, normalize.Compare(normalize.SchemeMaven, "1.0-alpha1", "1.0-beta1"))
		assert.Equal(t, -1, normalize.Compare(normalize.SchemeMaven, "1.0-rc1", "1.0"))
		assert.Equal(t, -1, normalize.Compare(normalize.SchemeMaven, "1.0", "1.0-sp1"))
		assert.Equal(t, 1, normalize.Compare(normalize.SchemeMaven, "1.10", "1.9"))
	})

	t.Run("rpm ordering", func(t *testing.T) {
		assert.Equal(t, 1, normalize.Compare(normalize.SchemeRpm, "1.0.1", "1.0.0"))
		assert.Equal(t, -1, normalize.Compare(normalize.SchemeRpm, "1.0~rc1", "1.0"))
		assert.Equal(t, 1, normalize.Compare(normalize.SchemeRpm, "1:1.0", "2.0"))
	})

	t.Run("semver pre-releases sort before releases", func(t *testing.T) {
		assert.Equal(t, -1, normalize.Compare(normalize.SchemeSemver, "1.0.0-alpha", "1.0.0"))
		assert.Equal(t, -1, normalize.Compare(normalize.SchemeSemver, "1.0.0-alpha.1", "1.0.0-alpha.beta"))
		assert.Equal(t, 1, normalize.Compare(normalize.SchemeSemver, "1.10.0", "1.9.0"))
	})

	t.Run("npm", func(t *testing.T) {
		assert.Equal(t, -1, normalize.Compare(normalize.SchemeNpm, "1.2.3", "1.10.0"))
		assert.Equal(t, 1, normalize.Compare(normalize.SchemeNpm, "2.0.0", "2.0.0-beta.1"))
	})

	t.Run("python", func(t *testing.T) {
		assert.Equal(t, -1, normalize.Compare(normalize.SchemePython, "1.0rc1", "1.0"))
		assert.Equal(t, 1, normalize.Compare(normalize.SchemePython, "1.0.post1", "1.0"))
	})

	t.Run("deb and apk", func(t *testing.T) {
		assert.Equal(t, 1, normalize.Compare(normalize.SchemeDeb, "1:1.0", "2.0"))
		assert.Equal(t, -1, normalize.Compare(normalize.SchemeApk, "1.2.3-r1", "1.2.3-r2"))
	})

	t.Run("golang accepts versions with and without the v prefix", func(t *testing.T) {
		assert.Equal(t, 0, normalize.Compare(normalize.SchemeGolang, "v1.2.3", "1.2.3"))
		assert.Equal(t, -1, normalize.Compare(normalize.SchemeGolang, "v1.2.3", "v1.10.0"))
	})

	t.Run("cargo", func(t *testing.T) {
		assert.Equal(t, -1, normalize.Compare(normalize.SchemeCargo, "1.0.0", "1.0.1"))
	})

	t.Run("git tags with embedded versions compare numerically", func(t *testing.T) {
		assert.Equal(t, -1, normalize.Compare(normalize.SchemeGit, "v1.2.0", "release-1.10.0"))
	})

	t.Run("opaque git tags compare byte-wise", func(t *testing.T) {
		assert.Equal(t, 1, normalize.Compare(normalize.SchemeGit, "main", "develop"))
	})

	t.Run("malformed versions degrade to a byte-wise comparison", func(t *testing.T) {
		assert.Equal(t, 1, normalize.Compare(normalize.SchemeSemver, "not-a-version", "1.0.0"))
		assert.Equal(t, -1, normalize.Compare(normalize.SchemeSemver, "1.0.0", "not-a-version"))

		_, err := normalize.CompareStrict(normalize.SchemeSemver, "not-a-version", "1.0.0")
		assert.True(t, errors.Is(err, normalize.ErrMalformedVersion))
	})

	t.Run("unknown schemes compare generically", func(t *testing.T) {
		assert.Equal(t, 1, normalize.Compare(normalize.VersionScheme("cobol"), "b", "a"))

		_, err := normalize.CompareStrict(normalize.VersionScheme("cobol"), "b", "a")
		assert.True(t, errors.Is(err, normalize.ErrUnknownScheme))
	})
}

func TestCompareSymmetry(t *testing.T) {
	versions := []string{"1.0", "1.0.0", "1.8", "1.8.0", "2.0.0-rc1", "v2.0.0", "1.0~rc1", "garbage", "", "1:1.0"}
	for _, scheme := range normalize.AllVersionSchemes {
		for _, a := range versions {
			for _, b := range versions {
				if normalize.Compare(scheme, a, b) == 0 {
					assert.Equal(t, 0, normalize.Compare(scheme, b, a), "scheme=%s a=%q b=%q", scheme, a, b)
				}
			}
		}
	}
}
