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

package normalize

import (
	"regexp"
	"strings"

	depsdev "deps.dev/util/semver"
	"github.com/Masterminds/semver/v3"
	npm "github.com/aquasecurity/go-npm-version/pkg"
	pep440 "github.com/aquasecurity/go-pep440-version"
	"github.com/google/osv-scalibr/semantic"
	lru "github.com/hashicorp/golang-lru/v2"
	apk "github.com/knqyf263/go-apk-version"
	deb "github.com/knqyf263/go-deb-version"
	rpm "github.com/knqyf263/go-rpm-version"
	"github.com/pkg/errors"
	gosemver "golang.org/x/mod/semver"
)

// VersionScheme names the comparison algorithm used for a version string.
// The set is closed: every scheme is handled by the switch in CompareStrict.
type VersionScheme string

const (
	SchemeGeneric   VersionScheme = "generic"
	SchemeSemver    VersionScheme = "semver"
	SchemeSwift     VersionScheme = "swift"
	SchemeNpm       VersionScheme = "npm"
	SchemePython    VersionScheme = "python"
	SchemeRpm       VersionScheme = "rpm"
	SchemeDeb       VersionScheme = "deb"
	SchemeApk       VersionScheme = "apk"
	SchemeGolang    VersionScheme = "golang"
	SchemeMaven     VersionScheme = "maven"
	SchemePub       VersionScheme = "pub"
	SchemePackagist VersionScheme = "packagist"
	SchemeNuget     VersionScheme = "nuget"
	SchemeGem       VersionScheme = "gem"
	SchemeHex       VersionScheme = "hex"
	SchemeCargo     VersionScheme = "cargo"
	SchemeGit       VersionScheme = "git"
)

var (
	ErrUnknownScheme    = errors.New("unknown version scheme")
	ErrMalformedVersion = errors.New("malformed version")
	ErrSchemeMismatch   = errors.New("version scheme mismatch")
)

// AllVersionSchemes lists every registered scheme in a stable order.
var AllVersionSchemes = []VersionScheme{
	SchemeGeneric, SchemeSemver, SchemeSwift, SchemeNpm, SchemePython,
	SchemeRpm, SchemeDeb, SchemeApk, SchemeGolang, SchemeMaven, SchemePub,
	SchemePackagist, SchemeNuget, SchemeGem, SchemeHex, SchemeCargo, SchemeGit,
}

var schemeAliases = map[string]VersionScheme{
	"pep440":    SchemePython,
	"pypi":      SchemePython,
	"redhat":    SchemeRpm,
	"debian":    SchemeDeb,
	"ubuntu":    SchemeDeb,
	"alpine":    SchemeApk,
	"go":        SchemeGolang,
	"dart":      SchemePub,
	"composer":  SchemePackagist,
	"rubygems":  SchemeGem,
	"crates.io": SchemeCargo,
	"crates":    SchemeCargo,
	"semantic":  SchemeSemver,
}

// ParseVersionScheme resolves a scheme name (case-insensitive, common aliases allowed).
// Unknown names resolve to SchemeGeneric together with ErrUnknownScheme so callers can
// decide whether the fallback is acceptable.
func ParseVersionScheme(name string) (VersionScheme, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return SchemeGeneric, nil
	}
	for _, s := range AllVersionSchemes {
		if string(s) == n {
			return s, nil
		}
	}
	if s, ok := schemeAliases[n]; ok {
		return s, nil
	}
	return SchemeGeneric, errors.Wrapf(ErrUnknownScheme, "%q", name)
}

func (s VersionScheme) IsValid() bool {
	for _, known := range AllVersionSchemes {
		if s == known {
			return true
		}
	}
	return false
}

func (s VersionScheme) orGeneric() VersionScheme {
	if s == "" || !s.IsValid() {
		return SchemeGeneric
	}
	return s
}

type compareKey struct {
	scheme VersionScheme
	a, b   string
}

// results of scheme specific comparisons. Parsing dominates the matcher cost and the
// same bounds are compared over and over during bulk correlation.
var compareCache = mustNewCompareCache(16384)

func mustNewCompareCache(size int) *lru.Cache[compareKey, int] {
	c, err := lru.New[compareKey, int](size)
	if err != nil {
		panic(err)
	}
	return c
}

// Compare returns -1, 0 or +1. It never fails: an unknown scheme is treated as generic and
// a version that does not parse under its scheme degrades to a byte-wise comparison of both
// inputs, which keeps the result deterministic and symmetric.
func Compare(scheme VersionScheme, a, b string) int {
	if a == b {
		return 0
	}
	scheme = scheme.orGeneric()
	key := compareKey{scheme: scheme, a: a, b: b}
	if r, ok := compareCache.Get(key); ok {
		return r
	}

	r, err := safeCompareStrict(scheme, a, b)
	if err != nil {
		r = strings.Compare(a, b)
	}
	compareCache.Add(key, r)
	return r
}

// some parsers panic on exotic input instead of returning an error
func safeCompareStrict(scheme VersionScheme, a, b string) (r int, err error) {
	defer func() {
		if p := recover(); p != nil {
			r, err = 0, errors.Wrapf(ErrMalformedVersion, "%s comparison of %q and %q panicked: %v", scheme, a, b, p)
		}
	}()
	return CompareStrict(scheme, a, b)
}

// CompareStrict is Compare without the fallback. It reports ErrUnknownScheme and
// ErrMalformedVersion instead of degrading.
func CompareStrict(scheme VersionScheme, a, b string) (int, error) {
	switch scheme {
	case SchemeGeneric:
		return strings.Compare(a, b), nil
	case SchemeSemver, SchemeSwift:
		return compareWith(scheme, a, b, semver.NewVersion, func(x, y *semver.Version) int { return x.Compare(y) })
	case SchemeNpm:
		return compareWith(scheme, a, b, npm.NewVersion, func(x, y npm.Version) int {
			return threeWay(x.Equal(y), x.LessThan(y))
		})
	case SchemePython:
		return compareWith(scheme, a, b, pep440.Parse, func(x, y pep440.Version) int {
			return threeWay(x.Equal(y), x.LessThan(y))
		})
	case SchemeRpm:
		return compareWith(scheme, a, b,
			func(v string) (rpm.Version, error) { return rpm.NewVersion(v), nil },
			func(x, y rpm.Version) int { return x.Compare(y) },
		)
	case SchemeDeb:
		return compareWith(scheme, a, b, deb.NewVersion, func(x, y deb.Version) int { return x.Compare(y) })
	case SchemeApk:
		return compareWith(scheme, a, b, apk.NewVersion, func(x, y apk.Version) int { return x.Compare(y) })
	case SchemeGolang:
		return compareWith(scheme, a, b, parseGoVersion, gosemver.Compare)
	case SchemeMaven, SchemePub, SchemePackagist, SchemeNuget, SchemeGem, SchemeHex:
		return compareSemantic(scheme, a, b)
	case SchemeCargo:
		return compareWith(scheme, a, b, depsdev.Cargo.Parse, func(x, y *depsdev.Version) int { return x.Compare(y) })
	case SchemeGit:
		return compareGitTags(a, b), nil
	}
	return 0, errors.Wrapf(ErrUnknownScheme, "%q", string(scheme))
}

// compareWith parses both sides with the scheme's parser before delegating to cmp.
func compareWith[V any](
	scheme VersionScheme,
	a, b string,
	parse func(string) (V, error),
	cmp func(x, y V) int,
) (int, error) {
	va, err := parse(a)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedVersion, "%s version %q: %s", scheme, a, err)
	}
	vb, err := parse(b)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedVersion, "%s version %q: %s", scheme, b, err)
	}
	return sign(cmp(va, vb)), nil
}

var semanticEcosystems = map[VersionScheme]string{
	SchemeMaven:     "Maven",
	SchemePub:       "Pub",
	SchemePackagist: "Packagist",
	SchemeNuget:     "NuGet",
	SchemeGem:       "RubyGems",
	SchemeHex:       "Hex",
}

func compareSemantic(scheme VersionScheme, a, b string) (int, error) {
	v, err := semantic.Parse(a, semanticEcosystems[scheme])
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedVersion, "%s version %q: %s", scheme, a, err)
	}
	r, err := v.CompareStr(b)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedVersion, "%s version %q: %s", scheme, b, err)
	}
	return sign(r), nil
}

func parseGoVersion(v string) (string, error) {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !gosemver.IsValid(v) {
		return "", errors.New("not a go module version")
	}
	return v, nil
}

var gitTagVersionRe = regexp.MustCompile(`v?(\d+(?:\.\d+){0,2}(?:-[0-9A-Za-z.-]+)?)`)

// compareGitTags extracts the first semver shaped token of each tag. Tags without one are
// opaque and compared byte-wise.
func compareGitTags(a, b string) int {
	ma := gitTagVersionRe.FindStringSubmatch(a)
	mb := gitTagVersionRe.FindStringSubmatch(b)
	if ma == nil || mb == nil {
		return strings.Compare(a, b)
	}
	va, errA := semver.NewVersion(ma[1])
	vb, errB := semver.NewVersion(mb[1])
	if errA != nil || errB != nil {
		return strings.Compare(a, b)
	}
	if r := va.Compare(vb); r != 0 {
		return r
	}
	// same embedded version, different tags ("v1.0" vs "release-1.0")
	return strings.Compare(a, b)
}

func threeWay(equal, less bool) int {
	switch {
	case equal:
		return 0
	case less:
		return -1
	}
	return 1
}

func sign(i int) int {
	switch {
	case i < 0:
		return -1
	case i > 0:
		return 1
	}
	return 0
}
