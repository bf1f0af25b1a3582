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
	"maps"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/package-url/packageurl-go"
	"github.com/pkg/errors"
)

// identityNamespace seeds every content derived identifier (uuid v5).
var identityNamespace = uuid.MustParse("0d0c8d3e-5f1b-4bd6-9a51-2f7a3a8f6c11")

// ContentID derives a stable id from the given parts.
func ContentID(parts ...string) uuid.UUID {
	return uuid.NewSHA1(identityNamespace, []byte(strings.Join(parts, "\x00")))
}

// PackageIdentity is the purl shaped identity of a package.
// The version is optional: without it the identity addresses every version ("base" identity).
type PackageIdentity struct {
	Type       string            `json:"type"`
	Namespace  string            `json:"namespace,omitempty"`
	Name       string            `json:"name"`
	Version    string            `json:"version,omitempty"`
	Qualifiers map[string]string `json:"qualifiers,omitempty"`
	Subpath    string            `json:"subpath,omitempty"`
}

func ParsePackageIdentity(purl string) (PackageIdentity, error) {
	p, err := packageurl.FromString(strings.TrimSpace(purl))
	if err != nil {
		// some producers emit percent encoded purls
		unescaped, unescapeErr := url.PathUnescape(purl)
		if unescapeErr != nil || unescaped == purl {
			return PackageIdentity{}, errors.Wrapf(err, "invalid purl %q", purl)
		}
		p, err = packageurl.FromString(unescaped)
		if err != nil {
			return PackageIdentity{}, errors.Wrapf(err, "invalid purl %q", purl)
		}
	}
	return PackageIdentityFromPurl(p), nil
}

func PackageIdentityFromPurl(p packageurl.PackageURL) PackageIdentity {
	var qualifiers map[string]string
	if len(p.Qualifiers) > 0 {
		qualifiers = p.Qualifiers.Map()
	}
	return PackageIdentity{
		Type:       strings.ToLower(p.Type),
		Namespace:  p.Namespace,
		Name:       p.Name,
		Version:    p.Version,
		Qualifiers: qualifiers,
		Subpath:    p.Subpath,
	}
}

func (p PackageIdentity) ToPurl() packageurl.PackageURL {
	return *packageurl.NewPackageURL(
		p.Type,
		p.Namespace,
		p.Name,
		p.Version,
		packageurl.QualifiersFromMap(p.Qualifiers),
		p.Subpath,
	)
}

func (p PackageIdentity) String() string {
	return p.ToPurl().ToString()
}

// BasePurl is the identity without version, qualifiers and subpath.
// It is the lookup key for stored status assertions.
func (p PackageIdentity) BasePurl() string {
	return packageurl.NewPackageURL(p.Type, p.Namespace, p.Name, "", nil, "").ToString()
}

func (p PackageIdentity) VersionedPurl() string {
	return packageurl.NewPackageURL(p.Type, p.Namespace, p.Name, p.Version, nil, "").ToString()
}

func (p PackageIdentity) Base() PackageIdentity {
	return PackageIdentity{Type: p.Type, Namespace: p.Namespace, Name: p.Name}
}

func (p PackageIdentity) WithVersion(version string) PackageIdentity {
	c := p
	c.Version = version
	c.Qualifiers = maps.Clone(p.Qualifiers)
	return c
}

func (p PackageIdentity) HasVersion() bool {
	return p.Version != ""
}

// MatchesBase compares type, namespace and name. Version and qualifiers are ignored.
func (p PackageIdentity) MatchesBase(other PackageIdentity) bool {
	return p.Type == other.Type && p.Namespace == other.Namespace && p.Name == other.Name
}

func (p PackageIdentity) BaseID() uuid.UUID {
	return uuid.NewSHA1(identityNamespace, []byte(p.BasePurl()))
}

func (p PackageIdentity) VersionedID() uuid.UUID {
	return uuid.NewSHA1(identityNamespace, []byte(p.VersionedPurl()))
}

// QualifiedID covers the whole identity including qualifiers, which ToString sorts.
func (p PackageIdentity) QualifiedID() uuid.UUID {
	return uuid.NewSHA1(identityNamespace, []byte(p.String()))
}

// DisplayName renders namespace/name without the purl noise.
func (p PackageIdentity) DisplayName() string {
	if p.Namespace == "" {
		return p.Name
	}
	return p.Namespace + "/" + p.Name
}

func (p PackageIdentity) Scheme() VersionScheme {
	return SchemeForPurlType(p.Type)
}

// CandidateVersion returns the version to test against stored ranges.
// Debian and rpm purls carry the epoch as a qualifier, the comparators expect it inline.
func (p PackageIdentity) CandidateVersion() Version {
	v := p.Version
	if p.Type == "deb" || p.Type == "rpm" {
		if epoch := p.Qualifiers["epoch"]; epoch != "" && !strings.Contains(v, ":") {
			v = epoch + ":" + v
		}
	}
	return NewVersion(p.Scheme(), v)
}

var purlTypeSchemes = map[string]VersionScheme{
	"maven":     SchemeMaven,
	"npm":       SchemeNpm,
	"pypi":      SchemePython,
	"gem":       SchemeGem,
	"cargo":     SchemeCargo,
	"golang":    SchemeGolang,
	"nuget":     SchemeNuget,
	"composer":  SchemePackagist,
	"pub":       SchemePub,
	"hex":       SchemeHex,
	"swift":     SchemeSwift,
	"rpm":       SchemeRpm,
	"deb":       SchemeDeb,
	"apk":       SchemeApk,
	"github":    SchemeGit,
	"bitbucket": SchemeGit,
	"generic":   SchemeGeneric,
}

// SchemeForPurlType maps a purl type to the scheme ordering its versions.
func SchemeForPurlType(purlType string) VersionScheme {
	if s, ok := purlTypeSchemes[strings.ToLower(purlType)]; ok {
		return s
	}
	return SchemeGeneric
}

// PURLEcosystems maps osv ecosystem names to purl types.
var PURLEcosystems = map[string]string{
	"Alpine":    "apk",
	"crates.io": "cargo",
	"Debian":    "deb",
	"Go":        "golang",
	"Hex":       "hex",
	"Maven":     "maven",
	"npm":       "npm",
	"NuGet":     "nuget",
	"Packagist": "composer",
	"Pub":       "pub",
	"PyPI":      "pypi",
	"Red Hat":   "rpm",
	"RubyGems":  "gem",
	"SwiftURL":  "swift",
}
