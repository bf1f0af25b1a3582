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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePackageIdentity(t *testing.T) {
	t.Run("maven purl", func(t *testing.T) {
		p, err := ParsePackageIdentity("pkg:maven/com.x/lib@1.5")
		assert.NoError(t, err)
		assert.Equal(t, "maven", p.Type)
		assert.Equal(t, "com.x", p.Namespace)
		assert.Equal(t, "lib", p.Name)
		assert.Equal(t, "1.5", p.Version)
		assert.Equal(t, "pkg:maven/com.x/lib", p.BasePurl())
		assert.Equal(t, SchemeMaven, p.Scheme())
	})

	t.Run("invalid purl", func(t *testing.T) {
		_, err := ParsePackageIdentity("this is definitely not a valid purl")
		assert.Error(t, err)
	})

	t.Run("percent encoded purl", func(t *testing.T) {
		p, err := ParsePackageIdentity("pkg:npm/%40ory/integrations@0.0.1")
		assert.NoError(t, err)
		assert.Equal(t, "@ory/integrations", p.DisplayName())
	})
}

func TestPackageIdentityIDs(t *testing.T) {
	a, _ := ParsePackageIdentity("pkg:deb/debian/git@2.47.3?arch=amd64&epoch=1")
	b, _ := ParsePackageIdentity("pkg:deb/debian/git@2.47.3?epoch=1&arch=amd64")
	c, _ := ParsePackageIdentity("pkg:deb/debian/git@2.48.0")

	t.Run("qualifier order does not change the identity", func(t *testing.T) {
		assert.Equal(t, a.QualifiedID(), b.QualifiedID())
	})

	t.Run("base id ignores version and qualifiers", func(t *testing.T) {
		assert.Equal(t, a.BaseID(), c.BaseID())
		assert.True(t, a.MatchesBase(c))
		assert.NotEqual(t, a.VersionedID(), c.VersionedID())
	})

	t.Run("epoch qualifier becomes part of the candidate version", func(t *testing.T) {
		assert.Equal(t, NewVersion(SchemeDeb, "1:2.47.3"), a.CandidateVersion())
		assert.Equal(t, NewVersion(SchemeDeb, "2.48.0"), c.CandidateVersion())
	})
}

func TestSchemeForPurlType(t *testing.T) {
	assert.Equal(t, SchemePython, SchemeForPurlType("pypi"))
	assert.Equal(t, SchemePackagist, SchemeForPurlType("composer"))
	assert.Equal(t, SchemeGit, SchemeForPurlType("github"))
	assert.Equal(t, SchemeGeneric, SchemeForPurlType("oci"))
}
