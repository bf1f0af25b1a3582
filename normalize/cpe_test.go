package normalize_test

import (
	"testing"

	"github.com/l3montree-dev/vulncorrelator/normalize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlatformIdentity(t *testing.T) {
	t.Run("formatted string", func(t *testing.T) {
		p, err := normalize.ParsePlatformIdentity("cpe:2.3:a:apache:http_server:2.4.1:*:*:*:*:*:*:-")
		require.NoError(t, err)
		assert.Equal(t, normalize.CpeAttr("a"), p.Part)
		assert.Equal(t, normalize.CpeAttr("apache"), p.Vendor)
		assert.Equal(t, normalize.CpeAttr("http_server"), p.Product)
		assert.Equal(t, normalize.CpeAttr("2.4.1"), p.Version)
		assert.True(t, p.Update.IsAny())
		assert.Equal(t, normalize.CpeNotApplicable, p.Other.Kind)
		assert.Equal(t, "cpe:2.3:a:apache:http_server:2.4.1:*:*:*:*:*:*:-", p.String())
	})

	t.Run("escaped colon stays inside the value", func(t *testing.T) {
		p, err := normalize.ParsePlatformIdentity(`cpe:2.3:a:vendor:prod\:uct:1.0:*:*:*:*:*:*:*`)
		require.NoError(t, err)
		assert.Equal(t, "prod:uct", p.Product.Value)
		assert.Equal(t, `cpe:2.3:a:vendor:prod\:uct:1.0:*:*:*:*:*:*:*`, p.String())
	})

	t.Run("escaped asterisk is a literal value", func(t *testing.T) {
		p, err := normalize.ParsePlatformIdentity(`cpe:2.3:a:vendor:\*:1.0:*:*:*:*:*:*:*`)
		require.NoError(t, err)
		assert.Equal(t, normalize.CpeValue, p.Product.Kind)
		assert.Equal(t, "*", p.Product.Value)
		assert.False(t, p.Product.IsAny())
		assert.Equal(t, `cpe:2.3:a:vendor:\*:1.0:*:*:*:*:*:*:*`, p.String())
		assert.Equal(t, `\*`, p.ProductKey())

		other, err := normalize.ParsePlatformIdentity("cpe:2.3:a:vendor:other:1.0:*:*:*:*:*:*:*")
		require.NoError(t, err)
		assert.False(t, p.Matches(other))
	})

	t.Run("escaped dash is a literal value", func(t *testing.T) {
		p, err := normalize.ParsePlatformIdentity(`cpe:2.3:a:vendor:prod:\-:*:*:*:*:*:*:*`)
		require.NoError(t, err)
		assert.Equal(t, normalize.CpeValue, p.Version.Kind)
		assert.Equal(t, "-", p.Version.Value)
	})

	t.Run("percent encoded asterisk in a uri is a literal value", func(t *testing.T) {
		p, err := normalize.ParsePlatformIdentity("cpe:/a:vendor:%2a:1.0")
		require.NoError(t, err)
		assert.Equal(t, normalize.CpeValue, p.Product.Kind)
		assert.Equal(t, "*", p.Product.Value)
	})

	t.Run("uri binding", func(t *testing.T) {
		p, err := normalize.ParsePlatformIdentity("cpe:/o:redhat:enterprise_linux:8")
		require.NoError(t, err)
		assert.Equal(t, "o", p.Part.Value)
		assert.Equal(t, "enterprise_linux", p.Product.Value)
		assert.Equal(t, "8", p.Version.Value)
		assert.True(t, p.Language.IsAny())
	})

	t.Run("uri binding with packed edition", func(t *testing.T) {
		p, err := normalize.ParsePlatformIdentity("cpe:/a:vendor:product:1.0::~~pro~linux~x64~")
		require.NoError(t, err)
		assert.True(t, p.Edition.IsAny())
		assert.Equal(t, "pro", p.SwEdition.Value)
		assert.Equal(t, "linux", p.TargetSw.Value)
		assert.Equal(t, "x64", p.TargetHw.Value)
	})

	t.Run("invalid input", func(t *testing.T) {
		for _, in := range []string{"", "pkg:npm/foo", "cpe:2.3:a:too:few", "cpe:2.3:x:vendor:product:*:*:*:*:*:*:*:*"} {
			_, err := normalize.ParsePlatformIdentity(in)
			assert.Error(t, err, in)
		}
	})
}

func TestPlatformIdentityMatches(t *testing.T) {
	concrete, _ := normalize.ParsePlatformIdentity("cpe:2.3:a:Apache:HTTP_Server:2.4.1:-:*:*:*:*:*:*")
	wildcard, _ := normalize.ParsePlatformIdentity("cpe:2.3:a:apache:http_server:*:*:*:*:*:*:*:*")
	otherProduct, _ := normalize.ParsePlatformIdentity("cpe:2.3:a:apache:tomcat:*:*:*:*:*:*:*:*")
	withUpdate, _ := normalize.ParsePlatformIdentity("cpe:2.3:a:apache:http_server:2.4.1:beta:*:*:*:*:*:*")

	t.Run("any matches values and is case insensitive", func(t *testing.T) {
		assert.True(t, wildcard.Matches(concrete))
		assert.True(t, concrete.Matches(wildcard))
	})

	t.Run("different product", func(t *testing.T) {
		assert.False(t, otherProduct.Matches(concrete))
	})

	t.Run("not applicable only matches not applicable", func(t *testing.T) {
		assert.False(t, concrete.Matches(withUpdate))
	})

	t.Run("base match ignores the version", func(t *testing.T) {
		other, _ := normalize.ParsePlatformIdentity("cpe:2.3:a:apache:http_server:2.4.9:-:*:*:*:*:*:*")
		assert.False(t, concrete.Matches(other))
		assert.True(t, concrete.MatchesBase(other))
	})

	t.Run("ids are stable across case", func(t *testing.T) {
		lower, _ := normalize.ParsePlatformIdentity("cpe:2.3:a:apache:http_server:2.4.1:-:*:*:*:*:*:*")
		assert.Equal(t, lower.ID(), concrete.ID())
		assert.Equal(t, "apache", concrete.VendorKey())
		assert.Equal(t, "http_server", concrete.ProductKey())
	})
}
