package normalize

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cycloneDXSchemaURL = "https://raw.githubusercontent.com/CycloneDX/specification/master/schema/bom-1.6.schema.json"

var (
	schemaOnce   sync.Once
	cachedSchema *jsonschema.Schema
	schemaErr    error
)

type httpURLLoader struct{}

func (httpURLLoader) Load(url string) (any, error) {
	resp, err := http.Get(url) //nolint:gosec,noctx
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var data any
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}
	return data, nil
}

func compileSchema(t *testing.T) *jsonschema.Schema {
	t.Helper()
	if testing.Short() {
		t.Skip("schema is fetched over the network")
	}

	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.UseLoader(httpURLLoader{})
		cachedSchema, schemaErr = compiler.Compile(cycloneDXSchemaURL)
	})

	require.NoError(t, schemaErr, "Failed to compile CycloneDX schema")
	return cachedSchema
}

func validateBOMAgainstSchema(t *testing.T, bom *cdx.BOM, schema *jsonschema.Schema) {
	t.Helper()

	var buf bytes.Buffer
	encoder := cdx.NewBOMEncoder(&buf, cdx.BOMFileFormatJSON)
	encoder.SetPretty(true)
	require.NoError(t, encoder.Encode(bom))

	var jsonData any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &jsonData))

	if err := schema.Validate(jsonData); err != nil {
		t.Logf("BOM JSON:\n%s", buf.String())
		assert.NoError(t, err, "rendered bom does not match the CycloneDX schema")
	}
}

func TestCycloneDXRendererSchema(t *testing.T) {
	schema := compileSchema(t)

	t.Run("spdx shaped graph", func(t *testing.T) {
		lp, _ := ParsePackageIdentity("pkg:npm/left-pad@1.3.0")
		cpe, _ := ParsePlatformIdentity("cpe:2.3:a:left-pad:left-pad:1.3.0:*:*:*:*:*:*:*")
		g := buildGraph(
			[]GraphNode{
				node("SPDXRef-DOCUMENT"),
				{NodeID: "app", Name: "app", Version: "1.0.0"},
				{NodeID: "lp", Name: "left-pad", Version: "1.3.0", Purls: []PackageIdentity{lp}, Cpes: []PlatformIdentity{cpe}},
			},
			[]GraphEdge{
				{Left: "SPDXRef-DOCUMENT", Relationship: RelDescribes, Right: "app"},
				{Left: "app", Relationship: RelDependsOn, Right: "lp"},
			},
		)
		validateBOMAgainstSchema(t, Render(g, NewCycloneDXRenderer(g)), schema)
	})

	t.Run("nodes without name or edges", func(t *testing.T) {
		g := buildGraph([]GraphNode{{NodeID: "x"}, {NodeID: "y", Version: "2"}}, nil)
		validateBOMAgainstSchema(t, Render(g, NewCycloneDXRenderer(g)), schema)
	})
}
