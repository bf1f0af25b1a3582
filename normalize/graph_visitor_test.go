package normalize

import (
	"strings"
	"testing"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingVisitor struct {
	calls []string
}

func (r *recordingVisitor) VisitNode(n GraphNode) {
	r.calls = append(r.calls, "node:"+n.NodeID)
}

func (r *recordingVisitor) VisitEdge(e GraphEdge) {
	r.calls = append(r.calls, "edge:"+e.Left+"->"+e.Right)
}

func TestWalk(t *testing.T) {
	g := buildGraph(
		[]GraphNode{node("SPDXRef-DOCUMENT"), node("A"), node("B"), node("C")},
		[]GraphEdge{
			{Left: "SPDXRef-DOCUMENT", Relationship: RelDescribes, Right: "A"},
			{Left: "A", Relationship: RelContains, Right: "B"},
		},
	)

	v := &recordingVisitor{}
	g.Walk(v)

	assert.Equal(t, []string{
		"node:SPDXRef-DOCUMENT",
		"node:A",
		"node:B",
		"node:C",
		"edge:SPDXRef-DOCUMENT->A",
		"edge:A->B",
	}, v.calls)
}

func TestDotRenderer(t *testing.T) {
	g := buildGraph(
		[]GraphNode{{NodeID: "a", Name: `say "hi"`, Version: "1.0"}, node("b")},
		[]GraphEdge{{Left: "a", Relationship: RelDependsOn, Right: "b"}},
	)

	dot := Render(g, NewDotRenderer("sbom-1"))

	assert.True(t, strings.HasPrefix(dot, `digraph "sbom-1" {`))
	assert.Contains(t, dot, `"a" [label="say \"hi\"\n1.0"];`)
	assert.Contains(t, dot, `"b" [label="b"];`)
	assert.Contains(t, dot, `"a" -> "b" [label="depends_on"];`)
	assert.True(t, strings.HasSuffix(dot, "}\n"))
	// nodes come before edges
	assert.Less(t, strings.Index(dot, `"b" [label`), strings.Index(dot, "->"))
}

func TestCycloneDXRenderer(t *testing.T) {
	purl, _ := ParsePackageIdentity("pkg:npm/left-pad@1.3.0")
	g := buildGraph(
		[]GraphNode{node("SPDXRef-DOCUMENT"), {NodeID: "app", Name: "app"}, {NodeID: "lp", Name: "left-pad", Version: "1.3.0", Purls: []PackageIdentity{purl}, Properties: map[string]string{"scope": "runtime", "author": "azer"}}},
		[]GraphEdge{
			{Left: "SPDXRef-DOCUMENT", Relationship: RelDescribes, Right: "app"},
			{Left: "lp", Relationship: RelDependencyOf, Right: "app"},
			{Left: "app", Relationship: RelDependsOn, Right: "lp"},
		},
	)

	bom := Render(g, NewCycloneDXRenderer(g))

	components := *bom.Components
	assert.Len(t, components, 2)
	assert.Equal(t, "app", components[0].BOMRef)
	assert.Equal(t, "pkg:npm/left-pad@1.3.0", components[1].PackageURL)
	assert.Nil(t, components[0].Properties)
	require.NotNil(t, components[1].Properties)
	assert.Equal(t, []cdx.Property{{Name: "author", Value: "azer"}, {Name: "scope", Value: "runtime"}}, *components[1].Properties)

	deps := *bom.Dependencies
	assert.Len(t, deps, 2)
	assert.Equal(t, "SPDXRef-DOCUMENT", deps[0].Ref)
	assert.Equal(t, "app", deps[1].Ref)
	// the dependency_of and depends_on edges collapse into one entry
	assert.Equal(t, []string{"lp"}, *deps[1].Dependencies)
}
