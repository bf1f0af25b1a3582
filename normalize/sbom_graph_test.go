package normalize

import (
	"slices"
	"testing"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func node(id string) GraphNode {
	return GraphNode{NodeID: id, Name: id}
}

func nodeIDs(nodes []GraphNode) []string {
	ids := make([]string, 0, len(nodes))
	for _, n := range nodes {
		ids = append(ids, n.NodeID)
	}
	return ids
}

func buildGraph(nodes []GraphNode, edges []GraphEdge, opts ...GraphOption) *SbomGraph {
	return BuildSbomGraph("sbom-1", slices.Values(nodes), slices.Values(edges), nil, opts...)
}

// SPDXRef-DOCUMENT --describes--> A --contains--> B, C --dependency_of--> B
func fourNodeGraph() *SbomGraph {
	return buildGraph(
		[]GraphNode{node("SPDXRef-DOCUMENT"), node("A"), node("B"), node("C")},
		[]GraphEdge{
			{Left: "SPDXRef-DOCUMENT", Relationship: RelDescribes, Right: "A"},
			{Left: "A", Relationship: RelContains, Right: "B"},
			{Left: "C", Relationship: RelDependencyOf, Right: "B"},
		},
	)
}

func TestParseRelationship(t *testing.T) {
	assert.Equal(t, RelDependencyOf, ParseRelationship("DEPENDENCY_OF"))
	assert.Equal(t, RelDevDependencyOf, ParseRelationship("devDependencyOf"))
	assert.Equal(t, RelContains, ParseRelationship("contains"))
	assert.Equal(t, RelUndefined, ParseRelationship("frobnicates"))
}

func TestRelationshipOrient(t *testing.T) {
	parent, child := RelContains.Orient("a", "b")
	assert.Equal(t, "a", parent)
	assert.Equal(t, "b", child)

	parent, child = RelDependencyOf.Orient("a", "b")
	assert.Equal(t, "b", parent)
	assert.Equal(t, "a", child)
}

func TestBuildSbomGraph(t *testing.T) {
	t.Run("duplicate node ids keep their first position and the last content", func(t *testing.T) {
		g := buildGraph([]GraphNode{
			{NodeID: "a", Name: "first"},
			node("b"),
			{NodeID: "a", Name: "second"},
		}, nil)

		nodes := slices.Collect(g.Nodes())
		assert.Equal(t, []string{"a", "b"}, nodeIDs(nodes))
		assert.Equal(t, "second", nodes[0].Name)
	})

	t.Run("edges with unknown endpoints are dropped", func(t *testing.T) {
		g := buildGraph([]GraphNode{node("a"), node("b")}, []GraphEdge{
			{Left: "a", Relationship: RelContains, Right: "b"},
			{Left: "a", Relationship: RelContains, Right: "missing"},
			{Left: "ghost", Relationship: RelContains, Right: "b"},
		})
		assert.Equal(t, 1, g.EdgeCount())
		assert.Equal(t, 2, g.DroppedEdges())
	})

	t.Run("self loops are kept", func(t *testing.T) {
		g := buildGraph([]GraphNode{node("a")}, []GraphEdge{{Left: "a", Relationship: RelDependsOn, Right: "a"}})
		assert.Equal(t, 1, g.EdgeCount())
		d, ok := g.Descendants("a", -1)
		assert.True(t, ok)
		assert.Empty(t, d)
	})

	t.Run("duplicate purls are collapsed", func(t *testing.T) {
		p, err := ParsePackageIdentity("pkg:npm/lodash@4.17.21")
		require.NoError(t, err)
		g := buildGraph([]GraphNode{{NodeID: "a", Purls: []PackageIdentity{p, p}}}, nil)
		n, _ := g.Node("a")
		assert.Len(t, n.Purls, 1)
	})
}

func TestSbomGraphRoot(t *testing.T) {
	t.Run("well known spdx document id", func(t *testing.T) {
		root, ok := fourNodeGraph().Root()
		assert.True(t, ok)
		assert.Equal(t, "SPDXRef-DOCUMENT", root.NodeID)
	})

	t.Run("unique describes source", func(t *testing.T) {
		g := buildGraph([]GraphNode{node("doc"), node("app")}, []GraphEdge{{Left: "doc", Relationship: RelDescribes, Right: "app"}})
		root, ok := g.Root()
		assert.True(t, ok)
		assert.Equal(t, "doc", root.NodeID)
		assert.Equal(t, []string{"app"}, nodeIDs(g.RootComponents()))
	})

	t.Run("ambiguous describes sources have no root", func(t *testing.T) {
		g := buildGraph([]GraphNode{node("d1"), node("d2"), node("x")}, []GraphEdge{
			{Left: "d1", Relationship: RelDescribes, Right: "x"},
			{Left: "d2", Relationship: RelDescribes, Right: "x"},
		})
		_, ok := g.Root()
		assert.False(t, ok)
		assert.Equal(t, []string{"d1", "d2"}, nodeIDs(g.RootComponents()))
	})

	t.Run("cyclonedx metadata component", func(t *testing.T) {
		bom := &cdx.BOM{Metadata: &cdx.Metadata{Component: &cdx.Component{BOMRef: "app"}}}
		g := buildGraph([]GraphNode{node("lib"), node("app")}, []GraphEdge{{Left: "app", Relationship: RelDependsOn, Right: "lib"}}, WithDocumentRoot(CycloneDXRootRef(bom)))
		root, ok := g.Root()
		assert.True(t, ok)
		assert.Equal(t, "app", root.NodeID)
		assert.Equal(t, []string{"lib"}, nodeIDs(g.RootComponents()))
	})
}

func TestSbomGraphTraversal(t *testing.T) {
	t.Run("ancestors walk towards the root", func(t *testing.T) {
		ancestors, ok := fourNodeGraph().Ancestors("B", 10)
		assert.True(t, ok)
		assert.Equal(t, []string{"A", "SPDXRef-DOCUMENT"}, nodeIDs(ancestors))
	})

	t.Run("dependency_of points from child to parent", func(t *testing.T) {
		ancestors, _ := fourNodeGraph().Ancestors("C", -1)
		assert.Equal(t, []string{"B", "A", "SPDXRef-DOCUMENT"}, nodeIDs(ancestors))
	})

	t.Run("depth limits the walk", func(t *testing.T) {
		g := fourNodeGraph()
		ancestors, _ := g.Ancestors("C", 1)
		assert.Equal(t, []string{"B"}, nodeIDs(ancestors))

		none, ok := g.Ancestors("B", 0)
		assert.True(t, ok)
		assert.Empty(t, none)
	})

	t.Run("descendants", func(t *testing.T) {
		descendants, ok := fourNodeGraph().Descendants("SPDXRef-DOCUMENT", -1)
		assert.True(t, ok)
		assert.Equal(t, []string{"A", "B", "C"}, nodeIDs(descendants))
	})

	t.Run("cycles terminate and never return the start node", func(t *testing.T) {
		g := buildGraph([]GraphNode{node("A"), node("B"), node("C")}, []GraphEdge{
			{Left: "A", Relationship: RelDependsOn, Right: "B"},
			{Left: "B", Relationship: RelDependsOn, Right: "C"},
			{Left: "C", Relationship: RelDependsOn, Right: "A"},
		})
		descendants, _ := g.Descendants("A", -1)
		assert.Equal(t, []string{"B", "C"}, nodeIDs(descendants))
		ancestors, _ := g.Ancestors("A", -1)
		assert.Equal(t, []string{"C", "B"}, nodeIDs(ancestors))
	})

	t.Run("unknown reference", func(t *testing.T) {
		_, ok := fourNodeGraph().Ancestors("nope", -1)
		assert.False(t, ok)
	})
}

func TestSbomGraphResolve(t *testing.T) {
	purl, _ := ParsePackageIdentity("pkg:maven/com.x/lib@1.5")
	cpe, _ := ParsePlatformIdentity("cpe:2.3:a:x:lib:1.5:*:*:*:*:*:*:*")
	g := buildGraph([]GraphNode{
		{NodeID: "n1", Name: "lib", Purls: []PackageIdentity{purl}},
		{NodeID: "n2", Name: "lib", Cpes: []PlatformIdentity{cpe}},
		{NodeID: "lib", Name: "shadow"},
	}, nil)

	t.Run("node id wins", func(t *testing.T) {
		n, ok := g.Resolve("lib")
		assert.True(t, ok)
		assert.Equal(t, "lib", n.NodeID)
	})

	t.Run("purl", func(t *testing.T) {
		n, ok := g.Resolve("pkg:maven/com.x/lib@1.5")
		assert.True(t, ok)
		assert.Equal(t, "n1", n.NodeID)
	})

	t.Run("cpe is case insensitive", func(t *testing.T) {
		n, ok := g.Resolve("cpe:2.3:a:X:LIB:1.5:*:*:*:*:*:*:*")
		assert.True(t, ok)
		assert.Equal(t, "n2", n.NodeID)
	})

	t.Run("find nodes returns every match in order", func(t *testing.T) {
		assert.Equal(t, []string{"n1", "n2", "lib"}, nodeIDs(g.FindNodes("lib")))
	})
}

func TestSbomGraphContentEquality(t *testing.T) {
	a := fourNodeGraph()
	b := fourNodeGraph()
	if diff := cmp.Diff(slices.Collect(a.Nodes()), slices.Collect(b.Nodes())); diff != "" {
		t.Errorf("nodes differ (-a +b):\n%s", diff)
	}
	if diff := cmp.Diff(slices.Collect(a.Edges()), slices.Collect(b.Edges())); diff != "" {
		t.Errorf("edges differ (-a +b):\n%s", diff)
	}
}
