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
	"iter"
	"log/slog"
	"slices"
	"strings"

	cdx "github.com/CycloneDX/cyclonedx-go"
)

// =============================================================================
// RELATIONSHIPS
// =============================================================================

// Relationship is the closed set of edge kinds. An edge always reads
// left --relationship--> right; which side is the parent depends on the kind.
type Relationship string

const (
	RelContains             Relationship = "contains"
	RelContainedBy          Relationship = "contained_by"
	RelDependsOn            Relationship = "depends_on"
	RelDependencyOf         Relationship = "dependency_of"
	RelDevDependencyOf      Relationship = "dev_dependency_of"
	RelOptionalDependencyOf Relationship = "optional_dependency_of"
	RelBuildDependencyOf    Relationship = "build_dependency_of"
	RelProvidedDependencyOf Relationship = "provided_dependency_of"
	RelTestDependencyOf     Relationship = "test_dependency_of"
	RelRuntimeDependencyOf  Relationship = "runtime_dependency_of"
	RelDescribes            Relationship = "describes"
	RelDescribedBy          Relationship = "described_by"
	RelGenerates            Relationship = "generates"
	RelGeneratedFrom        Relationship = "generated_from"
	RelVariantOf            Relationship = "variant_of"
	RelPackageOf            Relationship = "package_of"
	RelAncestorOf           Relationship = "ancestor_of"
	RelDescendantOf         Relationship = "descendant_of"
	RelUndefined            Relationship = "undefined"
)

// relationships whose right hand side is the parent
var rightIsParent = map[Relationship]bool{
	RelContainedBy:          true,
	RelDependencyOf:         true,
	RelDevDependencyOf:      true,
	RelOptionalDependencyOf: true,
	RelBuildDependencyOf:    true,
	RelProvidedDependencyOf: true,
	RelTestDependencyOf:     true,
	RelRuntimeDependencyOf:  true,
	RelDescribedBy:          true,
	RelGeneratedFrom:        true,
	RelVariantOf:            true,
	RelPackageOf:            true,
	RelDescendantOf:         true,
}

var relationships = func() map[string]Relationship {
	m := make(map[string]Relationship)
	for _, r := range []Relationship{
		RelContains, RelContainedBy, RelDependsOn, RelDependencyOf, RelDevDependencyOf,
		RelOptionalDependencyOf, RelBuildDependencyOf, RelProvidedDependencyOf,
		RelTestDependencyOf, RelRuntimeDependencyOf, RelDescribes, RelDescribedBy,
		RelGenerates, RelGeneratedFrom, RelVariantOf, RelPackageOf, RelAncestorOf,
		RelDescendantOf, RelUndefined,
	} {
		m[relationshipKey(string(r))] = r
	}
	return m
}()

func relationshipKey(s string) string {
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToLower(s))
}

// ParseRelationship accepts spdx style ("DEPENDENCY_OF"), camel case and snake case names.
// Anything unknown becomes RelUndefined.
func ParseRelationship(s string) Relationship {
	if r, ok := relationships[relationshipKey(s)]; ok {
		return r
	}
	return RelUndefined
}

// Orient returns the edge as (parent, child).
func (r Relationship) Orient(left, right string) (parent, child string) {
	if rightIsParent[r] {
		return right, left
	}
	return left, right
}

// =============================================================================
// NODES AND EDGES
// =============================================================================

// GraphNode is a document local component. A node may carry several identities.
type GraphNode struct {
	NodeID  string             `json:"nodeId"`
	Name    string             `json:"name"`
	Version string             `json:"version,omitempty"`
	Purls   []PackageIdentity  `json:"purls,omitempty"`
	Cpes    []PlatformIdentity `json:"cpes,omitempty"`

	// free form annotations of the document, e.g. cyclonedx properties
	Properties map[string]string `json:"properties,omitempty"`
}

type GraphEdge struct {
	Left         string       `json:"left"`
	Relationship Relationship `json:"relationship"`
	Right        string       `json:"right"`
}

// ExternalNodeReference points from a local node into another document.
type ExternalNodeReference struct {
	LocalNodeID     string `json:"localNodeId"`
	ExternalDocRef  string `json:"externalDocRef"`
	ExternalNodeRef string `json:"externalNodeRef"`
	Discriminator   string `json:"discriminator,omitempty"`
}

// well known document node ids of the supported sbom formats
var wellKnownRootIDs = []string{"SPDXRef-DOCUMENT", "CycloneDX-doc-ref"}

type GraphOption func(*SbomGraph)

// WithDocumentRoot names the root explicitly, e.g. the bom-ref of a cyclonedx
// metadata component. Unknown ids are ignored.
func WithDocumentRoot(nodeID string) GraphOption {
	return func(g *SbomGraph) {
		g.declaredRoot = nodeID
	}
}

// CycloneDXRootRef returns the bom-ref of the metadata component, if any.
func CycloneDXRootRef(bom *cdx.BOM) string {
	if bom == nil || bom.Metadata == nil || bom.Metadata.Component == nil {
		return ""
	}
	return bom.Metadata.Component.BOMRef
}

// =============================================================================
// SBOM GRAPH
// =============================================================================

// SbomGraph is the materialized relationship graph of one sbom.
//
// Nodes live in an arena in declaration order, adjacency is kept as arena indices.
// A built graph is never mutated, so it can be read concurrently.
type SbomGraph struct {
	sbomID string

	nodes []GraphNode
	index map[string]int // node id -> arena position

	edges    []GraphEdge
	children [][]int
	parents  [][]int

	externals []ExternalNodeReference

	declaredRoot string
	rootIdx      int
	droppedEdges int
}

// BuildSbomGraph materializes the graph of one sbom.
//
// Duplicate node ids are merged (last write wins, the first declaration keeps its position),
// edges pointing at unknown nodes are dropped, self loops are kept.
func BuildSbomGraph(sbomID string, nodes iter.Seq[GraphNode], edges iter.Seq[GraphEdge], externals []ExternalNodeReference, opts ...GraphOption) *SbomGraph {
	g := &SbomGraph{
		sbomID:  sbomID,
		index:   make(map[string]int),
		rootIdx: -1,
	}
	for _, opt := range opts {
		opt(g)
	}

	for n := range nodes {
		n.Purls = dedupePurls(n.Purls)
		n.Cpes = dedupeCpes(n.Cpes)
		if i, ok := g.index[n.NodeID]; ok {
			g.nodes[i] = n
			continue
		}
		g.index[n.NodeID] = len(g.nodes)
		g.nodes = append(g.nodes, n)
	}

	g.children = make([][]int, len(g.nodes))
	g.parents = make([][]int, len(g.nodes))

	for e := range edges {
		l, lok := g.index[e.Left]
		r, rok := g.index[e.Right]
		if !lok || !rok {
			g.droppedEdges++
			slog.Warn("dropping edge with unknown endpoint", "sbomID", sbomID, "left", e.Left, "relationship", e.Relationship, "right", e.Right)
			continue
		}
		if e.Relationship == "" {
			e.Relationship = RelUndefined
		}
		g.edges = append(g.edges, e)

		parent, child := l, r
		if rightIsParent[e.Relationship] {
			parent, child = r, l
		}
		g.children[parent] = append(g.children[parent], child)
		g.parents[child] = append(g.parents[child], parent)
	}

	for _, ext := range externals {
		if _, ok := g.index[ext.LocalNodeID]; !ok {
			slog.Warn("dropping external reference of unknown node", "sbomID", sbomID, "node", ext.LocalNodeID, "externalDocRef", ext.ExternalDocRef)
			continue
		}
		g.externals = append(g.externals, ext)
	}

	g.rootIdx = g.findRoot()
	return g
}

func dedupePurls(purls []PackageIdentity) []PackageIdentity {
	if len(purls) < 2 {
		return purls
	}
	seen := make(map[string]bool, len(purls))
	out := make([]PackageIdentity, 0, len(purls))
	for _, p := range purls {
		k := p.String()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, p)
	}
	return out
}

func dedupeCpes(cpes []PlatformIdentity) []PlatformIdentity {
	if len(cpes) < 2 {
		return cpes
	}
	seen := make(map[string]bool, len(cpes))
	out := make([]PlatformIdentity, 0, len(cpes))
	for _, c := range cpes {
		k := c.ID().String()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, c)
	}
	return out
}

// findRoot prefers the well known document node and falls back to the single
// source of Describes edges.
func (g *SbomGraph) findRoot() int {
	if i, ok := g.index[g.declaredRoot]; ok && g.declaredRoot != "" {
		return i
	}
	for _, id := range wellKnownRootIDs {
		if i, ok := g.index[id]; ok {
			return i
		}
	}
	root := -1
	for _, e := range g.edges {
		if e.Relationship != RelDescribes {
			continue
		}
		i := g.index[e.Left]
		if root != -1 && root != i {
			return -1
		}
		root = i
	}
	return root
}

// =============================================================================
// ACCESSORS
// =============================================================================

func (g *SbomGraph) SbomID() string {
	return g.sbomID
}

func (g *SbomGraph) NodeCount() int {
	return len(g.nodes)
}

func (g *SbomGraph) EdgeCount() int {
	return len(g.edges)
}

// DroppedEdges is the number of edges discarded during the build.
func (g *SbomGraph) DroppedEdges() int {
	return g.droppedEdges
}

func (g *SbomGraph) Node(id string) (GraphNode, bool) {
	i, ok := g.index[id]
	if !ok {
		return GraphNode{}, false
	}
	return g.nodes[i], true
}

// Nodes iterates in declaration order.
func (g *SbomGraph) Nodes() iter.Seq[GraphNode] {
	return func(yield func(GraphNode) bool) {
		for _, n := range g.nodes {
			if !yield(n) {
				return
			}
		}
	}
}

// Edges iterates in insertion order.
func (g *SbomGraph) Edges() iter.Seq[GraphEdge] {
	return func(yield func(GraphEdge) bool) {
		for _, e := range g.edges {
			if !yield(e) {
				return
			}
		}
	}
}

func (g *SbomGraph) Externals() []ExternalNodeReference {
	return slices.Clone(g.externals)
}

// ExternalsOf returns the external references declared for one node.
func (g *SbomGraph) ExternalsOf(nodeID string) []ExternalNodeReference {
	var refs []ExternalNodeReference
	for _, ext := range g.externals {
		if ext.LocalNodeID == nodeID {
			refs = append(refs, ext)
		}
	}
	return refs
}

// Root returns the document root node.
func (g *SbomGraph) Root() (GraphNode, bool) {
	if g.rootIdx < 0 {
		return GraphNode{}, false
	}
	return g.nodes[g.rootIdx], true
}

// RootComponents returns the nodes described by the document root. Graphs without
// a usable root fall back to every node nothing points at.
func (g *SbomGraph) RootComponents() []GraphNode {
	result := []GraphNode{}
	if g.rootIdx >= 0 {
		seen := make(map[int]bool)
		for _, c := range g.children[g.rootIdx] {
			if c == g.rootIdx || seen[c] {
				continue
			}
			seen[c] = true
			result = append(result, g.nodes[c])
		}
		if len(result) > 0 {
			return result
		}
	}
	for i, n := range g.nodes {
		if i == g.rootIdx {
			continue
		}
		if len(g.parents[i]) == 0 {
			result = append(result, n)
		}
	}
	return result
}

// =============================================================================
// RESOLUTION AND TRAVERSAL
// =============================================================================

// Resolve finds a node by id, name, purl or cpe. Node ids take precedence, otherwise
// the first node in declaration order matching any of the other forms wins.
func (g *SbomGraph) Resolve(ref string) (GraphNode, bool) {
	i := g.resolveIdx(ref)
	if i < 0 {
		return GraphNode{}, false
	}
	return g.nodes[i], true
}

func (g *SbomGraph) resolveIdx(ref string) int {
	if i, ok := g.index[ref]; ok {
		return i
	}
	for i, n := range g.nodes {
		if NodeMatchesRef(n, ref) {
			return i
		}
	}
	return -1
}

// NodeMatchesRef reports whether ref names the node by name, purl or cpe.
func NodeMatchesRef(n GraphNode, ref string) bool {
	if n.NodeID == ref || n.Name == ref {
		return true
	}
	if strings.HasPrefix(ref, "pkg:") {
		p, err := ParsePackageIdentity(ref)
		if err != nil {
			return false
		}
		for _, candidate := range n.Purls {
			if candidate.String() == p.String() || (len(p.Qualifiers) == 0 && candidate.VersionedPurl() == p.VersionedPurl()) {
				return true
			}
		}
		return false
	}
	if strings.HasPrefix(ref, "cpe:") {
		c, err := ParsePlatformIdentity(ref)
		if err != nil {
			return false
		}
		for _, candidate := range n.Cpes {
			if candidate.ID() == c.ID() {
				return true
			}
		}
	}
	return false
}

// Ancestors walks towards the parents of ref, breadth first. The start node is never
// part of the result. maxDepth < 0 means unbounded, 0 returns nothing.
// The boolean is false if ref does not resolve.
func (g *SbomGraph) Ancestors(ref string, maxDepth int) ([]GraphNode, bool) {
	start := g.resolveIdx(ref)
	if start < 0 {
		return nil, false
	}
	return g.bfs(start, maxDepth, g.parents), true
}

// Descendants is the counterpart of Ancestors following child edges.
func (g *SbomGraph) Descendants(ref string, maxDepth int) ([]GraphNode, bool) {
	start := g.resolveIdx(ref)
	if start < 0 {
		return nil, false
	}
	return g.bfs(start, maxDepth, g.children), true
}

func (g *SbomGraph) bfs(start, maxDepth int, next [][]int) []GraphNode {
	result := []GraphNode{}
	if maxDepth == 0 {
		return result
	}
	visited := make([]bool, len(g.nodes))
	visited[start] = true
	frontier := []int{start}
	for depth := 1; len(frontier) > 0 && (maxDepth < 0 || depth <= maxDepth); depth++ {
		var upcoming []int
		for _, i := range frontier {
			for _, n := range next[i] {
				if visited[n] {
					continue
				}
				visited[n] = true
				result = append(result, g.nodes[n])
				upcoming = append(upcoming, n)
			}
		}
		frontier = upcoming
	}
	return result
}

// Children returns the direct children of a node in edge order.
func (g *SbomGraph) Children(nodeID string) []GraphNode {
	return g.neighbours(nodeID, g.children)
}

func (g *SbomGraph) Parents(nodeID string) []GraphNode {
	return g.neighbours(nodeID, g.parents)
}

func (g *SbomGraph) neighbours(nodeID string, adjacency [][]int) []GraphNode {
	i, ok := g.index[nodeID]
	if !ok {
		return nil
	}
	result := make([]GraphNode, 0, len(adjacency[i]))
	for _, n := range adjacency[i] {
		result = append(result, g.nodes[n])
	}
	return result
}

// FindNodes returns every node matching ref, in declaration order.
func (g *SbomGraph) FindNodes(ref string) []GraphNode {
	var result []GraphNode
	for _, n := range g.nodes {
		if NodeMatchesRef(n, ref) {
			result = append(result, n)
		}
	}
	return result
}
