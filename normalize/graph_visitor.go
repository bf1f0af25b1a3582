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
	"fmt"
	"maps"
	"slices"
	"strings"

	cdx "github.com/CycloneDX/cyclonedx-go"
)

// GraphVisitor receives every node and then every edge of a graph.
type GraphVisitor interface {
	VisitNode(node GraphNode)
	VisitEdge(edge GraphEdge)
}

// Renderer is a visitor producing a result once the walk is done.
type Renderer[T any] interface {
	GraphVisitor
	Complete() T
}

// Walk calls the visitor for all nodes in declaration order, then for all edges in insertion order.
func (g *SbomGraph) Walk(v GraphVisitor) {
	for _, n := range g.nodes {
		v.VisitNode(n)
	}
	for _, e := range g.edges {
		v.VisitEdge(e)
	}
}

// Render walks the graph with r and returns its result.
func Render[T any](g *SbomGraph, r Renderer[T]) T {
	g.Walk(r)
	return r.Complete()
}

// ===== DOT =====

const DotMimeType = "text/vnd.graphviz"

// DotRenderer produces a graphviz digraph.
type DotRenderer struct {
	name string
	sb   strings.Builder
}

func NewDotRenderer(name string) *DotRenderer {
	r := &DotRenderer{name: name}
	fmt.Fprintf(&r.sb, "digraph %s {\n", quoteDot(name))
	r.sb.WriteString("  node [shape=box, style=rounded];\n")
	return r
}

func (r *DotRenderer) VisitNode(node GraphNode) {
	label := node.Name
	if label == "" && len(node.Purls) > 0 {
		label = node.Purls[0].DisplayName()
	}
	if label == "" {
		label = node.NodeID
	}
	if node.Version != "" {
		label += "\n" + node.Version
	}
	fmt.Fprintf(&r.sb, "  %s [label=%s];\n", quoteDot(node.NodeID), quoteDot(label))
}

func (r *DotRenderer) VisitEdge(edge GraphEdge) {
	fmt.Fprintf(&r.sb, "  %s -> %s [label=%s];\n", quoteDot(edge.Left), quoteDot(edge.Right), quoteDot(string(edge.Relationship)))
}

func (r *DotRenderer) Complete() string {
	return r.sb.String() + "}\n"
}

// quoteDot renders s as a quoted dot id.
func quoteDot(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, c := range s {
		switch c {
		case '"', '\\':
			sb.WriteByte('\\')
			sb.WriteRune(c)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
		default:
			sb.WriteRune(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// ===== CYCLONEDX =====

// CycloneDXRenderer rebuilds a cyclonedx bom from the graph. Edges are
// oriented parent to child and become the dependency section.
type CycloneDXRenderer struct {
	root       string
	components []cdx.Component
	deps       map[string][]string
	order      []string
}

func NewCycloneDXRenderer(g *SbomGraph) *CycloneDXRenderer {
	r := &CycloneDXRenderer{deps: make(map[string][]string)}
	if root, ok := g.Root(); ok {
		r.root = root.NodeID
	}
	return r
}

func (r *CycloneDXRenderer) VisitNode(node GraphNode) {
	if node.NodeID == r.root && slices.Contains(wellKnownRootIDs, node.NodeID) {
		return
	}
	c := cdx.Component{
		BOMRef:  node.NodeID,
		Type:    cdx.ComponentTypeLibrary,
		Name:    node.Name,
		Version: node.Version,
	}
	if len(node.Purls) > 0 {
		c.PackageURL = node.Purls[0].String()
	}
	if len(node.Cpes) > 0 {
		c.CPE = node.Cpes[0].String()
	}
	if len(node.Properties) > 0 {
		props := make([]cdx.Property, 0, len(node.Properties))
		for _, name := range slices.Sorted(maps.Keys(node.Properties)) {
			props = append(props, cdx.Property{Name: name, Value: node.Properties[name]})
		}
		c.Properties = &props
	}
	r.components = append(r.components, c)
}

func (r *CycloneDXRenderer) VisitEdge(edge GraphEdge) {
	parent, child := edge.Relationship.Orient(edge.Left, edge.Right)
	if _, ok := r.deps[parent]; !ok {
		r.order = append(r.order, parent)
	}
	if slices.Contains(r.deps[parent], child) {
		return
	}
	r.deps[parent] = append(r.deps[parent], child)
}

func (r *CycloneDXRenderer) Complete() *cdx.BOM {
	deps := make([]cdx.Dependency, 0, len(r.order))
	for _, ref := range r.order {
		children := r.deps[ref]
		deps = append(deps, cdx.Dependency{Ref: ref, Dependencies: &children})
	}
	return &cdx.BOM{
		SpecVersion:  cdx.SpecVersion1_6,
		BOMFormat:    "CycloneDX",
		Version:      1,
		Components:   &r.components,
		Dependencies: &deps,
	}
}
