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

package models

import (
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/l3montree-dev/vulncorrelator/normalize"
	"gorm.io/datatypes"
)

// Sbom is the header of an ingested document. Its graph lives in the node, edge and
// external reference tables and is materialized on demand.
type Sbom struct {
	ID          string  `json:"id" gorm:"primaryKey;type:text"`
	DocumentRef string  `json:"documentRef" gorm:"type:text;index"`
	Name        string  `json:"name" gorm:"type:text"`
	Format      string  `json:"format" gorm:"type:text"`
	RootNodeID  *string `json:"rootNodeId" gorm:"type:text"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s Sbom) TableName() string {
	return "sboms"
}

type SbomNode struct {
	SbomID     string            `json:"sbomId" gorm:"primaryKey;type:text"`
	NodeID     string            `json:"nodeId" gorm:"primaryKey;type:text"`
	Ordinal    int               `json:"ordinal" gorm:"not null"`
	Name       string            `json:"name" gorm:"type:text"`
	Version    *string           `json:"version" gorm:"type:text"`
	Properties datatypes.JSONMap `json:"properties"`
}

func (n SbomNode) TableName() string {
	return "sbom_nodes"
}

type SbomNodePurl struct {
	SbomID   string `json:"sbomId" gorm:"primaryKey;type:text"`
	NodeID   string `json:"nodeId" gorm:"primaryKey;type:text"`
	Purl     string `json:"purl" gorm:"primaryKey;type:text"`
	BasePurl string `json:"basePurl" gorm:"type:text;index"`
	Ordinal  int    `json:"ordinal"`
}

func (p SbomNodePurl) TableName() string {
	return "sbom_node_purls"
}

type SbomNodeCpe struct {
	SbomID  string `json:"sbomId" gorm:"primaryKey;type:text"`
	NodeID  string `json:"nodeId" gorm:"primaryKey;type:text"`
	Cpe     string `json:"cpe" gorm:"primaryKey;type:text"`
	Ordinal int    `json:"ordinal"`
}

func (c SbomNodeCpe) TableName() string {
	return "sbom_node_cpes"
}

// SbomEdge rows are ordered by Ordinal, which preserves the insertion order of the document.
type SbomEdge struct {
	SbomID       string `json:"sbomId" gorm:"primaryKey;type:text"`
	Ordinal      int    `json:"ordinal" gorm:"primaryKey"`
	LeftNodeID   string `json:"left" gorm:"type:text;not null"`
	Relationship string `json:"relationship" gorm:"type:text;not null"`
	RightNodeID  string `json:"right" gorm:"type:text;not null"`
}

func (e SbomEdge) TableName() string {
	return "sbom_edges"
}

type SbomExternalReference struct {
	SbomID          string `json:"sbomId" gorm:"primaryKey;type:text"`
	LocalNodeID     string `json:"localNodeId" gorm:"primaryKey;type:text"`
	ExternalDocRef  string `json:"externalDocRef" gorm:"primaryKey;type:text"`
	ExternalNodeRef string `json:"externalNodeRef" gorm:"primaryKey;type:text"`
	Discriminator   string `json:"discriminator" gorm:"type:text"`
}

func (r SbomExternalReference) TableName() string {
	return "sbom_external_references"
}

// SbomGraphRecords is everything stored for one sbom.
type SbomGraphRecords struct {
	Sbom      Sbom
	Nodes     []SbomNode
	Purls     []SbomNodePurl
	Cpes      []SbomNodeCpe
	Edges     []SbomEdge
	Externals []SbomExternalReference
}

// NewSbomGraphRecords flattens nodes, edges and external references into rows.
// Nodes and edges get their ordinal from their position.
func NewSbomGraphRecords(sbom Sbom, nodes []normalize.GraphNode, edges []normalize.GraphEdge, externals []normalize.ExternalNodeReference) SbomGraphRecords {
	records := SbomGraphRecords{
		Sbom:      sbom,
		Nodes:     make([]SbomNode, 0, len(nodes)),
		Edges:     make([]SbomEdge, 0, len(edges)),
		Externals: make([]SbomExternalReference, 0, len(externals)),
	}

	seenNodes := make(map[string]int, len(nodes))
	for _, n := range nodes {
		row := SbomNode{
			SbomID:  sbom.ID,
			NodeID:  n.NodeID,
			Ordinal: len(records.Nodes),
			Name:    n.Name,
		}
		if n.Version != "" {
			row.Version = &n.Version
		}
		if len(n.Properties) > 0 {
			row.Properties = make(datatypes.JSONMap, len(n.Properties))
			for k, v := range n.Properties {
				row.Properties[k] = v
			}
		}
		// duplicate ids keep the position of the first declaration
		if i, ok := seenNodes[n.NodeID]; ok {
			row.Ordinal = records.Nodes[i].Ordinal
			records.Nodes[i] = row
			records.Purls = removeNodeRows(records.Purls, n.NodeID, func(p SbomNodePurl) string { return p.NodeID })
			records.Cpes = removeNodeRows(records.Cpes, n.NodeID, func(c SbomNodeCpe) string { return c.NodeID })
		} else {
			seenNodes[n.NodeID] = len(records.Nodes)
			records.Nodes = append(records.Nodes, row)
		}

		seenPurls := make(map[string]bool, len(n.Purls))
		for i, p := range n.Purls {
			purl := p.String()
			if seenPurls[purl] {
				continue
			}
			seenPurls[purl] = true
			records.Purls = append(records.Purls, SbomNodePurl{SbomID: sbom.ID, NodeID: n.NodeID, Purl: purl, BasePurl: p.BasePurl(), Ordinal: i})
		}
		seenCpes := make(map[string]bool, len(n.Cpes))
		for i, c := range n.Cpes {
			cpe := c.String()
			if seenCpes[cpe] {
				continue
			}
			seenCpes[cpe] = true
			records.Cpes = append(records.Cpes, SbomNodeCpe{SbomID: sbom.ID, NodeID: n.NodeID, Cpe: cpe, Ordinal: i})
		}
	}

	for i, e := range edges {
		records.Edges = append(records.Edges, SbomEdge{
			SbomID:       sbom.ID,
			Ordinal:      i,
			LeftNodeID:   e.Left,
			Relationship: string(e.Relationship),
			RightNodeID:  e.Right,
		})
	}

	seenExternals := make(map[SbomExternalReference]bool, len(externals))
	for _, ext := range externals {
		row := SbomExternalReference{
			SbomID:          sbom.ID,
			LocalNodeID:     ext.LocalNodeID,
			ExternalDocRef:  ext.ExternalDocRef,
			ExternalNodeRef: ext.ExternalNodeRef,
			Discriminator:   ext.Discriminator,
		}
		key := row
		key.Discriminator = ""
		if seenExternals[key] {
			continue
		}
		seenExternals[key] = true
		records.Externals = append(records.Externals, row)
	}
	return records
}

func removeNodeRows[T any](rows []T, nodeID string, id func(T) string) []T {
	out := rows[:0]
	for _, r := range rows {
		if id(r) != nodeID {
			out = append(out, r)
		}
	}
	return out
}

// GraphNodes converts the rows back into graph nodes in ordinal order. Unparsable
// identities are skipped with a warning. Rows must be sorted by ordinal.
func (r SbomGraphRecords) GraphNodes() iter.Seq[normalize.GraphNode] {
	purls := make(map[string][]normalize.PackageIdentity)
	for _, p := range r.Purls {
		identity, err := normalize.ParsePackageIdentity(p.Purl)
		if err != nil {
			slog.Warn("skipping stored purl", "sbomID", r.Sbom.ID, "node", p.NodeID, "purl", p.Purl, "err", err)
			continue
		}
		purls[p.NodeID] = append(purls[p.NodeID], identity)
	}
	cpes := make(map[string][]normalize.PlatformIdentity)
	for _, c := range r.Cpes {
		identity, err := normalize.ParsePlatformIdentity(c.Cpe)
		if err != nil {
			slog.Warn("skipping stored cpe", "sbomID", r.Sbom.ID, "node", c.NodeID, "cpe", c.Cpe, "err", err)
			continue
		}
		cpes[c.NodeID] = append(cpes[c.NodeID], identity)
	}

	return func(yield func(normalize.GraphNode) bool) {
		for _, n := range r.Nodes {
			node := normalize.GraphNode{
				NodeID: n.NodeID,
				Name:   n.Name,
				Purls:  purls[n.NodeID],
				Cpes:   cpes[n.NodeID],
			}
			if n.Version != nil {
				node.Version = *n.Version
			}
			if len(n.Properties) > 0 {
				node.Properties = make(map[string]string, len(n.Properties))
				for k, v := range n.Properties {
					if s, ok := v.(string); ok {
						node.Properties[k] = s
					} else {
						node.Properties[k] = fmt.Sprint(v)
					}
				}
			}
			if !yield(node) {
				return
			}
		}
	}
}

func (r SbomGraphRecords) GraphEdges() iter.Seq[normalize.GraphEdge] {
	return func(yield func(normalize.GraphEdge) bool) {
		for _, e := range r.Edges {
			if !yield(normalize.GraphEdge{
				Left:         e.LeftNodeID,
				Relationship: normalize.ParseRelationship(e.Relationship),
				Right:        e.RightNodeID,
			}) {
				return
			}
		}
	}
}

func (r SbomGraphRecords) ExternalReferences() []normalize.ExternalNodeReference {
	refs := make([]normalize.ExternalNodeReference, 0, len(r.Externals))
	for _, e := range r.Externals {
		refs = append(refs, normalize.ExternalNodeReference{
			LocalNodeID:     e.LocalNodeID,
			ExternalDocRef:  e.ExternalDocRef,
			ExternalNodeRef: e.ExternalNodeRef,
			Discriminator:   e.Discriminator,
		})
	}
	return refs
}

// Graph materializes the stored records.
func (r SbomGraphRecords) Graph() *normalize.SbomGraph {
	var opts []normalize.GraphOption
	if r.Sbom.RootNodeID != nil {
		opts = append(opts, normalize.WithDocumentRoot(*r.Sbom.RootNodeID))
	}
	return normalize.BuildSbomGraph(r.Sbom.ID, r.GraphNodes(), r.GraphEdges(), r.ExternalReferences(), opts...)
}
