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

package transformer

import (
	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/gosimple/slug"
	"github.com/l3montree-dev/vulncorrelator/database/models"
	"github.com/l3montree-dev/vulncorrelator/dtos"
	"github.com/l3montree-dev/vulncorrelator/normalize"
	"github.com/l3montree-dev/vulncorrelator/utils"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

var ErrInvalidIdentity = errors.New("invalid identity")

func SbomIngestDTOToRecords(dto dtos.SbomIngestDTO) (models.SbomGraphRecords, error) {
	nodes := make([]normalize.GraphNode, 0, len(dto.Nodes))
	for _, n := range dto.Nodes {
		node, err := GraphNodeFromDTO(n)
		if err != nil {
			return models.SbomGraphRecords{}, err
		}
		nodes = append(nodes, node)
	}

	edges := lo.Map(dto.Edges, func(e dtos.GraphEdgeDTO, _ int) normalize.GraphEdge {
		return normalize.GraphEdge{
			Left:         e.Left,
			Relationship: normalize.ParseRelationship(e.Relationship),
			Right:        e.Right,
		}
	})

	externals := lo.Map(dto.ExternalReferences, func(e dtos.ExternalReferenceDTO, _ int) normalize.ExternalNodeReference {
		return normalize.ExternalNodeReference{
			LocalNodeID:     e.LocalNodeID,
			ExternalDocRef:  e.ExternalDocRef,
			ExternalNodeRef: e.ExternalNodeRef,
			Discriminator:   e.Discriminator,
		}
	})

	id := dto.ID
	if id == "" {
		id = slug.Make(dto.Name)
	}
	if id == "" {
		return models.SbomGraphRecords{}, errors.Wrap(ErrInvalidIdentity, "sbom needs an id or a name")
	}

	sbom := models.Sbom{
		ID:          id,
		DocumentRef: dto.DocumentRef,
		Name:        dto.Name,
		Format:      dto.Format,
		RootNodeID:  utils.EmptyThenNil(dto.RootNodeID),
	}
	return models.NewSbomGraphRecords(sbom, nodes, edges, externals), nil
}

// CycloneDXToSbomIngestDTO flattens the components and dependencies of a cyclonedx document.
// The metadata component becomes a node as well and is declared as the root.
func CycloneDXToSbomIngestDTO(bom *cdx.BOM, id string) dtos.SbomIngestDTO {
	dto := dtos.SbomIngestDTO{
		ID:          id,
		DocumentRef: bom.SerialNumber,
		Format:      "cyclonedx",
		RootNodeID:  normalize.CycloneDXRootRef(bom),
	}

	seen := make(map[string]bool)
	var visit func(components []cdx.Component)
	visit = func(components []cdx.Component) {
		for _, c := range components {
			node := componentToNodeDTO(c)
			if node.NodeID != "" && !seen[node.NodeID] {
				seen[node.NodeID] = true
				dto.Nodes = append(dto.Nodes, node)
			}
			if c.Components != nil {
				visit(*c.Components)
			}
		}
	}
	if bom.Metadata != nil && bom.Metadata.Component != nil {
		dto.Name = bom.Metadata.Component.Name
		visit([]cdx.Component{*bom.Metadata.Component})
	}
	if bom.Components != nil {
		visit(*bom.Components)
	}

	if bom.Dependencies != nil {
		for _, d := range *bom.Dependencies {
			if d.Dependencies == nil {
				continue
			}
			for _, child := range *d.Dependencies {
				dto.Edges = append(dto.Edges, dtos.GraphEdgeDTO{Left: d.Ref, Relationship: string(normalize.RelDependsOn), Right: child})
			}
		}
	}
	return dto
}

// components without a bom-ref are identified by their purl
func componentToNodeDTO(c cdx.Component) dtos.GraphNodeDTO {
	node := dtos.GraphNodeDTO{NodeID: c.BOMRef, Name: c.Name, Version: c.Version}
	if node.NodeID == "" {
		node.NodeID = c.PackageURL
	}
	if c.PackageURL != "" {
		node.Purls = []string{c.PackageURL}
	}
	if c.CPE != "" {
		node.Cpes = []string{c.CPE}
	}
	if c.Properties != nil && len(*c.Properties) > 0 {
		node.Properties = make(map[string]string, len(*c.Properties))
		for _, p := range *c.Properties {
			node.Properties[p.Name] = p.Value
		}
	}
	return node
}

func GraphNodeFromDTO(dto dtos.GraphNodeDTO) (normalize.GraphNode, error) {
	node := normalize.GraphNode{NodeID: dto.NodeID, Name: dto.Name, Version: dto.Version, Properties: dto.Properties}
	for _, p := range dto.Purls {
		identity, err := normalize.ParsePackageIdentity(p)
		if err != nil {
			return node, errors.Wrapf(ErrInvalidIdentity, "node %s: %s", dto.NodeID, err)
		}
		node.Purls = append(node.Purls, identity)
	}
	for _, c := range dto.Cpes {
		identity, err := normalize.ParsePlatformIdentity(c)
		if err != nil {
			return node, errors.Wrapf(ErrInvalidIdentity, "node %s: %s", dto.NodeID, err)
		}
		node.Cpes = append(node.Cpes, identity)
	}
	return node, nil
}

func GraphNodeToDTO(node normalize.GraphNode) dtos.GraphNodeDTO {
	dto := dtos.GraphNodeDTO{NodeID: node.NodeID, Name: node.Name, Version: node.Version, Properties: node.Properties}
	for _, p := range node.Purls {
		dto.Purls = append(dto.Purls, p.String())
	}
	for _, c := range node.Cpes {
		dto.Cpes = append(dto.Cpes, c.String())
	}
	return dto
}

func GraphNodesToDTO(nodes []normalize.GraphNode) []dtos.GraphNodeDTO {
	return lo.Map(nodes, func(n normalize.GraphNode, _ int) dtos.GraphNodeDTO {
		return GraphNodeToDTO(n)
	})
}

func NodeMatchesToDTO(matches []models.NodeMatch) []dtos.NodeMatchDTO {
	return lo.Map(matches, func(m models.NodeMatch, _ int) dtos.NodeMatchDTO {
		return dtos.NodeMatchDTO{SbomID: m.SbomID, Node: GraphNodeToDTO(m.Node)}
	})
}
