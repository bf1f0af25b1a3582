package dtos

type GraphNodeDTO struct {
	NodeID  string   `json:"nodeId" validate:"required"`
	Name    string   `json:"name"`
	Version string   `json:"version,omitempty"`
	Purls   []string `json:"purls,omitempty" validate:"dive,required"`
	Cpes    []string `json:"cpes,omitempty" validate:"dive,required"`

	Properties map[string]string `json:"properties,omitempty"`
}

type GraphEdgeDTO struct {
	Left         string `json:"left" validate:"required"`
	Relationship string `json:"relationship"`
	Right        string `json:"right" validate:"required"`
}

// ExternalReferenceDTO points a local node at a node of another document.
// ExternalDocRef is the document ref (namespace or serial number) of the other sbom.
type ExternalReferenceDTO struct {
	LocalNodeID     string `json:"localNodeId" validate:"required"`
	ExternalDocRef  string `json:"externalDocRef" validate:"required"`
	ExternalNodeRef string `json:"externalNodeRef" validate:"required"`
	Discriminator   string `json:"discriminator,omitempty"`
}

type SbomIngestDTO struct {
	// ID defaults to the slug of Name.
	ID          string `json:"id" validate:"required_without=Name"`
	DocumentRef string `json:"documentRef"`
	Name        string `json:"name" validate:"required_without=ID"`
	Format      string `json:"format" validate:"omitempty,oneof=spdx cyclonedx"`
	RootNodeID  string `json:"rootNodeId,omitempty"`

	Nodes              []GraphNodeDTO         `json:"nodes" validate:"dive"`
	Edges              []GraphEdgeDTO         `json:"edges" validate:"dive"`
	ExternalReferences []ExternalReferenceDTO `json:"externalReferences" validate:"dive"`
}

type NodeMatchDTO struct {
	SbomID string       `json:"sbomId"`
	Node   GraphNodeDTO `json:"node"`
}

type TraversalDTO struct {
	SbomID string         `json:"sbomId"`
	Ref    string         `json:"ref,omitempty"`
	Depth  int            `json:"depth"`
	Nodes  []GraphNodeDTO `json:"nodes"`
}

type CacheStatusDTO struct {
	SbomID string `json:"sbomId"`
	State  string `json:"state"`
}
