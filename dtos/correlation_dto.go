package dtos

type AssertionDTO struct {
	ID         string `json:"id"`
	AdvisoryID string `json:"advisoryId"`
	Status     string `json:"status"`
	Identity   string `json:"identity"`
	Scheme     string `json:"scheme"`
	Range      string `json:"range"`
}

type VulnerabilityMatchDTO struct {
	VulnerabilityID string         `json:"vulnerabilityId"`
	Title           string         `json:"title,omitempty"`
	CVSSVector      string         `json:"cvssVector,omitempty"`
	BaseScore       float64        `json:"baseScore"`
	Severity        string         `json:"severity"`
	Assertions      []AssertionDTO `json:"assertions"`
}

type CorrelationDTO struct {
	Identity        string                  `json:"identity"`
	Vulnerabilities []VulnerabilityMatchDTO `json:"vulnerabilities"`
}

type AnalyzePurlsRequest struct {
	Purls []string `json:"purls" validate:"required,min=1,max=10000,dive,required"`
}

type NodeCorrelationDTO struct {
	Node         GraphNodeDTO     `json:"node"`
	Correlations []CorrelationDTO `json:"correlations"`
}
