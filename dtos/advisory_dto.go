package dtos

import "time"

type VulnerabilityDTO struct {
	ID          string     `json:"id" validate:"required"`
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	CVSSVector  string     `json:"cvssVector,omitempty"`
	Published   *time.Time `json:"published,omitempty"`
}

type BoundDTO struct {
	Version   string `json:"version" validate:"required"`
	Inclusive bool   `json:"inclusive"`
}

// StatusAssertionDTO names exactly one of Purl or Cpe. The range is either given as
// bounds or as osv style events, bounds take precedence.
type StatusAssertionDTO struct {
	VulnerabilityID string `json:"vulnerabilityId" validate:"required"`
	Status          string `json:"status" validate:"required,oneof=affected fixed not_affected under_investigation"`

	Purl string `json:"purl,omitempty" validate:"required_without=Cpe,excluded_with=Cpe"`
	Cpe  string `json:"cpe,omitempty" validate:"required_without=Purl"`

	Scheme string    `json:"scheme,omitempty"`
	Low    *BoundDTO `json:"low,omitempty"`
	High   *BoundDTO `json:"high,omitempty"`

	Introduced   string `json:"introduced,omitempty"`
	Fixed        string `json:"fixed,omitempty"`
	LastAffected string `json:"lastAffected,omitempty"`
}

type AdvisoryIngestDTO struct {
	ID        string     `json:"id" validate:"required"`
	Source    string     `json:"source"`
	Title     string     `json:"title,omitempty"`
	Published *time.Time `json:"published,omitempty"`
	Modified  *time.Time `json:"modified,omitempty"`

	Vulnerabilities []VulnerabilityDTO   `json:"vulnerabilities" validate:"dive"`
	Assertions      []StatusAssertionDTO `json:"assertions" validate:"dive"`
}

type AdvisoryAssertionDTO struct {
	VulnerabilityID string `json:"vulnerabilityId"`
	AssertionDTO
}

type AdvisoryDTO struct {
	ID        string     `json:"id"`
	Source    string     `json:"source"`
	Title     string     `json:"title,omitempty"`
	Published *time.Time `json:"published,omitempty"`
	Modified  *time.Time `json:"modified,omitempty"`

	Vulnerabilities []VulnerabilityDTO     `json:"vulnerabilities"`
	Assertions      []AdvisoryAssertionDTO `json:"assertions"`
}
