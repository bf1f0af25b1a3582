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
	"time"

	"github.com/google/uuid"
	"github.com/l3montree-dev/vulncorrelator/normalize"
	"github.com/l3montree-dev/vulncorrelator/utils"
	"github.com/openvex/go-vex/pkg/vex"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type IdentityKind string

const (
	IdentityPackage  IdentityKind = "package"
	IdentityPlatform IdentityKind = "platform"
)

// StatusAssertion states that every version of a base identity inside a range has
// a status for one vulnerability. The id is derived from the content, so storing the
// same assertion twice is a no-op. Assertions are never updated.
type StatusAssertion struct {
	ID              uuid.UUID    `json:"id" gorm:"primaryKey;type:uuid"`
	AdvisoryID      string       `json:"advisoryId" gorm:"type:text;not null;index"`
	VulnerabilityID string       `json:"vulnerabilityId" gorm:"type:text;not null;index"`
	Status          vex.Status   `json:"status" gorm:"type:text;not null"`
	IdentityKind    IdentityKind `json:"identityKind" gorm:"type:text;not null"`

	// package identities
	BasePurl *string `json:"basePurl,omitempty" gorm:"type:text;index"`

	// platform identities, cpe is stored without its version
	CpeVendor  *string `json:"cpeVendor,omitempty" gorm:"type:text;index:idx_status_assertions_platform"`
	CpeProduct *string `json:"cpeProduct,omitempty" gorm:"type:text;index:idx_status_assertions_platform"`
	Cpe        *string `json:"cpe,omitempty" gorm:"type:text"`

	Scheme        string  `json:"scheme" gorm:"type:text;not null"`
	LowVersion    *string `json:"lowVersion,omitempty" gorm:"type:text"`
	LowInclusive  bool    `json:"lowInclusive"`
	HighVersion   *string `json:"highVersion,omitempty" gorm:"type:text"`
	HighInclusive bool    `json:"highInclusive"`

	CreatedAt time.Time `json:"createdAt"`
}

func (a StatusAssertion) TableName() string {
	return "status_assertions"
}

var ErrInvalidStatus = errors.New("invalid status")

// NewPackageAssertion stores base without version and qualifiers.
func NewPackageAssertion(advisoryID, vulnID string, status vex.Status, base normalize.PackageIdentity, r normalize.VersionRange) StatusAssertion {
	basePurl := base.BasePurl()
	a := StatusAssertion{
		AdvisoryID:      advisoryID,
		VulnerabilityID: vulnID,
		Status:          status,
		IdentityKind:    IdentityPackage,
		BasePurl:        &basePurl,
	}
	a.setRange(r)
	a.ID = a.CalculateID()
	return a
}

// NewPlatformAssertion drops the cpe version, the range takes its place.
func NewPlatformAssertion(advisoryID, vulnID string, status vex.Status, cpe normalize.PlatformIdentity, r normalize.VersionRange) StatusAssertion {
	vendor, product := cpe.VendorKey(), cpe.ProductKey()
	cpeStr := cpe.WithoutVersion().String()
	a := StatusAssertion{
		AdvisoryID:      advisoryID,
		VulnerabilityID: vulnID,
		Status:          status,
		IdentityKind:    IdentityPlatform,
		CpeVendor:       &vendor,
		CpeProduct:      &product,
		Cpe:             &cpeStr,
	}
	a.setRange(r)
	a.ID = a.CalculateID()
	return a
}

func (a *StatusAssertion) setRange(r normalize.VersionRange) {
	a.Scheme = string(r.Scheme)
	if a.Scheme == "" {
		a.Scheme = string(normalize.SchemeGeneric)
	}
	if r.Low != nil {
		a.LowVersion = &r.Low.Version
		a.LowInclusive = r.Low.Inclusive
	}
	if r.High != nil {
		a.HighVersion = &r.High.Version
		a.HighInclusive = r.High.Inclusive
	}
}

// Range rebuilds the version range of the assertion.
func (a StatusAssertion) Range() normalize.VersionRange {
	r := normalize.VersionRange{Scheme: normalize.VersionScheme(a.Scheme)}
	if a.LowVersion != nil {
		r.Low = &normalize.Bound{Version: *a.LowVersion, Inclusive: a.LowInclusive}
	}
	if a.HighVersion != nil {
		r.High = &normalize.Bound{Version: *a.HighVersion, Inclusive: a.HighInclusive}
	}
	return r
}

func (a StatusAssertion) Identity() string {
	if a.IdentityKind == IdentityPlatform {
		return utils.SafeDereference(a.Cpe)
	}
	return utils.SafeDereference(a.BasePurl)
}

func (a StatusAssertion) PlatformIdentity() (normalize.PlatformIdentity, error) {
	if a.IdentityKind != IdentityPlatform || a.Cpe == nil {
		return normalize.PlatformIdentity{}, errors.Wrapf(normalize.ErrInvalidCPE, "assertion %s has no platform identity", a.ID)
	}
	return normalize.ParsePlatformIdentity(*a.Cpe)
}

func (a StatusAssertion) CalculateID() uuid.UUID {
	return normalize.ContentID(
		a.AdvisoryID,
		a.VulnerabilityID,
		string(a.Status),
		string(a.IdentityKind),
		a.Identity(),
		a.Range().String(),
		a.Scheme,
	)
}

func (a *StatusAssertion) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = a.CalculateID()
	}
	if !IsValidStatus(a.Status) {
		return errors.Wrapf(ErrInvalidStatus, "%q", a.Status)
	}
	return nil
}

func IsValidStatus(s vex.Status) bool {
	switch s {
	case vex.StatusAffected, vex.StatusFixed, vex.StatusNotAffected, vex.StatusUnderInvestigation:
		return true
	}
	return false
}
