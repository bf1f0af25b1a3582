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
)

// Advisory is one published document (OSV, CSAF, vendor bulletin) asserting statuses.
type Advisory struct {
	ID        string     `json:"id" gorm:"primaryKey;type:text"`
	Source    string     `json:"source" gorm:"type:text"`
	Title     string     `json:"title" gorm:"type:text"`
	Published *time.Time `json:"published"`
	Modified  *time.Time `json:"modified"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Vulnerabilities []Vulnerability   `json:"vulnerabilities" gorm:"many2many:advisory_vulnerabilities;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Assertions      []StatusAssertion `json:"assertions" gorm:"foreignKey:AdvisoryID;constraint:OnDelete:CASCADE;"`
}

func (a Advisory) TableName() string {
	return "advisories"
}

type Vulnerability struct {
	ID          string     `json:"id" gorm:"primaryKey;type:text"`
	Title       string     `json:"title" gorm:"type:text"`
	Description string     `json:"description" gorm:"type:text"`
	CVSSVector  string     `json:"cvssVector" gorm:"type:text;column:cvss_vector"`
	Published   *time.Time `json:"published"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (v Vulnerability) TableName() string {
	return "vulnerabilities"
}
