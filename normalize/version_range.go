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
	"strings"

	"github.com/pkg/errors"
)

var ErrEmptyRange = errors.New("version range is empty")

// Version is an opaque version string tagged with the scheme that orders it.
type Version struct {
	Scheme VersionScheme `json:"scheme"`
	Value  string        `json:"value"`
}

func NewVersion(scheme VersionScheme, value string) Version {
	return Version{Scheme: scheme, Value: value}
}

func (v Version) String() string {
	return fmt.Sprintf("%s:%s", v.Scheme.orGeneric(), v.Value)
}

type Bound struct {
	Version   string `json:"version"`
	Inclusive bool   `json:"inclusive"`
}

// VersionRange is a pair of optional bounds under one scheme.
// A range without bounds matches every version.
type VersionRange struct {
	Scheme VersionScheme `json:"scheme"`
	Low    *Bound        `json:"low,omitempty"`
	High   *Bound        `json:"high,omitempty"`
}

// Exact returns the range containing only v.
func Exact(v Version) VersionRange {
	return VersionRange{
		Scheme: v.Scheme,
		Low:    &Bound{Version: v.Value, Inclusive: true},
		High:   &Bound{Version: v.Value, Inclusive: true},
	}
}

// AnyVersion returns the unbounded range.
func AnyVersion(scheme VersionScheme) VersionRange {
	return VersionRange{Scheme: scheme}
}

// RangeFromEvents converts osv style introduced/fixed/last_affected events into a range.
// An introduced value of "0" (or empty) leaves the range open below. fixed is exclusive,
// lastAffected inclusive. When both upper events are present, fixed wins.
func RangeFromEvents(scheme VersionScheme, introduced, fixed, lastAffected string) VersionRange {
	r := VersionRange{Scheme: scheme}
	if introduced != "" && introduced != "0" {
		r.Low = &Bound{Version: introduced, Inclusive: true}
	}
	switch {
	case fixed != "":
		r.High = &Bound{Version: fixed, Inclusive: false}
	case lastAffected != "":
		r.High = &Bound{Version: lastAffected, Inclusive: true}
	}
	return r
}

func (r VersionRange) IsAny() bool {
	return r.Low == nil && r.High == nil
}

func (r VersionRange) IsExact() bool {
	return r.Low != nil && r.High != nil && r.Low.Inclusive && r.High.Inclusive &&
		Compare(r.Scheme, r.Low.Version, r.High.Version) == 0
}

// Validate rejects ranges that cannot contain any version.
func (r VersionRange) Validate() error {
	if r.Scheme != "" && !r.Scheme.IsValid() {
		return errors.Wrapf(ErrUnknownScheme, "%q", string(r.Scheme))
	}
	if r.Low == nil || r.High == nil {
		return nil
	}
	c := Compare(r.Scheme, r.Low.Version, r.High.Version)
	if c > 0 || (c == 0 && !(r.Low.Inclusive && r.High.Inclusive)) {
		return errors.Wrapf(ErrEmptyRange, "%s", r)
	}
	return nil
}

// Contains tests value against the bounds using the range's scheme.
func (r VersionRange) Contains(value string) bool {
	if r.Low != nil {
		c := Compare(r.Scheme, value, r.Low.Version)
		if c < 0 || (c == 0 && !r.Low.Inclusive) {
			return false
		}
	}
	if r.High != nil {
		c := Compare(r.Scheme, value, r.High.Version)
		if c > 0 || (c == 0 && !r.High.Inclusive) {
			return false
		}
	}
	return true
}

// Matches reports whether candidate lies inside r. Candidate and range must share a scheme;
// a mismatch is a caller error and is never coerced.
func Matches(candidate Version, r VersionRange) (bool, error) {
	if candidate.Scheme.orGeneric() != r.Scheme.orGeneric() {
		return false, errors.Wrapf(ErrSchemeMismatch, "candidate %s, range %s", candidate.Scheme.orGeneric(), r.Scheme.orGeneric())
	}
	return r.Contains(candidate.Value), nil
}

// String renders the range in interval notation, e.g. "[1.0, 2.0)".
func (r VersionRange) String() string {
	if r.IsAny() {
		return "*"
	}
	var sb strings.Builder
	if r.Low != nil {
		if r.Low.Inclusive {
			sb.WriteString("[")
		} else {
			sb.WriteString("(")
		}
		sb.WriteString(r.Low.Version)
	} else {
		sb.WriteString("(")
	}
	sb.WriteString(", ")
	if r.High != nil {
		sb.WriteString(r.High.Version)
		if r.High.Inclusive {
			sb.WriteString("]")
		} else {
			sb.WriteString(")")
		}
	} else {
		sb.WriteString(")")
	}
	return sb.String()
}
