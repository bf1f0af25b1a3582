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
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"
)

var ErrInvalidCPE = errors.New("invalid cpe")

type CpeAttributeKind string

const (
	CpeAny           CpeAttributeKind = "any"
	CpeNotApplicable CpeAttributeKind = "na"
	CpeValue         CpeAttributeKind = "value"
)

// CpeAttribute is one component of a cpe. The zero value is Any.
type CpeAttribute struct {
	Kind  CpeAttributeKind `json:"kind,omitempty"`
	Value string           `json:"value,omitempty"`
}

func CpeAttr(value string) CpeAttribute {
	switch value {
	case "", "*":
		return CpeAttribute{Kind: CpeAny}
	case "-":
		return CpeAttribute{Kind: CpeNotApplicable}
	}
	return CpeAttribute{Kind: CpeValue, Value: value}
}

func (a CpeAttribute) IsAny() bool {
	return a.Kind == CpeAny || a.Kind == ""
}

// a Caser keeps state and must not be shared between goroutines
func fold(s string) string {
	return cases.Fold().String(s)
}

// Matches treats Any on either side as a wildcard. NotApplicable only matches
// NotApplicable, literal values are compared case-insensitively.
func (a CpeAttribute) Matches(other CpeAttribute) bool {
	if a.IsAny() || other.IsAny() {
		return true
	}
	if a.Kind == CpeNotApplicable || other.Kind == CpeNotApplicable {
		return a.Kind == other.Kind
	}
	return fold(a.Value) == fold(other.Value)
}

// formatted string binding of the attribute
func (a CpeAttribute) String() string {
	switch {
	case a.IsAny():
		return "*"
	case a.Kind == CpeNotApplicable:
		return "-"
	}
	var sb strings.Builder
	for _, r := range a.Value {
		switch r {
		case '\\', ':', '*', '?':
			sb.WriteRune('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// PlatformIdentity is a cpe 2.3 name.
type PlatformIdentity struct {
	Part      CpeAttribute `json:"part"`
	Vendor    CpeAttribute `json:"vendor"`
	Product   CpeAttribute `json:"product"`
	Version   CpeAttribute `json:"version"`
	Update    CpeAttribute `json:"update"`
	Edition   CpeAttribute `json:"edition"`
	Language  CpeAttribute `json:"language"`
	SwEdition CpeAttribute `json:"swEdition"`
	TargetSw  CpeAttribute `json:"targetSw"`
	TargetHw  CpeAttribute `json:"targetHw"`
	Other     CpeAttribute `json:"other"`
}

func (p *PlatformIdentity) fields() []*CpeAttribute {
	return []*CpeAttribute{
		&p.Part, &p.Vendor, &p.Product, &p.Version, &p.Update, &p.Edition,
		&p.Language, &p.SwEdition, &p.TargetSw, &p.TargetHw, &p.Other,
	}
}

// ParsePlatformIdentity accepts the cpe 2.3 formatted string binding ("cpe:2.3:a:...")
// and the legacy 2.2 uri binding ("cpe:/a:...").
func ParsePlatformIdentity(s string) (PlatformIdentity, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "cpe:2.3:"):
		return parseFormattedString(s)
	case strings.HasPrefix(s, "cpe:/"):
		return parseURI(s)
	}
	return PlatformIdentity{}, errors.Wrapf(ErrInvalidCPE, "%q", s)
}

func parseFormattedString(s string) (PlatformIdentity, error) {
	parts := splitUnescaped(strings.TrimPrefix(s, "cpe:2.3:"))
	var p PlatformIdentity
	fields := p.fields()
	if len(parts) != len(fields) {
		return PlatformIdentity{}, errors.Wrapf(ErrInvalidCPE, "%q has %d components, expected %d", s, len(parts), len(fields))
	}
	for i, raw := range parts {
		if raw == "" || raw == "*" || raw == "-" {
			*fields[i] = CpeAttr(raw)
			continue
		}
		// an escaped \* or \- is a literal value, not a logical one
		*fields[i] = CpeAttribute{Kind: CpeValue, Value: unescape(raw)}
	}
	if p.Part.Kind == CpeValue && !isValidPart(p.Part.Value) {
		return PlatformIdentity{}, errors.Wrapf(ErrInvalidCPE, "%q: unknown part %q", s, p.Part.Value)
	}
	return p, nil
}

func parseURI(s string) (PlatformIdentity, error) {
	parts := strings.Split(strings.TrimPrefix(s, "cpe:/"), ":")
	if len(parts) > 7 {
		return PlatformIdentity{}, errors.Wrapf(ErrInvalidCPE, "%q has too many components", s)
	}
	var p PlatformIdentity
	fields := p.fields()
	for i, raw := range parts {
		decoded, err := url.PathUnescape(raw)
		if err != nil {
			return PlatformIdentity{}, errors.Wrapf(ErrInvalidCPE, "%q: %s", s, err)
		}
		// packed edition: ~edition~sw_edition~target_sw~target_hw~other
		if i == 5 && strings.HasPrefix(decoded, "~") {
			packed := strings.Split(decoded[1:], "~")
			targets := []*CpeAttribute{&p.Edition, &p.SwEdition, &p.TargetSw, &p.TargetHw, &p.Other}
			for j, v := range packed {
				if j < len(targets) {
					*targets[j] = CpeAttr(v)
				}
			}
			continue
		}
		if raw == "" || raw == "*" || raw == "-" {
			*fields[i] = CpeAttr(raw)
			continue
		}
		// a percent-encoded %2a stays a literal value
		*fields[i] = CpeAttribute{Kind: CpeValue, Value: decoded}
	}
	if p.Part.Kind == CpeValue && !isValidPart(p.Part.Value) {
		return PlatformIdentity{}, errors.Wrapf(ErrInvalidCPE, "%q: unknown part %q", s, p.Part.Value)
	}
	return p, nil
}

func isValidPart(part string) bool {
	return part == "a" || part == "o" || part == "h"
}

func splitUnescaped(s string) []string {
	var parts []string
	var cur strings.Builder
	escaped := false
	for _, r := range s {
		switch {
		case escaped:
			cur.WriteRune('\\')
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == ':':
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	return append(parts, cur.String())
}

func unescape(s string) string {
	var sb strings.Builder
	escaped := false
	for _, r := range s {
		if !escaped && r == '\\' {
			escaped = true
			continue
		}
		escaped = false
		sb.WriteRune(r)
	}
	return sb.String()
}

// String returns the cpe 2.3 formatted string binding.
func (p PlatformIdentity) String() string {
	fields := p.fields()
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.String()
	}
	return "cpe:2.3:" + strings.Join(parts, ":")
}

// Matches compares every attribute.
func (p PlatformIdentity) Matches(other PlatformIdentity) bool {
	a, b := p.fields(), other.fields()
	for i := range a {
		if !a[i].Matches(*b[i]) {
			return false
		}
	}
	return true
}

// MatchesBase compares every attribute except the version, which is tested against
// a stored range instead.
func (p PlatformIdentity) MatchesBase(other PlatformIdentity) bool {
	p.Version, other.Version = CpeAttribute{Kind: CpeAny}, CpeAttribute{Kind: CpeAny}
	return p.Matches(other)
}

func (p PlatformIdentity) WithoutVersion() PlatformIdentity {
	p.Version = CpeAttribute{Kind: CpeAny}
	return p
}

// ID is derived from the canonical (case folded) formatted string.
func (p PlatformIdentity) ID() uuid.UUID {
	return uuid.NewSHA1(identityNamespace, []byte(fold(p.String())))
}

// VendorKey and ProductKey are the folded lookup keys of stored assertions.
// Values keep their escaping so a literal * never collides with Any.
func (p PlatformIdentity) VendorKey() string {
	return fold(p.Vendor.String())
}

func (p PlatformIdentity) ProductKey() string {
	return fold(p.Product.String())
}
