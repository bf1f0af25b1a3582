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
	"github.com/l3montree-dev/vulncorrelator/normalize"
)

// Correlation is the result of correlating one identity. Matches are grouped by
// vulnerability id and keep every matching assertion.
type Correlation struct {
	Identity normalize.PackageIdentity
	Matches  map[string][]StatusAssertion
}

// NodeCorrelation links the correlations of one sbom node's purls to the node.
type NodeCorrelation struct {
	Node         normalize.GraphNode
	Correlations []Correlation
}

// NodeMatch is a node found in one of the cached graphs.
type NodeMatch struct {
	SbomID string
	Node   normalize.GraphNode
}
