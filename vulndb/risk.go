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

package vulndb

import (
	"log/slog"
	"math"
	"strings"

	gocvss20 "github.com/pandatix/go-cvss/20"
	gocvss30 "github.com/pandatix/go-cvss/30"
	gocvss31 "github.com/pandatix/go-cvss/31"
	gocvss40 "github.com/pandatix/go-cvss/40"
	"github.com/pkg/errors"
)

var ErrUnsupportedVector = errors.New("unsupported cvss vector")

// BaseScore derives the base score of a stored cvss vector.
// An empty or unparsable vector scores 0.
func BaseScore(vector string) float64 {
	if vector == "" {
		return 0
	}
	score, err := ParseBaseScore(vector)
	if err != nil {
		slog.Warn("could not derive base score", "vector", vector, "err", err)
		return 0
	}
	return score
}

func ParseBaseScore(vector string) (float64, error) {
	switch {
	case strings.HasPrefix(vector, "CVSS:4.0/"):
		cvss, err := gocvss40.ParseVector(vector)
		if err != nil {
			return 0, errors.Wrap(err, "could not parse cvss 4.0 vector")
		}
		return round(cvss.Score()), nil
	case strings.HasPrefix(vector, "CVSS:3.1/"):
		cvss, err := gocvss31.ParseVector(vector)
		if err != nil {
			return 0, errors.Wrap(err, "could not parse cvss 3.1 vector")
		}
		return round(cvss.BaseScore()), nil
	case strings.HasPrefix(vector, "CVSS:3.0/"):
		cvss, err := gocvss30.ParseVector(vector)
		if err != nil {
			return 0, errors.Wrap(err, "could not parse cvss 3.0 vector")
		}
		return round(cvss.BaseScore()), nil
	case strings.HasPrefix(vector, "AV:"):
		cvss, err := gocvss20.ParseVector(vector)
		if err != nil {
			return 0, errors.Wrap(err, "could not parse cvss 2.0 vector")
		}
		return round(cvss.BaseScore()), nil
	}
	return 0, errors.Wrapf(ErrUnsupportedVector, "%q", vector)
}

// Severity maps a score onto the qualitative cvss rating.
func Severity(score float64) string {
	switch {
	case score <= 0:
		return "none"
	case score < 4:
		return "low"
	case score < 7:
		return "medium"
	case score < 9:
		return "high"
	default:
		return "critical"
	}
}

func round(f float64) float64 {
	return math.Round(f*10) / 10
}
