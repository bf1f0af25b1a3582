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

package scan

import (
	"context"
	"log/slog"
	"time"

	"github.com/l3montree-dev/vulncorrelator/database/models"
	"github.com/l3montree-dev/vulncorrelator/monitoring"
	"github.com/l3montree-dev/vulncorrelator/normalize"
	"github.com/l3montree-dev/vulncorrelator/shared"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

const defaultParallelism = 8

type StatusCorrelator struct {
	statusAssertionRepository shared.StatusAssertionRepository
	parallelism               int
}

var _ shared.StatusCorrelator = (*StatusCorrelator)(nil)

func NewStatusCorrelator(statusAssertionRepository shared.StatusAssertionRepository) *StatusCorrelator {
	return &StatusCorrelator{
		statusAssertionRepository: statusAssertionRepository,
		parallelism:               shared.EnvInt("CORRELATION_PARALLELISM", defaultParallelism),
	}
}

// Correlate returns every assertion whose range contains the identity's version, grouped by vulnerability id.
// Identities without a version never match.
func (c *StatusCorrelator) Correlate(ctx context.Context, identity normalize.PackageIdentity) (map[string][]models.StatusAssertion, error) {
	if !identity.HasVersion() {
		return map[string][]models.StatusAssertion{}, nil
	}
	defer observe("package", time.Now())

	assertions, err := c.statusAssertionRepository.FindByBasePurl(ctx, identity.BasePurl())
	if err != nil {
		return nil, errors.Wrap(err, "could not load status assertions")
	}

	candidate := identity.CandidateVersion()
	matching := lo.Filter(assertions, func(a models.StatusAssertion, _ int) bool {
		r := a.Range()
		// the stored range decides how the version is ordered
		return matches(a, normalize.NewVersion(r.Scheme, candidate.Value), r)
	})
	return group(matching), nil
}

// CorrelatePlatform does the same for a cpe. The version attribute is tested against
// the range with the scheme the assertion names.
func (c *StatusCorrelator) CorrelatePlatform(ctx context.Context, cpe normalize.PlatformIdentity) (map[string][]models.StatusAssertion, error) {
	if cpe.Version.Kind != normalize.CpeValue {
		return map[string][]models.StatusAssertion{}, nil
	}
	defer observe("platform", time.Now())

	assertions, err := c.statusAssertionRepository.FindByPlatform(ctx, cpe)
	if err != nil {
		return nil, errors.Wrap(err, "could not load status assertions")
	}

	matching := make([]models.StatusAssertion, 0, len(assertions))
	for _, a := range assertions {
		stored, err := a.PlatformIdentity()
		if err != nil {
			slog.Warn("skipping assertion with unparsable cpe", "assertion", a.ID, "cpe", a.Identity(), "err", err)
			monitoring.SkippedAssertions.WithLabelValues("invalid_cpe").Inc()
			continue
		}
		if !stored.MatchesBase(cpe) {
			continue
		}
		r := a.Range()
		if matches(a, normalize.NewVersion(r.Scheme, cpe.Version.Value), r) {
			matching = append(matching, a)
		}
	}
	return group(matching), nil
}

// AnalyzePurls correlates all identities concurrently. The result keeps the input order.
func (c *StatusCorrelator) AnalyzePurls(ctx context.Context, identities []normalize.PackageIdentity) ([]models.Correlation, error) {
	results := make([]models.Correlation, len(identities))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(c.parallelism, 1))
	for i, identity := range identities {
		g.Go(func() error {
			found, err := c.Correlate(ctx, identity)
			if err != nil {
				return errors.Wrapf(err, "could not correlate %s", identity)
			}
			results[i] = models.Correlation{Identity: identity, Matches: found}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func matches(a models.StatusAssertion, candidate normalize.Version, r normalize.VersionRange) bool {
	if !r.Scheme.IsValid() {
		slog.Warn("skipping assertion with unknown version scheme", "assertion", a.ID, "vulnerability", a.VulnerabilityID, "scheme", r.Scheme)
		monitoring.SkippedAssertions.WithLabelValues("unknown_scheme").Inc()
		return false
	}
	ok, err := normalize.Matches(candidate, r)
	if err != nil {
		slog.Warn("skipping assertion", "assertion", a.ID, "vulnerability", a.VulnerabilityID, "err", err)
		monitoring.SkippedAssertions.WithLabelValues("scheme_mismatch").Inc()
		return false
	}
	return ok
}

func group(assertions []models.StatusAssertion) map[string][]models.StatusAssertion {
	for _, a := range assertions {
		monitoring.CorrelationMatches.WithLabelValues(string(a.Status)).Inc()
	}
	return lo.GroupBy(assertions, func(a models.StatusAssertion) string {
		return a.VulnerabilityID
	})
}

func observe(kind string, start time.Time) {
	monitoring.CorrelationDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}
