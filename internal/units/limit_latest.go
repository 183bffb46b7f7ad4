package units

import "github.com/thoth-station/adviser-resolver/internal/resolver"

// LimitLatestVersions caps, per dependency name, how many of the
// newest candidate versions are considered at all, so that a package with
// a long release history does not blow up the number of paths explored.
// Grounded on thoth.adviser.python.pipeline.steps.limit_latest_versions's
// LimitLatestVersions (see test_limit_latest_versions.py), expressed here
// as a Sieve over the Oracle's already newest-first GetVersions result
// rather than a post-hoc path filter.
type LimitLatestVersions struct {
	Limit int
}

// NewLimitLatestVersions constructs a LimitLatestVersions unit. A Limit of
// zero or less disables the unit (ShouldInclude returns false), matching
// the original's "unset parameter means do nothing" default.
func NewLimitLatestVersions(limit int) *LimitLatestVersions {
	return &LimitLatestVersions{Limit: limit}
}

func (u *LimitLatestVersions) UnitName() string { return "LimitLatestVersions" }
func (u *LimitLatestVersions) Priority() int     { return 20 }

func (u *LimitLatestVersions) ShouldInclude(bc *resolver.BuilderContext) (map[string]interface{}, bool) {
	if u.Limit <= 0 {
		return nil, false
	}
	return map[string]interface{}{"limit_latest_versions": u.Limit}, true
}

func (u *LimitLatestVersions) PreRun(ctx *resolver.Context) error  { return nil }
func (u *LimitLatestVersions) PostRun(ctx *resolver.Context) error { return nil }

// Run truncates candidates (already newest-first, per the Oracle contract)
// to the configured limit.
func (u *LimitLatestVersions) Run(ctx *resolver.Context, name string, candidates []resolver.PackageTuple) ([]resolver.PackageTuple, error) {
	if len(candidates) <= u.Limit {
		return candidates, nil
	}
	return candidates[:u.Limit], nil
}
