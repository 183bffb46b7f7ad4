package units

import (
	"github.com/Masterminds/semver"

	"github.com/thoth-station/adviser-resolver/internal/resolver"
)

// CutPreReleases removes pre-release and build-metadata candidate versions
// from a dependency's version list unless the project explicitly allows
// pre-releases. Grounded on
// thoth.adviser.python.pipeline.steps.prereleases.CutPreReleases, expressed
// here as a Sieve (it filters GetVersions output) rather than the
// original's Step (which filtered an already-materialized dependency
// graph), since this engine applies version filtering before expansion.
type CutPreReleases struct {
	prereleasesAllowed bool
}

func NewCutPreReleases() *CutPreReleases { return &CutPreReleases{} }

func (u *CutPreReleases) UnitName() string { return "CutPreReleases" }
func (u *CutPreReleases) Priority() int     { return 10 }

func (u *CutPreReleases) ShouldInclude(bc *resolver.BuilderContext) (map[string]interface{}, bool) {
	if bc.Project.PrereleasesAllowed {
		return nil, false
	}
	return map[string]interface{}{}, true
}

func (u *CutPreReleases) PreRun(ctx *resolver.Context) error  { return nil }
func (u *CutPreReleases) PostRun(ctx *resolver.Context) error { return nil }

// Run drops any candidate whose version parses with a non-empty
// Prerelease() or Metadata() component. Candidates that fail to parse as
// semver are passed through unfiltered; version-format validity is another
// unit's concern.
func (u *CutPreReleases) Run(ctx *resolver.Context, name string, candidates []resolver.PackageTuple) ([]resolver.PackageTuple, error) {
	out := make([]resolver.PackageTuple, 0, len(candidates))
	for _, c := range candidates {
		v, err := semver.NewVersion(c.Version)
		if err != nil {
			out = append(out, c)
			continue
		}
		if v.Prerelease() != "" || v.Metadata() != "" {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}
