package units

import (
	"github.com/Masterminds/semver"

	"github.com/thoth-station/adviser-resolver/internal/resolver"
)

// RecommendationTypeScore assigns a score delta to each accepted candidate
// based on the run's configured RecommendationType. It never rejects: every
// recommendation type produces a non-negative contribution, so a Step
// alone can never be the reason a stack's total score goes negative
// (spec.md §8 invariant 1).
type RecommendationTypeScore struct {
	recommendationType resolver.RecommendationType
}

func NewRecommendationTypeScore() *RecommendationTypeScore { return &RecommendationTypeScore{} }

func (u *RecommendationTypeScore) UnitName() string { return "RecommendationTypeScore" }
func (u *RecommendationTypeScore) Priority() int     { return 0 }

func (u *RecommendationTypeScore) ShouldInclude(bc *resolver.BuilderContext) (map[string]interface{}, bool) {
	return map[string]interface{}{"recommendation_type": string(bc.RecommendationType)}, true
}

func (u *RecommendationTypeScore) PreRun(ctx *resolver.Context) error  { return nil }
func (u *RecommendationTypeScore) PostRun(ctx *resolver.Context) error { return nil }

// Run scores pt according to ctx.RecommendationType:
//   - LATEST gives every candidate the same full reward (1.0)
//     (LimitLatestVersions/CutPreReleases already bias the pool toward
//     recency).
//   - STABLE gives a smaller reward (0.25, never negative) to anything
//     that still parses as a prerelease, for callers that allow
//     prereleases but prefer to avoid them when possible, and 1.0
//     otherwise.
//   - every other type (TESTING/PERFORMANCE/SECURITY, or unset) gets a
//     flat reward of 0.5; no advisory hints are consulted.
func (u *RecommendationTypeScore) Run(ctx *resolver.Context, state *resolver.State, pt resolver.PackageTuple) (*resolver.StepResult, error) {
	const baseReward = 1.0

	switch ctx.RecommendationType {
	case resolver.RecommendationStable:
		if v, err := semver.NewVersion(pt.Version); err == nil && v.Prerelease() != "" {
			return &resolver.StepResult{ScoreDelta: baseReward * 0.25}, nil
		}
		return &resolver.StepResult{ScoreDelta: baseReward}, nil
	case resolver.RecommendationLatest:
		return &resolver.StepResult{ScoreDelta: baseReward}, nil
	default:
		return &resolver.StepResult{ScoreDelta: baseReward * 0.5}, nil
	}
}

// DuplicatesRejection is a belt-and-suspenders guard against the same
// package name resolving to two different versions within one State. The
// State's AddResolved already refuses a second resolution of the same
// name, so in practice this Step never fires; it exists so a future
// relaxation of that invariant fails closed instead of silently producing
// an inconsistent stack.
type DuplicatesRejection struct{}

func NewDuplicatesRejection() *DuplicatesRejection { return &DuplicatesRejection{} }

func (u *DuplicatesRejection) UnitName() string { return "DuplicatesRejection" }
func (u *DuplicatesRejection) Priority() int     { return 100 }

func (u *DuplicatesRejection) ShouldInclude(bc *resolver.BuilderContext) (map[string]interface{}, bool) {
	return map[string]interface{}{}, true
}

func (u *DuplicatesRejection) PreRun(ctx *resolver.Context) error  { return nil }
func (u *DuplicatesRejection) PostRun(ctx *resolver.Context) error { return nil }

func (u *DuplicatesRejection) Run(ctx *resolver.Context, state *resolver.State, pt resolver.PackageTuple) (*resolver.StepResult, error) {
	for _, r := range state.IterResolvedDependencies() {
		if r.Name == pt.Name && r.Version != pt.Version {
			return nil, nil
		}
	}
	return &resolver.StepResult{}, nil
}
