package units

import (
	"fmt"

	"github.com/thoth-station/adviser-resolver/internal/resolver"
)

// MinimumScoreStride rejects a terminal state whose accumulated score falls
// below a configured floor, keeping obviously bad stacks out of the final
// report even though they satisfied every Step along the way.
type MinimumScoreStride struct {
	Floor float64
}

func NewMinimumScoreStride(floor float64) *MinimumScoreStride {
	return &MinimumScoreStride{Floor: floor}
}

func (u *MinimumScoreStride) UnitName() string { return "MinimumScoreStride" }
func (u *MinimumScoreStride) Priority() int     { return 0 }

func (u *MinimumScoreStride) ShouldInclude(bc *resolver.BuilderContext) (map[string]interface{}, bool) {
	return map[string]interface{}{"minimum_score": u.Floor}, true
}

func (u *MinimumScoreStride) PreRun(ctx *resolver.Context) error  { return nil }
func (u *MinimumScoreStride) PostRun(ctx *resolver.Context) error { return nil }

func (u *MinimumScoreStride) Run(ctx *resolver.Context, state *resolver.State) (bool, error) {
	return state.Score >= u.Floor, nil
}

// AdvisoryJustificationWrap appends a closing summary justification to
// every accepted terminal state: how many packages it resolved and its
// final score, the way the original implementation's report wraps each
// accepted stack with a human-readable summary line.
type AdvisoryJustificationWrap struct{}

func NewAdvisoryJustificationWrap() *AdvisoryJustificationWrap { return &AdvisoryJustificationWrap{} }

func (u *AdvisoryJustificationWrap) UnitName() string { return "AdvisoryJustificationWrap" }
func (u *AdvisoryJustificationWrap) Priority() int     { return 0 }

func (u *AdvisoryJustificationWrap) ShouldInclude(bc *resolver.BuilderContext) (map[string]interface{}, bool) {
	return map[string]interface{}{}, true
}

func (u *AdvisoryJustificationWrap) PreRun(ctx *resolver.Context) error  { return nil }
func (u *AdvisoryJustificationWrap) PostRun(ctx *resolver.Context) error { return nil }

func (u *AdvisoryJustificationWrap) Run(ctx *resolver.Context, state *resolver.State) error {
	state.Justification = append(state.Justification, resolver.Justification{
		Type:    resolver.JustificationInfo,
		Message: fmt.Sprintf("resolved %d packages, score %.4f", len(state.IterResolvedDependencies()), state.Score),
	})
	return nil
}
