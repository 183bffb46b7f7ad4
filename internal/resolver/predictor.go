package resolver

import "math"

// PredictorKind names which of the three variants a Predictor value was
// constructed as. The engine models ASA/TD/MCTS as one Predictor type with
// pluggable temperature, exploration, and exploitation strategies
// (spec.md §9: "prefer composition over deep inheritance") rather than as
// a three-level type hierarchy.
type PredictorKind string

// Recognized predictor kinds.
const (
	KindASA  PredictorKind = "asa"
	KindTD   PredictorKind = "td"
	KindMCTS PredictorKind = "mcts"
)

type temperatureFunc func(p *Predictor, ctx *Context) float64
type selectionFunc func(p *Predictor, ctx *Context, sampled *State) (*State, PackageTuple, bool)

// Predictor chooses, each iteration, the (State, PackageTuple) pair the
// resolver loop should expand next, and learns from the reward signal fed
// back after each expansion. See NewASAPredictor, NewTDPredictor, and
// NewMCTSPredictor for the three configured variants.
type Predictor struct {
	Kind   PredictorKind
	Policy *PolicyStore // nil for ASA, which does not learn a policy

	temperature float64
	a           float64 // TD/MCTS cooling-schedule slope coefficient

	nextState *State // MCTS trajectory memory

	temperatureFn temperatureFunc
	exploreFn     selectionFunc
	exploitFn     selectionFunc
}

// PreRun resets per-run predictor state. Call once before the resolver
// loop starts.
func (p *Predictor) PreRun(ctx *Context) {
	p.temperature = 0
	p.a = 0
	p.nextState = nil
}

// PostRun performs optional end-of-run cleanup. Currently a no-op for
// every variant.
func (p *Predictor) PostRun(ctx *Context) {}

// Run returns the (State, PackageTuple) to expand this iteration, or
// ok=false if the Beam is empty (nothing to expand). It never mutates the
// Beam.
func (p *Predictor) Run(ctx *Context) (state *State, pt PackageTuple, ok bool) {
	if p.Kind == KindMCTS && p.nextState != nil {
		pt, ok = p.nextState.GetRandomUnresolvedDependency(ctx.Rand, true)
		if !ok {
			return nil, PackageTuple{}, false
		}
		return p.nextState, pt, true
	}

	p.temperature = p.temperatureFn(p, ctx)

	sMax := ctx.Beam.Max()
	if sMax == nil {
		return nil, PackageTuple{}, false
	}

	size := ctx.Beam.Size()
	j := 0
	if size > 1 {
		j = 1 + ctx.Rand.Intn(size-1)
	}
	sj := ctx.Beam.Get(j)

	accept := acceptanceProbability(sMax.Score, sj.Score, p.temperature)

	if j != 0 && accept >= ctx.Rand.Float64() {
		state, pt, ok = p.exploreFn(p, ctx, sj)
	} else {
		state, pt, ok = p.exploitFn(p, ctx, sMax)
	}

	ctx.RecordTemperature(TemperatureSample{
		Temperature:              p.temperature,
		PickedMax:                state == sMax,
		AcceptanceProbability:    accept,
		AcceptedFinalStatesCount: ctx.AcceptedFinalStatesCount,
	})

	return state, pt, ok
}

// acceptanceProbability implements spec.md §4.3.1 step 5: certain
// acceptance if the sampled state is no worse than the max, a
// Metropolis-style probability otherwise, guarding the T=0 division.
func acceptanceProbability(maxScore, sampledScore, temperature float64) float64 {
	if sampledScore >= maxScore {
		return 1.0
	}
	if temperature == 0 {
		return 0.0
	}
	return math.Exp((sampledScore - maxScore) / temperature)
}

// SetRewardSignal records the outcome of the last expansion. reward is
// +Inf for an accepted terminal state, NaN for an invalid/dead-end state
// (MCTS-only distinction), and otherwise an incremental reward.
func (p *Predictor) SetRewardSignal(ctx *Context, state *State, pt PackageTuple, reward float64) {
	switch p.Kind {
	case KindTD:
		p.setRewardTD(ctx, state, reward)
	case KindMCTS:
		p.setRewardMCTS(ctx, state, reward)
	}
}

func (p *Predictor) setRewardTD(ctx *Context, state *State, reward float64) {
	if math.IsNaN(reward) || math.IsInf(reward, 0) {
		return
	}
	for _, rpt := range state.IterResolvedDependencies() {
		p.Policy.Add(rpt, reward)
	}
	p.evictPolicyPeriodically(ctx)
}

func (p *Predictor) setRewardMCTS(ctx *Context, state *State, reward float64) {
	if math.IsNaN(reward) {
		p.nextState = nil
		return
	}
	if !math.IsInf(reward, 1) {
		p.nextState = state
		return
	}

	// Terminal, accepted trajectory: credit the Monte-Carlo return — the
	// state's accumulated score — not the reward argument itself, which
	// by contract is +Inf (spec.md §9).
	total := state.Score
	for _, rpt := range state.IterResolvedDependencies() {
		p.Policy.Add(rpt, total)
	}
	p.nextState = nil
	p.evictPolicyPeriodically(ctx)
}

func (p *Predictor) evictPolicyPeriodically(ctx *Context) {
	if p.Policy.Cap > 0 && ctx.Iteration%1024 == 0 {
		p.Policy.EvictIfNeeded()
	}
}
