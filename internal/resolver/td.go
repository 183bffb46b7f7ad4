package resolver

// NewTDPredictor returns a Temporal Difference predictor: it extends the
// ASA acceptance/temperature machinery with a learned policy store and an
// adaptive cooling schedule that restarts the first time any final state
// is accepted (spec.md §4.3.2). policyCap of 0 means unlimited (see the
// THOTH_TD_POLICY_SIZE environment variable in the CLI layer).
func NewTDPredictor(policyCap int) *Predictor {
	return &Predictor{
		Kind:          KindTD,
		Policy:        NewPolicyStore(policyCap),
		temperatureFn: adaptiveTemperature,
		exploreFn:     learnedExplore,
		exploitFn:     learnedExploit,
	}
}

// adaptiveTemperature implements spec.md §4.3.2's adaptive schedule: it
// stays at 0 until a final state has been accepted, then restarts the
// cooling schedule the first time that happens (stretching exploration in
// proportion to how hard the first solution was to find), and decays
// linearly from Context.Limit thereafter.
func adaptiveTemperature(p *Predictor, ctx *Context) float64 {
	if ctx.AcceptedFinalStatesCount == 0 {
		return 0
	}
	if p.temperature == 0 && ctx.AcceptedFinalStatesCount == 1 {
		p.a = 0.5 * float64(ctx.Iteration) / float64(ctx.AcceptedFinalStatesCount) * float64(ctx.Limit)
		return float64(ctx.Limit)
	}

	t := (-float64(ctx.Limit)/p.a)*float64(ctx.Iteration) + float64(ctx.Limit)
	if t < 0 {
		return 0
	}
	return t
}

// learnedExplore draws a uniformly random State from the Beam (not the
// already-sampled probable state used for the acceptance check) and
// expands an open dependency drawn with a bias toward the most recently
// opened ones.
func learnedExplore(p *Predictor, ctx *Context, sampled *State) (*State, PackageTuple, bool) {
	state := ctx.Beam.GetRandom(ctx.Rand)
	if state == nil {
		return nil, PackageTuple{}, false
	}
	pt, ok := state.GetRandomUnresolvedDependency(ctx.Rand, true)
	return state, pt, ok
}

// learnedExploit expands the beam's highest-scoring state, picking the
// open dependency with the best average learned reward. The lookup is
// single-level, keyed by the full PackageTuple: the original source's
// lookup was two-level (name, then tuple) but only ever stored records
// by tuple, so it could never hit. spec.md §9 flags this as a bug and
// directs the single-level fix implemented here.
func learnedExploit(p *Predictor, ctx *Context, sMax *State) (*State, PackageTuple, bool) {
	var best PackageTuple
	var bestAvg float64
	found := false

	for _, pt := range sMax.IterUnresolvedDependencies() {
		record, ok := p.Policy.Get(pt)
		if !ok {
			continue
		}
		avg := record.Average()
		if !found || avg > bestAvg {
			found = true
			bestAvg = avg
			best = pt
		}
	}

	if !found {
		pt, ok := sMax.GetRandomUnresolvedDependency(ctx.Rand, true)
		return sMax, pt, ok
	}
	return sMax, best, true
}
