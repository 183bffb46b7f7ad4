package resolver

// NewASAPredictor returns an Adaptive Simulated Annealing predictor: a
// linearly-decaying temperature schedule, no learned policy. Exploitation
// expands the highest-scoring State, exploration the sampled probable
// State; in both cases the open dependency is drawn at random with a bias
// toward the most recently opened ones (spec.md §4.3.1).
func NewASAPredictor() *Predictor {
	return &Predictor{
		Kind:          KindASA,
		temperatureFn: asaTemperature,
		exploreFn:     asaExplore,
		exploitFn:     asaExploit,
	}
}

// asaTemperature implements the baseline linear decay from Context.Limit
// to 0 over Context.Limit iterations, clamped at 0 (spec.md §4.3.1).
func asaTemperature(p *Predictor, ctx *Context) float64 {
	t := float64(ctx.Limit) - float64(ctx.Iteration)
	if t < 0 {
		return 0
	}
	return t
}

// asaExplore expands the sampled probable state directly.
func asaExplore(p *Predictor, ctx *Context, sampled *State) (*State, PackageTuple, bool) {
	pt, ok := sampled.GetRandomUnresolvedDependency(ctx.Rand, true)
	return sampled, pt, ok
}

// asaExploit expands the beam's highest-scoring state.
func asaExploit(p *Predictor, ctx *Context, sMax *State) (*State, PackageTuple, bool) {
	pt, ok := sMax.GetRandomUnresolvedDependency(ctx.Rand, true)
	return sMax, pt, ok
}
