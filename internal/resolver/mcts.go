package resolver

// NewMCTSPredictor returns a Monte-Carlo Tree Search predictor. It extends
// TemporalDifference's policy store and adaptive temperature schedule with
// a one-step rollout memory: once an expansion yields a non-terminal,
// finite reward, Run continues from that same state next iteration rather
// than re-sampling from the Beam, until the trajectory dies (NaN reward)
// or completes (+Inf reward). Completed trajectories credit the policy
// with the terminal state's accumulated score, not the signal itself
// (spec.md §9); see NewTDPredictor for the shared exploration/exploitation
// and temperature machinery this reuses. policyCap of 0 means unlimited
// (THOTH_MCTS_POLICY_SIZE).
func NewMCTSPredictor(policyCap int) *Predictor {
	return &Predictor{
		Kind:          KindMCTS,
		Policy:        NewPolicyStore(policyCap),
		temperatureFn: adaptiveTemperature,
		exploreFn:     learnedExplore,
		exploitFn:     learnedExploit,
	}
}
