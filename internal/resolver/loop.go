package resolver

import (
	"container/heap"
	"math"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/thoth-station/adviser-resolver/internal/alog"
)

// LoopParams bundles everything the resolver loop needs for one run.
type LoopParams struct {
	Context   *Context
	Oracle    Oracle
	Pipeline  *Pipeline
	Predictor *Predictor
	Project   *Project
	Logger    *alog.Logger
}

// finalHeap is the bounded min-heap (lowest score at the root) of accepted
// terminal States.
type finalHeap struct {
	items []*State
}

func (h *finalHeap) Len() int            { return len(h.items) }
func (h *finalHeap) Less(i, j int) bool  { return h.items[i].Score < h.items[j].Score }
func (h *finalHeap) Swap(i, j int)       { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *finalHeap) Push(x interface{})  { h.items = append(h.items, x.(*State)) }
func (h *finalHeap) Pop() interface{} {
	old := h.items
	n := len(old)
	it := old[n-1]
	h.items = old[:n-1]
	return it
}

// Run drives the resolver loop to completion (spec.md §4.5): it runs
// Boots once, seeds the Beam with the project's direct dependencies, then
// repeatedly pulls a (state, dependency) pair from the Predictor, expands
// it through the Oracle and Sieves, scores candidate children through
// Steps, and either re-inserts a non-terminal child into the Beam or
// pushes an accepted terminal child into the bounded final heap — until
// the iteration limit, the stack count, or the deadline/cancellation is
// hit. Each of those terminations returns a Report, even an empty one; a
// fatal error (an Oracle still failing after its retry, a State invariant
// violation, or an error from a unit) returns a nil Report and the error.
func Run(p LoopParams) (*Report, error) {
	ctx := p.Context
	logger := p.Logger
	if logger == nil {
		logger = alog.Nop()
	}

	ctx.PushMetric("boot")
	for _, boot := range p.Pipeline.Boots {
		if err := boot.PreRun(ctx); err != nil {
			return nil, errors.Wrapf(err, "boot %s pre-run", boot.UnitName())
		}
		if err := boot.Run(ctx, p.Project); err != nil {
			return nil, errors.Wrapf(err, "boot %s", boot.UnitName())
		}
	}
	ctx.PopMetric()

	initial := NewState()
	for _, dep := range p.Project.Direct {
		if err := initial.AddUnresolved(dep.Name, dep.Candidates); err != nil {
			return nil, err
		}
	}
	if ctx.Flags.Develop {
		for _, dep := range p.Project.DevDirect {
			if err := initial.AddUnresolved(dep.Name, dep.Candidates); err != nil {
				return nil, err
			}
		}
	}
	ctx.Beam.Add(initial)

	p.Predictor.PreRun(ctx)

	final := &finalHeap{}
	var reason TerminationReason

	ctx.PushMetric("loop")
loop:
	for {
		if ctx.Iteration >= ctx.Limit {
			reason = ReasonIterationLimit
			break loop
		}
		if ctx.AcceptedFinalStatesCount >= ctx.Count {
			reason = ReasonCountReached
			break loop
		}
		select {
		case <-ctx.Done():
			reason = loopDoneReason(ctx)
			break loop
		default:
		}

		ctx.Iteration++

		state, dep, ok := p.Predictor.Run(ctx)
		if !ok {
			// Nothing left in the Beam to expand; treat as exhausted.
			reason = ReasonIterationLimit
			break loop
		}

		candidates, err := getVersionsWithRetry(ctx, p.Oracle, dep.Name)
		if err != nil {
			return nil, err
		}

		for _, sieve := range p.Pipeline.Sieves {
			candidates, err = sieve.Run(ctx, dep.Name, candidates)
			if err != nil {
				return nil, errors.Wrapf(err, "sieve %s", sieve.UnitName())
			}
		}

		if len(candidates) == 0 {
			p.Predictor.SetRewardSignal(ctx, state, dep, math.NaN())
			continue
		}

		for _, cand := range candidates {
			child := state.Clone()
			if err := child.AddResolved(cand); err != nil {
				return nil, err
			}

			deps, err := getDependenciesWithRetry(ctx, p.Oracle, cand)
			if err != nil {
				return nil, err
			}
			for _, d := range deps {
				if err := child.AddUnresolved(d.Name, d.Candidates); err != nil {
					return nil, err
				}
			}

			rejected := false
			reward := 0.0
			for _, step := range p.Pipeline.Steps {
				result, err := step.Run(ctx, child, cand)
				if err != nil {
					return nil, errors.Wrapf(err, "step %s", step.UnitName())
				}
				if result == nil {
					rejected = true
					break
				}
				child.Score += result.ScoreDelta
				child.Justification = append(child.Justification, result.Justification...)
				reward += result.ScoreDelta
			}
			if rejected {
				continue
			}

			if child.IsTerminal() {
				accepted := true
				for _, stride := range p.Pipeline.Strides {
					ok, err := stride.Run(ctx, child)
					if err != nil {
						return nil, errors.Wrapf(err, "stride %s", stride.UnitName())
					}
					if !ok {
						accepted = false
						break
					}
				}

				p.Predictor.SetRewardSignal(ctx, child, cand, math.Inf(1))

				if !accepted {
					continue
				}

				for _, wrap := range p.Pipeline.Wraps {
					if err := wrap.Run(ctx, child); err != nil {
						return nil, errors.Wrapf(err, "wrap %s", wrap.UnitName())
					}
				}

				pushFinal(final, child, ctx.Count)
				ctx.AcceptedFinalStatesCount++
				logger.Debugf("accepted stack score=%.4f resolved=%d", child.Score, len(child.resolvedOrder))
			} else {
				ctx.Beam.Add(child)
				p.Predictor.SetRewardSignal(ctx, child, cand, reward)
			}
		}
	}
	ctx.PopMetric()

	p.Predictor.PostRun(ctx)
	ctx.PushMetric("wrap")
	for _, boot := range p.Pipeline.Boots {
		if err := boot.PostRun(ctx); err != nil {
			return nil, errors.Wrapf(err, "boot %s post-run", boot.UnitName())
		}
	}
	ctx.PopMetric()

	return buildReport(ctx, final, reason), nil
}

func loopDoneReason(ctx *Context) TerminationReason {
	// constext.Cons combines a deadline context and an externally
	// supplied cancellation context; we cannot distinguish which fired
	// from the channel alone, so DeadlineExceeded is the default and
	// Cancelled is only reported if the caller tags it explicitly via
	// Context.Cancelled (set by Context.Cancel). Absent that, a fired
	// external cancellation context is also reported as DeadlineExceeded,
	// even when no timeout was armed (TimeoutSeconds <= 0).
	if ctx.Cancelled {
		return ReasonCancelled
	}
	return ReasonDeadlineExceeded
}

func pushFinal(h *finalHeap, s *State, maxSize uint64) {
	if maxSize == 0 {
		heap.Push(h, s)
		return
	}
	if uint64(h.Len()) < maxSize {
		heap.Push(h, s)
		return
	}
	if h.Len() > 0 && s.Score > h.items[0].Score {
		heap.Pop(h)
		heap.Push(h, s)
	}
}

func buildReport(ctx *Context, final *finalHeap, reason TerminationReason) *Report {
	stacks := make([]StackReport, len(final.items))
	for i, s := range final.items {
		stacks[i] = StackReport{
			Score:         s.Score,
			Justification: s.Justification,
			Resolved:      s.IterResolvedDependencies(),
		}
	}
	sort.SliceStable(stacks, func(i, j int) bool { return stacks[i].Score > stacks[j].Score })

	return &Report{
		Stacks:             stacks,
		StackInfo:          ctx.StackInfo,
		TemperatureHistory: ctx.TemperatureHistory,
		TerminationReason:  reason,
		Metrics: Metrics{
			Iterations: ctx.Iteration,
			Accepted:   ctx.AcceptedFinalStatesCount,
			DurationMs: ctx.TotalDuration().Milliseconds(),
		},
	}
}

// getVersionsWithRetry and getDependenciesWithRetry implement spec.md §7's
// OracleUnavailable policy: retry once, with a small fixed backoff, before
// treating the failure as fatal.
func getVersionsWithRetry(ctx *Context, o Oracle, name string) ([]PackageTuple, error) {
	versions, err := o.GetVersions(ctx.RunContext(), name, nil)
	if err == nil {
		return versions, nil
	}
	time.Sleep(oracleRetryBackoff)
	versions, err2 := o.GetVersions(ctx.RunContext(), name, nil)
	if err2 == nil {
		return versions, nil
	}
	return nil, &OracleUnavailable{Op: "GetVersions(" + name + ")", Err: err2}
}

func getDependenciesWithRetry(ctx *Context, o Oracle, pt PackageTuple) ([]Dependency, error) {
	deps, err := o.GetDependencies(ctx.RunContext(), pt, nil)
	if err == nil {
		return deps, nil
	}
	time.Sleep(oracleRetryBackoff)
	deps, err2 := o.GetDependencies(ctx.RunContext(), pt, nil)
	if err2 == nil {
		return deps, nil
	}
	return nil, &OracleUnavailable{Op: "GetDependencies(" + pt.String() + ")", Err: err2}
}

const oracleRetryBackoff = 10 * time.Millisecond
