package resolver

import "sort"

// Project is the mutable, shared description of the direct dependencies
// being resolved: one Dependency per distinct package name, each carrying
// its acceptable candidate versions newest-first. Boots may remove
// entries from it before the initial State is built (spec.md §4.4);
// everything past project/Pipfile parsing itself is out of this engine's
// scope (spec.md §1).
type Project struct {
	Direct             []Dependency
	DevDirect          []Dependency
	PrereleasesAllowed bool
}

// RemoveDirect removes the named dependency from the regular direct list,
// if present, reporting whether anything was removed.
func (p *Project) RemoveDirect(name string) bool {
	return removeDepByName(&p.Direct, name)
}

// RemoveDevDirect removes the named dependency from the dev direct list,
// if present, reporting whether anything was removed.
func (p *Project) RemoveDevDirect(name string) bool {
	return removeDepByName(&p.DevDirect, name)
}

func removeDepByName(list *[]Dependency, name string) bool {
	out := (*list)[:0]
	removed := false
	for _, d := range *list {
		if d.Name == name {
			removed = true
			continue
		}
		out = append(out, d)
	}
	*list = out
	return removed
}

// BuilderContext is what a Unit's ShouldInclude consults to decide whether
// to register itself into the pipeline, and with what configuration
// (spec.md §4.4's discovery protocol).
type BuilderContext struct {
	RecommendationType RecommendationType
	DecisionType       DecisionType
	Flags              RuntimeFlags
	Project            *Project
}

// Unit is the contract shared by every pipeline-unit category: a
// class-level name, a registration-time decision, and lifecycle hooks.
type Unit interface {
	// UnitName identifies the unit for ordering (priority ties are broken
	// by name) and for diagnostics.
	UnitName() string
	// Priority orders units within their category; lower runs first.
	Priority() int
	// ShouldInclude is invoked once at pipeline build time. Returning
	// ok=false opts the unit out of this run entirely.
	ShouldInclude(bc *BuilderContext) (config map[string]interface{}, ok bool)
	PreRun(ctx *Context) error
	PostRun(ctx *Context) error
}

// Boot runs once before the resolver loop starts. It may mutate the
// shared Project and append to Context.StackInfo.
type Boot interface {
	Unit
	Run(ctx *Context, project *Project) error
}

// Sieve filters the candidate versions for a single open dependency name.
// Returning an empty slice (with a nil error) discards the expansion that
// produced it: the Predictor receives a NaN reward and the loop moves on
// to the next iteration.
type Sieve interface {
	Unit
	Run(ctx *Context, name string, candidates []PackageTuple) ([]PackageTuple, error)
}

// StepResult is a Step's verdict on a candidate child: the score delta to
// accumulate and any justification entries to append. A nil *StepResult
// (with a nil error) is a reject: the candidate child is discarded.
type StepResult struct {
	ScoreDelta    float64
	Justification []Justification
}

// Step scores (or vetoes) a single about-to-be-added PackageTuple against
// the state it would be added to. Steps run in declared order; a reject
// short-circuits the remaining Steps for that candidate.
type Step interface {
	Unit
	Run(ctx *Context, state *State, pt PackageTuple) (*StepResult, error)
}

// Stride decides whether a terminal State is accepted into the final
// heap. A false verdict removes it from consideration (but it is still
// counted for predictor reward signaling).
type Stride interface {
	Unit
	Run(ctx *Context, state *State) (bool, error)
}

// Wrap post-processes each accepted terminal State, e.g. to attach
// advisory justifications.
type Wrap interface {
	Unit
	Run(ctx *Context, state *State) error
}

// Pipeline is the ordered, built set of units the resolver loop invokes at
// each of its hook points.
type Pipeline struct {
	Boots   []Boot
	Sieves  []Sieve
	Steps   []Step
	Strides []Stride
	Wraps   []Wrap
}

// BuildPipeline composes candidates into a Pipeline: each candidate's
// ShouldInclude decides whether it registers, and within each category
// units are ordered by declared Priority, tie-broken by UnitName
// (spec.md §4.4).
func BuildPipeline(bc *BuilderContext, candidates ...Unit) (*Pipeline, error) {
	p := &Pipeline{}

	for _, u := range candidates {
		if _, ok := u.ShouldInclude(bc); !ok {
			continue
		}

		switch v := u.(type) {
		case Boot:
			p.Boots = append(p.Boots, v)
		case Sieve:
			p.Sieves = append(p.Sieves, v)
		case Step:
			p.Steps = append(p.Steps, v)
		case Stride:
			p.Strides = append(p.Strides, v)
		case Wrap:
			p.Wraps = append(p.Wraps, v)
		default:
			return nil, &UnitConfigurationError{
				Unit:   u.UnitName(),
				Reason: "unit does not implement any known pipeline category",
			}
		}
	}

	sort.SliceStable(p.Boots, func(i, j int) bool { return unitLess(p.Boots[i], p.Boots[j]) })
	sort.SliceStable(p.Sieves, func(i, j int) bool { return unitLess(p.Sieves[i], p.Sieves[j]) })
	sort.SliceStable(p.Steps, func(i, j int) bool { return unitLess(p.Steps[i], p.Steps[j]) })
	sort.SliceStable(p.Strides, func(i, j int) bool { return unitLess(p.Strides[i], p.Strides[j]) })
	sort.SliceStable(p.Wraps, func(i, j int) bool { return unitLess(p.Wraps[i], p.Wraps[j]) })

	return p, nil
}

// unitLess orders units by (Priority, UnitName), the declared tie-break
// rule for the discovery protocol (spec.md §4.4).
func unitLess(a, b Unit) bool {
	if a.Priority() != b.Priority() {
		return a.Priority() < b.Priority()
	}
	return a.UnitName() < b.UnitName()
}
