package resolver

import (
	"math/rand"
)

// StateInvariantViolation indicates a bug in the engine: an operation was
// asked to violate one of State's structural invariants. It is always
// fatal; the loop never attempts to recover from it (spec.md §7).
type StateInvariantViolation struct {
	Op, Reason string
}

func (e *StateInvariantViolation) Error() string {
	return "state invariant violation in " + e.Op + ": " + e.Reason
}

// unresolvedEntry is one open dependency name together with its candidate
// versions, newest ("most recent") first.
type unresolvedEntry struct {
	name       string
	candidates []PackageTuple
}

// State is a partial resolution: a set of already-resolved packages, a
// frontier of still-open dependency names with their candidate versions,
// an accumulated score, and an append-only justification trail.
//
// A State is logically immutable once inserted into a Beam; only Clone'd
// candidate children are mutated, and only up until they are either
// inserted into the Beam or discarded.
type State struct {
	Score float64

	resolvedOrder []PackageTuple
	resolvedIdx   map[string]int // name -> index into resolvedOrder

	unresolvedOrder []unresolvedEntry
	unresolvedIdx   map[string]int // name -> index into unresolvedOrder

	Justification []Justification

	// ParentBeamKey is an opaque handle the Beam may use to replace this
	// State's parent in place on expansion. The resolver loop does not
	// interpret it; it exists purely as a Beam-internal optimization hook.
	ParentBeamKey interface{}
}

// NewState returns an empty State: no resolved packages, no open
// dependencies, zero score.
func NewState() *State {
	return &State{
		resolvedIdx:   make(map[string]int),
		unresolvedIdx: make(map[string]int),
	}
}

// IsTerminal reports whether the State has no open dependencies left.
func (s *State) IsTerminal() bool {
	return len(s.unresolvedOrder) == 0
}

// IterResolvedDependencies returns the resolved PackageTuples in resolution
// (insertion) order.
func (s *State) IterResolvedDependencies() []PackageTuple {
	out := make([]PackageTuple, len(s.resolvedOrder))
	copy(out, s.resolvedOrder)
	return out
}

// IterUnresolvedDependencies returns the front (most recent) candidate of
// each open dependency, in the order the dependency names were first
// opened.
func (s *State) IterUnresolvedDependencies() []PackageTuple {
	out := make([]PackageTuple, 0, len(s.unresolvedOrder))
	for _, e := range s.unresolvedOrder {
		if len(e.candidates) > 0 {
			out = append(out, e.candidates[0])
		}
	}
	return out
}

// AddResolved moves pt's name from unresolved to resolved. It fails with a
// StateInvariantViolation if pt's name is not currently open.
func (s *State) AddResolved(pt PackageTuple) error {
	idx, ok := s.unresolvedIdx[pt.Name]
	if !ok {
		return &StateInvariantViolation{
			Op:     "AddResolved",
			Reason: "package " + pt.Name + " is not in unresolved",
		}
	}

	s.removeUnresolvedAt(idx)

	if _, dup := s.resolvedIdx[pt.Name]; dup {
		return &StateInvariantViolation{
			Op:     "AddResolved",
			Reason: "package " + pt.Name + " is already resolved",
		}
	}

	s.resolvedIdx[pt.Name] = len(s.resolvedOrder)
	s.resolvedOrder = append(s.resolvedOrder, pt)
	return nil
}

func (s *State) removeUnresolvedAt(idx int) {
	removed := s.unresolvedOrder[idx].name
	s.unresolvedOrder = append(s.unresolvedOrder[:idx], s.unresolvedOrder[idx+1:]...)
	delete(s.unresolvedIdx, removed)
	for name, i := range s.unresolvedIdx {
		if i > idx {
			s.unresolvedIdx[name] = i - 1
		}
	}
}

// AddUnresolved opens (or extends) a dependency name with the given
// candidates. It fails with a StateInvariantViolation if the name is
// already resolved. If the name is already open, new candidates are
// appended, preserving order, and duplicates are dropped.
func (s *State) AddUnresolved(name string, candidates []PackageTuple) error {
	if _, ok := s.resolvedIdx[name]; ok {
		return &StateInvariantViolation{
			Op:     "AddUnresolved",
			Reason: "package " + name + " is already resolved",
		}
	}

	if idx, ok := s.unresolvedIdx[name]; ok {
		entry := &s.unresolvedOrder[idx]
		seen := make(map[PackageTuple]struct{}, len(entry.candidates))
		for _, c := range entry.candidates {
			seen[c] = struct{}{}
		}
		for _, c := range candidates {
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			entry.candidates = append(entry.candidates, c)
		}
		return nil
	}

	s.unresolvedIdx[name] = len(s.unresolvedOrder)
	s.unresolvedOrder = append(s.unresolvedOrder, unresolvedEntry{
		name:       name,
		candidates: append([]PackageTuple(nil), candidates...),
	})
	return nil
}

// GetRandomUnresolvedDependency picks one open dependency's front candidate,
// or a tuple carrying only the name if that dependency has no candidates.
// When preferRecent is true, selection is biased toward dependencies opened
// most recently via a geometric distribution (rate ≈ 0.5) over insertion
// order; otherwise selection is uniform. It never returns a tuple whose
// name is already resolved (structurally impossible, since resolved and
// unresolved names are disjoint).
func (s *State) GetRandomUnresolvedDependency(rng *rand.Rand, preferRecent bool) (PackageTuple, bool) {
	n := len(s.unresolvedOrder)
	if n == 0 {
		return PackageTuple{}, false
	}

	idx := n - 1
	if preferRecent {
		// Geometric distribution, rate ~0.5, counted back from the most
		// recently opened entry: each step back is accepted with
		// probability 0.5, so most draws land near the tail.
		for idx > 0 && rng.Float64() < 0.5 {
			idx--
		}
	} else {
		idx = rng.Intn(n)
	}

	e := s.unresolvedOrder[idx]
	if len(e.candidates) == 0 {
		return PackageTuple{Name: e.name}, true
	}
	return e.candidates[0], true
}

// Clone deep-copies resolved, unresolved, and justification, at O(|resolved|
// + |unresolved|) cost. The clone shares no backing arrays with its parent.
func (s *State) Clone() *State {
	c := &State{
		Score:         s.Score,
		resolvedOrder: append([]PackageTuple(nil), s.resolvedOrder...),
		resolvedIdx:   make(map[string]int, len(s.resolvedIdx)),
		unresolvedIdx: make(map[string]int, len(s.unresolvedIdx)),
		Justification: append([]Justification(nil), s.Justification...),
	}
	for k, v := range s.resolvedIdx {
		c.resolvedIdx[k] = v
	}

	c.unresolvedOrder = make([]unresolvedEntry, len(s.unresolvedOrder))
	for i, e := range s.unresolvedOrder {
		c.unresolvedOrder[i] = unresolvedEntry{
			name:       e.name,
			candidates: append([]PackageTuple(nil), e.candidates...),
		}
	}
	for k, v := range s.unresolvedIdx {
		c.unresolvedIdx[k] = v
	}

	return c
}
