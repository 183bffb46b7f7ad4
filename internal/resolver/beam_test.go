package resolver

import "testing"

func scoredState(score float64) *State {
	s := NewState()
	s.Score = score
	return s
}

func TestBeamMaxReturnsHighestScore(t *testing.T) {
	b := NewBeam(0)
	b.Add(scoredState(1))
	b.Add(scoredState(5))
	b.Add(scoredState(3))

	if got := b.Max().Score; got != 5 {
		t.Fatalf("Max().Score = %v, want 5", got)
	}
}

func TestBeamBoundedWidthEvictsLowestScore(t *testing.T) {
	b := NewBeam(2)
	b.Add(scoredState(1))
	b.Add(scoredState(2))
	b.Add(scoredState(3))

	if got := b.Size(); got != 2 {
		t.Fatalf("Size() = %d, want 2", got)
	}

	var scores []float64
	for _, s := range b.IterStates() {
		scores = append(scores, s.Score)
	}
	for _, s := range scores {
		if s == 1 {
			t.Fatalf("lowest-scoring state should have been evicted, got scores %v", scores)
		}
	}
}

func TestBeamAddDropsWhenNotBetterThanMinimum(t *testing.T) {
	b := NewBeam(1)
	b.Add(scoredState(5))
	b.Add(scoredState(3))

	if got := b.Max().Score; got != 5 {
		t.Fatalf("Max().Score = %v, want 5 (lower-scoring state should have been dropped)", got)
	}
}

func TestBeamTieBreakEvictsOldestAtMinimum(t *testing.T) {
	b := NewBeam(2)
	first := scoredState(1)
	second := scoredState(1)
	b.Add(first)
	b.Add(second)

	// Both tied at score 1; a third, higher-scoring state should displace
	// the oldest tied minimum (first), not second.
	third := scoredState(2)
	b.Add(third)

	for _, s := range b.IterStates() {
		if s == first {
			t.Fatal("oldest tied-minimum state should have been evicted")
		}
	}
}
