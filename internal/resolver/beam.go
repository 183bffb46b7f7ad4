package resolver

import (
	"container/heap"
	"math/rand"
)

// Beam is a bounded collection of active States, ranked by score. Width 0
// means unbounded. Internally it is a max-heap (root = highest score) with
// the heap array itself exposed for O(1) indexed and random access, which
// the predictor family relies on (spec.md §4.2, §9: Get(i) returns
// heap-array order, not score rank, and reproducibility depends on that
// array order being stable given identical inputs).
type Beam struct {
	Width int

	items []*beamItem
	seq   uint64
}

type beamItem struct {
	state *State
	seq   uint64
}

// NewBeam returns an empty Beam with the given width (0 = unbounded).
func NewBeam(width int) *Beam {
	return &Beam{Width: width}
}

// Size returns the current number of States held.
func (b *Beam) Size() int {
	return len(b.items)
}

// Max returns the highest-scoring State, or nil if the Beam is empty. O(1).
func (b *Beam) Max() *State {
	if len(b.items) == 0 {
		return nil
	}
	return b.items[0].state
}

// Get returns the State at heap-array index i (not score rank). O(1).
func (b *Beam) Get(i int) *State {
	if i < 0 || i >= len(b.items) {
		return nil
	}
	return b.items[i].state
}

// GetRandom returns a State chosen uniformly at random from the Beam's
// current contents, using rng so the draw is reproducible given a fixed
// seed (spec.md §5).
func (b *Beam) GetRandom(rng *rand.Rand) *State {
	if len(b.items) == 0 {
		return nil
	}
	return b.items[rng.Intn(len(b.items))].state
}

// Add inserts s into the Beam. If the Beam is full (Width > 0 and already
// at capacity), the lowest-scoring member is evicted to make room — unless
// s's score does not exceed that member's score, in which case s is
// dropped instead (spec.md §4.2). Ties among candidate evictees are broken
// by insertion order: when several members share the minimum score, the
// oldest of them is the one a higher-scoring s displaces. An s that only
// equals the minimum is dropped.
func (b *Beam) Add(s *State) {
	item := &beamItem{state: s, seq: b.seq}
	b.seq++

	if b.Width <= 0 || len(b.items) < b.Width {
		heap.Push((*beamHeap)(b), item)
		return
	}

	minIdx := b.argmin()
	min := b.items[minIdx]
	if s.Score <= min.state.Score {
		return
	}

	heap.Remove((*beamHeap)(b), minIdx)
	heap.Push((*beamHeap)(b), item)
}

// argmin finds the index of the lowest-scoring item, breaking ties in
// favor of the oldest (lowest seq) entry.
func (b *Beam) argmin() int {
	best := 0
	for i := 1; i < len(b.items); i++ {
		c, m := b.items[i], b.items[best]
		if c.state.Score < m.state.Score || (c.state.Score == m.state.Score && c.seq < m.seq) {
			best = i
		}
	}
	return best
}

// IterStates returns the Beam's contents ordered by score descending,
// stable tie-break by insertion order (older first).
func (b *Beam) IterStates() []*State {
	items := make([]*beamItem, len(b.items))
	copy(items, b.items)
	sortBeamItems(items)

	out := make([]*State, len(items))
	for i, it := range items {
		out[i] = it.state
	}
	return out
}

func sortBeamItems(items []*beamItem) {
	// Small, allocation-free insertion sort is plenty: beams are bounded by
	// Width, which is configured to stay in the hundreds at most.
	for i := 1; i < len(items); i++ {
		j := i
		for j > 0 && less(items[j], items[j-1]) {
			items[j], items[j-1] = items[j-1], items[j]
			j--
		}
	}
}

func less(a, b *beamItem) bool {
	if a.state.Score != b.state.Score {
		return a.state.Score > b.state.Score
	}
	return a.seq < b.seq
}

// beamHeap adapts Beam's item slice to container/heap, implementing a
// max-heap on score (root = highest score), tie-broken by insertion order.
type beamHeap Beam

func (h *beamHeap) Len() int { return len(h.items) }
func (h *beamHeap) Less(i, j int) bool {
	return less(h.items[i], h.items[j])
}
func (h *beamHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *beamHeap) Push(x interface{}) {
	h.items = append(h.items, x.(*beamItem))
}
func (h *beamHeap) Pop() interface{} {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}
