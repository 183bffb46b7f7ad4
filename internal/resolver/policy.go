package resolver

import (
	"sort"

	"github.com/armon/go-radix"
)

// PolicyRecord is the learned statistic the TD/MCTS predictors maintain
// per PackageTuple: the running sum of rewards observed when that tuple
// was part of a resolved trajectory, and how many times it was observed.
type PolicyRecord struct {
	RewardSum float64
	Count     uint64
}

// Average returns RewardSum/Count, or 0 if the tuple has never been
// observed.
func (r PolicyRecord) Average() float64 {
	if r.Count == 0 {
		return 0
	}
	return r.RewardSum / float64(r.Count)
}

// PolicyStore maps PackageTuple to its learned PolicyRecord. It is
// capacity-capped: when Cap is positive, Evict trims the store down to the
// top-Cap records by (RewardSum, Count) lexicographic order. The hot path
// (Add/Get, called every iteration) is a plain map for O(1) access; a
// radix index over package names is maintained alongside it purely to
// support ByPrefix, a debug/inspection accessor with no role in the
// resolver loop itself (see DESIGN.md for why a radix tree, grounded on
// the teacher's typed_radix.go, is used here rather than in the hot path).
type PolicyStore struct {
	Cap int

	records map[PackageTuple]*PolicyRecord
	byName  *radix.Tree // name -> []PackageTuple present under that name
}

// NewPolicyStore returns an empty PolicyStore with the given capacity cap
// (0 = unlimited).
func NewPolicyStore(cap int) *PolicyStore {
	return &PolicyStore{
		Cap:     cap,
		records: make(map[PackageTuple]*PolicyRecord),
		byName:  radix.New(),
	}
}

// Get returns the PolicyRecord for pt, and whether one exists.
func (p *PolicyStore) Get(pt PackageTuple) (PolicyRecord, bool) {
	r, ok := p.records[pt]
	if !ok {
		return PolicyRecord{}, false
	}
	return *r, true
}

// Add accumulates reward into pt's record, creating it if necessary.
func (p *PolicyStore) Add(pt PackageTuple, reward float64) {
	r, ok := p.records[pt]
	if !ok {
		r = &PolicyRecord{}
		p.records[pt] = r
		p.indexName(pt)
	}
	r.RewardSum += reward
	r.Count++
}

func (p *PolicyStore) indexName(pt PackageTuple) {
	v, _ := p.byName.Get(pt.Name)
	tuples, _ := v.([]PackageTuple)
	p.byName.Insert(pt.Name, append(tuples, pt))
}

// ByPrefix returns every tracked PackageTuple whose name starts with
// prefix. It exists for operator inspection/debugging of the learned
// policy and is never called from the resolver loop's hot path.
func (p *PolicyStore) ByPrefix(prefix string) []PackageTuple {
	var out []PackageTuple
	p.byName.WalkPrefix(prefix, func(_ string, v interface{}) bool {
		out = append(out, v.([]PackageTuple)...)
		return false
	})
	return out
}

// Len returns the number of tracked records.
func (p *PolicyStore) Len() int {
	return len(p.records)
}

// EvictIfNeeded retains the top-Cap records by (RewardSum, Count)
// lexicographic order, if Cap is set and the store currently exceeds it.
// Callers (the TD and MCTS predictors) invoke this every 1024 iterations
// rather than on every Add: bulk O(N log N) sorting beats continuous
// heap maintenance at the observed update/read ratio (spec.md §9).
func (p *PolicyStore) EvictIfNeeded() {
	if p.Cap <= 0 || len(p.records) <= p.Cap {
		return
	}

	type kv struct {
		pt PackageTuple
		r  *PolicyRecord
	}
	all := make([]kv, 0, len(p.records))
	for pt, r := range p.records {
		all = append(all, kv{pt, r})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].r.RewardSum != all[j].r.RewardSum {
			return all[i].r.RewardSum > all[j].r.RewardSum
		}
		return all[i].r.Count > all[j].r.Count
	})

	keep := all[:p.Cap]
	p.records = make(map[PackageTuple]*PolicyRecord, p.Cap)
	p.byName = radix.New()
	for _, e := range keep {
		p.records[e.pt] = e.r
		p.indexName(e.pt)
	}
}
