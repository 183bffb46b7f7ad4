package resolver

import "time"

// metrics is a push/pop duration stack, grounded on the teacher's own
// internal solver metrics.go: it attributes wall-clock time to whichever
// named phase is current on the stack. Here it times pipeline phases
// (boot, loop, wrap) rather than solver phases.
type metrics struct {
	stack []string
	times map[string]time.Duration
	last  time.Time
}

func newMetrics() *metrics {
	return &metrics{
		stack: []string{"other"},
		times: map[string]time.Duration{"other": 0},
		last:  time.Now(),
	}
}

func (m *metrics) push(name string) {
	cur := m.stack[len(m.stack)-1]
	m.times[cur] += time.Since(m.last)

	m.stack = append(m.stack, name)
	m.last = time.Now()
}

func (m *metrics) pop() {
	cur := m.stack[len(m.stack)-1]
	m.times[cur] += time.Since(m.last)

	m.stack = m.stack[:len(m.stack)-1]
	m.last = time.Now()
}

// total sums the recorded duration across every named phase.
func (m *metrics) total() time.Duration {
	cur := m.stack[len(m.stack)-1]
	m.times[cur] += time.Since(m.last)
	m.last = time.Now()

	var sum time.Duration
	for _, d := range m.times {
		sum += d
	}
	return sum
}
