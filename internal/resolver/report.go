package resolver

// StackReport is one fully resolved stack in the produced report: its
// score, the justification trail that led to it, and the resolved
// PackageTuples in resolution order.
type StackReport struct {
	Score         float64         `json:"score"`
	Justification []Justification `json:"justification"`
	Resolved      []PackageTuple  `json:"resolved"`
}

// Metrics summarizes a completed (or terminated) run.
type Metrics struct {
	Iterations uint64 `json:"iterations"`
	Accepted   uint64 `json:"accepted"`
	DurationMs int64  `json:"duration_ms"`
}

// Report is the final, consumer-facing product of a resolver run: the
// accepted stacks (highest score first), boot-time stack_info
// justifications, run metrics, and optional temperature-history telemetry
// (spec.md §6). Run produces a Report, even an empty one, for every
// TerminationReason; a run aborted by a fatal error produces none.
type Report struct {
	Stacks             []StackReport       `json:"stacks"`
	StackInfo          []Justification     `json:"stack_info"`
	Metrics            Metrics             `json:"metrics"`
	TemperatureHistory []TemperatureSample `json:"temperature_history,omitempty"`
	TerminationReason  TerminationReason   `json:"termination_reason"`
}
