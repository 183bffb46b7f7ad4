// Package resolver implements the beam-driven stochastic dependency
// resolution engine: State, Beam, PolicyStore, the ASA/TD/MCTS predictor
// family, the pipeline-unit contract, and the resolver loop that drives
// them all.
package resolver

import "fmt"

// PackageTuple identifies a single resolvable package version. Equality and
// hashing are structural, so PackageTuple is safe to use as a map key.
type PackageTuple struct {
	Name     string
	Version  string
	IndexURL string
}

// String renders the tuple the way justification messages and trace output
// reference it: name==version@index.
func (pt PackageTuple) String() string {
	return fmt.Sprintf("%s==%s@%s", pt.Name, pt.Version, pt.IndexURL)
}

// Dependency is a single open dependency edge discovered while expanding a
// State: a package name together with its candidate versions, newest first.
type Dependency struct {
	Name       string
	Candidates []PackageTuple
}

// JustificationKind classifies a Justification entry.
type JustificationKind string

// Recognized justification kinds. Units are free to mint their own kinds;
// these are the ones the core engine itself emits.
const (
	JustificationInfo    JustificationKind = "INFO"
	JustificationWarning JustificationKind = "WARNING"
	JustificationError   JustificationKind = "ERROR"
)

// Justification is a structured explanation appended to a State (or to
// Context.StackInfo), surfaced verbatim in the produced report.
type Justification struct {
	Type    JustificationKind `json:"type"`
	Message string            `json:"message"`
	Link    string            `json:"link,omitempty"`
}

// EnvironmentMarkers carries whatever environment-dependent metadata the
// Oracle reports about a resolved package (e.g. supported interpreter
// versions, platform tags). The engine treats it as an opaque bag of
// strings; individual pipeline units interpret specific keys.
type EnvironmentMarkers map[string]string

// RecommendationType selects the scoring objective used by Steps.
type RecommendationType string

// Recognized recommendation types.
const (
	RecommendationLatest      RecommendationType = "LATEST"
	RecommendationStable      RecommendationType = "STABLE"
	RecommendationTesting     RecommendationType = "TESTING"
	RecommendationPerformance RecommendationType = "PERFORMANCE"
	RecommendationSecurity    RecommendationType = "SECURITY"
)

// DecisionType selects how the resolver loop picks dependencies to expand
// when operating in "dependency monkey" mode rather than normal advise mode.
type DecisionType string

// Recognized decision types.
const (
	DecisionRandom DecisionType = "RANDOM"
	DecisionAll    DecisionType = "ALL"
)
