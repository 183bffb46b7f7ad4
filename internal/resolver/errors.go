package resolver

import "fmt"

// NoCandidates indicates a Sieve emptied the candidate list for a
// dependency name. It is recovered locally: the expansion that produced it
// is discarded and the loop continues (spec.md §7).
type NoCandidates struct {
	Name string
}

func (e *NoCandidates) Error() string {
	return fmt.Sprintf("no candidates remain for %q after sieving", e.Name)
}

// OracleUnavailable wraps a failure from the package-metadata Oracle. The
// loop retries once with a small backoff before treating it as fatal
// (spec.md §7).
type OracleUnavailable struct {
	Op  string
	Err error
}

func (e *OracleUnavailable) Error() string {
	return fmt.Sprintf("oracle unavailable during %s: %s", e.Op, e.Err)
}

func (e *OracleUnavailable) Unwrap() error { return e.Err }

// UnitConfigurationError is raised while building the pipeline, before the
// loop starts. It is always fatal.
type UnitConfigurationError struct {
	Unit   string
	Reason string
}

func (e *UnitConfigurationError) Error() string {
	return fmt.Sprintf("unit %q misconfigured: %s", e.Unit, e.Reason)
}

// Normal-termination sentinels. These are not failures: the loop returns
// them (or rather, returns a Reason of this kind) alongside a valid,
// possibly-empty report.
type TerminationReason string

const (
	ReasonDeadlineExceeded    TerminationReason = "DeadlineExceeded"
	ReasonIterationLimit      TerminationReason = "IterationLimitReached"
	ReasonCountReached        TerminationReason = "CountReached"
	ReasonCancelled           TerminationReason = "Cancelled"
)
