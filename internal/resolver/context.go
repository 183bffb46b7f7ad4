package resolver

import (
	"context"
	"math/rand"
	"time"

	"github.com/sdboyer/constext"
)

// RuntimeFlags carries the small set of environment-dependent knobs that
// Boots and Sieves consult when deciding whether to register or what to
// filter: the target interpreter/runtime version, operating system, and
// whether the project is resolved in "develop" (dev-dependencies included)
// mode.
type RuntimeFlags struct {
	RuntimeVersion string
	OperatingSystem string
	Develop         bool
}

// Context is the shared, read-mostly object threaded through a single
// resolver run: iteration bookkeeping, the active Beam, configured limits,
// the seeded PRNG every stochastic operation must draw from for
// reproducibility (spec.md §5), and cooperative cancellation.
type Context struct {
	Iteration                 uint64
	Limit                     uint64
	Count                     uint64
	AcceptedFinalStatesCount  uint64
	KeepHistory               bool

	Beam      *Beam
	StackInfo []Justification

	RecommendationType RecommendationType
	DecisionType       DecisionType
	Flags              RuntimeFlags

	Rand *rand.Rand

	TemperatureHistory []TemperatureSample

	// Cancelled is set by Cancel (rather than inferred from the combined
	// context's Done channel alone, which cannot distinguish an external
	// cancellation from the configured deadline firing) so the loop can
	// report the correct TerminationReason.
	Cancelled bool

	metrics *metrics

	runCtx context.Context
	cancel context.CancelFunc
}

// TemperatureSample is one entry of the optional temperature-history
// telemetry (spec.md §3).
type TemperatureSample struct {
	Temperature              float64
	PickedMax                bool
	AcceptanceProbability    float64
	AcceptedFinalStatesCount uint64
}

// ContextParams configures NewContext.
type ContextParams struct {
	BeamWidth          int
	Limit              uint64
	Count              uint64
	RecommendationType RecommendationType
	DecisionType       DecisionType
	Flags              RuntimeFlags
	PRNGSeed           int64
	KeepHistory        bool
	TimeoutSeconds     int
	// Cancel, if non-nil, is combined with the internal deadline context
	// (via constext.Cons) so that either an external cancellation signal
	// or the configured timeout terminates the run cleanly.
	Cancel context.Context
}

// NewContext builds a fresh run Context from params.
func NewContext(params ContextParams) *Context {
	external := params.Cancel
	if external == nil {
		external = context.Background()
	}

	var deadlineCtx context.Context
	var deadlineCancel context.CancelFunc
	if params.TimeoutSeconds > 0 {
		deadlineCtx, deadlineCancel = context.WithTimeout(context.Background(), time.Duration(params.TimeoutSeconds)*time.Second)
	} else {
		deadlineCtx, deadlineCancel = context.WithCancel(context.Background())
	}

	runCtx, cancel := constext.Cons(external, deadlineCtx)

	return &Context{
		Limit:               params.Limit,
		Count:                params.Count,
		Beam:                 NewBeam(params.BeamWidth),
		RecommendationType:   params.RecommendationType,
		DecisionType:         params.DecisionType,
		Flags:                params.Flags,
		Rand:                 rand.New(rand.NewSource(params.PRNGSeed)),
		KeepHistory:          params.KeepHistory,
		metrics:              newMetrics(),
		runCtx:               runCtx,
		cancel:                combineCancel(cancel, deadlineCancel),
	}
}

// combineCancel returns a CancelFunc that calls both, so the deadline
// context's own timer is always released even though constext.Cons
// returns a cancel of its own.
func combineCancel(a, b context.CancelFunc) context.CancelFunc {
	return func() {
		a()
		b()
	}
}

// Done returns the channel that closes when the run should stop: either
// the configured timeout elapsed or external cancellation fired.
func (c *Context) Done() <-chan struct{} {
	return c.runCtx.Done()
}

// DeadlineHit reports whether Done has already fired.
func (c *Context) DeadlineHit() bool {
	select {
	case <-c.runCtx.Done():
		return true
	default:
		return false
	}
}

// Close releases the Context's internal timers. Safe to call multiple
// times.
func (c *Context) Close() {
	if c.cancel != nil {
		c.cancel()
	}
}

// Cancel marks the run as externally cancelled and tears down its
// internal timers. Safe to call multiple times.
func (c *Context) Cancel() {
	c.Cancelled = true
	c.Close()
}

// RunContext returns the combined deadline/cancellation context.Context
// that Oracle calls should be made with.
func (c *Context) RunContext() context.Context {
	return c.runCtx
}

// PushMetric and PopMetric let the resolver loop attribute wall-clock time
// to named phases (boot, loop, wrap) for the produced report's
// metrics.duration_ms field.
func (c *Context) PushMetric(name string) { c.metrics.push(name) }
func (c *Context) PopMetric()             { c.metrics.pop() }
func (c *Context) TotalDuration() time.Duration {
	return c.metrics.total()
}

// RecordTemperature appends a temperature-history sample if KeepHistory is
// enabled; otherwise it is a no-op.
func (c *Context) RecordTemperature(s TemperatureSample) {
	if !c.KeepHistory {
		return
	}
	c.TemperatureHistory = append(c.TemperatureHistory, s)
}
