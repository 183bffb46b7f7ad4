package resolver

import (
	"context"
	"testing"
	"time"
)

func TestNewContextReproducibleRandomGivenSameSeed(t *testing.T) {
	a := NewContext(ContextParams{BeamWidth: 4, PRNGSeed: 7})
	b := NewContext(ContextParams{BeamWidth: 4, PRNGSeed: 7})
	defer a.Close()
	defer b.Close()

	for i := 0; i < 10; i++ {
		if got, want := a.Rand.Float64(), b.Rand.Float64(); got != want {
			t.Fatalf("draw %d diverged: %v != %v", i, got, want)
		}
	}
}

func TestContextDeadlineHitFiresOnCancel(t *testing.T) {
	ctx := NewContext(ContextParams{TimeoutSeconds: 0})
	defer ctx.Close()
	// TimeoutSeconds <= 0 means no timer is armed; the context should run
	// until explicitly cancelled.
	if ctx.DeadlineHit() {
		t.Fatal("DeadlineHit should be false before any cancellation")
	}
	ctx.Cancel()
	if !ctx.DeadlineHit() {
		t.Fatal("DeadlineHit should be true immediately after Cancel")
	}
	if !ctx.Cancelled {
		t.Fatal("Cancel should set Cancelled")
	}
}

func TestContextRunContextCancelledByExternalSignal(t *testing.T) {
	external, externalCancel := context.WithCancel(context.Background())
	ctx := NewContext(ContextParams{Cancel: external})
	defer ctx.Close()

	externalCancel()

	select {
	case <-ctx.RunContext().Done():
	case <-time.After(time.Second):
		t.Fatal("combined run context should have been cancelled by the external signal")
	}
}

func TestRecordTemperatureNoopUnlessKeepHistory(t *testing.T) {
	ctx := NewContext(ContextParams{KeepHistory: false})
	defer ctx.Close()

	ctx.RecordTemperature(TemperatureSample{Temperature: 1})
	if len(ctx.TemperatureHistory) != 0 {
		t.Fatalf("TemperatureHistory = %v, want empty when KeepHistory is false", ctx.TemperatureHistory)
	}

	ctx.KeepHistory = true
	ctx.RecordTemperature(TemperatureSample{Temperature: 1})
	if len(ctx.TemperatureHistory) != 1 {
		t.Fatalf("TemperatureHistory = %v, want 1 sample once KeepHistory is true", ctx.TemperatureHistory)
	}
}
