package oracle

import (
	"context"
	"testing"

	"github.com/thoth-station/adviser-resolver/internal/resolver"
)

func TestRegisterVersionsSortsNewestFirst(t *testing.T) {
	o := NewMapOracle()
	o.RegisterVersions("tensorflow",
		resolver.PackageTuple{Name: "tensorflow", Version: "1.9.0"},
		resolver.PackageTuple{Name: "tensorflow", Version: "2.1.0"},
		resolver.PackageTuple{Name: "tensorflow", Version: "2.0.0"},
	)

	got, err := o.GetVersions(context.Background(), "tensorflow", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0].Version != "2.1.0" || got[2].Version != "1.9.0" {
		t.Fatalf("versions not newest-first: %v", got)
	}
}

func TestGetDependenciesUnknownTupleReturnsEmpty(t *testing.T) {
	o := NewMapOracle()
	deps, err := o.GetDependencies(context.Background(), resolver.PackageTuple{Name: "x", Version: "1"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(deps) != 0 {
		t.Fatalf("deps = %v, want empty for unregistered tuple", deps)
	}
}

func TestGetVersionsRespectsCancelledContext(t *testing.T) {
	o := NewMapOracle()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := o.GetVersions(ctx, "anything", nil); err == nil {
		t.Fatal("expected error from a cancelled context")
	}
}
