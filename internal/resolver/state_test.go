package resolver

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestStateAddUnresolvedMergesAndDropsDuplicates(t *testing.T) {
	s := NewState()

	a := PackageTuple{Name: "numpy", Version: "1.0.0", IndexURL: "https://pypi.org/simple"}
	b := PackageTuple{Name: "numpy", Version: "2.0.0", IndexURL: "https://pypi.org/simple"}

	if err := s.AddUnresolved("numpy", []PackageTuple{a}); err != nil {
		t.Fatalf("AddUnresolved: %v", err)
	}
	if err := s.AddUnresolved("numpy", []PackageTuple{a, b}); err != nil {
		t.Fatalf("AddUnresolved merge: %v", err)
	}

	got := s.IterUnresolvedDependencies()
	want := []PackageTuple{a}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("front candidate = %v, want %v", got, want)
	}
}

func TestStateAddResolvedRequiresOpenDependency(t *testing.T) {
	s := NewState()
	pt := PackageTuple{Name: "numpy", Version: "1.0.0"}

	if err := s.AddResolved(pt); err == nil {
		t.Fatal("expected error adding resolved dependency that was never opened")
	}

	if err := s.AddUnresolved("numpy", []PackageTuple{pt}); err != nil {
		t.Fatalf("AddUnresolved: %v", err)
	}
	if err := s.AddResolved(pt); err != nil {
		t.Fatalf("AddResolved: %v", err)
	}
	if !s.IsTerminal() {
		t.Fatal("state should be terminal after resolving its only dependency")
	}
}

func TestStateAddUnresolvedAfterResolvedFails(t *testing.T) {
	s := NewState()
	pt := PackageTuple{Name: "numpy", Version: "1.0.0"}
	if err := s.AddUnresolved("numpy", []PackageTuple{pt}); err != nil {
		t.Fatal(err)
	}
	if err := s.AddResolved(pt); err != nil {
		t.Fatal(err)
	}
	if err := s.AddUnresolved("numpy", []PackageTuple{pt}); err == nil {
		t.Fatal("expected error reopening an already-resolved name")
	}
}

func TestStateCloneIsIndependent(t *testing.T) {
	s := NewState()
	pt := PackageTuple{Name: "numpy", Version: "1.0.0"}
	if err := s.AddUnresolved("numpy", []PackageTuple{pt}); err != nil {
		t.Fatal(err)
	}

	clone := s.Clone()
	if err := clone.AddResolved(pt); err != nil {
		t.Fatal(err)
	}

	if s.IsTerminal() {
		t.Fatal("mutating the clone must not affect the original")
	}
	if !clone.IsTerminal() {
		t.Fatal("clone should be terminal after resolving its dependency")
	}
}

func TestGetRandomUnresolvedDependencyIsReproducible(t *testing.T) {
	s := NewState()
	for _, name := range []string{"a", "b", "c", "d"} {
		if err := s.AddUnresolved(name, []PackageTuple{{Name: name, Version: "1.0.0"}}); err != nil {
			t.Fatal(err)
		}
	}

	r1 := rand.New(rand.NewSource(7))
	r2 := rand.New(rand.NewSource(7))

	for i := 0; i < 10; i++ {
		got1, ok1 := s.GetRandomUnresolvedDependency(r1, true)
		got2, ok2 := s.GetRandomUnresolvedDependency(r2, true)
		if ok1 != ok2 || got1 != got2 {
			t.Fatalf("draw %d diverged: %v/%v vs %v/%v", i, got1, ok1, got2, ok2)
		}
	}
}
