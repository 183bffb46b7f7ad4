package resolver

import "testing"

type fakeUnit struct {
	name     string
	priority int
	include  bool
}

func (f *fakeUnit) UnitName() string { return f.name }
func (f *fakeUnit) Priority() int    { return f.priority }
func (f *fakeUnit) ShouldInclude(bc *BuilderContext) (map[string]interface{}, bool) {
	return nil, f.include
}
func (f *fakeUnit) PreRun(ctx *Context) error  { return nil }
func (f *fakeUnit) PostRun(ctx *Context) error { return nil }

type fakeSieve struct{ fakeUnit }

func (f *fakeSieve) Run(ctx *Context, name string, candidates []PackageTuple) ([]PackageTuple, error) {
	return candidates, nil
}

type fakeBoot struct{ fakeUnit }

func (f *fakeBoot) Run(ctx *Context, project *Project) error { return nil }

// unitOnly implements Unit but none of the category interfaces, so
// BuildPipeline must reject it.
type unitOnly struct{ fakeUnit }

func TestBuildPipelineOrdersByPriorityThenName(t *testing.T) {
	bc := &BuilderContext{}
	low := &fakeSieve{fakeUnit{name: "zeta", priority: 1, include: true}}
	high := &fakeSieve{fakeUnit{name: "alpha", priority: 1, include: true}}
	first := &fakeSieve{fakeUnit{name: "beta", priority: 0, include: true}}

	p, err := BuildPipeline(bc, low, high, first)
	if err != nil {
		t.Fatalf("BuildPipeline: %v", err)
	}
	if len(p.Sieves) != 3 {
		t.Fatalf("Sieves = %v, want 3", p.Sieves)
	}
	want := []string{"beta", "alpha", "zeta"}
	for i, name := range want {
		if p.Sieves[i].UnitName() != name {
			t.Fatalf("Sieves[%d] = %s, want %s (order: %v)", i, p.Sieves[i].UnitName(), name, p.Sieves)
		}
	}
}

func TestBuildPipelineExcludesUnitsThatOptOut(t *testing.T) {
	bc := &BuilderContext{}
	in := &fakeBoot{fakeUnit{name: "in", include: true}}
	out := &fakeBoot{fakeUnit{name: "out", include: false}}

	p, err := BuildPipeline(bc, in, out)
	if err != nil {
		t.Fatalf("BuildPipeline: %v", err)
	}
	if len(p.Boots) != 1 || p.Boots[0].UnitName() != "in" {
		t.Fatalf("Boots = %v, want only the included unit", p.Boots)
	}
}

func TestBuildPipelineRejectsUnitWithNoCategory(t *testing.T) {
	bc := &BuilderContext{}
	u := &unitOnly{fakeUnit{name: "orphan", include: true}}

	if _, err := BuildPipeline(bc, u); err == nil {
		t.Fatal("expected an error for a Unit implementing no pipeline category")
	}
}

func TestProjectRemoveDirectReportsWhetherAnythingWasRemoved(t *testing.T) {
	p := &Project{Direct: []Dependency{{Name: "numpy"}, {Name: "tensorflow"}}}

	if !p.RemoveDirect("numpy") {
		t.Fatal("expected RemoveDirect to report true for a present dependency")
	}
	if len(p.Direct) != 1 || p.Direct[0].Name != "tensorflow" {
		t.Fatalf("Direct = %v, want only tensorflow left", p.Direct)
	}
	if p.RemoveDirect("numpy") {
		t.Fatal("expected RemoveDirect to report false once the dependency is already gone")
	}
}
