package units_test

import (
	"context"
	"testing"

	"github.com/thoth-station/adviser-resolver/internal/oracle"
	"github.com/thoth-station/adviser-resolver/internal/resolver"
	"github.com/thoth-station/adviser-resolver/internal/units"
)

func buildOracle() *oracle.MapOracle {
	o := oracle.NewMapOracle()

	o.RegisterVersions("tensorflow",
		resolver.PackageTuple{Name: "tensorflow", Version: "1.9.0", IndexURL: "https://pypi.org/simple"},
		resolver.PackageTuple{Name: "tensorflow", Version: "2.0.0", IndexURL: "https://pypi.org/simple"},
		resolver.PackageTuple{Name: "tensorflow", Version: "2.1.0-rc1", IndexURL: "https://pypi.org/simple"},
	)
	o.RegisterVersions("numpy",
		resolver.PackageTuple{Name: "numpy", Version: "1.0.0", IndexURL: "https://pypi.org/simple"},
	)

	return o
}

// TestCutPreReleasesRemovesPrereleaseCandidates is scenario S6 (spec.md
// §8): a pre-release candidate version is excluded from consideration
// unless the project explicitly opts in.
func TestCutPreReleasesRemovesPrereleaseCandidates(t *testing.T) {
	o := buildOracle()
	versions, err := o.GetVersions(context.Background(), "tensorflow", nil)
	if err != nil {
		t.Fatal(err)
	}

	sieve := units.NewCutPreReleases()
	filtered, err := sieve.Run(nil, "tensorflow", versions)
	if err != nil {
		t.Fatal(err)
	}

	for _, c := range filtered {
		if c.Version == "2.1.0-rc1" {
			t.Fatalf("prerelease candidate %v should have been cut", c)
		}
	}
	if len(filtered) != 2 {
		t.Fatalf("filtered = %v, want 2 non-prerelease candidates", filtered)
	}
}

// TestLimitLatestVersionsCapsPerName is scenario S2/S3: only the newest N
// candidates per package name are kept.
func TestLimitLatestVersionsCapsPerName(t *testing.T) {
	o := buildOracle()
	versions, err := o.GetVersions(context.Background(), "tensorflow", nil)
	if err != nil {
		t.Fatal(err)
	}

	sieve := units.NewLimitLatestVersions(1)
	filtered, err := sieve.Run(nil, "tensorflow", versions)
	if err != nil {
		t.Fatal(err)
	}
	if len(filtered) != 1 {
		t.Fatalf("filtered = %v, want exactly 1 candidate", filtered)
	}
	if filtered[0].Version != "2.1.0-rc1" {
		t.Fatalf("filtered[0] = %v, want the newest (oracle-sorted) candidate", filtered[0])
	}
}

// TestBackportRemovalDropsOnlyOnNewRuntime grounds
// units.BackportRemoval against ImportlibResourcesBackportBoot's original
// should_include/run behavior.
func TestBackportRemovalDropsOnlyOnNewRuntime(t *testing.T) {
	project := &resolver.Project{
		Direct: []resolver.Dependency{
			{Name: "importlib-resources", Candidates: []resolver.PackageTuple{
				{Name: "importlib-resources", Version: "3.0.0"},
			}},
		},
	}

	boot := units.NewBackportRemoval("importlib-resources", "3.9")

	bcOld := &resolver.BuilderContext{Flags: resolver.RuntimeFlags{RuntimeVersion: "3.8"}, Project: project}
	if _, ok := boot.ShouldInclude(bcOld); ok {
		t.Fatal("should not register on a runtime older than the backport's minimum")
	}

	bcNew := &resolver.BuilderContext{Flags: resolver.RuntimeFlags{RuntimeVersion: "3.9"}, Project: project}
	if _, ok := boot.ShouldInclude(bcNew); !ok {
		t.Fatal("should register once the runtime carries the module natively")
	}

	ctx := resolver.NewContext(resolver.ContextParams{Flags: resolver.RuntimeFlags{RuntimeVersion: "3.9"}})
	defer ctx.Close()

	if err := boot.Run(ctx, project); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(project.Direct) != 0 {
		t.Fatalf("backport dependency should have been removed, got %v", project.Direct)
	}
}

// TestEndToEndResolverRunAcceptsAStack drives the full resolver loop
// (Boot -> Sieve -> Step -> Stride -> Wrap) over a small, fully-specified
// dependency graph and checks that it terminates having accepted at least
// one stack, the way a real advise run would.
func TestEndToEndResolverRunAcceptsAStack(t *testing.T) {
	o := oracle.NewMapOracle()
	o.RegisterVersions("tensorflow",
		resolver.PackageTuple{Name: "tensorflow", Version: "2.0.0", IndexURL: "https://pypi.org/simple"},
	)
	o.RegisterVersions("numpy",
		resolver.PackageTuple{Name: "numpy", Version: "1.0.0", IndexURL: "https://pypi.org/simple"},
	)
	o.RegisterDependencies(
		resolver.PackageTuple{Name: "tensorflow", Version: "2.0.0", IndexURL: "https://pypi.org/simple"},
		resolver.Dependency{Name: "numpy", Candidates: []resolver.PackageTuple{
			{Name: "numpy", Version: "1.0.0", IndexURL: "https://pypi.org/simple"},
		}},
	)

	project := &resolver.Project{
		Direct: []resolver.Dependency{
			{Name: "tensorflow", Candidates: []resolver.PackageTuple{
				{Name: "tensorflow", Version: "2.0.0", IndexURL: "https://pypi.org/simple"},
			}},
		},
	}

	bc := &resolver.BuilderContext{
		RecommendationType: resolver.RecommendationLatest,
		Project:            project,
	}
	pipeline, err := units.Build(bc, units.Config{LimitLatestVersions: 5, MinimumScore: -1})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	ctx := resolver.NewContext(resolver.ContextParams{
		BeamWidth:          8,
		Limit:              100,
		Count:              1,
		RecommendationType: resolver.RecommendationLatest,
		PRNGSeed:            1,
		TimeoutSeconds:      5,
	})
	defer ctx.Close()

	rep, err := resolver.Run(resolver.LoopParams{
		Context:   ctx,
		Oracle:    o,
		Pipeline:  pipeline,
		Predictor: resolver.NewASAPredictor(),
		Project:   project,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(rep.Stacks) == 0 {
		t.Fatalf("expected at least one accepted stack, got report %+v", rep)
	}
	if rep.TerminationReason != resolver.ReasonCountReached {
		t.Fatalf("TerminationReason = %v, want CountReached", rep.TerminationReason)
	}
}
