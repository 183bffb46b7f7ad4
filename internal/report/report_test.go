package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/thoth-station/adviser-resolver/internal/resolver"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	in := &resolver.Report{
		Stacks: []resolver.StackReport{
			{Score: 4.5, Resolved: []resolver.PackageTuple{{Name: "numpy", Version: "1.0.0"}}},
		},
		TerminationReason: resolver.ReasonCountReached,
		Metrics:           resolver.Metrics{Iterations: 10, Accepted: 1},
	}

	buf := &bytes.Buffer{}
	if err := Encode(buf, in); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	out, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if out.TerminationReason != in.TerminationReason || len(out.Stacks) != 1 || out.Stacks[0].Score != 4.5 {
		t.Fatalf("round-tripped report = %+v, want match of %+v", out, in)
	}
}

func TestReadProjectParsesPackagesSortedByName(t *testing.T) {
	src := `
prereleases_allowed = true
index_url = "https://thoth-station.ninja/simple"

[packages]
tensorflow = ["2.0.0", "1.9.0"]
numpy = ["1.0.0"]
`
	project, err := ReadProject(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadProject: %v", err)
	}

	if !project.PrereleasesAllowed {
		t.Fatal("expected prereleases_allowed to be true")
	}
	if len(project.Direct) != 2 {
		t.Fatalf("Direct = %v, want 2 dependencies", project.Direct)
	}
	if project.Direct[0].Name != "numpy" || project.Direct[1].Name != "tensorflow" {
		t.Fatalf("Direct = %v, want sorted by name (numpy, tensorflow)", project.Direct)
	}
	if project.Direct[1].Candidates[0].IndexURL != "https://thoth-station.ninja/simple" {
		t.Fatalf("candidate index URL not propagated: %+v", project.Direct[1].Candidates[0])
	}
}
