// Package report provides JSON encode/decode helpers for resolver.Report,
// plus a minimal project-file reader that builds a resolver.Project's
// direct dependency set. The report is encoded through the json tags on
// resolver.Report itself; the project reader follows the teacher's
// manifest.go pattern of a raw*-struct decode target mapped into the
// domain type.
package report

import (
	"bytes"
	"encoding/json"
	"io"
	"sort"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"

	"github.com/thoth-station/adviser-resolver/internal/resolver"
)

// Encode writes r as indented JSON to w.
func Encode(w io.Writer, r *resolver.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Decode reads a resolver.Report as JSON from r.
func Decode(r io.Reader) (*resolver.Report, error) {
	var out resolver.Report
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, errors.Wrap(err, "decoding report")
	}
	return &out, nil
}

// rawProject is the on-disk shape of a minimal Pipfile-like project
// description: package name to pinned/candidate versions, split into
// regular and development sections.
type rawProject struct {
	PrereleasesAllowed bool                `toml:"prereleases_allowed"`
	Packages           map[string][]string `toml:"packages"`
	DevPackages        map[string][]string `toml:"dev_packages"`
	IndexURL           string              `toml:"index_url"`
}

// ReadProject parses a Pipfile-like TOML project description into a
// resolver.Project. Each package maps to a list of versions (newest listed
// first) that become the initial candidates of that open dependency. The
// resolver loop expands a dependency by asking the Oracle for every version
// of its name, so the list does not restrict which versions are tried; it
// may be left empty.
func ReadProject(r io.Reader) (*resolver.Project, error) {
	buf := &bytes.Buffer{}
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, errors.Wrap(err, "reading project file")
	}

	var raw rawProject
	if err := toml.Unmarshal(buf.Bytes(), &raw); err != nil {
		return nil, errors.Wrap(err, "parsing project file as TOML")
	}

	indexURL := raw.IndexURL
	if indexURL == "" {
		indexURL = "https://pypi.org/simple"
	}

	return &resolver.Project{
		PrereleasesAllowed: raw.PrereleasesAllowed,
		Direct:             toDependencies(raw.Packages, indexURL),
		DevDirect:          toDependencies(raw.DevPackages, indexURL),
	}, nil
}

func toDependencies(packages map[string][]string, indexURL string) []resolver.Dependency {
	names := make([]string, 0, len(packages))
	for name := range packages {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]resolver.Dependency, 0, len(packages))
	for _, name := range names {
		versions := packages[name]
		candidates := make([]resolver.PackageTuple, 0, len(versions))
		for _, v := range versions {
			candidates = append(candidates, resolver.PackageTuple{Name: name, Version: v, IndexURL: indexURL})
		}
		out = append(out, resolver.Dependency{Name: name, Candidates: candidates})
	}
	return out
}
