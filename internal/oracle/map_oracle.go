// Package oracle provides Oracle implementations. MapOracle is an
// in-memory, pre-populated oracle useful for tests and for dry runs against
// a previously captured dependency graph; it is grounded on the teacher's
// gps source managers, which likewise serve version/dependency queries out
// of an in-memory cache rather than the network.
package oracle

import (
	"context"
	"sort"

	"github.com/Masterminds/semver"

	"github.com/thoth-station/adviser-resolver/internal/resolver"
)

// MapOracle answers every query from maps populated up front. Versions are
// sorted newest-first at construction time, as the resolver.Oracle contract
// requires.
type MapOracle struct {
	versions map[string][]resolver.PackageTuple
	deps     map[resolver.PackageTuple][]resolver.Dependency
	markers  map[resolver.PackageTuple]resolver.EnvironmentMarkers
}

// NewMapOracle builds an empty MapOracle; use Register* to populate it.
func NewMapOracle() *MapOracle {
	return &MapOracle{
		versions: make(map[string][]resolver.PackageTuple),
		deps:     make(map[resolver.PackageTuple][]resolver.Dependency),
		markers:  make(map[resolver.PackageTuple]resolver.EnvironmentMarkers),
	}
}

// RegisterVersions records the candidate versions for name and sorts them
// newest-first using semantic-version comparison. Tuples whose Version does
// not parse as semver sort last, in the order given.
func (m *MapOracle) RegisterVersions(name string, tuples ...resolver.PackageTuple) {
	cp := append([]resolver.PackageTuple(nil), tuples...)
	sort.SliceStable(cp, func(i, j int) bool {
		vi, ei := semver.NewVersion(cp[i].Version)
		vj, ej := semver.NewVersion(cp[j].Version)
		if ei != nil || ej != nil {
			return ei == nil && ej != nil
		}
		return vi.GreaterThan(vj)
	})
	m.versions[name] = cp
}

// RegisterDependencies records pt's direct dependencies.
func (m *MapOracle) RegisterDependencies(pt resolver.PackageTuple, deps ...resolver.Dependency) {
	m.deps[pt] = deps
}

// RegisterMarkers records pt's environment markers.
func (m *MapOracle) RegisterMarkers(pt resolver.PackageTuple, markers resolver.EnvironmentMarkers) {
	m.markers[pt] = markers
}

// GetVersions implements resolver.Oracle.
func (m *MapOracle) GetVersions(ctx context.Context, name string, env resolver.EnvironmentMarkers) ([]resolver.PackageTuple, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.versions[name], nil
}

// GetDependencies implements resolver.Oracle.
func (m *MapOracle) GetDependencies(ctx context.Context, pt resolver.PackageTuple, env resolver.EnvironmentMarkers) ([]resolver.Dependency, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.deps[pt], nil
}

// GetEnvironmentMarkers implements resolver.Oracle.
func (m *MapOracle) GetEnvironmentMarkers(ctx context.Context, pt resolver.PackageTuple) (resolver.EnvironmentMarkers, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.markers[pt], nil
}
