package resolver

import "context"

// Oracle is the read-only package-metadata contract the resolver loop
// consumes (spec.md §6). Implementations may be network-backed; the loop
// itself never blocks on I/O except through this interface, and it
// preserves sequential, one-expansion-at-a-time semantics regardless of
// whether a given implementation is internally asynchronous.
type Oracle interface {
	// GetVersions returns the candidate versions for name, sorted
	// newest-first.
	GetVersions(ctx context.Context, name string, env EnvironmentMarkers) ([]PackageTuple, error)
	// GetDependencies returns pt's direct dependencies, each with its own
	// candidate versions, newest-first.
	GetDependencies(ctx context.Context, pt PackageTuple, env EnvironmentMarkers) ([]Dependency, error)
	// GetEnvironmentMarkers returns whatever environment-dependent
	// metadata is known about pt.
	GetEnvironmentMarkers(ctx context.Context, pt PackageTuple) (EnvironmentMarkers, error)
}
