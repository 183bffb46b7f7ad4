// Package units provides concrete pipeline units: Boots, Sieves, Steps,
// Strides, and Wraps that register into a resolver.Pipeline depending on
// the run's RuntimeFlags, RecommendationType, and DecisionType. Each is
// grounded on a corresponding unit in the original Python implementation
// under thoth/adviser, re-expressed against resolver.BuilderContext.
package units

import (
	"strconv"
	"strings"

	"github.com/thoth-station/adviser-resolver/internal/alog"
	"github.com/thoth-station/adviser-resolver/internal/resolver"
)

// BackportRemoval removes a direct dependency that exists only to backport
// a standard-library module into older runtimes, once the target runtime
// is new enough to carry that module natively. It is grounded on
// thoth.adviser.boots.ImportlibResourcesBackportBoot, generalized from the
// single importlib-resources/Python-3.9 case to an arbitrary
// (package name, minimum runtime version) pair so the same unit serves any
// backport package the caller configures.
type BackportRemoval struct {
	// PackageName is the backport package to remove, e.g.
	// "importlib-resources".
	PackageName string
	// MinRuntimeVersion is the dotted version ("3.9") at and above which
	// the backport is redundant.
	MinRuntimeVersion string

	logger *alog.Logger
}

// NewBackportRemoval constructs a BackportRemoval unit.
func NewBackportRemoval(packageName, minRuntimeVersion string) *BackportRemoval {
	return &BackportRemoval{PackageName: packageName, MinRuntimeVersion: minRuntimeVersion}
}

func (u *BackportRemoval) UnitName() string { return "BackportRemoval[" + u.PackageName + "]" }
func (u *BackportRemoval) Priority() int     { return 0 }

// ShouldInclude registers only when the project actually carries the
// backport package (as a regular or dev dependency) and the target runtime
// is at or above MinRuntimeVersion, i.e. new enough to have the module
// built in, so the unit can strip the now-redundant dependency. On an older
// runtime it opts out.
func (u *BackportRemoval) ShouldInclude(bc *resolver.BuilderContext) (map[string]interface{}, bool) {
	if !runtimeAtLeast(bc.Flags.RuntimeVersion, u.MinRuntimeVersion) {
		return nil, false
	}
	for _, d := range bc.Project.Direct {
		if d.Name == u.PackageName {
			return map[string]interface{}{}, true
		}
	}
	for _, d := range bc.Project.DevDirect {
		if d.Name == u.PackageName {
			return map[string]interface{}{}, true
		}
	}
	return nil, false
}

func (u *BackportRemoval) PreRun(ctx *resolver.Context) error  { return nil }
func (u *BackportRemoval) PostRun(ctx *resolver.Context) error { return nil }

// Run removes the backport package from both the regular and dev direct
// dependency lists and records why.
func (u *BackportRemoval) Run(ctx *resolver.Context, project *resolver.Project) error {
	removed := project.RemoveDirect(u.PackageName)
	removed = project.RemoveDevDirect(u.PackageName) || removed
	if removed {
		ctx.StackInfo = append(ctx.StackInfo, resolver.Justification{
			Type:    resolver.JustificationInfo,
			Message: "removed backport dependency " + u.PackageName + ": runtime " + ctx.Flags.RuntimeVersion + " carries it natively",
		})
	}
	return nil
}

// runtimeAtLeast compares two dotted version strings component-wise,
// numerically. A malformed or empty version on either side compares as
// not-at-least, since the caller cannot prove the backport is redundant.
func runtimeAtLeast(have, min string) bool {
	if have == "" || min == "" {
		return false
	}
	hv := strings.Split(have, ".")
	mv := strings.Split(min, ".")
	for i := 0; i < len(mv); i++ {
		var h, m int64
		if i < len(hv) {
			h, _ = strconv.ParseInt(hv[i], 10, 64)
		}
		m, _ = strconv.ParseInt(mv[i], 10, 64)
		if h != m {
			return h > m
		}
	}
	return true
}
