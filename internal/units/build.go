package units

import "github.com/thoth-station/adviser-resolver/internal/resolver"

// Config configures the standard unit set Build assembles.
type Config struct {
	BackportPackageName      string
	BackportMinRuntimeVersion string
	LimitLatestVersions      int
	MinimumScore             float64
}

// Build assembles the standard pipeline-unit set and hands it to
// resolver.BuildPipeline, so callers do not need to enumerate every known
// unit by hand.
func Build(bc *resolver.BuilderContext, cfg Config) (*resolver.Pipeline, error) {
	candidates := []resolver.Unit{
		NewCutPreReleases(),
		NewLimitLatestVersions(cfg.LimitLatestVersions),
		NewRecommendationTypeScore(),
		NewDuplicatesRejection(),
		NewMinimumScoreStride(cfg.MinimumScore),
		NewAdvisoryJustificationWrap(),
	}
	if cfg.BackportPackageName != "" {
		candidates = append(candidates, NewBackportRemoval(cfg.BackportPackageName, cfg.BackportMinRuntimeVersion))
	}
	return resolver.BuildPipeline(bc, candidates...)
}
