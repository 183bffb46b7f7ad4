// Package config loads resolver.toml (grounded on the teacher's own
// toml.go, which reads Gopkg.toml through github.com/pelletier/go-toml)
// on top of Default() and applies the policy-size environment variables.
// There are no command-line overrides of config fields; Validate is a
// separate call.
package config

import (
	"os"
	"strconv"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"

	"github.com/thoth-station/adviser-resolver/internal/resolver"
)

// Predictor selects which predictor family a run uses.
type Predictor string

// Recognized predictor families.
const (
	PredictorASA  Predictor = "asa"
	PredictorTD   Predictor = "td"
	PredictorMCTS Predictor = "mcts"
)

// Config is the merged, validated configuration for one resolver run.
type Config struct {
	RecommendationType resolver.RecommendationType `toml:"recommendation_type"`
	DecisionType        resolver.DecisionType       `toml:"decision_type"`
	Predictor            Predictor                   `toml:"predictor"`

	BeamWidth   int    `toml:"beam_width"`
	Limit       uint64 `toml:"limit"`
	Count       uint64 `toml:"count"`
	TimeoutSeconds int `toml:"timeout_seconds"`
	PRNGSeed    int64  `toml:"prng_seed"`
	KeepHistory bool   `toml:"keep_history"`

	LimitLatestVersions int     `toml:"limit_latest_versions"`
	MinimumScore        float64 `toml:"minimum_score"`

	RuntimeVersion  string `toml:"runtime_version"`
	OperatingSystem string `toml:"operating_system"`
	Develop         bool   `toml:"develop"`

	// TDPolicySize and MCTSPolicySize cap the number of entries the TD
	// and MCTS predictors' PolicyStore retains before evicting, read from
	// THOTH_TD_POLICY_SIZE / THOTH_MCTS_POLICY_SIZE if set (spec.md §6);
	// zero means unbounded.
	TDPolicySize   int `toml:"-"`
	MCTSPolicySize int `toml:"-"`
}

// Default returns a Config with the engine's documented defaults.
func Default() Config {
	return Config{
		RecommendationType: resolver.RecommendationLatest,
		Predictor:           PredictorASA,
		BeamWidth:           64,
		Limit:               10000,
		Count:               10,
		TimeoutSeconds:      300,
		PRNGSeed:            42,
		LimitLatestVersions: 5,
	}
}

// Load reads a TOML config file at path, applying its values on top of
// Default(). A missing file is not an error: Default() is returned (with
// the environment overrides still applied), the way an absent Gopkg.toml
// falls back to inferred defaults in the teacher.
func Load(path string) (Config, error) {
	cfg := Default()

	buf, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return applyEnv(cfg), nil
		}
		return cfg, errors.Wrapf(err, "reading config %s", path)
	}

	if err := toml.Unmarshal(buf, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %s", path)
	}

	return applyEnv(cfg), nil
}

func applyEnv(cfg Config) Config {
	if v, ok := os.LookupEnv("THOTH_TD_POLICY_SIZE"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TDPolicySize = n
		}
	}
	if v, ok := os.LookupEnv("THOTH_MCTS_POLICY_SIZE"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MCTSPolicySize = n
		}
	}
	return cfg
}

// Validate checks that the enum-typed fields carry a recognized value.
func (c Config) Validate() error {
	switch c.RecommendationType {
	case resolver.RecommendationLatest, resolver.RecommendationStable, resolver.RecommendationTesting,
		resolver.RecommendationPerformance, resolver.RecommendationSecurity, "":
	default:
		return errors.Errorf("unrecognized recommendation_type %q", c.RecommendationType)
	}

	switch c.DecisionType {
	case resolver.DecisionRandom, resolver.DecisionAll, "":
	default:
		return errors.Errorf("unrecognized decision_type %q", c.DecisionType)
	}

	switch c.Predictor {
	case PredictorASA, PredictorTD, PredictorMCTS:
	default:
		return errors.Errorf("unrecognized predictor %q", c.Predictor)
	}

	if c.BeamWidth <= 0 {
		return errors.New("beam_width must be positive")
	}

	return nil
}
