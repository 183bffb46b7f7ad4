package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/thoth-station/adviser-resolver/internal/resolver"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RecommendationType != resolver.RecommendationLatest {
		t.Fatalf("RecommendationType = %v, want default LATEST", cfg.RecommendationType)
	}
	if cfg.BeamWidth != Default().BeamWidth {
		t.Fatalf("BeamWidth = %d, want default", cfg.BeamWidth)
	}
}

func TestLoadParsesTOMLOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resolver.toml")
	content := `
recommendation_type = "STABLE"
beam_width = 16
limit = 500
count = 3
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RecommendationType != resolver.RecommendationStable {
		t.Fatalf("RecommendationType = %v, want STABLE", cfg.RecommendationType)
	}
	if cfg.BeamWidth != 16 || cfg.Limit != 500 || cfg.Count != 3 {
		t.Fatalf("cfg = %+v, want overridden beam_width/limit/count", cfg)
	}
}

func TestValidateRejectsUnrecognizedEnum(t *testing.T) {
	cfg := Default()
	cfg.RecommendationType = "NOT_A_TYPE"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for unrecognized recommendation_type")
	}
}

func TestValidateRejectsNonPositiveBeamWidth(t *testing.T) {
	cfg := Default()
	cfg.BeamWidth = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for non-positive beam_width")
	}
}

func TestApplyEnvReadsPolicySizeVars(t *testing.T) {
	t.Setenv("THOTH_TD_POLICY_SIZE", "256")
	t.Setenv("THOTH_MCTS_POLICY_SIZE", "128")

	cfg := applyEnv(Default())
	if cfg.TDPolicySize != 256 || cfg.MCTSPolicySize != 128 {
		t.Fatalf("cfg = %+v, want TDPolicySize=256 MCTSPolicySize=128", cfg)
	}
}
