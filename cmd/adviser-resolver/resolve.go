package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/thoth-station/adviser-resolver/internal/alog"
	"github.com/thoth-station/adviser-resolver/internal/config"
	"github.com/thoth-station/adviser-resolver/internal/oracle"
	"github.com/thoth-station/adviser-resolver/internal/report"
	"github.com/thoth-station/adviser-resolver/internal/resolver"
	"github.com/thoth-station/adviser-resolver/internal/units"
	"github.com/thoth-station/adviser-resolver/internal/worker"
)

const resolveShortHelp = `Resolve a project's dependencies`
const resolveLongHelp = `
Run the beam-driven resolver against a project file and write a JSON
report to stdout (or -out, if given).
`

type resolveCommand struct {
	configPath  string
	projectPath string
	outPath     string
	verbose     bool
	isolated    bool
	workDir     string
}

func (cmd *resolveCommand) Name() string      { return "resolve" }
func (cmd *resolveCommand) Args() string      { return "-project <path>" }
func (cmd *resolveCommand) ShortHelp() string { return resolveShortHelp }
func (cmd *resolveCommand) LongHelp() string  { return resolveLongHelp }
func (cmd *resolveCommand) Hidden() bool      { return false }

func (cmd *resolveCommand) Register(fs *flag.FlagSet) {
	fs.StringVar(&cmd.configPath, "config", "resolver.toml", "path to the resolver config file")
	fs.StringVar(&cmd.projectPath, "project", "Pipfile.toml", "path to the project file")
	fs.StringVar(&cmd.outPath, "out", "", "path to write the JSON report to (default: stdout)")
	fs.BoolVar(&cmd.verbose, "v", false, "enable verbose logging")
	fs.BoolVar(&cmd.isolated, "isolated", false, "run the resolver pass in an isolated child process")
	fs.StringVar(&cmd.workDir, "work-dir", "", "scratch directory for -isolated (default: a temp dir)")
}

func (cmd *resolveCommand) Run(args []string) error {
	if cmd.isolated {
		return cmd.runIsolated()
	}

	cfg, err := config.Load(cmd.configPath)
	if err != nil {
		return errors.Wrap(err, "loading config")
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "validating config")
	}

	pf, err := os.Open(cmd.projectPath)
	if err != nil {
		return errors.Wrap(err, "opening project file")
	}
	defer pf.Close()

	project, err := report.ReadProject(pf)
	if err != nil {
		return errors.Wrap(err, "reading project file")
	}

	level := logrus.InfoLevel
	if cmd.verbose {
		level = logrus.DebugLevel
	}
	logger := alog.New(os.Stderr, level)

	bc := &resolver.BuilderContext{
		RecommendationType: cfg.RecommendationType,
		DecisionType:        cfg.DecisionType,
		Flags: resolver.RuntimeFlags{
			RuntimeVersion:  cfg.RuntimeVersion,
			OperatingSystem: cfg.OperatingSystem,
			Develop:         cfg.Develop,
		},
		Project: project,
	}

	pipeline, err := units.Build(bc, units.Config{
		BackportPackageName:       "importlib-resources",
		BackportMinRuntimeVersion: "3.9",
		LimitLatestVersions:       cfg.LimitLatestVersions,
		MinimumScore:              cfg.MinimumScore,
	})
	if err != nil {
		return errors.Wrap(err, "building pipeline")
	}

	predictor := newPredictor(cfg)

	ctx := resolver.NewContext(resolver.ContextParams{
		BeamWidth:          cfg.BeamWidth,
		Limit:              cfg.Limit,
		Count:              cfg.Count,
		RecommendationType: cfg.RecommendationType,
		DecisionType:        cfg.DecisionType,
		Flags:               bc.Flags,
		PRNGSeed:            cfg.PRNGSeed,
		KeepHistory:         cfg.KeepHistory,
		TimeoutSeconds:      cfg.TimeoutSeconds,
		Cancel:              context.Background(),
	})
	defer ctx.Close()

	rep, err := resolver.Run(resolver.LoopParams{
		Context:   ctx,
		Oracle:    oracle.NewMapOracle(),
		Pipeline:  pipeline,
		Predictor: predictor,
		Project:   project,
		Logger:    logger,
	})
	if err != nil {
		return errors.Wrap(err, "running resolver")
	}

	out := os.Stdout
	if cmd.outPath != "" {
		f, err := os.Create(cmd.outPath)
		if err != nil {
			return errors.Wrap(err, "creating output file")
		}
		defer f.Close()
		out = f
	}

	return report.Encode(out, rep)
}

// runIsolated drives the resolve pass through internal/worker, re-exec'ing
// this same binary's hidden "worker" subcommand as a child process so an
// OOM or hang in the resolver loop never takes the parent down.
func (cmd *resolveCommand) runIsolated() error {
	workDir := cmd.workDir
	if workDir == "" {
		dir, err := os.MkdirTemp("", "adviser-resolver-worker-")
		if err != nil {
			return errors.Wrap(err, "creating work dir")
		}
		workDir = dir
		defer os.RemoveAll(workDir)
	}

	self, err := os.Executable()
	if err != nil {
		return errors.Wrap(err, "resolving own executable path")
	}

	logger := alog.New(os.Stderr, logrus.InfoLevel)

	rep, err := worker.Run(context.Background(), worker.RunParams{
		Command: []string{self, "worker"},
		WorkDir: workDir,
		Request: worker.Request{
			ConfigPath:  cmd.configPath,
			ProjectPath: cmd.projectPath,
		},
		LivenessInterval: 5 * time.Second,
		Logger:           logger,
	})
	if err != nil {
		return errors.Wrap(err, "isolated resolver run")
	}

	out := os.Stdout
	if cmd.outPath != "" {
		f, err := os.Create(cmd.outPath)
		if err != nil {
			return errors.Wrap(err, "creating output file")
		}
		defer f.Close()
		out = f
	}
	return report.Encode(out, rep)
}

func newPredictor(cfg config.Config) *resolver.Predictor {
	switch cfg.Predictor {
	case config.PredictorTD:
		return resolver.NewTDPredictor(cfg.TDPolicySize)
	case config.PredictorMCTS:
		return resolver.NewMCTSPredictor(cfg.MCTSPolicySize)
	default:
		return resolver.NewASAPredictor()
	}
}
