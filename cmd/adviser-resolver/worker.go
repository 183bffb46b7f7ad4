package main

import (
	"context"
	"encoding/json"
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

const workerShortHelp = `Run one resolver pass as an isolated child (internal use)`
const workerLongHelp = `
worker reads its request from $THOTH_WORKER_REQUEST, runs a single
resolver pass, touches $THOTH_WORKER_SENTINEL about once a second, and
writes the resulting report to $THOTH_WORKER_RESULT. It is invoked by
"resolve -isolated"; it is not meant to be run directly.
`

type workerCommand struct{}

func (cmd *workerCommand) Name() string      { return "worker" }
func (cmd *workerCommand) Args() string      { return "" }
func (cmd *workerCommand) ShortHelp() string { return workerShortHelp }
func (cmd *workerCommand) LongHelp() string  { return workerLongHelp }
func (cmd *workerCommand) Hidden() bool      { return true }

func (cmd *workerCommand) Register(fs *flag.FlagSet) {}

func (cmd *workerCommand) Run(args []string) error {
	requestPath := os.Getenv("THOTH_WORKER_REQUEST")
	resultPath := os.Getenv("THOTH_WORKER_RESULT")
	sentinelPath := os.Getenv("THOTH_WORKER_SENTINEL")
	if requestPath == "" || resultPath == "" {
		return errors.New("worker: THOTH_WORKER_REQUEST and THOTH_WORKER_RESULT must be set")
	}

	rf, err := os.Open(requestPath)
	if err != nil {
		return errors.Wrap(err, "opening worker request")
	}
	var req worker.Request
	if err := json.NewDecoder(rf).Decode(&req); err != nil {
		rf.Close()
		return errors.Wrap(err, "decoding worker request")
	}
	rf.Close()

	cfg, err := config.Load(req.ConfigPath)
	if err != nil {
		return errors.Wrap(err, "loading config")
	}

	pf, err := os.Open(req.ProjectPath)
	if err != nil {
		return errors.Wrap(err, "opening project file")
	}
	project, err := report.ReadProject(pf)
	pf.Close()
	if err != nil {
		return errors.Wrap(err, "reading project file")
	}

	logger := alog.New(os.Stderr, logrus.InfoLevel)

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

	if sentinelPath != "" {
		_ = worker.TouchSentinel(sentinelPath)
		stop := make(chan struct{})
		defer close(stop)
		go func() {
			tick := time.NewTicker(time.Second)
			defer tick.Stop()
			for {
				select {
				case <-stop:
					return
				case <-tick.C:
					_ = worker.TouchSentinel(sentinelPath)
				}
			}
		}()
	}

	rep, err := resolver.Run(resolver.LoopParams{
		Context:   ctx,
		Oracle:    oracle.NewMapOracle(),
		Pipeline:  pipeline,
		Predictor: newPredictor(cfg),
		Project:   project,
		Logger:    logger,
	})
	if err != nil {
		return errors.Wrap(err, "running resolver")
	}

	out, err := os.Create(resultPath)
	if err != nil {
		return errors.Wrap(err, "creating worker result")
	}
	defer out.Close()

	return report.Encode(out, rep)
}
