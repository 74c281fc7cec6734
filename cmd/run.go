package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"narrative-video-automator/config"
	"narrative-video-automator/imagegen"
	"narrative-video-automator/logging"
	"narrative-video-automator/metrics"
	"narrative-video-automator/scenes"
	"narrative-video-automator/types"
	"narrative-video-automator/visuals"
)

// run holds everything one CLI invocation needs
type run struct {
	cfg       *config.Config
	logger    *zap.Logger
	collector *metrics.Collector
	dir       string
	state     *types.RunState
}

func newRun(path, mode string) (*run, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger := logging.New(cfg.Log)

	runID := uuid.NewString()[:8]
	dir := filepath.Join(cfg.Paths.Output, runID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create run dir: %w", err)
	}

	logger.Info("run starting", zap.String("run_id", runID), zap.String("mode", mode), zap.String("dir", dir))

	return &run{
		cfg:       cfg,
		logger:    logger,
		collector: metrics.NewCollector(logger),
		dir:       dir,
		state: &types.RunState{
			RunID:     runID,
			Mode:      mode,
			StartedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}

func (r *run) pipeline() *scenes.Pipeline {
	generator := imagegen.New(r.cfg.ImageGeneration, r.logger)
	resolver := visuals.New(r.cfg, nil, r.collector, r.logger)
	return scenes.NewPipeline(generator, resolver, scenes.NewAnimator(nil), r.collector, r.logger)
}

// progress logs pipeline events as they arrive
func (r *run) progress() scenes.ProgressFunc {
	return func(ev scenes.ProgressEvent) {
		fields := []zap.Field{
			zap.String("stage", ev.Stage),
			zap.Int("current", ev.Current),
			zap.Int("total", ev.Total),
			zap.Float64("progress", ev.Value),
		}
		if ev.ErrorMessage != "" {
			r.logger.Warn(ev.Message, append(fields, zap.String("error", ev.ErrorMessage))...)
			return
		}
		r.logger.Info(ev.Message, fields...)
	}
}

// finish writes the scenes, the run state and optionally the metrics file
func (r *run) finish(result []*types.Scene, warnings []string, metricsFile string, runErr error) error {
	defer r.logger.Sync() //nolint:errcheck

	if runErr == nil {
		scenesFile := filepath.Join(r.dir, "scenes.json")
		if err := saveJSON(scenesFile, result); err != nil {
			runErr = err
		} else {
			r.state.ScenesFile = scenesFile
			r.state.SceneCount = len(result)
		}
	}
	r.state.Warnings = warnings
	if runErr != nil {
		r.state.Error = runErr.Error()
	}
	r.state.CompletedAt = time.Now().UTC().Format(time.RFC3339)

	if err := saveJSON(filepath.Join(r.dir, "run_state.json"), r.state); err != nil {
		r.logger.Warn("could not save run state", zap.Error(err))
	}
	if metricsFile != "" {
		if err := r.collector.WriteTextfile(metricsFile); err != nil {
			r.logger.Warn("could not write metrics", zap.String("path", metricsFile), zap.Error(err))
		}
	}

	if runErr != nil {
		r.logger.Error("run failed", zap.String("run_id", r.state.RunID), zap.Error(runErr))
		return runErr
	}
	r.logger.Info("run complete",
		zap.String("run_id", r.state.RunID),
		zap.Int("scenes", r.state.SceneCount),
		zap.Int("warnings", len(warnings)),
		zap.String("output", r.state.ScenesFile),
	)
	return nil
}

func (r *run) aspectRatio(flag string) types.AspectRatio {
	if flag != "" {
		return types.AspectRatio(flag)
	}
	return types.AspectRatio(r.cfg.Pipeline.DefaultAspectRatio)
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func saveJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
