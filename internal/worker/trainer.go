package worker

import (
	"context"

	"github.com/autonex/aiops/internal/detector"
	"github.com/autonex/aiops/internal/domain/metric"
	"github.com/autonex/aiops/internal/pkg/logger"
	"github.com/autonex/aiops/internal/pkg/metrics"
)

// TrainerWorker periodically refits the outlier model on a rolling window of
// recent samples across all services
type TrainerWorker struct {
	repo    metric.Repository
	engine  *detector.Engine
	window  int
	minimum int
	logger  *logger.Logger
}

// NewTrainerWorker creates a new trainer worker. window is the number of
// recent samples to train on; minimum is the threshold below which a cycle
// is skipped without touching the current model.
func NewTrainerWorker(repo metric.Repository, engine *detector.Engine, window, minimum int, log *logger.Logger) *TrainerWorker {
	return &TrainerWorker{
		repo:    repo,
		engine:  engine,
		window:  window,
		minimum: minimum,
		logger:  log,
	}
}

// RunOnce executes a single training cycle. Too few samples is a silent
// skip, not an error; the previously fitted model stays in service.
func (w *TrainerWorker) RunOnce(ctx context.Context) error {
	recent, err := w.repo.ListRecent(ctx, w.window)
	if err != nil {
		metrics.RecordTrainingRun("error", 0)
		return err
	}

	if len(recent) < w.minimum {
		metrics.RecordTrainingRun("skipped", 0)
		w.logger.Debugf("Skipping training, %d of %d samples available", len(recent), w.minimum)
		return nil
	}

	samples := make([][]float64, len(recent))
	for i, m := range recent {
		samples[i] = m.Features()
	}

	if err := w.engine.Train(samples); err != nil {
		metrics.RecordTrainingRun("error", 0)
		w.logger.ErrorWithErr(err, "Model training failed")
		return err
	}

	metrics.RecordTrainingRun("success", len(samples))
	w.logger.WithFields(map[string]interface{}{
		"samples": len(samples),
	}).Info("Outlier model retrained")

	return nil
}
