package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/autonex/aiops/internal/pkg/logger"
)

// jobTimeout bounds a single scheduled run
const jobTimeout = 30 * time.Second

// Runner is a single unit of scheduled work
type Runner interface {
	RunOnce(ctx context.Context) error
}

// Scheduler runs workers on fixed intervals. A failed run is logged and
// retried on the next tick; there is no separate backoff.
type Scheduler struct {
	cron   *cron.Cron
	logger *logger.Logger
}

// NewScheduler creates an empty scheduler
func NewScheduler(log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		logger: log,
	}
}

// Add registers a worker to run at the given interval
func (s *Scheduler) Add(name string, interval time.Duration, r Runner) error {
	spec := fmt.Sprintf("@every %s", interval)
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if err := r.RunOnce(ctx); err != nil {
			s.logger.ErrorWithErr(err, fmt.Sprintf("Scheduled job %q failed", name))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", name, err)
	}

	s.logger.Infof("Scheduled job %q every %s", name, interval)
	return nil
}

// Start begins executing scheduled jobs in the background
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for in-flight runs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
