package task

import (
	"context"
	"time"

	"github.com/inkwell-gg/backend/pkg/xcontext"
)

// Runner polls the scheduler for due tasks. It is the only component that
// fires timed actions, so running a single instance keeps execution ordered.
type Runner struct {
	scheduler *Scheduler
	interval  time.Duration
}

func NewRunner(scheduler *Scheduler, interval time.Duration) *Runner {
	return &Runner{
		scheduler: scheduler,
		interval:  interval,
	}
}

// Start blocks until ctx is cancelled.
func (r *Runner) Start(ctx context.Context) {
	xcontext.Logger(ctx).Infof("Task runner started, polling every %s", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			xcontext.Logger(ctx).Infof("Task runner stopped")
			return
		case <-ticker.C:
			n, err := r.scheduler.RunDue(ctx, time.Now())
			if err != nil {
				xcontext.Logger(ctx).Errorf("Cannot poll due tasks: %v", err)
				continue
			}

			if n > 0 {
				xcontext.Logger(ctx).Debugf("Completed %d due task(s)", n)
			}
		}
	}
}
