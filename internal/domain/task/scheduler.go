package task

import (
	"context"
	"time"

	"github.com/inkwell-gg/backend/internal/entity"
	"github.com/inkwell-gg/backend/internal/repository"
	"github.com/inkwell-gg/backend/pkg/xcontext"
)

// Handler executes one due task. A handler must tolerate stale tasks whose
// subject no longer exists and treat them as no-ops.
type Handler func(ctx context.Context, task entity.Task) error

// Scheduler persists timed actions and dispatches them when due. Scheduling
// the same (domain, reference, action) twice keeps only the newest run time.
type Scheduler struct {
	taskRepo repository.TaskRepository
	handlers map[entity.TaskDomain]Handler
}

func NewScheduler(taskRepo repository.TaskRepository) *Scheduler {
	return &Scheduler{
		taskRepo: taskRepo,
		handlers: make(map[entity.TaskDomain]Handler),
	}
}

// Register binds a domain to its handler. It is not safe to call after the
// runner has started.
func (s *Scheduler) Register(domain entity.TaskDomain, handler Handler) {
	s.handlers[domain] = handler
}

func (s *Scheduler) Schedule(
	ctx context.Context,
	domain entity.TaskDomain,
	referenceID int64,
	action entity.TaskAction,
	runAt time.Time,
) error {
	return s.taskRepo.Upsert(ctx, &entity.Task{
		ID:          entity.NewID(),
		Domain:      domain,
		ReferenceID: referenceID,
		Action:      action,
		RunAt:       runAt,
	})
}

// Cancel removes every pending task for the reference.
func (s *Scheduler) Cancel(
	ctx context.Context, domain entity.TaskDomain, referenceID int64,
) error {
	return s.taskRepo.CancelByReference(ctx, domain, referenceID)
}

func (s *Scheduler) CancelAction(
	ctx context.Context, domain entity.TaskDomain, referenceID int64, action entity.TaskAction,
) error {
	return s.taskRepo.Cancel(ctx, domain, referenceID, action)
}

const dueBatchSize = 50

// RunDue executes every task due at now and returns how many completed. A
// failing task stays queued and is retried on the next poll.
func (s *Scheduler) RunDue(ctx context.Context, now time.Time) (int, error) {
	tasks, err := s.taskRepo.GetDue(ctx, now, dueBatchSize)
	if err != nil {
		return 0, err
	}

	completed := 0
	for _, t := range tasks {
		handler, ok := s.handlers[t.Domain]
		if !ok {
			xcontext.Logger(ctx).Warnf("No handler for task domain %s, dropping task %d", t.Domain, t.ID)
			if err := s.taskRepo.Delete(ctx, t.ID); err != nil {
				return completed, err
			}
			continue
		}

		if err := handler(ctx, t); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot run task %d (%s/%s): %v", t.ID, t.Domain, t.Action, err)
			continue
		}

		if err := s.taskRepo.Delete(ctx, t.ID); err != nil {
			return completed, err
		}

		completed++
	}

	return completed, nil
}
