package task

import (
	"context"
	"testing"
	"time"

	"github.com/inkwell-gg/backend/internal/entity"
	"github.com/inkwell-gg/backend/internal/repository"
	"github.com/inkwell-gg/backend/pkg/errorx"
	"github.com/inkwell-gg/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_Scheduler_RescheduleSupersedes(t *testing.T) {
	ctx := testutil.MockContext(t)
	taskRepo := repository.NewTaskRepository()
	scheduler := NewScheduler(taskRepo)

	first := time.Now().Add(time.Minute)
	second := time.Now().Add(time.Hour)

	err := scheduler.Schedule(ctx, entity.TaskDomainSprint, 1, entity.TaskActionStart, first)
	require.NoError(t, err)
	err = scheduler.Schedule(ctx, entity.TaskDomainSprint, 1, entity.TaskActionStart, second)
	require.NoError(t, err)

	// Only the later run time survives.
	due, err := taskRepo.GetDue(ctx, first.Add(time.Second), 10)
	require.NoError(t, err)
	require.Empty(t, due)

	due, err = taskRepo.GetDue(ctx, second.Add(time.Second), 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	require.Equal(t, second.Unix(), due[0].RunAt.Unix())
}

func Test_Scheduler_CancelByReference(t *testing.T) {
	ctx := testutil.MockContext(t)
	taskRepo := repository.NewTaskRepository()
	scheduler := NewScheduler(taskRepo)

	runAt := time.Now().Add(time.Minute)
	require.NoError(t, scheduler.Schedule(ctx, entity.TaskDomainSprint, 1, entity.TaskActionStart, runAt))
	require.NoError(t, scheduler.Schedule(ctx, entity.TaskDomainSprint, 1, entity.TaskActionEnd, runAt))
	require.NoError(t, scheduler.Schedule(ctx, entity.TaskDomainSprint, 2, entity.TaskActionStart, runAt))

	require.NoError(t, scheduler.Cancel(ctx, entity.TaskDomainSprint, 1))

	due, err := taskRepo.GetDue(ctx, runAt.Add(time.Second), 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	require.EqualValues(t, 2, due[0].ReferenceID)
}

func Test_Scheduler_RunDue(t *testing.T) {
	ctx := testutil.MockContext(t)
	taskRepo := repository.NewTaskRepository()
	scheduler := NewScheduler(taskRepo)

	var ran []int64
	scheduler.Register(entity.TaskDomainSprint, func(ctx context.Context, task entity.Task) error {
		ran = append(ran, task.ReferenceID)
		return nil
	})

	now := time.Now()
	require.NoError(t, scheduler.Schedule(ctx, entity.TaskDomainSprint, 1, entity.TaskActionStart, now.Add(-time.Minute)))
	require.NoError(t, scheduler.Schedule(ctx, entity.TaskDomainSprint, 2, entity.TaskActionStart, now.Add(time.Hour)))

	n, err := scheduler.RunDue(ctx, now)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, []int64{1}, ran)

	// The completed task is gone; the future one is untouched.
	due, err := taskRepo.GetDue(ctx, now.Add(2*time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	require.EqualValues(t, 2, due[0].ReferenceID)
}

func Test_Scheduler_FailingTaskIsRetained(t *testing.T) {
	ctx := testutil.MockContext(t)
	taskRepo := repository.NewTaskRepository()
	scheduler := NewScheduler(taskRepo)

	calls := 0
	scheduler.Register(entity.TaskDomainSprint, func(ctx context.Context, task entity.Task) error {
		calls++
		if calls == 1 {
			return errorx.Unknown
		}
		return nil
	})

	now := time.Now()
	require.NoError(t, scheduler.Schedule(ctx, entity.TaskDomainSprint, 1, entity.TaskActionStart, now.Add(-time.Minute)))

	n, err := scheduler.RunDue(ctx, now)
	require.NoError(t, err)
	require.Equal(t, 0, n)

	// Still queued, so the next poll retries it.
	n, err = scheduler.RunDue(ctx, now)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, 2, calls)
}

func Test_Scheduler_UnknownDomainIsDropped(t *testing.T) {
	ctx := testutil.MockContext(t)
	taskRepo := repository.NewTaskRepository()
	scheduler := NewScheduler(taskRepo)

	now := time.Now()
	require.NoError(t, scheduler.Schedule(ctx, entity.TaskDomainEvent, 1, entity.TaskActionStart, now.Add(-time.Minute)))

	n, err := scheduler.RunDue(ctx, now)
	require.NoError(t, err)
	require.Equal(t, 0, n)

	due, err := taskRepo.GetDue(ctx, now, 10)
	require.NoError(t, err)
	require.Empty(t, due)
}
