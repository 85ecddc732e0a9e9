package repository

import (
	"context"
	"time"

	"github.com/inkwell-gg/backend/internal/entity"
	"github.com/inkwell-gg/backend/pkg/xcontext"
)

type TaskRepository interface {
	// Upsert schedules the task, replacing any pending task with the same
	// (domain, reference, action) key.
	Upsert(ctx context.Context, task *entity.Task) error
	GetDue(ctx context.Context, now time.Time, limit int) ([]entity.Task, error)
	Delete(ctx context.Context, id int64) error
	CancelByReference(ctx context.Context, domain entity.TaskDomain, referenceID int64) error
	Cancel(ctx context.Context, domain entity.TaskDomain, referenceID int64, action entity.TaskAction) error
}

type taskRepository struct{}

func NewTaskRepository() TaskRepository {
	return &taskRepository{}
}

func (r *taskRepository) Upsert(ctx context.Context, task *entity.Task) error {
	err := xcontext.DB(ctx).
		Where("domain = ? AND reference_id = ? AND action = ?",
			task.Domain, task.ReferenceID, task.Action).
		Delete(&entity.Task{}).Error
	if err != nil {
		return err
	}

	return xcontext.DB(ctx).Create(task).Error
}

func (r *taskRepository) GetDue(ctx context.Context, now time.Time, limit int) ([]entity.Task, error) {
	result := []entity.Task{}
	err := xcontext.DB(ctx).
		Where("run_at <= ?", now).
		Order("run_at ASC").
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	return xcontext.DB(ctx).Delete(&entity.Task{}, "id = ?", id).Error
}

func (r *taskRepository) CancelByReference(
	ctx context.Context, domain entity.TaskDomain, referenceID int64,
) error {
	return xcontext.DB(ctx).
		Where("domain = ? AND reference_id = ?", domain, referenceID).
		Delete(&entity.Task{}).Error
}

func (r *taskRepository) Cancel(
	ctx context.Context, domain entity.TaskDomain, referenceID int64, action entity.TaskAction,
) error {
	return xcontext.DB(ctx).
		Where("domain = ? AND reference_id = ? AND action = ?", domain, referenceID, action).
		Delete(&entity.Task{}).Error
}
