package entity

import (
	"time"

	"github.com/inkwell-gg/backend/pkg/enum"
)

type TaskDomain string

var (
	TaskDomainSprint = enum.New(TaskDomain("sprint"))
	TaskDomainEvent  = enum.New(TaskDomain("event"))
)

type TaskAction string

var (
	TaskActionStart = enum.New(TaskAction("start"))
	TaskActionEnd   = enum.New(TaskAction("end"))
)

// Task is a single pending timed action. Scheduling the same
// (domain, reference, action) again replaces the previous row, and a fired or
// cancelled task is removed outright.
type Task struct {
	ID int64 `gorm:"primaryKey"`

	Domain      TaskDomain `gorm:"index:idx_tasks_key"`
	ReferenceID int64      `gorm:"index:idx_tasks_key"`
	Action      TaskAction `gorm:"index:idx_tasks_key"`

	RunAt     time.Time `gorm:"index"`
	CreatedAt time.Time
}
