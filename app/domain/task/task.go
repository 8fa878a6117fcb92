package task

import (
	"context"
	"time"

	"vowboard.io/planner-gateway/app/domain/ordering"
)

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

type Task struct {
	ID          string
	WeddingID   string
	TaskGroupID *string
	Title       string
	Description *string
	Status      TaskStatus
	Priority    TaskPriority
	DueDate     *string
	Order       *int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Toggled returns the opposite status.
func (s TaskStatus) Toggled() TaskStatus {
	if s == TaskStatusCompleted {
		return TaskStatusPending
	}
	return TaskStatusCompleted
}

func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	out := *t
	if t.Order != nil {
		o := *t.Order
		out.Order = &o
	}
	if t.TaskGroupID != nil {
		g := *t.TaskGroupID
		out.TaskGroupID = &g
	}
	return &out
}

// GroupKey is the partition the task is ordered in; "" is ungrouped.
func (t *Task) GroupKey() string {
	if t.TaskGroupID == nil {
		return ""
	}
	return *t.TaskGroupID
}

var Accessor = ordering.Accessor[*Task]{
	ID:        func(t *Task) string { return t.ID },
	Partition: (*Task).GroupKey,
	Order:     func(t *Task) *int { return t.Order },
	CreatedAt: func(t *Task) time.Time { return t.CreatedAt },
	SetOrder:  func(t *Task, o int) { t.Order = &o },
	SetPartition: func(t *Task, p string) {
		if p == "" {
			t.TaskGroupID = nil
			return
		}
		t.TaskGroupID = &p
	},
}

// TaskPatch carries the editable fields; nil fields are left unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *TaskPriority
	DueDate     *string
	Status      *TaskStatus
}

type TaskRepository interface {
	FindByWedding(ctx context.Context, weddingID string) ([]*Task, error)
	FindByID(ctx context.Context, weddingID string, id string) (*Task, error)
	Create(ctx context.Context, t *Task) (*Task, error)
	Update(ctx context.Context, weddingID string, id string, patch TaskPatch) (*Task, error)
	UpdateOrder(ctx context.Context, weddingID string, id string, order int) error
	UpdateGroup(ctx context.Context, weddingID string, id string, groupID *string) (*Task, error)
	Delete(ctx context.Context, weddingID string, id string) error
}
