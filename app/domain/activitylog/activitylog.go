package activitylog

import (
	"context"
	"time"
)

const (
	EntityTask      = "task"
	EntityTaskGroup = "task_group"
	EntityDocument  = "document"
	EntityWedding   = "wedding"
)

const (
	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionDeleted   = "deleted"
	ActionCompleted = "completed"
	ActionReopened  = "reopened"
	ActionPinned    = "pinned"
	ActionUnpinned  = "unpinned"
	ActionMoved     = "moved"
)

type Entry struct {
	ID         string
	WeddingID  string
	UserID     *string
	Action     string
	EntityType string
	EntityID   string
	Details    map[string]any
	CreatedAt  time.Time
}

type ActivityLogRepository interface {
	Create(ctx context.Context, e *Entry) (*Entry, error)
	FindByWedding(ctx context.Context, weddingID string, limit int) ([]*Entry, error)
}
