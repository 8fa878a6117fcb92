package taskgroup

import (
	"context"
	"time"

	"vowboard.io/planner-gateway/app/domain/ordering"
)

type TaskGroup struct {
	ID        string
	WeddingID string
	Name      string
	Color     *string
	Order     *int
	CreatedAt time.Time
}

func (g *TaskGroup) Clone() *TaskGroup {
	if g == nil {
		return nil
	}
	out := *g
	if g.Order != nil {
		o := *g.Order
		out.Order = &o
	}
	return &out
}

// Groups form a single partition.
var Accessor = ordering.Accessor[*TaskGroup]{
	ID:           func(g *TaskGroup) string { return g.ID },
	Partition:    func(*TaskGroup) string { return "" },
	Order:        func(g *TaskGroup) *int { return g.Order },
	CreatedAt:    func(g *TaskGroup) time.Time { return g.CreatedAt },
	SetOrder:     func(g *TaskGroup, o int) { g.Order = &o },
	SetPartition: func(*TaskGroup, string) {},
}

type TaskGroupRepository interface {
	FindByWedding(ctx context.Context, weddingID string) ([]*TaskGroup, error)
	Create(ctx context.Context, g *TaskGroup) (*TaskGroup, error)
	Rename(ctx context.Context, weddingID string, id string, name string) (*TaskGroup, error)
	UpdateOrder(ctx context.Context, weddingID string, id string, order int) error
	Delete(ctx context.Context, weddingID string, id string) error
}
