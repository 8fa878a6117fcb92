package document

import (
	"context"
	"time"

	"vowboard.io/planner-gateway/app/domain/ordering"
)

const (
	PartitionPinned   = "pinned"
	PartitionUnpinned = "unpinned"
)

type Document struct {
	ID        string
	WeddingID string
	Name      string
	URL       string
	Category  *string
	Pinned    bool
	Order     *int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := *d
	if d.Order != nil {
		o := *d.Order
		out.Order = &o
	}
	return &out
}

func (d *Document) DownloadURL() string {
	return DownloadURL(d.URL)
}

func PartitionOf(pinned bool) string {
	if pinned {
		return PartitionPinned
	}
	return PartitionUnpinned
}

var Accessor = ordering.Accessor[*Document]{
	ID:           func(d *Document) string { return d.ID },
	Partition:    func(d *Document) string { return PartitionOf(d.Pinned) },
	Order:        func(d *Document) *int { return d.Order },
	CreatedAt:    func(d *Document) time.Time { return d.CreatedAt },
	SetOrder:     func(d *Document, o int) { d.Order = &o },
	SetPartition: func(d *Document, p string) { d.Pinned = p == PartitionPinned },
}

type DocumentPatch struct {
	Name     *string
	URL      *string
	Category *string
}

type DocumentRepository interface {
	FindByWedding(ctx context.Context, weddingID string) ([]*Document, error)
	FindByID(ctx context.Context, weddingID string, id string) (*Document, error)
	Create(ctx context.Context, d *Document) (*Document, error)
	Update(ctx context.Context, weddingID string, id string, patch DocumentPatch) (*Document, error)
	UpdateOrder(ctx context.Context, weddingID string, id string, order int) error
	UpdatePinned(ctx context.Context, weddingID string, id string, pinned bool) (*Document, error)
	Delete(ctx context.Context, weddingID string, id string) error
}
