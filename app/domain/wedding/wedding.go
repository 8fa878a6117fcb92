package wedding

import (
	"context"
	"time"
)

type WeddingStatus string

const (
	WeddingStatusPlanning  WeddingStatus = "planning"
	WeddingStatusConfirmed WeddingStatus = "confirmed"
	WeddingStatusCompleted WeddingStatus = "completed"
)

type Wedding struct {
	ID          string
	ClientID    string
	Title       string
	WeddingDate *string
	Venue       *string
	GuestCount  *int
	Budget      *float64
	Status      WeddingStatus
	Notes       *string
	DeckKey     *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type WeddingPatch struct {
	Title       *string
	WeddingDate *string
	Venue       *string
	GuestCount  *int
	Budget      *float64
	Status      *WeddingStatus
	Notes       *string
	DeckKey     *string
}

type WeddingRepository interface {
	FindByClient(ctx context.Context, clientID string) ([]*Wedding, error)
	FindByID(ctx context.Context, id string) (*Wedding, error)
	Create(ctx context.Context, w *Wedding) (*Wedding, error)
	Update(ctx context.Context, id string, patch WeddingPatch) (*Wedding, error)
	Delete(ctx context.Context, id string) error
}
