package client

import (
	"context"
	"time"
)

type Client struct {
	ID          string
	FullName    string
	Email       string
	Phone       *string
	PartnerName *string
	UserID      *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ClientPatch struct {
	FullName    *string
	Email       *string
	Phone       *string
	PartnerName *string
}

// ClientRepository is backed by elevated procedures only an organizer may
// call.
type ClientRepository interface {
	FindAll(ctx context.Context) ([]*Client, error)
	FindByID(ctx context.Context, id string) (*Client, error)
	Create(ctx context.Context, c *Client) (*Client, error)
	Update(ctx context.Context, id string, patch ClientPatch) (*Client, error)
	Delete(ctx context.Context, id string) error
}
