package client

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
)

var (
	ErrClientNotFound = errors.New("client not found")
	ErrNameEmpty      = errors.New("full name is required")
	ErrInvalidEmail   = errors.New("email is invalid")
)

type ClientService struct {
	repo ClientRepository
}

func NewService(repo ClientRepository) *ClientService {
	return &ClientService{repo: repo}
}

func (s *ClientService) List(ctx context.Context) ([]*Client, error) {
	return s.repo.FindAll(ctx)
}

func (s *ClientService) FindByID(ctx context.Context, id string) (*Client, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrClientNotFound
	}
	return c, nil
}

func validateEmail(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

func (s *ClientService) Create(ctx context.Context, c *Client) (*Client, error) {
	if c.FullName == "" {
		return nil, ErrNameEmpty
	}
	if err := validateEmail(c.Email); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return created, nil
}

func (s *ClientService) Update(ctx context.Context, id string, patch ClientPatch) (*Client, error) {
	if patch.FullName != nil && *patch.FullName == "" {
		return nil, ErrNameEmpty
	}
	if patch.Email != nil {
		if err := validateEmail(*patch.Email); err != nil {
			return nil, err
		}
	}
	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	if updated == nil {
		return nil, ErrClientNotFound
	}
	return updated, nil
}

func (s *ClientService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}
