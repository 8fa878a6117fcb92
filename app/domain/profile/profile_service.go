package profile

import (
	"context"
	"errors"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileService struct {
	repo ProfileRepository
}

func NewService(repo ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

func (s *ProfileService) FindByID(ctx context.Context, id string) (*Profile, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

// CanAccessClient reports whether p may read the client's data. Organizers
// see every client; a client sees only itself.
func (p *Profile) CanAccessClient(clientID string) bool {
	if p.IsOrganizer() {
		return true
	}
	return p != nil && p.ClientID != nil && *p.ClientID == clientID
}
