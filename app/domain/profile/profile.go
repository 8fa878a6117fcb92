package profile

import (
	"context"
	"time"
)

type Role string

const (
	RoleOrganizer Role = "organizer"
	RoleClient    Role = "client"
)

type Profile struct {
	ID        string
	Email     string
	FullName  *string
	Role      Role
	ClientID  *string
	CreatedAt time.Time
}

func (p *Profile) IsOrganizer() bool {
	return p != nil && p.Role == RoleOrganizer
}

type ProfileRepository interface {
	FindByID(ctx context.Context, id string) (*Profile, error)
}
