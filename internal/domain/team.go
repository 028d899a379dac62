package domain

import (
	"context"
	"time"
)

// Team is a group of users sharing a schedule, identified by a 6-digit PIN
// that members pass around instead of invitation links.
// swagger:model Team
type Team struct {
	PIN       string    `json:"pin"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTeam returns a new Team. PIN is assigned by the service on create.
func NewTeam(name, ownerID string, createdAt time.Time) *Team {
	return &Team{
		Name:      name,
		OwnerID:   ownerID,
		CreatedAt: createdAt,
	}
}

// TeamMember is one user's membership in a team.
// swagger:model TeamMember
type TeamMember struct {
	TeamPIN     string    `json:"team_pin"`
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	JoinedAt    time.Time `json:"joined_at"`
}

// TeamRepository defines the interface for team and membership storage.
type TeamRepository interface {
	Create(ctx context.Context, team *Team) error
	GetByPIN(ctx context.Context, pin string) (*Team, error)
	AddMember(ctx context.Context, pin, userID string) error
	ListMembers(ctx context.Context, pin string) ([]*TeamMember, error)
	IsMember(ctx context.Context, pin, userID string) (bool, error)
	ListPINsByUserID(ctx context.Context, userID string) ([]string, error)
}

// TeamService defines the business logic for teams: creation with a fresh
// PIN, joining by PIN, and member listing.
type TeamService interface {
	Create(ctx context.Context, name, ownerID string) (*Team, error)
	Join(ctx context.Context, pin, userID string) (*Team, error)
	Members(ctx context.Context, pin, callerID string) ([]*TeamMember, error)
	ListMine(ctx context.Context, userID string) ([]*Team, error)
	SendInvitations(ctx context.Context, pin, callerID string, emails []string) (sent int, failed []string, err error)
}
