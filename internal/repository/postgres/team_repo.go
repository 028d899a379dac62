package postgres

import (
	"context"
	"database/sql"
	"errors"

	"whenworks/internal/domain"
)

type teamRepository struct {
	DB *sql.DB
}

func NewTeamRepository(db *sql.DB) domain.TeamRepository {
	return &teamRepository{DB: db}
}

func (r *teamRepository) Create(ctx context.Context, t *domain.Team) error {
	query := `
		INSERT INTO teams (pin, name, owner_id, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.DB.ExecContext(ctx, query, t.PIN, t.Name, t.OwnerID, t.CreatedAt)
	return err
}

func (r *teamRepository) GetByPIN(ctx context.Context, pin string) (*domain.Team, error) {
	query := `
		SELECT pin, name, owner_id, created_at
		FROM teams
		WHERE pin = $1
	`
	t := &domain.Team{}
	err := r.DB.QueryRowContext(ctx, query, pin).Scan(&t.PIN, &t.Name, &t.OwnerID, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *teamRepository) AddMember(ctx context.Context, pin, userID string) error {
	// Idempotent: joining a team twice is a no-op.
	query := `
		INSERT INTO team_members (team_pin, user_id, joined_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (team_pin, user_id) DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, query, pin, userID)
	return err
}

func (r *teamRepository) ListMembers(ctx context.Context, pin string) ([]*domain.TeamMember, error) {
	query := `
		SELECT m.team_pin, m.user_id, u.display_name, u.email, m.joined_at
		FROM team_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.team_pin = $1
		ORDER BY m.joined_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, pin)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	members := make([]*domain.TeamMember, 0)
	for rows.Next() {
		m := &domain.TeamMember{}
		if err := rows.Scan(&m.TeamPIN, &m.UserID, &m.DisplayName, &m.Email, &m.JoinedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *teamRepository) IsMember(ctx context.Context, pin, userID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM team_members WHERE team_pin = $1 AND user_id = $2
		)
	`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, pin, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *teamRepository) ListPINsByUserID(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT team_pin
		FROM team_members
		WHERE user_id = $1
		ORDER BY joined_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	pins := make([]string, 0)
	for rows.Next() {
		var pin string
		if err := rows.Scan(&pin); err != nil {
			return nil, err
		}
		pins = append(pins, pin)
	}
	return pins, rows.Err()
}
