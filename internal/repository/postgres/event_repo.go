package postgres

import (
	"context"
	"database/sql"
	"errors"

	"whenworks/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (id, owner_id, team_pin, title, category, start_time, end_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	var teamPIN sql.NullString
	if e.TeamPIN != nil {
		teamPIN = sql.NullString{String: *e.TeamPIN, Valid: true}
	}
	_, err := r.DB.ExecContext(ctx, query, e.ID, e.OwnerID, teamPIN, e.Title, e.Category, e.Start, e.End, e.CreatedAt, e.UpdatedAt)
	return err
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, owner_id, team_pin, title, category, start_time, end_time, created_at, updated_at
		FROM events
		WHERE id = $1
	`
	e := &domain.Event{}
	var teamPIN sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.OwnerID, &teamPIN, &e.Title, &e.Category, &e.Start, &e.End, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if teamPIN.Valid {
		e.TeamPIN = &teamPIN.String
	}
	return e, nil
}

func (r *eventRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	query := `
		SELECT id, owner_id, team_pin, title, category, start_time, end_time, created_at, updated_at
		FROM events
		WHERE owner_id = $1
		ORDER BY start_time ASC
	`
	return r.list(ctx, query, ownerID)
}

func (r *eventRepository) ListByTeamPIN(ctx context.Context, pin string) ([]*domain.Event, error) {
	query := `
		SELECT id, owner_id, team_pin, title, category, start_time, end_time, created_at, updated_at
		FROM events
		WHERE team_pin = $1
		ORDER BY start_time ASC
	`
	return r.list(ctx, query, pin)
}

func (r *eventRepository) list(ctx context.Context, query string, arg any) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		var teamPIN sql.NullString
		if err := rows.Scan(&e.ID, &e.OwnerID, &teamPIN, &e.Title, &e.Category, &e.Start, &e.End, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		if teamPIN.Valid {
			e.TeamPIN = &teamPIN.String
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events
		SET title = $1, category = $2, start_time = $3, end_time = $4, updated_at = $5
		WHERE id = $6
	`
	result, err := r.DB.ExecContext(ctx, query, e.Title, e.Category, e.Start, e.End, e.UpdatedAt, e.ID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
