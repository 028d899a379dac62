package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"whenworks/internal/domain"
	"whenworks/internal/metrics"
)

type eventService struct {
	eventRepo domain.EventRepository
	teamRepo  domain.TeamRepository
}

// NewEventService creates an EventService with the given repositories.
func NewEventService(eventRepo domain.EventRepository, teamRepo domain.TeamRepository) domain.EventService {
	return &eventService{
		eventRepo: eventRepo,
		teamRepo:  teamRepo,
	}
}

func (s *eventService) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	if event.OwnerID == "" {
		return nil, fmt.Errorf("%w: owner is required", domain.ErrInvalidInput)
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}
	if event.TeamPIN != nil {
		// Only members may post events into a team's heatmap.
		member, err := s.teamRepo.IsMember(ctx, *event.TeamPIN, event.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("failed to check membership: %w", err)
		}
		if !member {
			return nil, domain.ErrForbidden
		}
	}

	event.ID = "evt_" + uuid.NewString()
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	metrics.IncEventCreated(event.Category)
	return event, nil
}

func (s *eventService) Update(ctx context.Context, eventID, callerID string, upd domain.EventUpdate) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load event: %w", err)
	}
	if event.OwnerID != callerID {
		return nil, domain.ErrForbidden
	}

	if upd.Title != nil {
		event.Title = *upd.Title
	}
	if upd.Category != nil {
		event.Category = *upd.Category
	}
	if upd.Start != nil {
		event.Start = *upd.Start
	}
	if upd.End != nil {
		event.End = *upd.End
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}

	event.UpdatedAt = time.Now()
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return event, nil
}

func (s *eventService) Delete(ctx context.Context, eventID, callerID string) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to load event: %w", err)
	}
	if event.OwnerID != callerID {
		return domain.ErrForbidden
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	metrics.IncEventDeleted()
	return nil
}

func (s *eventService) ListMine(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	events, err := s.eventRepo.ListByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) ListByTeam(ctx context.Context, pin, callerID string) ([]*domain.Event, error) {
	member, err := s.teamRepo.IsMember(ctx, pin, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if !member {
		return nil, domain.ErrForbidden
	}
	events, err := s.eventRepo.ListByTeamPIN(ctx, pin)
	if err != nil {
		return nil, fmt.Errorf("failed to list team events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}
