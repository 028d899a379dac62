package services

import (
	"context"
	"fmt"
	"time"

	"whenworks/internal/domain"
	"whenworks/internal/schedule"
)

// Planner is the orchestration layer between the event store and the two
// schedule algorithms. It caches the current user's events and the current
// team's aggregate events, forwards pointer gestures to a drag selector, and
// turns a completed drag into an event creation request. It carries no
// business logic of its own.
//
// A Planner is not safe for concurrent use. The drag selector and the cached
// event lists are disjoint state, so a Refresh finishing between pointer
// events cannot corrupt an in-progress drag.
type Planner struct {
	events   domain.EventService
	selector *schedule.DragSelector
	userID   string
	teamPIN  string

	myEvents   []*domain.Event
	teamEvents []*domain.Event
}

// NewPlanner creates a Planner for one user viewing one team. Pass an empty
// teamPIN for a personal calendar with no team view.
func NewPlanner(events domain.EventService, grid schedule.Grid, userID, teamPIN string) *Planner {
	return &Planner{
		events:   events,
		selector: schedule.NewDragSelector(grid),
		userID:   userID,
		teamPIN:  teamPIN,
	}
}

// Refresh reloads both cached event lists from the store.
func (p *Planner) Refresh(ctx context.Context) error {
	mine, err := p.events.ListMine(ctx, p.userID)
	if err != nil {
		return fmt.Errorf("failed to refresh own events: %w", err)
	}
	p.myEvents = mine

	if p.teamPIN == "" {
		p.teamEvents = nil
		return nil
	}
	team, err := p.events.ListByTeam(ctx, p.teamPIN, p.userID)
	if err != nil {
		return fmt.Errorf("failed to refresh team events: %w", err)
	}
	p.teamEvents = team
	return nil
}

// MyEvents returns the cached personal event list from the last Refresh.
func (p *Planner) MyEvents() []*domain.Event {
	return p.myEvents
}

// Heatmap aggregates the cached team events into slot counts.
func (p *Planner) Heatmap() (schedule.Heatmap, error) {
	intervals := make([]schedule.Interval, len(p.teamEvents))
	for i, e := range p.teamEvents {
		intervals[i] = schedule.Interval{Start: e.Start, End: e.End}
	}
	return schedule.ComputeHeatmap(intervals)
}

// PointerDown forwards a pointer-down gesture to the drag selector.
func (p *Planner) PointerDown(c schedule.Cell) bool {
	return p.selector.PointerDown(c)
}

// PointerEnter forwards a pointer-enter gesture to the drag selector.
func (p *Planner) PointerEnter(c schedule.Cell) {
	p.selector.PointerEnter(c)
}

// PointerUp completes the gesture. The returned interval, when present, is a
// proposal only; nothing is persisted until Confirm.
func (p *Planner) PointerUp() (schedule.Interval, bool) {
	return p.selector.PointerUp()
}

// IsSelected reports whether a cell is inside the live drag selection.
func (p *Planner) IsSelected(c schedule.Cell) bool {
	return p.selector.IsSelected(c)
}

// Confirm persists a proposed interval as a new event. The event is added to
// the local caches first so the caller can repaint immediately; if the store
// rejects the create, the optimistic copy is rolled back and the error
// surfaced.
func (p *Planner) Confirm(ctx context.Context, iv schedule.Interval, title, category string) (*domain.Event, error) {
	var teamPIN *string
	if p.teamPIN != "" {
		pin := p.teamPIN
		teamPIN = &pin
	}
	event := domain.NewEvent(p.userID, teamPIN, title, category, iv.Start, iv.End, time.Now())

	p.myEvents = append(p.myEvents, event)
	if p.teamPIN != "" {
		p.teamEvents = append(p.teamEvents, event)
	}

	created, err := p.events.Create(ctx, event)
	if err != nil {
		p.myEvents = p.myEvents[:len(p.myEvents)-1]
		if p.teamPIN != "" {
			p.teamEvents = p.teamEvents[:len(p.teamEvents)-1]
		}
		return nil, err
	}

	// The store assigns the ID; swap the optimistic copy for the created one.
	p.myEvents[len(p.myEvents)-1] = created
	if p.teamPIN != "" {
		p.teamEvents[len(p.teamEvents)-1] = created
	}
	return created, nil
}
