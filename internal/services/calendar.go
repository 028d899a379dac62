package services

import (
	"context"
	"errors"
	"fmt"

	"whenworks/internal/domain"
	"whenworks/internal/metrics"
	"whenworks/internal/schedule"
)

type calendarService struct {
	eventRepo domain.EventRepository
	teamRepo  domain.TeamRepository
	days      int
	dayStart  schedule.MinuteOfDay
	dayEnd    schedule.MinuteOfDay
}

// NewCalendarService creates a CalendarService over the given stores. The
// window arguments define the visible grid (days per week and daily hour
// range) and are validated on every heatmap request when the grid is built.
func NewCalendarService(eventRepo domain.EventRepository, teamRepo domain.TeamRepository, days int, dayStart, dayEnd schedule.MinuteOfDay) domain.CalendarService {
	return &calendarService{
		eventRepo: eventRepo,
		teamRepo:  teamRepo,
		days:      days,
		dayStart:  dayStart,
		dayEnd:    dayEnd,
	}
}

func (s *calendarService) TeamHeatmap(ctx context.Context, pin, callerID string, weekStart schedule.Date) (*domain.TeamHeatmap, error) {
	team, err := s.teamRepo.GetByPIN(ctx, pin)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up team: %w", err)
	}
	member, err := s.teamRepo.IsMember(ctx, team.PIN, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if !member {
		return nil, domain.ErrForbidden
	}

	grid, err := schedule.NewGrid(weekStart, s.days, s.dayStart, s.dayEnd)
	if err != nil {
		return nil, err
	}

	events, err := s.eventRepo.ListByTeamPIN(ctx, team.PIN)
	if err != nil {
		return nil, fmt.Errorf("failed to list team events: %w", err)
	}
	intervals := make([]schedule.Interval, len(events))
	for i, e := range events {
		intervals[i] = schedule.Interval{Start: e.Start, End: e.End}
	}
	heatmap, err := schedule.ComputeHeatmap(intervals)
	if err != nil {
		return nil, err
	}
	metrics.IncHeatmapComputed()

	members, err := s.teamRepo.ListMembers(ctx, team.PIN)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	memberCount := len(members)

	// Emit every slot of the visible window, busy or not, so a client can
	// paint the full grid from the response alone.
	cells := make([]domain.HeatmapCell, 0, grid.Days*len(grid.TimeSlots()))
	for _, day := range grid.DayDates() {
		for _, slot := range grid.TimeSlots() {
			count := heatmap.Count(schedule.SlotKey{Day: day, Start: slot})
			cells = append(cells, domain.HeatmapCell{
				Day:   day.String(),
				Time:  slot.String(),
				Count: count,
				Tier:  schedule.TierFor(count, memberCount).String(),
			})
		}
	}

	return &domain.TeamHeatmap{
		TeamPIN:     team.PIN,
		WeekStart:   weekStart.String(),
		MemberCount: memberCount,
		Cells:       cells,
	}, nil
}
