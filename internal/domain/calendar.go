package domain

import (
	"context"

	"whenworks/internal/schedule"
)

// HeatmapCell is one slot of a team's busy-ness grid as delivered to
// clients: the slot position, the overlap count, and its tier given the
// team's member count.
// swagger:model HeatmapCell
type HeatmapCell struct {
	Day   string `json:"day"`   // YYYY-MM-DD
	Time  string `json:"time"`  // HH:MM, slot start
	Count int    `json:"count"`
	Tier  string `json:"tier"`
}

// TeamHeatmap is a week's worth of heatmap cells plus the member count the
// tiers were derived from.
// swagger:model TeamHeatmap
type TeamHeatmap struct {
	TeamPIN     string        `json:"team_pin"`
	WeekStart   string        `json:"week_start"`
	MemberCount int           `json:"member_count"`
	Cells       []HeatmapCell `json:"cells"`
}

// CalendarService computes derived calendar views. It owns no state; all
// inputs come from the repositories and the request.
type CalendarService interface {
	// TeamHeatmap aggregates the team's events into per-slot overlap counts
	// for the week starting at weekStart, covering every slot of the
	// configured visible window. Caller must be a team member.
	TeamHeatmap(ctx context.Context, pin, callerID string, weekStart schedule.Date) (*TeamHeatmap, error)
}
