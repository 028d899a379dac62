package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"whenworks/internal/domain"
	"whenworks/internal/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlannerFixture(t *testing.T) (*fakeEventRepo, *Planner) {
	t.Helper()
	eventRepo := newFakeEventRepo()
	teamRepo := newFakeTeamRepo()
	teamRepo.add(&domain.Team{PIN: "123456", Name: "Team", OwnerID: "u1"}, "u1", "u2")
	events := NewEventService(eventRepo, teamRepo)

	grid, err := schedule.NewGrid(
		schedule.Date{Year: 2025, Month: time.September, Day: 8},
		7, schedule.MinuteOfDay(7*60), schedule.MinuteOfDay(23*60))
	require.NoError(t, err)

	return eventRepo, NewPlanner(events, grid, "u1", "123456")
}

func TestPlanner_DragToCreate(t *testing.T) {
	ctx := context.Background()
	eventRepo, p := newPlannerFixture(t)
	require.NoError(t, p.Refresh(ctx))

	monday := schedule.Date{Year: 2025, Month: time.September, Day: 8}
	down := schedule.Cell{Day: monday, Time: schedule.MinuteOfDay(9 * 60)}
	over := schedule.Cell{Day: monday, Time: schedule.MinuteOfDay(10 * 60)}

	require.True(t, p.PointerDown(down))
	assert.True(t, p.IsSelected(down))
	p.PointerEnter(over)
	assert.True(t, p.IsSelected(over))

	iv, ok := p.PointerUp()
	require.True(t, ok)
	assert.Equal(t, monday.At(schedule.MinuteOfDay(9*60)), iv.Start)
	assert.Equal(t, monday.At(schedule.MinuteOfDay(10*60+30)), iv.End)
	assert.False(t, p.IsSelected(down), "selection clears on pointer-up")

	created, err := p.Confirm(ctx, iv, "Study session", domain.CategoryHomework)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Contains(t, eventRepo.byID, created.ID)
	require.NotNil(t, created.TeamPIN)
	assert.Equal(t, "123456", *created.TeamPIN)

	// The caches see the created event without another Refresh.
	assert.Len(t, p.MyEvents(), 1)
	hm, err := p.Heatmap()
	require.NoError(t, err)
	assert.Equal(t, 1, hm.Count(schedule.SlotKey{Day: monday, Start: schedule.MinuteOfDay(9 * 60)}))
	assert.Equal(t, 1, hm.Count(schedule.SlotKey{Day: monday, Start: schedule.MinuteOfDay(10 * 60)}))
}

func TestPlanner_ConfirmRollsBackOnStoreFailure(t *testing.T) {
	ctx := context.Background()
	eventRepo, p := newPlannerFixture(t)
	require.NoError(t, p.Refresh(ctx))

	eventRepo.createErr = errors.New("store down")

	monday := schedule.Date{Year: 2025, Month: time.September, Day: 8}
	iv := schedule.Interval{
		Start: monday.At(schedule.MinuteOfDay(9 * 60)),
		End:   monday.At(schedule.MinuteOfDay(10 * 60)),
	}
	_, err := p.Confirm(ctx, iv, "Doomed", domain.CategorySocial)
	require.Error(t, err)

	// The optimistic copy is rolled back from both caches.
	assert.Empty(t, p.MyEvents())
	hm, err := p.Heatmap()
	require.NoError(t, err)
	assert.Zero(t, hm.Count(schedule.SlotKey{Day: monday, Start: schedule.MinuteOfDay(9 * 60)}))
}

func TestPlanner_RefreshLoadsTeamEvents(t *testing.T) {
	ctx := context.Background()
	eventRepo, p := newPlannerFixture(t)

	monday := time.Date(2025, time.September, 8, 0, 0, 0, 0, time.UTC)
	require.NoError(t, eventRepo.Create(ctx, teamEventAt("u2", monday, 9, 0, 2)))

	require.NoError(t, p.Refresh(ctx))
	assert.Empty(t, p.MyEvents())

	hm, err := p.Heatmap()
	require.NoError(t, err)
	key := schedule.SlotKey{Day: schedule.Date{Year: 2025, Month: time.September, Day: 8}, Start: schedule.MinuteOfDay(9 * 60)}
	assert.Equal(t, 1, hm.Count(key))
}

func TestPlanner_RefreshDoesNotDisturbDrag(t *testing.T) {
	ctx := context.Background()
	_, p := newPlannerFixture(t)
	require.NoError(t, p.Refresh(ctx))

	monday := schedule.Date{Year: 2025, Month: time.September, Day: 8}
	down := schedule.Cell{Day: monday, Time: schedule.MinuteOfDay(9 * 60)}
	require.True(t, p.PointerDown(down))

	// A fetch completing mid-drag touches only the event caches.
	require.NoError(t, p.Refresh(ctx))
	assert.True(t, p.IsSelected(down))

	iv, ok := p.PointerUp()
	require.True(t, ok)
	assert.Equal(t, monday.At(schedule.MinuteOfDay(9*60)), iv.Start)
}

func TestPlanner_PersonalCalendarWithoutTeam(t *testing.T) {
	ctx := context.Background()
	eventRepo := newFakeEventRepo()
	events := NewEventService(eventRepo, newFakeTeamRepo())
	grid, err := schedule.NewGrid(
		schedule.Date{Year: 2025, Month: time.September, Day: 8},
		7, schedule.MinuteOfDay(7*60), schedule.MinuteOfDay(23*60))
	require.NoError(t, err)
	p := NewPlanner(events, grid, "u1", "")
	require.NoError(t, p.Refresh(ctx))

	monday := schedule.Date{Year: 2025, Month: time.September, Day: 8}
	iv := schedule.Interval{
		Start: monday.At(schedule.MinuteOfDay(8 * 60)),
		End:   monday.At(schedule.MinuteOfDay(8*60 + 30)),
	}
	created, err := p.Confirm(ctx, iv, "Solo", domain.CategoryClasses)
	require.NoError(t, err)
	assert.Nil(t, created.TeamPIN)
	assert.Len(t, p.MyEvents(), 1)

	hm, err := p.Heatmap()
	require.NoError(t, err)
	assert.Empty(t, hm)
}
