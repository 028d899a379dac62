package schedule

import (
	"errors"
	"fmt"
)

// ErrInvalidGrid is returned when grid configuration does not line up with
// the 30-minute slot granularity.
var ErrInvalidGrid = errors.New("invalid grid configuration")

// Cell identifies one grid cell: a day column and a slot row.
type Cell struct {
	Day  Date
	Time MinuteOfDay
}

// Grid describes the visible calendar window: a run of consecutive days
// starting at WeekStart and a daily hour range. Both the heatmap view and
// the drag selector operate over the same grid so their slot keys agree.
type Grid struct {
	WeekStart Date
	Days      int
	DayStart  MinuteOfDay
	DayEnd    MinuteOfDay
}

// NewGrid validates the window. Day boundaries must sit on slot boundaries;
// a misaligned range would produce cells no heatmap key can ever match.
func NewGrid(weekStart Date, days int, dayStart, dayEnd MinuteOfDay) (Grid, error) {
	if days <= 0 {
		return Grid{}, fmt.Errorf("%w: days must be positive, got %d", ErrInvalidGrid, days)
	}
	if !dayStart.Aligned() {
		return Grid{}, fmt.Errorf("%w: day start %s is not slot-aligned", ErrInvalidGrid, dayStart)
	}
	if dayEnd != 24*60 && !dayEnd.Aligned() {
		return Grid{}, fmt.Errorf("%w: day end %s is not slot-aligned", ErrInvalidGrid, dayEnd)
	}
	if dayStart >= dayEnd {
		return Grid{}, fmt.Errorf("%w: day start %s is not before day end %s", ErrInvalidGrid, dayStart, dayEnd)
	}
	return Grid{WeekStart: weekStart, Days: days, DayStart: dayStart, DayEnd: dayEnd}, nil
}

// Contains reports whether the cell lies inside the grid's day and time
// domain.
func (g Grid) Contains(c Cell) bool {
	if !c.Time.Aligned() || c.Time < g.DayStart || c.Time >= g.DayEnd {
		return false
	}
	for i, d := 0, g.WeekStart; i < g.Days; i, d = i+1, d.AddDays(1) {
		if c.Day == d {
			return true
		}
	}
	return false
}

// DayDates returns the consecutive dates of the grid's columns.
func (g Grid) DayDates() []Date {
	out := make([]Date, g.Days)
	d := g.WeekStart
	for i := range out {
		out[i] = d
		d = d.AddDays(1)
	}
	return out
}

// TimeSlots returns the slot start times of the grid's rows, top to bottom.
func (g Grid) TimeSlots() []MinuteOfDay {
	var out []MinuteOfDay
	for m := g.DayStart; m < g.DayEnd; m += slotMinutes {
		out = append(out, m)
	}
	return out
}

// DragSelector turns a pointer-down / pointer-enter / pointer-up gesture
// over grid cells into a single ordered interval. The selection is confined
// to the day column the drag started in; cells entered in other columns are
// ignored rather than extending the selection sideways.
//
// The zero value is unusable; construct with NewDragSelector. The selector
// holds only local state and is not safe for concurrent use, which matches
// how a gesture works: one pointer, one sequence.
type DragSelector struct {
	grid     Grid
	dragging bool
	anchor   Cell
	current  Cell
}

// NewDragSelector returns an idle selector over the given grid.
func NewDragSelector(grid Grid) *DragSelector {
	return &DragSelector{grid: grid}
}

// Dragging reports whether a gesture is in progress.
func (s *DragSelector) Dragging() bool {
	return s.dragging
}

// PointerDown starts a drag anchored at c. A press outside the grid domain
// is a no-op and the selector stays idle; the return value reports whether
// a drag actually started.
func (s *DragSelector) PointerDown(c Cell) bool {
	if !s.grid.Contains(c) {
		return false
	}
	s.dragging = true
	s.anchor = c
	s.current = c
	return true
}

// PointerEnter extends the selection to c. Entering a cell in a different
// day column, a cell outside the grid, or the cell already current is a
// no-op.
func (s *DragSelector) PointerEnter(c Cell) {
	if !s.dragging {
		return
	}
	if !s.grid.Contains(c) {
		return
	}
	if c.Day != s.anchor.Day {
		return
	}
	if c.Time != s.current.Time {
		s.current = c
	}
}

// PointerUp completes the gesture and resets the selector to idle. When a
// drag was active it returns the selected interval and true: the span runs
// from the earlier of the anchor and current cells through the end of the
// later one, so dragging upward and downward produce the same interval and
// a press-and-release on a single cell yields one full 30-minute slot.
// Without an active drag it returns the zero interval and false.
func (s *DragSelector) PointerUp() (Interval, bool) {
	if !s.dragging {
		return Interval{}, false
	}
	lo, hi := s.anchor.Time, s.current.Time
	if hi < lo {
		lo, hi = hi, lo
	}
	iv := Interval{
		Start: s.anchor.Day.At(lo),
		End:   s.anchor.Day.At(hi).Add(SlotDuration),
	}
	s.dragging = false
	s.anchor = Cell{}
	s.current = Cell{}
	return iv, true
}

// IsSelected reports whether c is part of the live selection: same day
// column as the anchor and between the anchor and current slots, inclusive
// at both ends. It is derived from the anchor and current cells alone, so
// there is no selection list to keep in sync.
func (s *DragSelector) IsSelected(c Cell) bool {
	if !s.dragging {
		return false
	}
	if c.Day != s.anchor.Day {
		return false
	}
	lo, hi := s.anchor.Time, s.current.Time
	if hi < lo {
		lo, hi = hi, lo
	}
	return c.Time >= lo && c.Time <= hi
}
