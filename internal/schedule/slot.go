// Package schedule holds the pure calendar logic: slot indexing, the team
// busy-ness heatmap, and the drag-to-create selection state machine. Nothing
// in this package performs I/O or reads ambient state.
package schedule

import (
	"fmt"
	"time"
)

// SlotDuration is the fixed granularity shared by the heatmap and the drag
// selector. Slot keys produced by one would not match the other if this ever
// diverged, so it is a single constant rather than configuration.
const SlotDuration = 30 * time.Minute

const slotMinutes = 30

// Date is a naive calendar date (no timezone, no time of day). It is
// comparable, so it can be used directly in map keys.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a date in YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// AddDays returns the date n days after d, normalizing across month and year
// boundaries.
func (d Date) AddDays(n int) Date {
	return DateOf(time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.Local))
}

// At combines the date with a time of day into a wall-clock time.Time.
func (d Date) At(m MinuteOfDay) time.Time {
	return time.Date(d.Year, d.Month, d.Day, int(m)/60, int(m)%60, 0, 0, time.Local)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MinuteOfDay is a wall-clock time of day expressed as minutes since
// midnight (0..1439).
type MinuteOfDay int

// MinuteOf returns the minute-of-day of t, dropping seconds.
func MinuteOf(t time.Time) MinuteOfDay {
	return MinuteOfDay(t.Hour()*60 + t.Minute())
}

// ParseMinute parses a time of day in HH:MM form.
func ParseMinute(s string) (MinuteOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return MinuteOf(t), nil
}

// Aligned reports whether m sits on a slot boundary.
func (m MinuteOfDay) Aligned() bool {
	return m >= 0 && m < 24*60 && m%slotMinutes == 0
}

func (m MinuteOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// SlotKey identifies one 30-minute bucket of one calendar day. Being a
// comparable struct it works as a map key with value equality and no string
// formatting edge cases.
type SlotKey struct {
	Day   Date
	Start MinuteOfDay
}

// SlotKeyAt returns the slot key for the slot containing t's literal
// wall-clock minute. No rounding is applied: a cursor at 09:07 yields a
// 09:07 key.
func SlotKeyAt(t time.Time) SlotKey {
	return SlotKey{Day: DateOf(t), Start: MinuteOf(t)}
}

func (k SlotKey) String() string {
	return k.Day.String() + ":" + k.Start.String()
}
