package schedule

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidInterval is returned when an interval ends before it starts.
var ErrInvalidInterval = errors.New("interval end precedes start")

// Interval is one scheduled commitment: a half-open [Start, End) span of
// wall-clock time.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Validate rejects reversed intervals. Start == End is degenerate but legal
// for aggregation purposes: such an interval simply contributes no slots.
func (iv Interval) Validate() error {
	if iv.End.Before(iv.Start) {
		return fmt.Errorf("%w: start=%s end=%s", ErrInvalidInterval, iv.Start.Format(time.RFC3339), iv.End.Format(time.RFC3339))
	}
	return nil
}

// Heatmap maps each 30-minute slot to the number of intervals overlapping it.
type Heatmap map[SlotKey]int

// Count returns the overlap count for a slot, zero when absent.
func (h Heatmap) Count(k SlotKey) int {
	return h[k]
}

// ComputeHeatmap walks each interval from its literal start in fixed
// 30-minute steps and increments the slot under the cursor until the cursor
// reaches the interval's end. The result is a commutative sum, so input
// order never matters and the heatmap of a merged event set equals the
// slot-wise sum of the parts.
//
// Intervals whose duration is not a multiple of 30 minutes still advance in
// fixed steps from the start, so the trailing slot's nominal boundary may
// exceed the true end.
//
// Any reversed interval aborts the computation with ErrInvalidInterval
// before any counting happens; no partial heatmap is ever returned.
func ComputeHeatmap(intervals []Interval) (Heatmap, error) {
	for _, iv := range intervals {
		if err := iv.Validate(); err != nil {
			return nil, err
		}
	}
	h := make(Heatmap)
	for _, iv := range intervals {
		for cursor := iv.Start; cursor.Before(iv.End); cursor = cursor.Add(SlotDuration) {
			h[SlotKeyAt(cursor)]++
		}
	}
	return h, nil
}

// Tier is the qualitative busy-ness level of a slot.
type Tier int

const (
	// TierEmpty means there is nobody to be busy: the team has no members.
	TierEmpty Tier = iota
	// TierFree means no member has a commitment in the slot.
	TierFree
	TierLow
	TierMedium
	TierHigh
)

func (t Tier) String() string {
	switch t {
	case TierEmpty:
		return "empty"
	case TierFree:
		return "free"
	case TierLow:
		return "low"
	case TierMedium:
		return "medium"
	case TierHigh:
		return "high"
	}
	return "unknown"
}

// tierEpsilon absorbs float division error so that exact thirds stay on the
// inclusive side of their boundary.
const tierEpsilon = 1e-9

// TierFor classifies a slot's overlap count against the team size. The
// boundaries are inclusive: with three members, one busy member is exactly a
// third and lands in low, two thirds lands in medium, anything above is high.
func TierFor(count, totalMembers int) Tier {
	if totalMembers == 0 {
		return TierEmpty
	}
	if count == 0 {
		return TierFree
	}
	ratio := float64(count) / float64(totalMembers)
	switch {
	case ratio <= 1.0/3+tierEpsilon:
		return TierLow
	case ratio <= 2.0/3+tierEpsilon:
		return TierMedium
	default:
		return TierHigh
	}
}
