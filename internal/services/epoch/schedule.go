package epoch

import (
	"time"

	"github.com/tondrop/tondrop-go/internal/model"
)

// DefaultPeriod is the length of one competition window
const DefaultPeriod = 14 * 24 * time.Hour

// Schedule derives competition windows from a fixed anchor instant and a
// fixed period length. All boundaries are pure functions of absolute time:
// two calls with the same instant yield the same window on every process,
// so no reset job or stored "last reset" record is needed.
type Schedule struct {
	anchor time.Time
	period time.Duration
}

// NewSchedule creates a schedule starting at anchor with the given period
func NewSchedule(anchor time.Time, period time.Duration) (Schedule, error) {
	if period <= 0 {
		return Schedule{}, model.ErrInvalidDuration
	}
	return Schedule{anchor: anchor.UTC(), period: period}, nil
}

// Anchor returns the configured program start instant
func (s Schedule) Anchor() time.Time {
	return s.anchor
}

// Period returns the configured window length
func (s Schedule) Period() time.Duration {
	return s.period
}

// Start returns the beginning of the window containing now.
// Instants before the anchor fall into the first window.
func (s Schedule) Start(now time.Time) time.Time {
	elapsed := now.Sub(s.anchor)
	if elapsed < 0 {
		return s.anchor
	}
	periods := elapsed / s.period
	return s.anchor.Add(periods * s.period)
}

// Window returns the half-open interval [start, end) containing now
func (s Schedule) Window(now time.Time) (start, end time.Time) {
	start = s.Start(now)
	return start, start.Add(s.period)
}

// DaysRemaining returns the number of whole or partial days until the
// current window closes, floored at zero
func (s Schedule) DaysRemaining(now time.Time) int {
	_, end := s.Window(now)
	remaining := end.Sub(now)
	if remaining <= 0 {
		return 0
	}
	const day = 24 * time.Hour
	return int((remaining + day - 1) / day)
}

// Status describes the competition window containing a given instant
type Status struct {
	Start         time.Time
	End           time.Time
	DaysRemaining int
}

// StatusAt returns the full window description for now
func (s Schedule) StatusAt(now time.Time) Status {
	start, end := s.Window(now)
	return Status{
		Start:         start,
		End:           end,
		DaysRemaining: s.DaysRemaining(now),
	}
}
