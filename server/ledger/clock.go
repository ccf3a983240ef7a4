package ledger

import "time"

// Clock abstracts the wall clock so tests can run against a fixed or
// hand-advanced time without conditional logic in business paths.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock returns the production wall clock.
func SystemClock() Clock {
	return systemClock{}
}

// FixedClock is a Clock pinned to a settable moment, for tests.
type FixedClock struct {
	Moment time.Time
}

func (c *FixedClock) Now() time.Time {
	return c.Moment
}

func (c *FixedClock) Advance(d time.Duration) {
	c.Moment = c.Moment.Add(d)
}

// now is the ledger's single notion of the current moment: the injected
// clock plus the moderator-accumulated skip offset.
func (l *Ledger) now() time.Time {
	return l.clock.Now().Add(l.skip)
}

func (l *Ledger) dayIndex(moment time.Time) int {
	d := moment.Sub(l.epoch)
	if d < 0 {
		return 0
	}
	return int(d / l.cfg.DayLength)
}

func (l *Ledger) weekIndex(moment time.Time) int {
	return l.dayIndex(moment) / l.cfg.DaysPerWeek
}

// AdvanceTime adds one day-length unit to the skip offset and resets every
// participant's daily flag. Moderator only.
func (l *Ledger) AdvanceTime(caller Caller) (TimeSkip, error) {
	if !caller.Can(CapManageTime) {
		return TimeSkip{}, ErrNotModerator
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.skip += l.cfg.DayLength
	for _, p := range l.participants {
		p.CheckedInToday = false
	}

	return TimeSkip{Amount: l.cfg.DayLength, NewMoment: l.now()}, nil
}

// TimeSkip reports an applied time advancement.
type TimeSkip struct {
	Amount    time.Duration
	NewMoment time.Time
}
