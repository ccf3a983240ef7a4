package ledger

import "time"

// SweepResult reports one compliance sweep.
type SweepResult struct {
	Moment       time.Time
	Evaluated    int
	NewlyBlocked int
	Blocked      []string
	Unblocked    []string
}

// Sweep runs the compliance evaluation over the whole cohort. It is due at
// most once per day unit; a premature call is rejected without touching any
// state. For every participant it advances the week bookkeeping, rescans the
// full day history week by week, and toggles the blocked flag to match
// whether any week broke the miss allowance. The daily flag is cleared for
// everyone, and the sweep moment always advances.
func (l *Ledger) Sweep() (SweepResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	moment := l.now()
	if moment.Before(l.lastSweep.Add(l.cfg.DayLength)) {
		return SweepResult{}, ErrSweepNotDue
	}

	currentDay := l.dayIndex(moment)
	currentWeek := currentDay / l.cfg.DaysPerWeek

	res := SweepResult{Moment: moment}
	for _, addr := range l.order {
		p := l.participants[addr]
		res.Evaluated++

		if currentWeek > p.LastEvaluatedWeek {
			p.WeeklyMissCount = 0
			p.LastEvaluatedWeek = currentWeek
		}
		if !p.CheckedInToday {
			p.WeeklyMissCount++
		}

		violating := l.hasViolatingWeek(addr, currentDay, currentWeek)
		switch {
		case violating && !p.Blocked:
			p.Blocked = true
			res.NewlyBlocked++
			res.Blocked = append(res.Blocked, addr)
		case !violating && p.Blocked:
			p.Blocked = false
			res.Unblocked = append(res.Unblocked, addr)
		}

		p.CheckedInToday = false
	}

	l.lastSweep = moment
	return res, nil
}

// hasViolatingWeek rescans the participant's history from the enrollment
// week through the current week and reports whether any week accumulated
// more missed-or-invalid days than the allowance. Days without a checkin and
// days whose checkin was voted invalid count the same. Callers hold the
// write lock.
func (l *Ledger) hasViolatingWeek(address string, currentDay, currentWeek int) bool {
	for week := 0; week <= currentWeek; week++ {
		start := week * l.cfg.DaysPerWeek
		end := start + l.cfg.DaysPerWeek - 1
		if end > currentDay {
			end = currentDay
		}

		missed := 0
		for day := start; day <= end; day++ {
			id, ok := l.byAuthorDay[authorDay{author: address, day: day}]
			if !ok || !l.checkins[id-1].Valid {
				missed++
			}
		}
		if missed > l.cfg.MissAllowance {
			return true
		}
	}
	return false
}

// BlockCheck is the moderator's lighter manual evaluation: it blocks the
// participant when the running weekly miss counter already broke the
// allowance, without rescanning history. Reports whether the participant
// was newly blocked.
func (l *Ledger) BlockCheck(caller Caller, address string) (bool, error) {
	if !caller.Can(CapManageBlocking) {
		return false, ErrNotModerator
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.participants[address]
	if !ok {
		return false, ErrUnknownParticipant
	}
	if p.WeeklyMissCount <= l.cfg.MissAllowance || p.Blocked {
		return false, nil
	}
	p.Blocked = true
	return true, nil
}

// Unblock reinstates a blocked participant, resetting the weekly counter and
// the daily flag. Moderator only.
func (l *Ledger) Unblock(caller Caller, address string) (ParticipantStatus, error) {
	if !caller.Can(CapManageBlocking) {
		return ParticipantStatus{}, ErrNotModerator
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.participants[address]
	if !ok {
		return ParticipantStatus{}, ErrUnknownParticipant
	}
	if !p.Blocked {
		return ParticipantStatus{}, ErrNotBlocked
	}
	p.Blocked = false
	p.WeeklyMissCount = 0
	p.CheckedInToday = false
	return *p, nil
}

// LastSweep reports when the sweep last ran.
func (l *Ledger) LastSweep() time.Time {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lastSweep
}
