package ledger

import "strings"

// SubmitResult reports a successful submission: the created checkin, the
// author's updated status, and whether this was the author's first ever
// submission.
type SubmitResult struct {
	Checkin Checkin
	Status  ParticipantStatus
	// Position is the author's index in the registration order.
	Position        int
	NewlyRegistered bool
}

// Submit appends today's checkin for the caller. One checkin per participant
// per day; blocked participants are rejected until reinstated.
func (l *Ledger) Submit(caller Caller, note string) (SubmitResult, error) {
	if strings.TrimSpace(note) == "" {
		return SubmitResult{}, ErrEmptyNote
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	moment := l.now()
	day := l.dayIndex(moment)

	p, registered := l.participants[caller.Address]
	if registered && p.Blocked {
		return SubmitResult{}, ErrBlocked
	}
	if _, exists := l.byAuthorDay[authorDay{author: caller.Address, day: day}]; exists {
		return SubmitResult{}, ErrAlreadyCheckedIn
	}

	if !registered {
		p = &ParticipantStatus{Address: caller.Address}
		l.participants[caller.Address] = p
		l.positions[caller.Address] = len(l.order)
		l.order = append(l.order, caller.Address)
	}

	checkin := &Checkin{
		ID:        int64(len(l.checkins) + 1),
		Author:    caller.Address,
		Note:      note,
		CreatedAt: moment,
		Valid:     true,
	}
	l.checkins = append(l.checkins, checkin)
	l.byAuthorDay[authorDay{author: caller.Address, day: day}] = checkin.ID
	l.byAuthor[caller.Address] = append(l.byAuthor[caller.Address], checkin.ID)

	p.TotalCheckins++
	p.CheckedInToday = true
	p.LastEvaluatedWeek = l.weekIndex(moment)

	return SubmitResult{
		Checkin:         *checkin,
		Status:          *p,
		Position:        l.positions[caller.Address],
		NewlyRegistered: !registered,
	}, nil
}

// checkinByID returns the live record, or nil when the id is out of range.
// Callers hold at least the read lock.
func (l *Ledger) checkinByID(id int64) *Checkin {
	if id < 1 || id > int64(len(l.checkins)) {
		return nil
	}
	return l.checkins[id-1]
}

// GetCheckin returns a copy of the checkin with the given id.
func (l *Ledger) GetCheckin(id int64) (Checkin, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	c := l.checkinByID(id)
	if c == nil {
		return Checkin{}, ErrCheckinNotFound
	}
	return *c, nil
}

// ParticipantStatusFor returns a copy of the participant's status.
func (l *Ledger) ParticipantStatusFor(address string) (ParticipantStatus, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	p, ok := l.participants[address]
	if !ok {
		return ParticipantStatus{}, ErrUnknownParticipant
	}
	return *p, nil
}

// ListParticipantCheckins returns the ids the participant owns, in
// submission order.
func (l *Ledger) ListParticipantCheckins(address string) ([]int64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if _, ok := l.participants[address]; !ok {
		return nil, ErrUnknownParticipant
	}
	ids := make([]int64, len(l.byAuthor[address]))
	copy(ids, l.byAuthor[address])
	return ids, nil
}

// ListAllCheckins returns every checkin id in creation order.
func (l *Ledger) ListAllCheckins() []int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ids := make([]int64, len(l.checkins))
	for i := range l.checkins {
		ids[i] = int64(i + 1)
	}
	return ids
}

// TotalCheckins reports how many checkins were ever submitted.
func (l *Ledger) TotalCheckins() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.checkins)
}

// Participants returns every status in registration order.
func (l *Ledger) Participants() []ParticipantStatus {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]ParticipantStatus, 0, len(l.order))
	for _, addr := range l.order {
		out = append(out, *l.participants[addr])
	}
	return out
}
