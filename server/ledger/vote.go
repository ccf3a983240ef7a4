package ledger

// VoteResult reports a vote or retraction: the checkin's state after the
// verdict was recomputed, and whether the verdict flipped.
type VoteResult struct {
	Checkin      Checkin
	ValidChanged bool
}

// Vote records the caller's like or meh on a checkin. A voter holds at most
// one vote per checkin; the opposite kind must be retracted first. A
// moderator like is the override path: it forces the checkin valid until
// retracted. A moderator meh is forbidden.
func (l *Ledger) Vote(caller Caller, id int64, kind VoteKind) (VoteResult, error) {
	if kind == VoteMeh && caller.Can(CapOverrideValidity) {
		return VoteResult{}, ErrModeratorMeh
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	c := l.checkinByID(id)
	if c == nil {
		return VoteResult{}, ErrCheckinNotFound
	}

	key := voteKey{voter: caller.Address, id: id}
	if held, ok := l.votes[key]; ok {
		if held == kind {
			return VoteResult{}, ErrAlreadyVoted
		}
		return VoteResult{}, ErrConflictingVote
	}

	l.votes[key] = kind
	switch kind {
	case VoteLike:
		c.LikeCount++
		if caller.Can(CapOverrideValidity) {
			c.OrganizerLiked = true
		}
	case VoteMeh:
		c.MehCount++
	}

	changed := l.recomputeValidity(c)
	return VoteResult{Checkin: *c, ValidChanged: changed}, nil
}

// Retract removes the caller's standing vote of the given kind and
// recomputes the verdict against the decremented tally. Retracting the
// moderator's like drops the override.
func (l *Ledger) Retract(caller Caller, id int64, kind VoteKind) (VoteResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	c := l.checkinByID(id)
	if c == nil {
		return VoteResult{}, ErrCheckinNotFound
	}

	key := voteKey{voter: caller.Address, id: id}
	held, ok := l.votes[key]
	if !ok || held != kind {
		return VoteResult{}, ErrNotVoted
	}

	delete(l.votes, key)
	switch kind {
	case VoteLike:
		c.LikeCount--
		if caller.Can(CapOverrideValidity) {
			c.OrganizerLiked = false
		}
	case VoteMeh:
		c.MehCount--
	}

	changed := l.recomputeValidity(c)
	return VoteResult{Checkin: *c, ValidChanged: changed}, nil
}

// VoteFor returns the caller's standing vote on a checkin, if any.
func (l *Ledger) VoteFor(voter string, id int64) (VoteKind, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	kind, ok := l.votes[voteKey{voter: voter, id: id}]
	return kind, ok
}

// recomputeValidity derives the verdict purely from the current meh tally,
// the ever-registered cohort size and the override flag. The denominator is
// the cohort, not the votes cast on this checkin: invalidation needs a
// quorum of the whole cohort to object. Reports whether the verdict flipped.
// Callers hold the write lock.
func (l *Ledger) recomputeValidity(c *Checkin) bool {
	valid := true
	if !c.OrganizerLiked && len(l.order) > 0 {
		valid = c.MehCount*100/len(l.order) < l.cfg.MehQuorumPct
	}
	changed := c.Valid != valid
	c.Valid = valid
	return changed
}
