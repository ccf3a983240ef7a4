package ledger

import (
	"errors"
	"testing"
	"time"
)

const day = 24 * time.Hour

func TestSweepNotDueBackToBack(t *testing.T) {
	l, clock := newTestLedger(t)

	if _, err := l.Sweep(); !errors.Is(err, ErrSweepNotDue) {
		t.Fatalf("expected ErrSweepNotDue right after init, got %v", err)
	}

	clock.Advance(day)
	if _, err := l.Sweep(); err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if _, err := l.Sweep(); !errors.Is(err, ErrSweepNotDue) {
		t.Fatalf("expected ErrSweepNotDue for back-to-back sweep, got %v", err)
	}
}

func TestSweepAllowsTwoMissedDays(t *testing.T) {
	l, clock := newTestLedger(t)

	mustSubmit(t, l, "alice", "day zero")

	// Days 1 and 2 pass without a checkin.
	clock.Advance(2 * day)
	res, err := l.Sweep()
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if res.Evaluated != 1 {
		t.Fatalf("expected 1 evaluated, got %d", res.Evaluated)
	}
	if res.NewlyBlocked != 0 {
		t.Fatalf("expected nobody blocked at 2 missed days, got %d", res.NewlyBlocked)
	}

	status, err := l.ParticipantStatusFor("alice")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Blocked {
		t.Fatal("expected alice unblocked at 2 missed days")
	}
	if status.CheckedInToday {
		t.Fatal("expected sweep to clear the daily flag")
	}
}

func TestSweepBlocksOnThirdMissedDay(t *testing.T) {
	l, clock := newTestLedger(t)

	mustSubmit(t, l, "alice", "day zero")

	clock.Advance(2 * day)
	if _, err := l.Sweep(); err != nil {
		t.Fatalf("sweep: %v", err)
	}

	// Day 3 passes without a checkin: 3 missed days > allowance of 2.
	clock.Advance(day)
	res, err := l.Sweep()
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if res.NewlyBlocked != 1 {
		t.Fatalf("expected 1 newly blocked, got %d", res.NewlyBlocked)
	}
	if len(res.Blocked) != 1 || res.Blocked[0] != "alice" {
		t.Fatalf("expected alice blocked, got %v", res.Blocked)
	}

	status, err := l.ParticipantStatusFor("alice")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !status.Blocked {
		t.Fatal("expected alice blocked")
	}

	// A repeated sweep a day later keeps the verdict but does not re-block.
	clock.Advance(day)
	res, err = l.Sweep()
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if res.NewlyBlocked != 0 {
		t.Fatalf("expected sweep to be idempotent on the blocked flag, got %d newly blocked", res.NewlyBlocked)
	}
}

func TestBlockedParticipantCannotSubmit(t *testing.T) {
	l, clock := newTestLedger(t)

	mustSubmit(t, l, "alice", "day zero")
	clock.Advance(3 * day)
	if _, err := l.Sweep(); err != nil {
		t.Fatalf("sweep: %v", err)
	}

	if _, err := l.Submit(l.CallerFor("alice"), "let me back in"); !errors.Is(err, ErrBlocked) {
		t.Fatalf("expected ErrBlocked, got %v", err)
	}

	if _, err := l.Unblock(l.CallerFor("organizer"), "alice"); err != nil {
		t.Fatalf("unblock: %v", err)
	}
	if _, err := l.Submit(l.CallerFor("alice"), "back"); err != nil {
		t.Fatalf("submit after unblock: %v", err)
	}
}

func TestSweepCountsInvalidatedDaysAsMissed(t *testing.T) {
	l, clock := newTestLedger(t)

	// Alice checks in every day of week zero; an outside voter invalidates
	// the first three (one meh against a cohort of one is a full quorum).
	for i := 0; i < 7; i++ {
		mustSubmit(t, l, "alice", "daily")
		clock.Advance(day)
	}
	for id := int64(1); id <= 3; id++ {
		if _, err := l.Vote(l.CallerFor("visitor"), id, VoteMeh); err != nil {
			t.Fatalf("meh %d: %v", id, err)
		}
	}

	res, err := l.Sweep()
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if res.NewlyBlocked != 1 {
		t.Fatalf("expected alice blocked for 3 invalidated days, got %d", res.NewlyBlocked)
	}
}

func TestSweepUnblocksWhenWeekBecomesCompliant(t *testing.T) {
	l, clock := newTestLedger(t)

	for i := 0; i < 7; i++ {
		mustSubmit(t, l, "alice", "daily")
		clock.Advance(day)
	}
	for id := int64(1); id <= 3; id++ {
		if _, err := l.Vote(l.CallerFor("visitor"), id, VoteMeh); err != nil {
			t.Fatalf("meh %d: %v", id, err)
		}
	}
	if _, err := l.Sweep(); err != nil {
		t.Fatalf("sweep: %v", err)
	}

	// The moderator override restores one invalidated day; week zero drops
	// back to two bad days and the next sweep lifts the block.
	if _, err := l.Vote(l.CallerFor("organizer"), 1, VoteLike); err != nil {
		t.Fatalf("override: %v", err)
	}

	clock.Advance(day)
	res, err := l.Sweep()
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(res.Unblocked) != 1 || res.Unblocked[0] != "alice" {
		t.Fatalf("expected alice unblocked, got %v", res.Unblocked)
	}

	status, err := l.ParticipantStatusFor("alice")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Blocked {
		t.Fatal("expected alice unblocked after the week became compliant")
	}
}

func TestSweepWeeklyMissBookkeeping(t *testing.T) {
	l, clock := newTestLedger(t)

	mustSubmit(t, l, "alice", "day zero")

	// The daily flag from the submission shields the first sweep; later
	// sweeps each record a miss.
	clock.Advance(day)
	if _, err := l.Sweep(); err != nil {
		t.Fatalf("sweep: %v", err)
	}
	status, _ := l.ParticipantStatusFor("alice")
	if status.WeeklyMissCount != 0 {
		t.Fatalf("expected no recorded miss yet, got %d", status.WeeklyMissCount)
	}

	clock.Advance(day)
	if _, err := l.Sweep(); err != nil {
		t.Fatalf("sweep: %v", err)
	}
	status, _ = l.ParticipantStatusFor("alice")
	if status.WeeklyMissCount != 1 {
		t.Fatalf("expected 1 recorded miss, got %d", status.WeeklyMissCount)
	}
}

func TestBlockCheck(t *testing.T) {
	clock := &FixedClock{Moment: testEpoch}
	l := FromState(Config{Moderator: "organizer"}, clock, State{
		Epoch:     testEpoch,
		LastSweep: testEpoch,
		Participants: []ParticipantStatus{
			{Address: "alice", WeeklyMissCount: 3},
			{Address: "bob", WeeklyMissCount: 1},
		},
	})

	if _, err := l.BlockCheck(l.CallerFor("alice"), "alice"); !errors.Is(err, ErrNotModerator) {
		t.Fatalf("expected ErrNotModerator, got %v", err)
	}
	if _, err := l.BlockCheck(l.CallerFor("organizer"), "ghost"); !errors.Is(err, ErrUnknownParticipant) {
		t.Fatalf("expected ErrUnknownParticipant, got %v", err)
	}

	blocked, err := l.BlockCheck(l.CallerFor("organizer"), "alice")
	if err != nil {
		t.Fatalf("block check: %v", err)
	}
	if !blocked {
		t.Fatal("expected alice newly blocked at 3 weekly misses")
	}

	blocked, err = l.BlockCheck(l.CallerFor("organizer"), "bob")
	if err != nil {
		t.Fatalf("block check: %v", err)
	}
	if blocked {
		t.Fatal("expected bob untouched at 1 weekly miss")
	}

	// Re-running against an already blocked participant is a no-op.
	blocked, err = l.BlockCheck(l.CallerFor("organizer"), "alice")
	if err != nil {
		t.Fatalf("block check: %v", err)
	}
	if blocked {
		t.Fatal("expected repeat block check to report no change")
	}
}

func TestUnblock(t *testing.T) {
	l, clock := newTestLedger(t)

	mustSubmit(t, l, "alice", "day zero")

	if _, err := l.Unblock(l.CallerFor("alice"), "alice"); !errors.Is(err, ErrNotModerator) {
		t.Fatalf("expected ErrNotModerator, got %v", err)
	}
	if _, err := l.Unblock(l.CallerFor("organizer"), "alice"); !errors.Is(err, ErrNotBlocked) {
		t.Fatalf("expected ErrNotBlocked, got %v", err)
	}
	if _, err := l.Unblock(l.CallerFor("organizer"), "ghost"); !errors.Is(err, ErrUnknownParticipant) {
		t.Fatalf("expected ErrUnknownParticipant, got %v", err)
	}

	clock.Advance(3 * day)
	if _, err := l.Sweep(); err != nil {
		t.Fatalf("sweep: %v", err)
	}

	status, err := l.Unblock(l.CallerFor("organizer"), "alice")
	if err != nil {
		t.Fatalf("unblock: %v", err)
	}
	if status.Blocked {
		t.Fatal("expected blocked flag cleared")
	}
	if status.WeeklyMissCount != 0 {
		t.Fatalf("expected weekly miss count reset, got %d", status.WeeklyMissCount)
	}
	if status.CheckedInToday {
		t.Fatal("expected daily flag reset")
	}
}
