package ledger

import (
	"errors"
	"testing"
)

func TestSubmitFirstCheckin(t *testing.T) {
	l, _ := newTestLedger(t)

	res, err := l.Submit(l.CallerFor("alice"), "hello")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if res.Checkin.ID != 1 {
		t.Fatalf("expected id 1, got %d", res.Checkin.ID)
	}
	if res.Checkin.Author != "alice" {
		t.Fatalf("expected author alice, got %s", res.Checkin.Author)
	}
	if res.Checkin.Note != "hello" {
		t.Fatalf("expected note hello, got %q", res.Checkin.Note)
	}
	if !res.Checkin.Valid {
		t.Fatal("expected new checkin to be valid")
	}
	if res.Checkin.LikeCount != 0 || res.Checkin.MehCount != 0 {
		t.Fatalf("expected zero tallies, got likes=%d mehs=%d", res.Checkin.LikeCount, res.Checkin.MehCount)
	}
	if res.Checkin.OrganizerLiked {
		t.Fatal("expected no organizer like on a new checkin")
	}
	if !res.NewlyRegistered {
		t.Fatal("expected first submission to register alice")
	}
	if res.Position != 0 {
		t.Fatalf("expected position 0, got %d", res.Position)
	}
	if res.Status.TotalCheckins != 1 {
		t.Fatalf("expected total checkins 1, got %d", res.Status.TotalCheckins)
	}
	if !res.Status.CheckedInToday {
		t.Fatal("expected checked-in-today flag set")
	}
}

func TestSubmitEmptyNote(t *testing.T) {
	l, _ := newTestLedger(t)

	for _, note := range []string{"", "   ", "\n\t"} {
		if _, err := l.Submit(l.CallerFor("alice"), note); !errors.Is(err, ErrEmptyNote) {
			t.Fatalf("expected ErrEmptyNote for %q, got %v", note, err)
		}
	}
	if l.TotalCheckins() != 0 {
		t.Fatal("expected no checkin recorded after rejected submissions")
	}
	if l.RegisteredCount() != 0 {
		t.Fatal("expected no registration after rejected submissions")
	}
}

func TestSubmitTwiceSameDay(t *testing.T) {
	l, _ := newTestLedger(t)

	mustSubmit(t, l, "alice", "hello")

	_, err := l.Submit(l.CallerFor("alice"), "hello again")
	if !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Fatalf("expected ErrAlreadyCheckedIn, got %v", err)
	}

	status, err := l.ParticipantStatusFor("alice")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.TotalCheckins != 1 {
		t.Fatalf("expected state unchanged, got total checkins %d", status.TotalCheckins)
	}
	if l.TotalCheckins() != 1 {
		t.Fatalf("expected 1 checkin, got %d", l.TotalCheckins())
	}
}

func TestSubmitNextDayAfterAdvance(t *testing.T) {
	l, _ := newTestLedger(t)

	mustSubmit(t, l, "alice", "day zero")
	if _, err := l.AdvanceTime(l.CallerFor("organizer")); err != nil {
		t.Fatalf("advance time: %v", err)
	}

	checkin := mustSubmit(t, l, "alice", "day one")
	if checkin.ID != 2 {
		t.Fatalf("expected id 2, got %d", checkin.ID)
	}

	status, err := l.ParticipantStatusFor("alice")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.TotalCheckins != 2 {
		t.Fatalf("expected 2 total checkins, got %d", status.TotalCheckins)
	}
}

func TestSubmitIDsAreDense(t *testing.T) {
	l, _ := newTestLedger(t)

	mustSubmit(t, l, "alice", "a")
	mustSubmit(t, l, "bob", "b")
	mustSubmit(t, l, "carol", "c")

	ids := l.ListAllCheckins()
	for i, id := range ids {
		if id != int64(i+1) {
			t.Fatalf("expected dense ids from 1, got %v", ids)
		}
	}
}

func TestTotalCheckinsMatchesAuthored(t *testing.T) {
	l, _ := newTestLedger(t)

	mustSubmit(t, l, "alice", "a")
	mustSubmit(t, l, "bob", "b")
	if _, err := l.AdvanceTime(l.CallerFor("organizer")); err != nil {
		t.Fatalf("advance time: %v", err)
	}
	mustSubmit(t, l, "alice", "c")

	for _, addr := range []string{"alice", "bob"} {
		status, err := l.ParticipantStatusFor(addr)
		if err != nil {
			t.Fatalf("status %s: %v", addr, err)
		}
		ids, err := l.ListParticipantCheckins(addr)
		if err != nil {
			t.Fatalf("list %s: %v", addr, err)
		}
		if status.TotalCheckins != len(ids) {
			t.Fatalf("%s: total %d does not match %d owned checkins", addr, status.TotalCheckins, len(ids))
		}
	}
}

func TestGetCheckinUnknownID(t *testing.T) {
	l, _ := newTestLedger(t)
	mustSubmit(t, l, "alice", "a")

	for _, id := range []int64{0, -1, 2, 99} {
		if _, err := l.GetCheckin(id); !errors.Is(err, ErrCheckinNotFound) {
			t.Fatalf("expected ErrCheckinNotFound for id %d, got %v", id, err)
		}
	}
}

func TestParticipantStatusUnknown(t *testing.T) {
	l, _ := newTestLedger(t)

	if _, err := l.ParticipantStatusFor("ghost"); !errors.Is(err, ErrUnknownParticipant) {
		t.Fatalf("expected ErrUnknownParticipant, got %v", err)
	}
	if _, err := l.ListParticipantCheckins("ghost"); !errors.Is(err, ErrUnknownParticipant) {
		t.Fatalf("expected ErrUnknownParticipant, got %v", err)
	}
}

func TestListParticipantCheckinsOrdered(t *testing.T) {
	l, _ := newTestLedger(t)

	mustSubmit(t, l, "alice", "a")
	mustSubmit(t, l, "bob", "b")
	if _, err := l.AdvanceTime(l.CallerFor("organizer")); err != nil {
		t.Fatalf("advance time: %v", err)
	}
	mustSubmit(t, l, "alice", "c")

	ids, err := l.ListParticipantCheckins("alice")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 3 {
		t.Fatalf("expected alice to own [1 3], got %v", ids)
	}
}
