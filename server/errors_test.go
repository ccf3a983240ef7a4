package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atomsi7/IntensiveColearnCheckin/server/ledger"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{ledger.ErrEmptyNote, http.StatusBadRequest, "empty_note"},
		{ledger.ErrSweepNotDue, http.StatusBadRequest, "sweep_not_due"},
		{ledger.ErrCheckinNotFound, http.StatusNotFound, "invalid_checkin_id"},
		{ledger.ErrUnknownParticipant, http.StatusNotFound, "unknown_participant"},
		{ledger.ErrNotModerator, http.StatusForbidden, "not_moderator"},
		{ledger.ErrModeratorMeh, http.StatusForbidden, "moderator_meh"},
		{ledger.ErrAlreadyCheckedIn, http.StatusConflict, "already_checked_in"},
		{ledger.ErrConflictingVote, http.StatusConflict, "conflicting_vote"},
		{ledger.ErrNotBlocked, http.StatusConflict, "not_blocked"},
		{ledger.ErrBlocked, http.StatusLocked, "blocked"},
	}
	for _, tc := range tests {
		rec := httptest.NewRecorder()
		writeError(rec, tc.err)

		if rec.Code != tc.status {
			t.Fatalf("%v: expected status %d, got %d", tc.err, tc.status, rec.Code)
		}
		var body ErrorResponse
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("%v: decode body: %v", tc.err, err)
		}
		if body.Code != tc.code {
			t.Fatalf("%v: expected code %s, got %s", tc.err, tc.code, body.Code)
		}
	}
}

func TestWriteErrorWrappedLedgerError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, fmt.Errorf("submit failed: %w", ledger.ErrBlocked))

	if rec.Code != http.StatusLocked {
		t.Fatalf("expected status %d for wrapped error, got %d", http.StatusLocked, rec.Code)
	}
}

func TestWriteErrorUnknownError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, errors.New("boom"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}
