package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/atomsi7/IntensiveColearnCheckin/server/database"
	"github.com/atomsi7/IntensiveColearnCheckin/server/ledger"
)

// The in-memory ledger is the source of truth; the database is durability.
// Persistence failures are logged and never veto an already-applied verdict.
// Writes detach from the request's cancellation so a dropped client cannot
// leave memory and database out of sync.

const persistTimeout = 5 * time.Second

func ledgerStateFromDB(full *database.FullState) ledger.State {
	st := ledger.State{
		Epoch:     full.State.Epoch,
		Skip:      time.Duration(full.State.SkipOffsetNS),
		LastSweep: full.State.LastSweep,
	}
	for _, p := range full.Participants {
		st.Participants = append(st.Participants, ledger.ParticipantStatus{
			Address:           p.Address,
			TotalCheckins:     p.TotalCheckins,
			LastEvaluatedWeek: p.LastEvaluatedWeek,
			WeeklyMissCount:   p.WeeklyMissCount,
			CheckedInToday:    p.CheckedInToday,
			Blocked:           p.Blocked,
		})
	}
	for _, c := range full.Checkins {
		st.Checkins = append(st.Checkins, ledger.Checkin{
			ID:             c.ID,
			Author:         c.Author,
			Note:           c.Note,
			CreatedAt:      c.CreatedAt,
			LikeCount:      c.LikeCount,
			MehCount:       c.MehCount,
			OrganizerLiked: c.OrganizerLiked,
			Valid:          c.Valid,
		})
	}
	for _, v := range full.Votes {
		st.Votes = append(st.Votes, ledger.Vote{
			Voter:     v.Voter,
			CheckinID: v.CheckinID,
			Kind:      ledger.VoteKind(v.Kind),
		})
	}
	return st
}

func dbCheckin(c ledger.Checkin) database.Checkin {
	return database.Checkin{
		ID:             c.ID,
		Author:         c.Author,
		Note:           c.Note,
		CreatedAt:      c.CreatedAt,
		LikeCount:      c.LikeCount,
		MehCount:       c.MehCount,
		OrganizerLiked: c.OrganizerLiked,
		Valid:          c.Valid,
	}
}

func dbParticipant(p ledger.ParticipantStatus, position int) database.Participant {
	return database.Participant{
		Address:           p.Address,
		Position:          position,
		TotalCheckins:     p.TotalCheckins,
		LastEvaluatedWeek: p.LastEvaluatedWeek,
		WeeklyMissCount:   p.WeeklyMissCount,
		CheckedInToday:    p.CheckedInToday,
		Blocked:           p.Blocked,
	}
}

func (s *Server) persistSubmit(ctx context.Context, res ledger.SubmitResult) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	if err := s.db.UpsertParticipants(ctx, []database.Participant{dbParticipant(res.Status, res.Position)}); err != nil {
		slog.ErrorContext(ctx, "Failed to persist participant", slog.Any("err", err), slog.String("address", res.Status.Address))
	}
	if err := s.db.UpsertCheckin(ctx, dbCheckin(res.Checkin)); err != nil {
		slog.ErrorContext(ctx, "Failed to persist checkin", slog.Any("err", err), slog.Int64("checkin_id", res.Checkin.ID))
	}
}

func (s *Server) persistVote(ctx context.Context, voter string, checkin ledger.Checkin, kind ledger.VoteKind, retracted bool) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	if retracted {
		if err := s.db.DeleteVote(ctx, voter, checkin.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to delete vote", slog.Any("err", err), slog.String("voter", voter))
		}
	} else {
		if err := s.db.InsertVote(ctx, database.Vote{Voter: voter, CheckinID: checkin.ID, Kind: string(kind)}); err != nil {
			slog.ErrorContext(ctx, "Failed to persist vote", slog.Any("err", err), slog.String("voter", voter))
		}
	}
	if err := s.db.UpsertCheckin(ctx, dbCheckin(checkin)); err != nil {
		slog.ErrorContext(ctx, "Failed to persist checkin tallies", slog.Any("err", err), slog.Int64("checkin_id", checkin.ID))
	}
}

// persistLedger snapshots the full participant set and scalar clock state.
// Used after operations that touch many rows at once (sweep, time skips,
// manual blocking).
func (s *Server) persistLedger(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	st := s.ledger.Snapshot()

	participants := make([]database.Participant, len(st.Participants))
	for i, p := range st.Participants {
		participants[i] = dbParticipant(p, i)
	}
	if err := s.db.UpsertParticipants(ctx, participants); err != nil {
		slog.ErrorContext(ctx, "Failed to persist participants", slog.Any("err", err))
	}

	if err := s.db.UpdateLedgerState(ctx, database.LedgerState{
		Epoch:        st.Epoch,
		SkipOffsetNS: int64(st.Skip),
		LastSweep:    st.LastSweep,
	}); err != nil {
		slog.ErrorContext(ctx, "Failed to persist ledger state", slog.Any("err", err))
	}
}
