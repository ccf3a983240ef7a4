package server

import (
	"log/slog"
	"net/http"

	"github.com/atomsi7/IntensiveColearnCheckin/server/ledger"
)

func (s *Server) Like(w http.ResponseWriter, r *http.Request) {
	s.vote(w, r, ledger.VoteLike)
}

func (s *Server) Meh(w http.ResponseWriter, r *http.Request) {
	s.vote(w, r, ledger.VoteMeh)
}

func (s *Server) RetractLike(w http.ResponseWriter, r *http.Request) {
	s.retract(w, r, ledger.VoteLike)
}

func (s *Server) RetractMeh(w http.ResponseWriter, r *http.Request) {
	s.retract(w, r, ledger.VoteMeh)
}

func (s *Server) vote(w http.ResponseWriter, r *http.Request, kind ledger.VoteKind) {
	ctx := r.Context()

	caller, ok := s.requireCaller(w, r)
	if !ok {
		return
	}
	id, ok := s.checkinID(w, r)
	if !ok {
		return
	}

	res, err := s.ledger.Vote(caller, id, kind)
	if err != nil {
		writeError(w, err)
		return
	}

	slog.InfoContext(ctx, "Vote recorded",
		slog.Int64("checkin_id", id),
		slog.String("voter", caller.Address),
		slog.String("kind", string(kind)),
		slog.Bool("valid", res.Checkin.Valid),
	)

	s.persistVote(ctx, caller.Address, res.Checkin, kind, false)
	s.notifyVote(ctx, caller.Address, res.Checkin, kind, false, res.ValidChanged)

	writeJSON(w, http.StatusOK, newCheckinResponse(res.Checkin))
}

func (s *Server) retract(w http.ResponseWriter, r *http.Request, kind ledger.VoteKind) {
	ctx := r.Context()

	caller, ok := s.requireCaller(w, r)
	if !ok {
		return
	}
	id, ok := s.checkinID(w, r)
	if !ok {
		return
	}

	res, err := s.ledger.Retract(caller, id, kind)
	if err != nil {
		writeError(w, err)
		return
	}

	slog.InfoContext(ctx, "Vote retracted",
		slog.Int64("checkin_id", id),
		slog.String("voter", caller.Address),
		slog.String("kind", string(kind)),
		slog.Bool("valid", res.Checkin.Valid),
	)

	s.persistVote(ctx, caller.Address, res.Checkin, kind, true)
	s.notifyVote(ctx, caller.Address, res.Checkin, kind, true, res.ValidChanged)

	writeJSON(w, http.StatusOK, newCheckinResponse(res.Checkin))
}
