package server

import (
	"log/slog"
	"net/http"
)

func (s *Server) AdvanceTime(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, ok := s.requireCaller(w, r)
	if !ok {
		return
	}

	skip, err := s.ledger.AdvanceTime(caller)
	if err != nil {
		writeError(w, err)
		return
	}

	slog.InfoContext(ctx, "Time advanced",
		slog.Duration("amount", skip.Amount),
		slog.Time("new_moment", skip.NewMoment),
	)

	s.persistLedger(ctx)
	s.notify(ctx, "Time skipped by `"+skip.Amount.String()+"`, ledger clock is now `"+skip.NewMoment.Format(timeLayout)+"`")

	writeJSON(w, http.StatusOK, TimeSkipResponse{
		Amount:    skip.Amount.String(),
		NewMoment: skip.NewMoment,
	})
}

func (s *Server) Sweep(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	res, err := s.ledger.Sweep()
	if err != nil {
		writeError(w, err)
		return
	}

	slog.InfoContext(ctx, "Compliance sweep performed",
		slog.Int("evaluated", res.Evaluated),
		slog.Int("newly_blocked", res.NewlyBlocked),
		slog.Int("unblocked", len(res.Unblocked)),
	)

	s.persistLedger(ctx)
	s.notifySweep(ctx, res)

	writeJSON(w, http.StatusOK, SweepResponse{
		Moment:       res.Moment,
		Evaluated:    res.Evaluated,
		NewlyBlocked: res.NewlyBlocked,
		Blocked:      res.Blocked,
		Unblocked:    res.Unblocked,
	})
}

func (s *Server) BlockCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, ok := s.requireCaller(w, r)
	if !ok {
		return
	}
	address := r.PathValue("address")

	blocked, err := s.ledger.BlockCheck(caller, address)
	if err != nil {
		writeError(w, err)
		return
	}

	if blocked {
		slog.InfoContext(ctx, "Participant blocked by manual check", slog.String("address", address))
		s.persistLedger(ctx)
		s.notify(ctx, "Participant `"+address+"` was blocked by a manual check")
	}

	writeJSON(w, http.StatusOK, BlockCheckResponse{Address: address, Blocked: blocked})
}

func (s *Server) Unblock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, ok := s.requireCaller(w, r)
	if !ok {
		return
	}
	address := r.PathValue("address")

	status, err := s.ledger.Unblock(caller, address)
	if err != nil {
		writeError(w, err)
		return
	}

	slog.InfoContext(ctx, "Participant unblocked", slog.String("address", address))

	s.persistLedger(ctx)
	s.notify(ctx, "Participant `"+address+"` was unblocked")

	writeJSON(w, http.StatusOK, newParticipantResponse(status))
}
