package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/atomsi7/IntensiveColearnCheckin/server/ledger"
)

// callerHeader carries the caller's address. Authenticating it is the job of
// whatever sits in front of this service.
const callerHeader = "X-Caller"

func (s *Server) caller(r *http.Request) (ledger.Caller, bool) {
	address := r.Header.Get(callerHeader)
	if address == "" {
		return ledger.Caller{}, false
	}
	return s.ledger.CallerFor(address), true
}

func (s *Server) requireCaller(w http.ResponseWriter, r *http.Request) (ledger.Caller, bool) {
	caller, ok := s.caller(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "missing " + callerHeader + " header", Code: "missing_caller"})
	}
	return caller, ok
}

func (s *Server) checkinID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("checkin_id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid checkin id", Code: "invalid_checkin_id"})
		return 0, false
	}
	return id, true
}

func (s *Server) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, ok := s.requireCaller(w, r)
	if !ok {
		return
	}

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: "invalid_body"})
		return
	}

	res, err := s.ledger.Submit(caller, req.Note)
	if err != nil {
		writeError(w, err)
		return
	}

	slog.InfoContext(ctx, "Checkin submitted",
		slog.Int64("checkin_id", res.Checkin.ID),
		slog.String("author", caller.Address),
		slog.Bool("newly_registered", res.NewlyRegistered),
	)

	s.persistSubmit(ctx, res)
	s.notifyCheckinCreated(ctx, res.Checkin)

	writeJSON(w, http.StatusCreated, newCheckinResponse(res.Checkin))
}

func (s *Server) GetCheckin(w http.ResponseWriter, r *http.Request) {
	id, ok := s.checkinID(w, r)
	if !ok {
		return
	}

	checkin, err := s.ledger.GetCheckin(id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newCheckinResponse(checkin))
}

func (s *Server) ListCheckins(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CheckinListResponse{IDs: s.ledger.ListAllCheckins()})
}

func (s *Server) TotalCheckins(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CheckinCountResponse{Total: s.ledger.TotalCheckins()})
}

func (s *Server) GetParticipant(w http.ResponseWriter, r *http.Request) {
	status, err := s.ledger.ParticipantStatusFor(r.PathValue("address"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newParticipantResponse(status))
}

func (s *Server) ListParticipantCheckins(w http.ResponseWriter, r *http.Request) {
	ids, err := s.ledger.ListParticipantCheckins(r.PathValue("address"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, CheckinListResponse{IDs: ids})
}
