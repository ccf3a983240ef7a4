package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/atomsi7/IntensiveColearnCheckin/server/ledger"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode response", slog.Any("err", err))
	}
}

// writeError maps ledger error kinds onto HTTP statuses: validation 400
// (not-found lookups 404), authorization 403, state conflicts 409, blocked
// submitters 423.
func writeError(w http.ResponseWriter, err error) {
	var lerr *ledger.Error
	if !errors.As(err, &lerr) {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	status := http.StatusInternalServerError
	switch lerr.Kind {
	case ledger.KindValidation:
		status = http.StatusBadRequest
		if errors.Is(lerr, ledger.ErrCheckinNotFound) || errors.Is(lerr, ledger.ErrUnknownParticipant) {
			status = http.StatusNotFound
		}
	case ledger.KindAuthorization:
		status = http.StatusForbidden
	case ledger.KindConflict:
		status = http.StatusConflict
	case ledger.KindBlocked:
		status = http.StatusLocked
	}

	writeJSON(w, status, ErrorResponse{Error: lerr.Error(), Code: lerr.Code})
}
