package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/safar/rakhi-store/internal/database"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", slog.Any("error", err))
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// respondStoreError maps store and ledger errors to a status and a message
// the shopper can act on.
func (h *Handler) respondStoreError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validation  *database.ValidationError
		persistence *database.PersistenceError
	)

	switch {
	case errors.As(err, &validation):
		respondError(w, http.StatusBadRequest, validation.Error())
	case errors.Is(err, database.ErrEmptyCart),
		errors.Is(err, database.ErrInvalidQuantity),
		errors.Is(err, database.ErrInvalidPhone):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, database.ErrProductNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, database.ErrSessionNotFound):
		respondError(w, http.StatusUnauthorized, "login required")
	case errors.Is(err, database.ErrOrderIDExhausted):
		h.logger.ErrorContext(r.Context(), "order id allocation failed", slog.Any("error", err))
		respondError(w, http.StatusServiceUnavailable, "could not place your order right now, please try again")
	case errors.As(err, &persistence):
		h.logger.ErrorContext(r.Context(), "ledger failure",
			slog.String("op", persistence.Op),
			slog.Any("error", persistence.Err),
		)
		if persistence.Op == "write" {
			respondError(w, http.StatusBadGateway, "could not save your order, please try again")
			return
		}
		respondError(w, http.StatusBadGateway, "could not load your orders, please try again")
	default:
		h.logger.ErrorContext(r.Context(), "request failed", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
