package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"communitychat-backend/internal/models"
	"communitychat-backend/internal/services"
	"communitychat-backend/internal/store"
)

// RespondWithError responds with an error message.
func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, models.ErrorResponse{Error: message})
}

// RespondWithJSON responds with a JSON payload.
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondServiceError maps service-layer errors onto the wire: validation
// failures carry field detail as 400, missing records become 404, and
// everything else is a generic 500.
func respondServiceError(w http.ResponseWriter, err error) {
	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		RespondWithJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: vErr.Message, Field: vErr.Field})
		return
	}
	if errors.Is(err, store.ErrNotFound) {
		RespondWithError(w, http.StatusNotFound, "Record not found")
		return
	}
	RespondWithError(w, http.StatusInternalServerError, "Internal server error")
}
