package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ersonp/enclave-favorites/internal/domain/entities"
)

// errorResponse is the uniform error payload.
type errorResponse struct {
	Error   string   `json:"error"`
	Details string   `json:"details,omitempty"`
	Fields  []string `json:"fields,omitempty"`
}

type listResponse struct {
	Items []entities.SavedCharacter `json:"items"`
}

type deleteResponse struct {
	Success bool `json:"success"`
}

// RespondWithJSON writes payload as JSON with the given status.
func RespondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// WriteJSONError writes an error payload with the given status.
func WriteJSONError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, errorResponse{Error: message})
}

// writeError maps a favorites error onto a status and payload.
func writeError(w http.ResponseWriter, err error) {
	var validationErr *entities.ValidationError
	if errors.As(err, &validationErr) {
		RespondWithJSON(w, http.StatusBadRequest, errorResponse{Error: validationErr.Error(), Fields: validationErr.Fields})
		return
	}

	var storeErr *entities.StoreError
	if errors.As(err, &storeErr) {
		RespondWithJSON(w, http.StatusInternalServerError, errorResponse{Error: storeErr.Message, Details: storeErr.Details})
		return
	}

	WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
}
