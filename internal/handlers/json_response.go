package handlers

import (
	"encoding/json"
	"net/http"

	"campaignhub/internal/validation"
)

// apiResponse is the envelope of every API answer.
type apiResponse struct {
	Success bool                    `json:"success"`
	Data    any                     `json:"data,omitempty"`
	Error   string                  `json:"error,omitempty"`
	Message string                  `json:"message,omitempty"`
	Errors  []validation.FieldError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeJSONSuccess(w http.ResponseWriter, status int, data any, message string) {
	writeJSON(w, status, apiResponse{Success: true, Data: data, Message: message})
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, apiResponse{Success: false, Error: message})
}

func writeJSONValidationErrors(w http.ResponseWriter, errs validation.Errors) {
	writeJSON(w, http.StatusBadRequest, apiResponse{
		Success: false,
		Error:   validation.Format(errs),
		Message: "Validation failed",
		Errors:  errs,
	})
}
