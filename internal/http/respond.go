package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Every endpoint answers with a success flag in the body. Operation
// failures are reported in-band with 200 OK; callers inspect the flag, not
// the status code. Only the auth middleware uses 401/403.
type envelope struct {
	Success  bool        `json:"success"`
	Message  string      `json:"message,omitempty"`
	Order    interface{} `json:"order,omitempty"`
	Orders   interface{} `json:"orders,omitempty"`
	Cart     interface{} `json:"cart,omitempty"`
	Totals   interface{} `json:"totals,omitempty"`
	Products interface{} `json:"products,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondSuccess(w http.ResponseWriter, body envelope) {
	body.Success = true
	respondJSON(w, http.StatusOK, body)
}

func respondFailure(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusOK, envelope{Success: false, Message: message})
}

func respondAuthFailure(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, envelope{Success: false, Message: message})
}
