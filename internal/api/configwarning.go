package api

import (
	"encoding/json"
	"net/http"
)

// ConfigWarningResponse is the only thing a misconfigured deployment serves.
type ConfigWarningResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Missing []string `json:"missing"`
}

// NewConfigWarningRouter answers every route with a configuration warning.
// A deployment missing backend credentials gets no partial functionality;
// the warning replaces all content until the environment is fixed.
func NewConfigWarningRouter(missing []string) http.Handler {
	payload := ConfigWarningResponse{
		Error:   "not configured",
		Message: "backend configuration is incomplete; set the missing environment variables and restart",
		Missing: missing,
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(payload)
	})
}
