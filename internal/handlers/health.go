package handlers

import (
	"net/http"
	"time"
)

// HealthCheck отвечает {"status":"ok","timestamp":...}.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
