package handler

import (
	"encoding/json"
	"net/http"
)

// HealthHandler returns a health check endpoint. The store lives in process
// memory, so a responding process is a healthy one.
func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status": "healthy",
		})
	}
}
