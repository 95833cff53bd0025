package handlers

import (
	"net/http"
	"time"
)

// Health is the liveness probe served at /.
func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Server is running smoothly",
		"timestamp": time.Now().UTC(),
	})
}
