package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
)

// ApiResponse is the envelope every API route responds with.
type ApiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeData writes a success envelope whose data field is always present, even when null.
func writeData(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, struct {
		Success bool        `json:"success"`
		Message string      `json:"message"`
		Data    interface{} `json:"data"`
	}{true, message, data})
}

// writeFault reports a caught fault as 400 with the error text, or fallback when it has none.
func writeFault(w http.ResponseWriter, err error, fallback string) {
	msg := fallback
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	writeJSON(w, http.StatusBadRequest, ApiResponse{
		Success: false,
		Message: msg,
	})
}

// NotFound and MethodNotAllowed keep unmatched requests inside the envelope.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, ApiResponse{
		Success: false,
		Message: "route not found: " + r.Method + " " + r.URL.Path,
	})
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, ApiResponse{
		Success: false,
		Message: "Invalid request method",
	})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
