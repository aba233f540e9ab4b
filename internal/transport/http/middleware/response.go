package middleware

import (
	"encoding/json"
	"net/http"
)

// writeJSONError writes the {status, message} error body the handlers use.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	s := "fail"
	if status >= http.StatusInternalServerError {
		s = "error"
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": s, "message": msg})
}
