package server

import (
	"encoding/json"
	"io"
	"net/http"
)

const genericErrorMessage = "An error occurred"

// writeText writes body as-is; unlike http.Error it adds no trailing newline.
func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(status)
	io.WriteString(w, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	if msg == "" {
		msg = genericErrorMessage
	}
	writeJSON(w, status, map[string]string{"error": msg})
}
