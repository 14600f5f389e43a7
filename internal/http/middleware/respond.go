package middlewarex

import (
	"encoding/json"
	"net/http"
)

type failure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Fail writes {"success":false,"message":...} with status
func Fail(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(failure{Message: message})
}
