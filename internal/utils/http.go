package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorResponse is the JSON body of every error answered by the status API.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// WriteJSON serializes data to JSON and writes it with statusCode and an
// "application/json" content type.
//
// If marshaling fails, it responds with 500 Internal Server Error
// and returns a wrapped error.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteError answers r with an ErrorResponse carrying message and the trace
// id of the request, if any.
func WriteError(w http.ResponseWriter, r *http.Request, message string, statusCode int) {
	resp := ErrorResponse{Error: message}
	if traceID, ok := GetTraceIDFromContext(r.Context()); ok {
		resp.TraceID = traceID
	}
	_, _ = WriteJSON(w, resp, statusCode)
}
