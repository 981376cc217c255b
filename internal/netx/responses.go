package netx

import (
	"encoding/json"
	"net/http"
)

// Result is the tagged reply envelope: success with data, or failure with an error string
type Result struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Ok wraps a successful payload
func Ok(data any) Result {
	return Result{Success: true, Data: data}
}

// Err wraps a failure. The error crosses the boundary as its message only.
func Err(err error) Result {
	return Result{Success: false, Error: err.Error()}
}

// NewResult picks Ok or Err
func NewResult(data any, err error) Result {
	if err != nil {
		return Err(err)
	}
	return Ok(data)
}

// WriteJSON writes a JSON response with the specified status code
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteResult writes a result envelope with the specified status code
func WriteResult(w http.ResponseWriter, statusCode int, result Result) error {
	return WriteJSON(w, statusCode, result)
}

// WriteSuccess writes a successful JSON response
func WriteSuccess(w http.ResponseWriter, data interface{}) error {
	return WriteResult(w, http.StatusOK, Ok(data))
}

// WriteError writes an error JSON response
func WriteError(w http.ResponseWriter, statusCode int, err error) error {
	return WriteResult(w, statusCode, Err(err))
}

// WriteMethodNotAllowed writes a method not allowed response
func WriteMethodNotAllowed(w http.ResponseWriter) error {
	return WriteResult(w, http.StatusMethodNotAllowed, Result{Error: "Method not allowed"})
}

// WriteBadRequest writes a bad request response
func WriteBadRequest(w http.ResponseWriter, message string) error {
	return WriteResult(w, http.StatusBadRequest, Result{Error: message})
}

// WriteNotFound writes a not found response
func WriteNotFound(w http.ResponseWriter) error {
	return WriteResult(w, http.StatusNotFound, Result{Error: "Not found"})
}
