// internal/app/features/errors/render.go
package errors

import (
	"encoding/json"
	"net/http"
)

// Envelope is the response shape every endpoint uses:
// { "success": bool, "message": ..., "data": ... } on the happy path,
// { "success": false, "message": ..., "error": ... } on failure.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

// RenderOK writes a 200 with data.
func RenderOK(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// RenderCreated writes a 201 with data.
func RenderCreated(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// RenderValidation writes a 400 for malformed or rule-violating input.
// Business-rule failures (duplicate assignment, non-reviewer target) use
// the same status as plain validation errors.
func RenderValidation(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, Envelope{Success: false, Message: message})
}

// RenderUnauthorized writes a 401 for requests with no valid actor.
func RenderUnauthorized(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, Envelope{Success: false, Message: "Access denied. Authentication required."})
}

// RenderForbidden writes a 403 for authenticated but unauthorized actors.
func RenderForbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Access denied"
	}
	writeJSON(w, http.StatusForbidden, Envelope{Success: false, Message: message})
}

// RenderNotFound writes a 404.
func RenderNotFound(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, Envelope{Success: false, Message: message})
}

// RenderServerError writes a 500. detail is included only when exposeErr
// is true (non-production modes); production responses stay generic.
func RenderServerError(w http.ResponseWriter, message string, detail error, exposeErr bool) {
	env := Envelope{Success: false, Message: message}
	if exposeErr && detail != nil {
		env.Error = detail.Error()
	} else {
		env.Error = "Internal server error"
	}
	writeJSON(w, http.StatusInternalServerError, env)
}
