package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"anandam/internal/model"

	"github.com/rs/zerolog"
)

// Identity headers set by the edge proxy after token verification.
const (
	headerUserID   = "X-User-Id"
	headerUserName = "X-User-Name"
	headerUserRole = "X-User-Role"
)

// caller is the authenticated identity attached to a request.
type caller struct {
	ID   string
	Name string
	Role model.Role
}

// callerFrom reads the identity headers. Role defaults to customer.
func callerFrom(r *http.Request) caller {
	c := caller{
		ID:   r.Header.Get(headerUserID),
		Name: r.Header.Get(headerUserName),
		Role: model.RoleUser,
	}
	if r.Header.Get(headerUserRole) == string(model.RoleAdmin) {
		c.Role = model.RoleAdmin
	}
	return c
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent at this point, so an encode failure
	// cannot be reported to the client.
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response with the given status, code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Error().Str("code", code).Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeDomainError maps a service error onto an HTTP status. Unknown errors
// become opaque 500s.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var de *model.DomainError
	if !errors.As(err, &de) {
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
		return
	}

	status := http.StatusBadRequest
	switch de.Code {
	case model.ErrCodeOrderNotFound, model.ErrCodeProductNotFound,
		model.ErrCodeBespokeNotFound, model.ErrCodeUserNotFound,
		model.ErrCodeCouponNotFound:
		status = http.StatusNotFound
	case model.ErrCodeActorNotAllowed:
		status = http.StatusForbidden
	case model.ErrCodeInvalidTransition:
		status = http.StatusConflict
	case model.ErrCodeInsufficientStock:
		status = http.StatusConflict
	}

	writeError(w, status, de.Code, de.Message, logger)
}

// decode parses a JSON request body into dst.
func decode(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
