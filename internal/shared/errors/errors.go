// Package errors defines the API error taxonomy and the fixed response
// envelope shared by every route.
package errors

import "net/http"

// APIError carries everything the terminal error handler needs to build a
// response: an HTTP status, a message, and optional structured field errors.
// It is a value type so predefined errors can be copied and customized.
type APIError struct {
	Status  int
	Message string
	Errors  any
}

// Error implements the error interface.
func (e APIError) Error() string {
	return e.Message
}

// WithMessage returns a copy with the given message.
func (e APIError) WithMessage(message string) APIError {
	e.Message = message
	return e
}

// WithErrors returns a copy carrying structured field errors.
func (e APIError) WithErrors(errs any) APIError {
	e.Errors = errs
	return e
}

var (
	// ErrInvalidPayload indicates the request body failed schema validation.
	ErrInvalidPayload = APIError{Status: http.StatusBadRequest, Message: "Invalid payload"}
	// ErrUserNotFound indicates the addressed user does not exist.
	ErrUserNotFound = APIError{Status: http.StatusNotFound, Message: "User not found"}
	// ErrUserAlreadyExists indicates a create collided with an existing id.
	ErrUserAlreadyExists = APIError{Status: http.StatusBadRequest, Message: "A user with the same id already exists"}
	// ErrInvalidEmailDeletion indicates an update tried to remove an email.
	ErrInvalidEmailDeletion = APIError{Status: http.StatusBadRequest, Message: "Deleting an email address is not allowed"}
	// ErrRouteNotFound indicates no route matched the request.
	ErrRouteNotFound = APIError{Status: http.StatusNotFound, Message: "Route not found"}
	// ErrInternal wraps unanticipated failures.
	ErrInternal = APIError{Status: http.StatusInternalServerError, Message: "Internal server error"}
)

// NewInvalidPayload builds a validation error carrying field-level details.
func NewInvalidPayload(fieldErrors any) APIError {
	return ErrInvalidPayload.WithErrors(fieldErrors)
}
