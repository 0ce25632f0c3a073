package errors

import (
	"errors"
	"net/http"
)

// Sentinel domain errors. Messages are the API's client-facing strings.
var (
	// ErrEmailTaken is returned when registering an already used email.
	ErrEmailTaken = errors.New("E-mail já cadastrado")
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("Credenciais inválidas")
	// ErrMissingToken is returned when the authorization header is absent
	// or not a bearer scheme.
	ErrMissingToken = errors.New("Token ausente")
	// ErrInvalidToken covers malformed, tampered and expired tokens alike.
	ErrInvalidToken = errors.New("Token inválido")
	// ErrForbidden is returned on an ownership mismatch.
	ErrForbidden = errors.New("Sem permissão")
	// ErrItemNotFound is returned when an item id does not exist.
	ErrItemNotFound = errors.New("Item não encontrado")
	// ErrUserNotFound is returned when a user id does not exist.
	ErrUserNotFound = errors.New("Usuário não encontrado")
)

// ValidationError carries the first human-readable rule violation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidation creates a ValidationError with the given message.
func NewValidation(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// ErrorResponse is the wire shape of every error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MapToHTTP maps a domain error to a status code and response body.
// Unexpected errors become a 500 with the given fallback message; the
// underlying detail is for the server log only.
func MapToHTTP(err error, fallback string) (int, ErrorResponse) {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest, ErrorResponse{Error: vErr.Message}
	case errors.Is(err, ErrEmailTaken):
		return http.StatusConflict, ErrorResponse{Error: err.Error()}
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrMissingToken),
		errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized, ErrorResponse{Error: err.Error()}
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, ErrorResponse{Error: err.Error()}
	case errors.Is(err, ErrItemNotFound), errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound, ErrorResponse{Error: err.Error()}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: fallback}
	}
}
