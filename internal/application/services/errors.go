package services

import (
	"fmt"
	"net/http"

	"user-registry-api/internal/domain/user"
)

// InvalidRequestError is the single failure shape the user service hands to
// callers: a human readable reason plus the HTTP status it maps to.
type InvalidRequestError struct {
	Reason string
	Status int
}

func (e *InvalidRequestError) Error() string { return e.Reason }

var (
	ErrPasswordNotBase64 = &InvalidRequestError{
		Reason: "Password must be Base64 encoded",
		Status: http.StatusBadRequest,
	}
	ErrPasswordTooLong = &InvalidRequestError{
		Reason: "Password must not exceed 72 bytes",
		Status: http.StatusBadRequest,
	}
	// Deliberately does not say which field collided.
	ErrUnableToCreateUser = &InvalidRequestError{
		Reason: "Unable to create user with provided data",
		Status: http.StatusPreconditionFailed,
	}
)

func ErrUserNotFound(id user.UUID) *InvalidRequestError {
	return &InvalidRequestError{
		Reason: fmt.Sprintf("User with id %s not found", id),
		Status: http.StatusNotFound,
	}
}
