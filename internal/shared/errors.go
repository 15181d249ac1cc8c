// Package shared defines sentinel errors used across repository, service and
// transport layers. Callers should match them with errors.Is.
package shared

import "errors"

var (

	// repository-level errors
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// service-level errors
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// auth-specific errors
	ErrorInvalidToken            = errors.New("invalid token")
	ErrorTokenExpired            = errors.New("token expired")
	ErrorInvalidAuthHeaderFormat = errors.New("invalid auth header format")
	ErrorNoUserID                = errors.New("no user id")
)
