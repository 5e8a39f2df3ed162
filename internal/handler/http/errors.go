package http

import "errors"

// Errors answered with 401 by the auth middleware.
var (
	// ErrEmptyAuthorizationHeader: the "Authorization" header is absent.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader: the header is not "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken: the bearer scheme is present but the token is empty.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")
)
