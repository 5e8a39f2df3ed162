package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrPermissionDenied is returned when a reminder operation requires
	// notification permission and the user has denied it.
	ErrPermissionDenied = errors.New("notification permission denied")
)
