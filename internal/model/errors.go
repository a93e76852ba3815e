package model

import "errors"

// Error descriptors crossing the service boundary. Callers classify with
// errors.Is; handlers map them to HTTP statuses.
var (
	// ErrAuthFailed means the backend explicitly rejected the credential.
	ErrAuthFailed = errors.New("invalid email or password")

	// ErrNotFound means the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrRemoteUnavailable means the backend could not be reached or answered
	// with a server-side failure.
	ErrRemoteUnavailable = errors.New("remote backend unavailable")

	// ErrValidation means the input was malformed or violated an invariant.
	ErrValidation = errors.New("validation failed")

	// ErrPaymentFunction means the payment function call failed.
	ErrPaymentFunction = errors.New("payment function error")
)
