package domain

import (
	"errors"
	"fmt"
)

// Common domain errors.
var (
	ErrIdentityUnavailable = errors.New("user identity unavailable")
	ErrInvalidIdentity     = errors.New("user identity must be a numeric id")
	ErrRequestFailed       = errors.New("kick service request failed")
	ErrResponseMalformed   = errors.New("kick service response malformed")
	ErrNetworkFailure      = errors.New("kick service unreachable")
	ErrUserNotFound        = errors.New("user not found")
)

// StatusError reports a non-success HTTP status from the counting service.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d", ErrRequestFailed, e.StatusCode)
}

// Unwrap lets errors.Is match ErrRequestFailed.
func (e *StatusError) Unwrap() error {
	return ErrRequestFailed
}

// Outcome classifies how a fetch settled.
type Outcome string

const (
	OutcomeOK             Outcome = "ok"
	OutcomeRequestFailed  Outcome = "request_failed"
	OutcomeMalformed      Outcome = "malformed"
	OutcomeNetworkFailure Outcome = "network_failure"
)

// OutcomeOf classifies a settled fetch error. Unknown errors count as
// network failures since they never reached a parseable response.
func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrRequestFailed):
		return OutcomeRequestFailed
	case errors.Is(err, ErrResponseMalformed):
		return OutcomeMalformed
	default:
		return OutcomeNetworkFailure
	}
}
