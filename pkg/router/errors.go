package router

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParams means the transaction parameters themselves are
	// unusable (non-positive amount, missing currency).
	ErrInvalidParams = errors.New("invalid transaction parameters")

	// ErrNoEligibleRail means the eligibility filter produced an empty set;
	// nothing was persisted.
	ErrNoEligibleRail = errors.New("no eligible rail for transaction")

	// ErrIntentNotFound means the repository has no intent with that ID.
	ErrIntentNotFound = errors.New("intent not found")

	// ErrIntentNotExecutable means the intent is not in the created state.
	// Callers can distinguish "already succeeded" from "try a new intent"
	// by reading the persisted status.
	ErrIntentNotExecutable = errors.New("intent is not executable")

	// ErrIntentExpired means the intent's validity horizon has passed; no
	// rail was attempted.
	ErrIntentExpired = errors.New("intent expired")
)

// RailError wraps a transfer failure with the identifier of the rail that
// produced it. When the whole fallback chain is exhausted, the last
// attempt's RailError is returned to the caller.
type RailError struct {
	RailID string
	Err    error
}

func (e *RailError) Error() string {
	return fmt.Sprintf("rail %s: %v", e.RailID, e.Err)
}

func (e *RailError) Unwrap() error {
	return e.Err
}
