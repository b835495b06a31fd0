package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// IntentStatus is the lifecycle state of a payment intent.
type IntentStatus string

const (
	// StatusCreated is the initial state after a routing decision is made
	StatusCreated IntentStatus = "created"
	// StatusExecuting is held only while the orchestrator is driving rails
	StatusExecuting IntentStatus = "executing"
	// StatusExecuted is terminal: a rail reported success
	StatusExecuted IntentStatus = "executed"
	// StatusFailed is terminal: the whole fallback chain was exhausted
	StatusFailed IntentStatus = "failed"
)

// Quote is the fee, total and settlement estimate quoted for the selected
// rail at creation time.
type Quote struct {
	Fee   decimal.Decimal `json:"fee"`
	Total decimal.Decimal `json:"total"`
	ETA   time.Duration   `json:"eta"`
}

// ExecutionResult records the outcome of driving an intent through its rail
// chain. Reference is the provider-supplied transaction reference of the
// succeeding rail.
type ExecutionResult struct {
	Success     bool      `json:"success"`
	RailID      string    `json:"rail_id"`
	Reference   string    `json:"reference,omitempty"`
	ErrorDetail string    `json:"error_detail,omitempty"`
	CompletedAt time.Time `json:"completed_at"`
}

// Intent is the persisted record of one routing decision. SelectedRail is
// always a member of the eligible set computed at creation; Fallbacks never
// contains the selected rail. Only the execution path mutates status and
// result fields after creation.
type Intent struct {
	ID           string            `json:"id"`
	Params       TransactionParams `json:"params"`
	SelectedRail string            `json:"selected_rail"`
	Fallbacks    []string          `json:"fallbacks"`
	Scores       ScoreBreakdown    `json:"scores"`
	Quote        Quote             `json:"quote"`
	Status       IntentStatus      `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
	ExpiresAt    time.Time         `json:"expires_at"`
	Result       *ExecutionResult  `json:"result,omitempty"`
}

// Expired reports whether the intent may no longer be executed as of now.
func (i *Intent) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// Clone returns a deep copy so repository callers cannot alias internal
// state.
func (i *Intent) Clone() *Intent {
	cp := *i
	cp.Fallbacks = append([]string(nil), i.Fallbacks...)
	if i.Params.Metadata != nil {
		cp.Params.Metadata = make(map[string]string, len(i.Params.Metadata))
		for k, v := range i.Params.Metadata {
			cp.Params.Metadata[k] = v
		}
	}
	if i.Result != nil {
		res := *i.Result
		cp.Result = &res
	}
	return &cp
}
