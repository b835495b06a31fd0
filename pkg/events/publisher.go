// Package events publishes routing outcomes for downstream consumers
// (reconciliation, notifications, analytics).
package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// TopicIntentExecuted carries terminal intent transitions.
const TopicIntentExecuted = "intent_executed"

// IntentExecuted is emitted once an intent reaches a terminal state.
type IntentExecuted struct {
	IntentID    string          `json:"intent_id"`
	RailID      string          `json:"rail_id"`
	Status      string          `json:"status"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Reference   string          `json:"reference,omitempty"`
	ErrorDetail string          `json:"error_detail,omitempty"`
	CompletedAt time.Time       `json:"completed_at"`
}

// Publisher delivers events to an external bus.
type Publisher interface {
	Publish(topic string, event any) error
}

// NoopPublisher discards all events.
type NoopPublisher struct{}

var _ Publisher = (*NoopPublisher)(nil)

func (NoopPublisher) Publish(string, any) error { return nil }
