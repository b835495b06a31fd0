// Package adapters contains the rail-specific transfer clients. The router
// drives every rail through the single RailAdapter interface; adding a rail
// category means adding one implementation and one entry in the composition
// root's lookup table.
package adapters

import (
	"context"
	"time"

	"github.com/railpath-hq/railrouter/pkg/models"
	"github.com/shopspring/decimal"
)

// TransferRequest carries everything a rail needs to move the funds. The
// intent ID doubles as the idempotency key towards the provider.
type TransferRequest struct {
	IntentID    string            `json:"intent_id"`
	RailID      string            `json:"rail_id"`
	Amount      decimal.Decimal   `json:"amount"`
	Currency    string            `json:"currency"`
	Source      models.Endpoint   `json:"source"`
	Destination models.Endpoint   `json:"destination"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// TransferReceipt is the provider's acknowledgement of a dispatched
// transfer.
type TransferReceipt struct {
	Reference  string    `json:"reference"`
	AcceptedAt time.Time `json:"accepted_at"`
}

// RailAdapter executes a transfer on one settlement rail. Implementations
// must honor the context deadline; a timed-out call is treated by the
// orchestrator exactly like a provider failure.
type RailAdapter interface {
	Transfer(ctx context.Context, req TransferRequest) (*TransferReceipt, error)
}
