package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// IntentType is the kind of payment the caller is requesting.
type IntentType string

const (
	// IntentTypeTransfer is a direct push payment
	IntentTypeTransfer IntentType = "transfer"
	// IntentTypeInvoice is a payment against an issued invoice
	IntentTypeInvoice IntentType = "invoice"
	// IntentTypeRequestToPay is a pull payment initiated by the payee
	IntentTypeRequestToPay IntentType = "request_to_pay"
)

// Endpoint identifies one side of a transfer. For fiat rails AccountID is an
// account or routing reference at the named institution; for ledger rails it
// is the on-chain address.
type Endpoint struct {
	AccountID   string `json:"account_id"`
	Institution string `json:"institution,omitempty"`
	Country     string `json:"country"`
}

// TransactionParams are the caller-supplied parameters a routing decision is
// made from.
type TransactionParams struct {
	Amount      decimal.Decimal   `json:"amount"`
	Currency    string            `json:"currency"`
	Source      Endpoint          `json:"source"`
	Destination Endpoint          `json:"destination"`
	Type        IntentType        `json:"type"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// CrossBorder reports whether the transaction crosses a border. Endpoints
// with no country set are treated as domestic.
func (p TransactionParams) CrossBorder() bool {
	src := strings.ToUpper(strings.TrimSpace(p.Source.Country))
	dst := strings.ToUpper(strings.TrimSpace(p.Destination.Country))
	if src == "" || dst == "" {
		return false
	}
	return src != dst
}
