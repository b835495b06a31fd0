package rails

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Category is the settlement category of a rail.
type Category string

const (
	// CategoryDomesticInstant covers real-time domestic networks (FedNow, RTP)
	CategoryDomesticInstant Category = "domestic_fiat_instant"
	// CategoryDomesticBatch covers batched domestic clearing (ACH)
	CategoryDomesticBatch Category = "domestic_fiat_batch"
	// CategoryCrossBorderWire covers correspondent wire transfers
	CategoryCrossBorderWire Category = "cross_border_wire"
	// CategoryLedgerAsset covers public-ledger stablecoin transfers
	CategoryLedgerAsset Category = "ledger_asset"
)

// Rail describes one settlement pathway. Descriptors are immutable after
// process start; all mutable routing state lives elsewhere.
type Rail struct {
	ID                string          `json:"id"`
	Category          Category        `json:"category"`
	CrossBorder       bool            `json:"cross_border"`
	Cost              decimal.Decimal `json:"cost"`
	SettlementLatency time.Duration   `json:"settlement_latency"`
	Reliability       float64         `json:"reliability"`
	MinAmount         decimal.Decimal `json:"min_amount"`
	MaxAmount         decimal.Decimal `json:"max_amount"`
}

// Catalog is a read-only set of rail descriptors. Declaration order is
// preserved and used as the deterministic tiebreak when scores are equal.
type Catalog struct {
	rails []Rail
	index map[string]int
}

// NewCatalog builds a catalog from the given descriptors, validating them
// once at construction.
func NewCatalog(rails ...Rail) (*Catalog, error) {
	if len(rails) == 0 {
		return nil, fmt.Errorf("catalog requires at least one rail")
	}
	index := make(map[string]int, len(rails))
	for i, r := range rails {
		if r.ID == "" {
			return nil, fmt.Errorf("rail at position %d has no identifier", i)
		}
		if _, dup := index[r.ID]; dup {
			return nil, fmt.Errorf("duplicate rail identifier: %s", r.ID)
		}
		if r.Reliability < 0 || r.Reliability > 1 {
			return nil, fmt.Errorf("rail %s: reliability %v outside [0,1]", r.ID, r.Reliability)
		}
		if r.MinAmount.GreaterThan(r.MaxAmount) {
			return nil, fmt.Errorf("rail %s: min amount %s exceeds max amount %s", r.ID, r.MinAmount, r.MaxAmount)
		}
		if r.Cost.IsNegative() {
			return nil, fmt.Errorf("rail %s: negative cost %s", r.ID, r.Cost)
		}
		index[r.ID] = i
	}
	return &Catalog{rails: append([]Rail(nil), rails...), index: index}, nil
}

// Rails returns the descriptors in declaration order.
func (c *Catalog) Rails() []Rail {
	return append([]Rail(nil), c.rails...)
}

// Get looks up a rail by identifier.
func (c *Catalog) Get(id string) (Rail, bool) {
	i, ok := c.index[id]
	if !ok {
		return Rail{}, false
	}
	return c.rails[i], true
}

// MustGet looks up a rail that is known to exist. An unknown identifier on an
// internal path is a programming defect, not a runtime condition.
func (c *Catalog) MustGet(id string) Rail {
	r, ok := c.Get(id)
	if !ok {
		panic(fmt.Sprintf("rails: unknown rail identifier %q", id))
	}
	return r
}

// Len returns the number of rails in the catalog.
func (c *Catalog) Len() int {
	return len(c.rails)
}
