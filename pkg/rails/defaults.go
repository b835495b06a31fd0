package rails

import (
	"time"

	"github.com/shopspring/decimal"
)

// Default rail identifiers.
const (
	RailFedNow = "fednow"
	RailRTP    = "rtp"
	RailACH    = "ach"
	RailWire   = "swift_wire"
	RailUSDC   = "usdc_ledger"
)

// DefaultCatalog returns the rail set the router ships with: two instant
// domestic networks, batched ACH, correspondent wire and a USDC ledger
// transfer. Costs are per-transfer in the settlement currency.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(
		Rail{
			ID:                RailFedNow,
			Category:          CategoryDomesticInstant,
			Cost:              decimal.RequireFromString("0.045"),
			SettlementLatency: 20 * time.Second,
			Reliability:       0.995,
			MinAmount:         decimal.RequireFromString("0.01"),
			MaxAmount:         decimal.RequireFromString("500000"),
		},
		Rail{
			ID:                RailRTP,
			Category:          CategoryDomesticInstant,
			Cost:              decimal.RequireFromString("0.25"),
			SettlementLatency: 15 * time.Second,
			Reliability:       0.99,
			MinAmount:         decimal.RequireFromString("0.01"),
			MaxAmount:         decimal.RequireFromString("100000"),
		},
		Rail{
			ID:                RailACH,
			Category:          CategoryDomesticBatch,
			Cost:              decimal.RequireFromString("0.29"),
			SettlementLatency: 48 * time.Hour,
			Reliability:       0.98,
			MinAmount:         decimal.RequireFromString("0.01"),
			MaxAmount:         decimal.RequireFromString("1000000"),
		},
		Rail{
			ID:                RailWire,
			Category:          CategoryCrossBorderWire,
			CrossBorder:       true,
			Cost:              decimal.RequireFromString("25"),
			SettlementLatency: 24 * time.Hour,
			Reliability:       0.97,
			MinAmount:         decimal.RequireFromString("100"),
			MaxAmount:         decimal.RequireFromString("10000000"),
		},
		Rail{
			ID:                RailUSDC,
			Category:          CategoryLedgerAsset,
			CrossBorder:       true,
			Cost:              decimal.RequireFromString("0.75"),
			SettlementLatency: 30 * time.Second,
			Reliability:       0.985,
			MinAmount:         decimal.RequireFromString("0.01"),
			MaxAmount:         decimal.RequireFromString("5000000"),
		},
	)
	if err != nil {
		panic(err)
	}
	return c
}
