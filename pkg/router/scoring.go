package router

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/railpath-hq/railrouter/pkg/liquidity"
	"github.com/railpath-hq/railrouter/pkg/models"
	"github.com/railpath-hq/railrouter/pkg/rails"
	"github.com/shopspring/decimal"
)

// Weights are the scoring weights applied to the six sub-scores. They must
// sum to 1.0; this is validated once at service construction, not per call.
type Weights struct {
	Cost        float64
	Time        float64
	FX          float64
	Liquidity   float64
	Policy      float64
	Reliability float64
}

// DefaultWeights returns the production weighting.
func DefaultWeights() Weights {
	return Weights{
		Cost:        0.30,
		Time:        0.25,
		FX:          0.15,
		Liquidity:   0.10,
		Policy:      0.15,
		Reliability: 0.05,
	}
}

const weightSumTolerance = 1e-9

// Validate checks each weight is non-negative and the sum is 1.0.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"cost":        w.Cost,
		"time":        w.Time,
		"fx":          w.FX,
		"liquidity":   w.Liquidity,
		"policy":      w.Policy,
		"reliability": w.Reliability,
	} {
		if v < 0 {
			return fmt.Errorf("weight %s is negative: %v", name, v)
		}
	}
	sum := w.Cost + w.Time + w.FX + w.Liquidity + w.Policy + w.Reliability
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("weights must sum to 1.0, got %v", sum)
	}
	return nil
}

// rankedRail is an eligible rail with its computed score breakdown.
type rankedRail struct {
	rail   rails.Rail
	scores models.ScoreBreakdown
}

// rankRails computes the six sub-scores for each eligible rail and returns
// them sorted descending by weighted total. The sort is stable, so equal
// totals keep catalog declaration order and re-ranking the same inputs is
// deterministic.
func (s *Service) rankRails(ctx context.Context, params models.TransactionParams, eligible []eligibleRail) []rankedRail {
	crossBorder := params.CrossBorder()

	ranked := make([]rankedRail, 0, len(eligible))
	for _, e := range eligible {
		breakdown := models.ScoreBreakdown{
			Cost:        costScore(e.rail.Cost, params.Amount),
			Time:        timeScore(e.rail.SettlementLatency),
			FX:          fxScore(crossBorder, e.rail.Category),
			Liquidity:   s.liquidityScore(ctx, e.rail.ID),
			Policy:      clamp01(e.decision.PolicyScore),
			Reliability: clamp01(e.rail.Reliability),
		}
		breakdown.Total = s.weights.Cost*breakdown.Cost +
			s.weights.Time*breakdown.Time +
			s.weights.FX*breakdown.FX +
			s.weights.Liquidity*breakdown.Liquidity +
			s.weights.Policy*breakdown.Policy +
			s.weights.Reliability*breakdown.Reliability

		ranked = append(ranked, rankedRail{rail: e.rail, scores: breakdown})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].scores.Total > ranked[j].scores.Total
	})
	return ranked
}

// costScore maps the rail cost as a percentage of the transaction amount to
// a discrete score. Breakpoints are at 0.1%, 0.5%, 1%, 2% and 5%.
func costScore(cost, amount decimal.Decimal) float64 {
	if !amount.IsPositive() {
		return 0.1
	}
	pct, _ := cost.Div(amount).Mul(decimal.NewFromInt(100)).Float64()
	switch {
	case pct < 0.1:
		return 1.0
	case pct < 0.5:
		return 0.9
	case pct < 1.0:
		return 0.7
	case pct < 2.0:
		return 0.5
	case pct < 5.0:
		return 0.3
	default:
		return 0.1
	}
}

// timeScore maps expected settlement latency to a discrete score.
// Breakpoints are at 1, 5, 30, 60 and 1440 minutes.
func timeScore(latency time.Duration) float64 {
	minutes := latency.Minutes()
	switch {
	case minutes < 1:
		return 1.0
	case minutes < 5:
		return 0.9
	case minutes < 30:
		return 0.7
	case minutes < 60:
		return 0.5
	case minutes < 1440:
		return 0.3
	default:
		return 0.1
	}
}

// fxScore reflects currency-exchange exposure. Domestic transactions carry
// none; cross-border stablecoin transfers avoid the exchange spread that
// fiat rails incur.
func fxScore(crossBorder bool, category rails.Category) float64 {
	if !crossBorder {
		return 1.0
	}
	if category == rails.CategoryLedgerAsset {
		return 0.9
	}
	return 0.5
}

// liquidityScore fetches the external liquidity estimate, falling back to
// the conservative default when the provider fails or returns a value
// outside [0,1].
func (s *Service) liquidityScore(ctx context.Context, railID string) float64 {
	score, err := s.liquidity.Estimate(ctx, railID)
	if err != nil {
		s.logger.Debug("Liquidity estimate unavailable for rail %s, using default: %v", railID, err)
		return liquidity.DefaultScore
	}
	if score < 0 || score > 1 {
		return liquidity.DefaultScore
	}
	return score
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
