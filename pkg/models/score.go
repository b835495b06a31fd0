package models

// ScoreBreakdown holds the six normalized sub-scores and the weighted total
// computed for a rail when an intent is created. Each sub-score is in [0,1].
type ScoreBreakdown struct {
	Cost        float64 `json:"cost"`
	Time        float64 `json:"time"`
	FX          float64 `json:"fx"`
	Liquidity   float64 `json:"liquidity"`
	Policy      float64 `json:"policy"`
	Reliability float64 `json:"reliability"`
	Total       float64 `json:"total"`
}
