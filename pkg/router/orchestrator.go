package router

import (
	"context"
	"fmt"
	"time"

	"github.com/railpath-hq/railrouter/pkg/adapters"
	"github.com/railpath-hq/railrouter/pkg/metrics"
	"github.com/railpath-hq/railrouter/pkg/models"
)

// executeChain attempts the selected rail, then each fallback in order,
// stopping at the first success. Every attempt updates that rail's breaker.
// A timed-out attempt counts as a failure. No retry happens beyond the
// precomputed chain; retrying again means creating a new intent.
func (s *Service) executeChain(ctx context.Context, intent *models.Intent) (*models.ExecutionResult, error) {
	chain := append([]string{intent.SelectedRail}, intent.Fallbacks...)

	req := adapters.TransferRequest{
		IntentID:    intent.ID,
		Amount:      intent.Params.Amount,
		Currency:    intent.Params.Currency,
		Source:      intent.Params.Source,
		Destination: intent.Params.Destination,
		Metadata:    intent.Params.Metadata,
	}

	var lastErr *RailError
	for i, railID := range chain {
		rail := s.catalog.MustGet(railID)
		adapter, ok := s.adapters[railID]
		if !ok {
			// Validated at construction; reaching this is a programming
			// defect.
			panic(fmt.Sprintf("router: no adapter for rail %q", railID))
		}

		req.RailID = railID
		s.logger.InfoWithRail(string(rail.Category), "Attempting intent %s on rail %s (%d/%d)",
			intent.ID, railID, i+1, len(chain))

		start := s.now()
		attemptCtx, cancel := context.WithTimeout(ctx, s.attemptTimeout)
		receipt, err := adapter.Transfer(attemptCtx, req)
		cancel()
		metrics.AttemptDuration.WithLabelValues(railID).Observe(time.Since(start).Seconds())

		if err != nil {
			tripped := s.breakers.RecordFailure(railID)
			if tripped {
				metrics.BreakerTrips.WithLabelValues(railID).Inc()
				s.logger.NoticeWithRail(string(rail.Category), "Circuit breaker tripped for rail %s", railID)
			}
			metrics.IntentsExecuted.WithLabelValues(railID, "failed").Inc()
			s.logger.ErrorWithRail(string(rail.Category), "Rail %s failed for intent %s: %v", railID, intent.ID, err)
			lastErr = &RailError{RailID: railID, Err: err}
			continue
		}

		s.breakers.RecordSuccess(railID)
		metrics.IntentsExecuted.WithLabelValues(railID, "success").Inc()
		if i > 0 {
			metrics.FallbackExecutions.WithLabelValues(railID).Inc()
			s.logger.NoticeWithRail(string(rail.Category), "Intent %s settled by fallback rail %s after %d failed attempt(s)",
				intent.ID, railID, i)
		}

		return &models.ExecutionResult{
			Success:     true,
			RailID:      railID,
			Reference:   receipt.Reference,
			CompletedAt: s.now(),
		}, nil
	}

	return &models.ExecutionResult{
		Success:     false,
		RailID:      lastErr.RailID,
		ErrorDetail: lastErr.Err.Error(),
		CompletedAt: s.now(),
	}, lastErr
}
