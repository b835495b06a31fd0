package router

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/railpath-hq/railrouter/pkg/events"
	"github.com/railpath-hq/railrouter/pkg/metrics"
	"github.com/railpath-hq/railrouter/pkg/models"
)

// CreateIntent runs the routing decision for the given transaction and
// persists it as an intent with a fixed validity horizon. It fails with
// ErrNoEligibleRail, persisting nothing, when the filter yields an empty
// set.
func (s *Service) CreateIntent(ctx context.Context, params models.TransactionParams) (*models.Intent, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	eligible, err := s.eligibleRails(ctx, params)
	if err != nil {
		return nil, err
	}
	metrics.EligibleRails.Observe(float64(len(eligible)))
	if len(eligible) == 0 {
		metrics.NoEligibleRail.Inc()
		return nil, fmt.Errorf("%w: amount %s %s", ErrNoEligibleRail, params.Amount, params.Currency)
	}

	ranked := s.rankRails(ctx, params, eligible)
	selected := ranked[0]

	fallbacks := make([]string, 0, maxFallbackRails)
	for _, r := range ranked[1:] {
		if len(fallbacks) == maxFallbackRails {
			break
		}
		fallbacks = append(fallbacks, r.rail.ID)
	}

	now := s.now()
	intent := &models.Intent{
		ID:           uuid.New().String(),
		Params:       params,
		SelectedRail: selected.rail.ID,
		Fallbacks:    fallbacks,
		Scores:       selected.scores,
		Quote: models.Quote{
			Fee:   selected.rail.Cost,
			Total: params.Amount.Add(selected.rail.Cost),
			ETA:   selected.rail.SettlementLatency,
		},
		Status:    models.StatusCreated,
		CreatedAt: now,
		ExpiresAt: now.Add(s.intentTTL),
	}

	if err := s.repo.Save(ctx, intent); err != nil {
		return nil, fmt.Errorf("failed to persist intent: %v", err)
	}

	metrics.IntentsCreated.WithLabelValues(intent.SelectedRail).Inc()
	s.logger.InfoWithRail(string(selected.rail.Category),
		"Created intent %s: selected rail %s (score %.4f), fallbacks [%s]",
		intent.ID, intent.SelectedRail, intent.Scores.Total, strings.Join(fallbacks, ", "))

	return intent.Clone(), nil
}

// ExecuteIntent drives a created intent through its rail chain. Lifecycle
// violations are rejected before any adapter is called: a non-created status
// yields ErrIntentNotExecutable and a passed expiry yields ErrIntentExpired.
// On chain exhaustion the intent is failed and the last rail's error is
// returned alongside the recorded result.
func (s *Service) ExecuteIntent(ctx context.Context, intentID string) (*models.ExecutionResult, error) {
	intent, found, err := s.repo.Get(ctx, intentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load intent: %v", err)
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrIntentNotFound, intentID)
	}

	if intent.Status != models.StatusCreated {
		return nil, fmt.Errorf("%w: intent %s has status %s", ErrIntentNotExecutable, intent.ID, intent.Status)
	}
	if intent.Expired(s.now()) {
		return nil, fmt.Errorf("%w: intent %s expired at %s", ErrIntentExpired, intent.ID, intent.ExpiresAt.Format(time.RFC3339))
	}

	// Persist the transient state first so a concurrent ExecuteIntent for
	// the same record is rejected instead of double-dispatched.
	intent.Status = models.StatusExecuting
	if err := s.repo.Save(ctx, intent); err != nil {
		return nil, fmt.Errorf("failed to persist intent: %v", err)
	}

	result, execErr := s.executeChain(ctx, intent)

	// Final status, result and the possibly-changed selected rail land in
	// a single save of the intent record.
	intent.Result = result
	if result.Success {
		intent.Status = models.StatusExecuted
		intent.SelectedRail = result.RailID
	} else {
		intent.Status = models.StatusFailed
	}
	if err := s.repo.Save(ctx, intent); err != nil {
		return nil, fmt.Errorf("failed to persist execution outcome: %v", err)
	}

	if err := s.publisher.Publish(events.TopicIntentExecuted, events.IntentExecuted{
		IntentID:    intent.ID,
		RailID:      result.RailID,
		Status:      string(intent.Status),
		Amount:      intent.Params.Amount,
		Currency:    intent.Params.Currency,
		Reference:   result.Reference,
		ErrorDetail: result.ErrorDetail,
		CompletedAt: result.CompletedAt,
	}); err != nil {
		s.logger.Error("Failed to publish execution event for intent %s: %v", intent.ID, err)
	}

	return result, execErr
}

func validateParams(params models.TransactionParams) error {
	if !params.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive, got %s", ErrInvalidParams, params.Amount)
	}
	if strings.TrimSpace(params.Currency) == "" {
		return fmt.Errorf("%w: currency is required", ErrInvalidParams)
	}
	if params.Source.AccountID == "" || params.Destination.AccountID == "" {
		return fmt.Errorf("%w: source and destination accounts are required", ErrInvalidParams)
	}
	switch params.Type {
	case models.IntentTypeTransfer, models.IntentTypeInvoice, models.IntentTypeRequestToPay:
		return nil
	default:
		return fmt.Errorf("%w: unknown intent type %q", ErrInvalidParams, params.Type)
	}
}
