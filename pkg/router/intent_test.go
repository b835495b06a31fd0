package router

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/railpath-hq/railrouter/pkg/events"
	"github.com/railpath-hq/railrouter/pkg/models"
	"github.com/railpath-hq/railrouter/pkg/rails"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateIntentSelectsInstantRail(t *testing.T) {
	svc, _, store := newTestService(t)

	intent, err := svc.CreateIntent(context.Background(), domesticParams("500"))
	require.NoError(t, err)

	assert.Equal(t, rails.RailFedNow, intent.SelectedRail)
	assert.Equal(t, []string{rails.RailRTP, rails.RailUSDC}, intent.Fallbacks)
	assert.Equal(t, models.StatusCreated, intent.Status)
	assert.NotEmpty(t, intent.ID)
	assert.Greater(t, intent.Scores.Total, 0.0)
	assert.Equal(t, intent.CreatedAt.Add(DefaultIntentTTL), intent.ExpiresAt)

	assert.True(t, intent.Quote.Fee.Equal(decimal.RequireFromString("0.045")))
	assert.True(t, intent.Quote.Total.Equal(decimal.RequireFromString("500.045")))
	assert.Equal(t, 20*time.Second, intent.Quote.ETA)

	stored, found, err := store.Get(context.Background(), intent.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, intent.SelectedRail, stored.SelectedRail)
}

func TestCreateIntentCrossBorderPrefersLedgerRail(t *testing.T) {
	svc, _, _ := newTestService(t)

	intent, err := svc.CreateIntent(context.Background(), crossBorderParams("500"))
	require.NoError(t, err)

	assert.Equal(t, rails.RailUSDC, intent.SelectedRail)
	assert.Equal(t, []string{rails.RailWire}, intent.Fallbacks)
}

func TestCreateIntentFallbackCap(t *testing.T) {
	svc, _, _ := newTestService(t)

	// Five eligible rails still yield at most two fallbacks.
	intent, err := svc.CreateIntent(context.Background(), domesticParams("500"))
	require.NoError(t, err)
	assert.Len(t, intent.Fallbacks, 2)
	assert.NotContains(t, intent.Fallbacks, intent.SelectedRail)
}

func TestCreateIntentNoEligibleRail(t *testing.T) {
	svc, _, store := newTestService(t)

	_, err := svc.CreateIntent(context.Background(), domesticParams("0.005"))
	assert.ErrorIs(t, err, ErrNoEligibleRail)
	assert.Equal(t, 0, store.Len())
}

func TestCreateIntentSkipsOpenCircuits(t *testing.T) {
	svc, _, _ := newTestService(t)

	for i := 0; i < 3; i++ {
		svc.breakers.RecordFailure(rails.RailFedNow)
	}

	intent, err := svc.CreateIntent(context.Background(), domesticParams("500"))
	require.NoError(t, err)
	assert.Equal(t, rails.RailRTP, intent.SelectedRail)
	assert.NotContains(t, intent.Fallbacks, rails.RailFedNow)
}

func TestCreateIntentInvalidParams(t *testing.T) {
	svc, _, store := newTestService(t)

	tests := []struct {
		name   string
		mutate func(*models.TransactionParams)
	}{
		{"zero amount", func(p *models.TransactionParams) { p.Amount = decimal.Zero }},
		{"negative amount", func(p *models.TransactionParams) { p.Amount = decimal.RequireFromString("-5") }},
		{"missing currency", func(p *models.TransactionParams) { p.Currency = "  " }},
		{"missing source account", func(p *models.TransactionParams) { p.Source.AccountID = "" }},
		{"missing destination account", func(p *models.TransactionParams) { p.Destination.AccountID = "" }},
		{"unknown intent type", func(p *models.TransactionParams) { p.Type = "refund" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := domesticParams("500")
			tt.mutate(&params)
			_, err := svc.CreateIntent(context.Background(), params)
			assert.ErrorIs(t, err, ErrInvalidParams)
		})
	}
	assert.Equal(t, 0, store.Len())
}

func TestCreateIntentReturnsDetachedCopy(t *testing.T) {
	svc, _, store := newTestService(t)

	intent, err := svc.CreateIntent(context.Background(), domesticParams("500"))
	require.NoError(t, err)

	intent.Status = models.StatusFailed
	intent.Fallbacks[0] = "mutated"

	stored, _, err := store.Get(context.Background(), intent.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCreated, stored.Status)
	assert.Equal(t, rails.RailRTP, stored.Fallbacks[0])
}

func TestExecuteIntentSuccess(t *testing.T) {
	svc, adapter, store := newTestService(t)
	ctx := context.Background()

	intent, err := svc.CreateIntent(ctx, domesticParams("500"))
	require.NoError(t, err)

	result, err := svc.ExecuteIntent(ctx, intent.ID)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, rails.RailFedNow, result.RailID)
	assert.Equal(t, "ref-fednow", result.Reference)
	assert.Equal(t, []string{rails.RailFedNow}, adapter.attempts())

	stored, _, err := store.Get(ctx, intent.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusExecuted, stored.Status)
	require.NotNil(t, stored.Result)
	assert.True(t, stored.Result.Success)

	failures, _ := svc.breakers.State(rails.RailFedNow)
	assert.Equal(t, 0, failures)
}

func TestExecuteIntentFallsBackOnFailure(t *testing.T) {
	svc, adapter, store := newTestService(t)
	ctx := context.Background()

	adapter.fail[rails.RailFedNow] = fmt.Errorf("gateway unavailable")

	intent, err := svc.CreateIntent(ctx, domesticParams("500"))
	require.NoError(t, err)
	require.Equal(t, rails.RailFedNow, intent.SelectedRail)

	result, err := svc.ExecuteIntent(ctx, intent.ID)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, rails.RailRTP, result.RailID)
	assert.Equal(t, []string{rails.RailFedNow, rails.RailRTP}, adapter.attempts())

	// The settling rail replaces the original selection on the record.
	stored, _, err := store.Get(ctx, intent.ID)
	require.NoError(t, err)
	assert.Equal(t, rails.RailRTP, stored.SelectedRail)
	assert.Equal(t, models.StatusExecuted, stored.Status)

	failures, _ := svc.breakers.State(rails.RailFedNow)
	assert.Equal(t, 1, failures)
}

func TestExecuteIntentChainExhausted(t *testing.T) {
	svc, adapter, store := newTestService(t)
	ctx := context.Background()

	adapter.fail[rails.RailFedNow] = fmt.Errorf("fednow down")
	adapter.fail[rails.RailRTP] = fmt.Errorf("rtp down")
	adapter.fail[rails.RailUSDC] = fmt.Errorf("rpc down")

	intent, err := svc.CreateIntent(ctx, domesticParams("500"))
	require.NoError(t, err)

	result, err := svc.ExecuteIntent(ctx, intent.ID)
	require.Error(t, err)

	var railErr *RailError
	require.ErrorAs(t, err, &railErr)
	assert.Equal(t, rails.RailUSDC, railErr.RailID)

	require.NotNil(t, result)
	assert.False(t, result.Success)
	assert.Equal(t, rails.RailUSDC, result.RailID)
	assert.Contains(t, result.ErrorDetail, "rpc down")
	assert.Equal(t, []string{rails.RailFedNow, rails.RailRTP, rails.RailUSDC}, adapter.attempts())

	stored, _, err := store.Get(ctx, intent.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, stored.Status)
	require.NotNil(t, stored.Result)
	assert.False(t, stored.Result.Success)
}

func TestExecuteIntentNotFound(t *testing.T) {
	svc, adapter, _ := newTestService(t)

	_, err := svc.ExecuteIntent(context.Background(), "no-such-intent")
	assert.ErrorIs(t, err, ErrIntentNotFound)
	assert.Equal(t, 0, adapter.callCount())
}

func TestExecuteIntentNotExecutableTwice(t *testing.T) {
	svc, adapter, _ := newTestService(t)
	ctx := context.Background()

	intent, err := svc.CreateIntent(ctx, domesticParams("500"))
	require.NoError(t, err)

	_, err = svc.ExecuteIntent(ctx, intent.ID)
	require.NoError(t, err)
	require.Equal(t, 1, adapter.callCount())

	// A terminal intent is rejected without touching any rail again.
	_, err = svc.ExecuteIntent(ctx, intent.ID)
	assert.ErrorIs(t, err, ErrIntentNotExecutable)
	assert.Equal(t, 1, adapter.callCount())
}

func TestExecuteIntentExpired(t *testing.T) {
	svc, adapter, store := newTestService(t)
	ctx := context.Background()

	intent, err := svc.CreateIntent(ctx, domesticParams("500"))
	require.NoError(t, err)

	svc.now = func() time.Time { return intent.ExpiresAt.Add(time.Second) }

	_, err = svc.ExecuteIntent(ctx, intent.ID)
	assert.ErrorIs(t, err, ErrIntentExpired)
	assert.Equal(t, 0, adapter.callCount())

	// Expiry leaves the record untouched.
	stored, _, err := store.Get(ctx, intent.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCreated, stored.Status)
}

func TestExecuteIntentPublishesEvent(t *testing.T) {
	published := make([]events.IntentExecuted, 0, 1)
	publisher := publisherFunc(func(topic string, event any) error {
		assert.Equal(t, events.TopicIntentExecuted, topic)
		published = append(published, event.(events.IntentExecuted))
		return nil
	})
	svc, _, _ := newTestService(t, func(p *Params) { p.Publisher = publisher })
	ctx := context.Background()

	intent, err := svc.CreateIntent(ctx, domesticParams("500"))
	require.NoError(t, err)
	_, err = svc.ExecuteIntent(ctx, intent.ID)
	require.NoError(t, err)

	require.Len(t, published, 1)
	assert.Equal(t, intent.ID, published[0].IntentID)
	assert.Equal(t, rails.RailFedNow, published[0].RailID)
	assert.Equal(t, string(models.StatusExecuted), published[0].Status)
	assert.Equal(t, "ref-fednow", published[0].Reference)
}

type publisherFunc func(topic string, event any) error

func (f publisherFunc) Publish(topic string, event any) error {
	return f(topic, event)
}
