package compliance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/railpath-hq/railrouter/pkg/logger"
	"github.com/railpath-hq/railrouter/pkg/models"
	"github.com/shopspring/decimal"
)

// evaluationRequest is the payload sent to the rule engine.
type evaluationRequest struct {
	RailID             string          `json:"rail_id"`
	Amount             decimal.Decimal `json:"amount"`
	Currency           string          `json:"currency"`
	SourceCountry      string          `json:"source_country"`
	DestinationCountry string          `json:"destination_country"`
	IntentType         string          `json:"intent_type"`
}

// evaluationResponse mirrors the rule engine's answer.
type evaluationResponse struct {
	Allowed     bool    `json:"allowed"`
	PolicyScore float64 `json:"policy_score"`
	Reason      string  `json:"reason,omitempty"`
}

// Client is an HTTP Gate implementation against an external business-rule
// evaluator.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	logger     logger.Logger
}

var _ Gate = (*Client)(nil)

// NewClient creates a new compliance client.
func NewClient(endpoint, apiKey string, log logger.Logger) *Client {
	if log == nil {
		log = &logger.EmptyLogger{}
	}
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: log,
	}
}

// Evaluate asks the rule engine whether railID may carry the transaction.
func (c *Client) Evaluate(ctx context.Context, railID string, params models.TransactionParams) (Decision, error) {
	payload, err := json.Marshal(evaluationRequest{
		RailID:             railID,
		Amount:             params.Amount,
		Currency:           params.Currency,
		SourceCountry:      params.Source.Country,
		DestinationCountry: params.Destination.Country,
		IntentType:         string(params.Type),
	})
	if err != nil {
		return Decision{}, fmt.Errorf("failed to encode evaluation request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/api/v1/evaluations", bytes.NewReader(payload))
	if err != nil {
		return Decision{}, fmt.Errorf("failed to build evaluation request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Decision{}, fmt.Errorf("evaluation request failed: %v", err)
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			c.logger.Error("Failed to close response body: %v", err)
		}
	}(resp.Body)

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return Decision{}, fmt.Errorf("failed to read evaluation response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return Decision{}, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var evalResp evaluationResponse
	if err := json.Unmarshal(bodyBytes, &evalResp); err != nil {
		return Decision{}, fmt.Errorf("failed to decode evaluation response: %v, body: %s", err, string(bodyBytes))
	}

	if !evalResp.Allowed && evalResp.Reason != "" {
		c.logger.Debug("Rail %s denied by compliance: %s", railID, evalResp.Reason)
	}

	return Decision{Allowed: evalResp.Allowed, PolicyScore: evalResp.PolicyScore}, nil
}
