package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/railpath-hq/railrouter/pkg/logger"
)

// fiatTransferResponse mirrors the gateway's answer for a submitted
// transfer.
type fiatTransferResponse struct {
	TransactionReference string `json:"transaction_reference"`
	Status               string `json:"status"`
	Error                string `json:"error,omitempty"`
}

// FiatAdapter submits transfers to the domestic clearing gateway (ACH,
// FedNow, RTP, wire). One instance serves every fiat rail; the gateway
// dispatches on the rail identifier in the payload.
type FiatAdapter struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	logger     logger.Logger
}

var _ RailAdapter = (*FiatAdapter)(nil)

// NewFiatAdapter creates a new fiat gateway adapter.
func NewFiatAdapter(endpoint, apiKey string, log logger.Logger) *FiatAdapter {
	if log == nil {
		log = &logger.EmptyLogger{}
	}
	return &FiatAdapter{
		endpoint: endpoint,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: log,
	}
}

// Transfer submits the transfer and returns the gateway's transaction
// reference.
func (a *FiatAdapter) Transfer(ctx context.Context, req TransferRequest) (*TransferReceipt, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode transfer request: %v", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint+"/api/v1/transfers", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build transfer request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	// The gateway deduplicates on this key, so re-submitting the same
	// intent cannot move funds twice.
	httpReq.Header.Set("Idempotency-Key", req.IntentID)
	if a.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+a.apiKey)
	}

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("transfer request failed: %v", err)
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			a.logger.Error("Failed to close response body: %v", err)
		}
	}(resp.Body)

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read transfer response: %v", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var transferResp fiatTransferResponse
	if err := json.Unmarshal(bodyBytes, &transferResp); err != nil {
		return nil, fmt.Errorf("failed to decode transfer response: %v, body: %s", err, string(bodyBytes))
	}

	if transferResp.Error != "" {
		return nil, fmt.Errorf("gateway rejected transfer: %s", transferResp.Error)
	}
	if transferResp.TransactionReference == "" {
		return nil, fmt.Errorf("gateway returned no transaction reference, body: %s", string(bodyBytes))
	}

	a.logger.Debug("Fiat transfer %s accepted on rail %s (reference: %s)",
		req.IntentID, req.RailID, transferResp.TransactionReference)

	return &TransferReceipt{
		Reference:  transferResp.TransactionReference,
		AcceptedAt: time.Now(),
	}, nil
}
