// Package payments is the narrow client to the external payment
// confirmation provider.
package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"storefront/models"
)

// Provider captures an authorized payment and returns its confirmation
// record.
type Provider interface {
	Capture(ctx context.Context, externalID string) (*models.PaymentResult, error)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type captureRequest struct {
	ID string `json:"id"`
}

type captureResponse struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	EmailAddress string `json:"email_address"`
	PricePaid    string `json:"pricePaid"`
}

func (c *Client) Capture(ctx context.Context, externalID string) (*models.PaymentResult, error) {
	body, err := json.Marshal(captureRequest{ID: externalID})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/captures", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("capture payment %s: %w", externalID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("capture payment %s: provider returned %d", externalID, resp.StatusCode)
	}

	var captured captureResponse
	if err := json.NewDecoder(resp.Body).Decode(&captured); err != nil {
		return nil, fmt.Errorf("capture payment %s: decode response: %w", externalID, err)
	}

	return &models.PaymentResult{
		ID:           captured.ID,
		Status:       captured.Status,
		EmailAddress: captured.EmailAddress,
		PricePaid:    captured.PricePaid,
	}, nil
}
