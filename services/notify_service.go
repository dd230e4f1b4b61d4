package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ConfirmationItem mirrors one order line in the confirmation payload.
type ConfirmationItem struct {
	Name         string  `json:"name"`
	VariantLabel string  `json:"variant_label"`
	Qty          int     `json:"qty"`
	UnitPrice    float64 `json:"unit_price"`
	LineTotal    float64 `json:"line_total"`
}

// OrderConfirmation is the payload posted to the external confirmation sink.
// The sink persists it keyed by order id and tolerates re-delivery.
type OrderConfirmation struct {
	OrderID     uint               `json:"order_id"`
	UserEmail   string             `json:"user_email"`
	TotalAmount float64            `json:"total_amount"`
	Currency    string             `json:"currency"`
	Items       []ConfirmationItem `json:"items"`
}

// NotifyService delivers order confirmations to a configured HTTP endpoint.
// Delivery is at-most-once with no retry; callers decide whether a failure
// matters.
type NotifyService struct {
	url        string
	httpClient *http.Client
}

func NewNotifyService(url string) *NotifyService {
	return &NotifyService{
		url: url,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func (s *NotifyService) Enabled() bool {
	return s.url != ""
}

func (s *NotifyService) SendOrderConfirmation(ctx context.Context, payload OrderConfirmation) error {
	if s.url == "" {
		return fmt.Errorf("order confirmation URL is not configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode confirmation: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build confirmation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post confirmation: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("confirmation sink returned %d", resp.StatusCode)
	}
	return nil
}
