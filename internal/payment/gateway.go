package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var ErrGatewayUnavailable = errors.New("payment gateway unavailable")

// GatewayOrder is the provider-side order created before the customer pays.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// Gateway creates provider orders. The order engine depends on this interface
// so tests can substitute a stub.
type Gateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (GatewayOrder, error)
}

// HTTPGateway talks to the payment provider's REST API with basic auth.
type HTTPGateway struct {
	baseURL   string
	keyID     string
	keySecret string
	client    *http.Client
}

var _ Gateway = (*HTTPGateway)(nil)

const defaultGatewayBaseURL = "https://api.razorpay.com"

func NewHTTPGateway(keyID, keySecret string) *HTTPGateway {
	return &HTTPGateway{
		baseURL:   defaultGatewayBaseURL,
		keyID:     keyID,
		keySecret: keySecret,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// NewHTTPGatewayWithBaseURL is used by tests to point at a stub server.
func NewHTTPGatewayWithBaseURL(baseURL, keyID, keySecret string) *HTTPGateway {
	g := NewHTTPGateway(keyID, keySecret)
	g.baseURL = baseURL
	return g
}

func (g *HTTPGateway) KeyID() string {
	return g.keyID
}

// CreateOrder registers the amount with the provider and returns its order.
// Amounts are in minor units (paise).
func (g *HTTPGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (GatewayOrder, error) {
	body, err := json.Marshal(map[string]any{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
	})
	if err != nil {
		return GatewayOrder{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return GatewayOrder{}, err
	}
	req.SetBasicAuth(g.keyID, g.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return GatewayOrder{}, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return GatewayOrder{}, fmt.Errorf("%w: status %d body %s", ErrGatewayUnavailable, resp.StatusCode, b)
	}

	var out GatewayOrder
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return GatewayOrder{}, fmt.Errorf("%w: decoding response: %v", ErrGatewayUnavailable, err)
	}
	return out, nil
}
