package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// StripeClient charges card sources through the Stripe charges endpoint.
type StripeClient struct {
	baseURL    string
	secretKey  string
	currency   string
	httpClient *http.Client
}

func NewStripeClient(baseURL, secretKey, currency string, timeout time.Duration) *StripeClient {
	if baseURL == "" {
		baseURL = "https://api.stripe.com"
	}
	if currency == "" {
		currency = "usd"
	}
	return &StripeClient{
		baseURL:    baseURL,
		secretKey:  secretKey,
		currency:   currency,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *StripeClient) Charge(ctx context.Context, sourceToken string, amount float64, description string) (*ChargeResult, error) {
	form := url.Values{}
	// Stripe takes the amount in the smallest currency unit.
	form.Set("amount", strconv.FormatInt(int64(math.Round(amount*100)), 10))
	form.Set("currency", c.currency)
	form.Set("source", sourceToken)
	form.Set("description", description)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/charges", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.secretKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stripe returned status %d", resp.StatusCode)
	}

	var body struct {
		ID      string `json:"id"`
		Paid    bool   `json:"paid"`
		Created int64  `json:"created"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	if !body.Paid {
		return nil, fmt.Errorf("charge %s not captured", body.ID)
	}
	return &ChargeResult{ChargeID: body.ID, CapturedAt: time.Unix(body.Created, 0)}, nil
}
