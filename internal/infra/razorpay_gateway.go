package infra

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/razorpay/razorpay-go"
)

// RazorpayGateway captures pre-authorized Razorpay payments. The source
// token supplied by the caller is the Razorpay payment id.
type RazorpayGateway struct {
	client   *razorpay.Client
	currency string
}

func NewRazorpayGateway(keyID, keySecret, currency string) *RazorpayGateway {
	if currency == "" {
		currency = "INR"
	}
	return &RazorpayGateway{client: razorpay.NewClient(keyID, keySecret), currency: currency}
}

func (g *RazorpayGateway) Charge(ctx context.Context, sourceToken string, amount float64, description string) (*ChargeResult, error) {
	// Razorpay takes the amount in the smallest currency unit.
	paise := int(math.Round(amount * 100))
	data := map[string]interface{}{
		"currency": g.currency,
	}
	payment, err := g.client.Payment.Capture(sourceToken, paise, data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay capture: %w", err)
	}

	id, _ := payment["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("razorpay capture: missing payment id in response")
	}
	captured := time.Now()
	if created, ok := payment["created_at"].(float64); ok {
		captured = time.Unix(int64(created), 0)
	}
	return &ChargeResult{ChargeID: id, CapturedAt: captured}, nil
}
