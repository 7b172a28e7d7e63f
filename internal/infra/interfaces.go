package infra

import (
	"context"
	"time"
)

// ChargeResult is the gateway confirmation for a captured payment.
type ChargeResult struct {
	ChargeID   string
	CapturedAt time.Time
}

// Charger captures a payment against a caller-supplied payment source.
type Charger interface {
	Charge(ctx context.Context, sourceToken string, amount float64, description string) (*ChargeResult, error)
}

// Mailer delivers a rendered document to an email address.
type Mailer interface {
	Send(ctx context.Context, subject, htmlBody, to string) error
}

var (
	_ Charger = (*StripeClient)(nil)
	_ Charger = (*RazorpayGateway)(nil)
	_ Mailer  = (*MailgunClient)(nil)
)
