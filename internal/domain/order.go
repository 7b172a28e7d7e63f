package domain

import (
	"fmt"
	"time"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// OrderLine is a priced cart line. Value is Rate*Qty, unrounded.
type OrderLine struct {
	Category string  `json:"itemCategory"`
	ItemID   string  `json:"itemId"`
	Name     string  `json:"particular"`
	Qty      int     `json:"qty"`
	Rate     float64 `json:"rate"`
	Value    float64 `json:"value"`
}

// Payment is the only part of an Order that may change after the order
// is committed.
type Payment struct {
	Status     PaymentStatus `json:"status"`
	ChargeID   string        `json:"chargeId,omitempty"`
	CapturedAt time.Time     `json:"capturedAt,omitempty"`
}

// Order is a priced, invoiced purchase. Total is always the exact sum of
// the line values. Orders are never deleted; they form the user's history.
type Order struct {
	ID           string      `json:"orderId"`
	SourceCartID string      `json:"cartId"`
	PlacedAt     time.Time   `json:"time"`
	Lines        []OrderLine `json:"particulars"`
	Total        float64     `json:"total"`
	DeliverTo    string      `json:"deliveryTo"`
	Buyer        Buyer       `json:"user"`
	Payment      Payment     `json:"payment"`
}

// Buyer is the profile snapshot copied onto the order at placement time.
type Buyer struct {
	FirstName string `json:"firstName"`
	Email     string `json:"userEmail"`
}

// NewOrderID builds a time-derived order id.
func NewOrderID(now time.Time) string {
	return fmt.Sprintf("ORD%d", now.UnixNano())
}
