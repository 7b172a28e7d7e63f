package domain

import "time"

// OrderPlacedEvent is published to the order exchange after a commit.
type OrderPlacedEvent struct {
	OrderID  string    `json:"orderId"`
	Phone    string    `json:"phone"`
	Total    float64   `json:"total"`
	PlacedAt time.Time `json:"placedAt"`
}
