package domain

import "time"

// TokenIDLength is the length of a bearer token id.
const TokenIDLength = 20

// Token is a bearer session token bound to a single user. At most one
// non-expired token exists per user.
type Token struct {
	ID         string    `json:"id"`
	OwnerPhone string    `json:"phone"`
	ExpiresAt  time.Time `json:"expires"`
}

// Expired reports whether the token is past its expiry at the given instant.
func (t *Token) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}
