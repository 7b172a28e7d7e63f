package domain

// User is the account record, keyed by phone number. ActiveCartID and
// ActiveToken are empty when nothing is bound.
type User struct {
	Phone        string   `json:"phone"`
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	Email        string   `json:"email"`
	Address      string   `json:"address"`
	PasswordHash string   `json:"passwordHash,omitempty"`
	ActiveCartID string   `json:"activeCartId,omitempty"`
	ActiveToken  string   `json:"activeTokenId,omitempty"`
	Orders       []string `json:"orders,omitempty"`
}

// HasOrder reports whether orderID is part of the user's order history.
func (u *User) HasOrder(orderID string) bool {
	for _, id := range u.Orders {
		if id == orderID {
			return true
		}
	}
	return false
}

// Sanitized returns a copy safe to hand back to clients.
func (u *User) Sanitized() User {
	c := *u
	c.PasswordHash = ""
	return c
}
