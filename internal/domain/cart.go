package domain

// CartAction selects how Mutate changes a cart line.
type CartAction string

const (
	CartAdd    CartAction = "add"
	CartRemove CartAction = "remove"
)

// Valid reports whether the action is one of the allowed cart actions.
func (a CartAction) Valid() bool {
	return a == CartAdd || a == CartRemove
}

// CartLine is one item entry in a cart.
type CartLine struct {
	Category string `json:"itemCategory"`
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// Cart is the single active shopping cart of a user.
type Cart struct {
	ID    string     `json:"cartId"`
	Items []CartLine `json:"cartItems"`
}

// FindLine returns the index of the line holding itemID, or -1.
func (c *Cart) FindLine(itemID string) int {
	for i, l := range c.Items {
		if l.ItemID == itemID {
			return i
		}
	}
	return -1
}
