package domain

import "errors"

var (
	// input validation
	ErrInvalidInput = errors.New("missing or invalid required field")

	// auth
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrAlreadyAuthenticated = errors.New("already having an active token")
	ErrTokenNotFound        = errors.New("token not found")
	ErrTokenExpired         = errors.New("token expired")
	ErrUnauthorized         = errors.New("invalid key")

	// users
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")

	// carts
	ErrCartActive    = errors.New("user already having an active cart")
	ErrNoCart        = errors.New("no active cart")
	ErrItemNotInCart = errors.New("item not in cart")

	// catalog
	ErrUnknownItem     = errors.New("item does not exist in provided category")
	ErrUnknownCategory = errors.New("unknown item category")

	// order pipeline
	ErrEmptyCart         = errors.New("no items found to order")
	ErrPricingFailed     = errors.New("failed to price cart items")
	ErrInvoiceGeneration = errors.New("failed to generate invoice")
	ErrPaymentDeclined   = errors.New("payment declined")
	ErrReceiptSend       = errors.New("failed to send order receipt")
	ErrOrderForbidden    = errors.New("order does not belong to user")
	ErrOrderNotFound     = errors.New("order not found")
)
