package http

type RegisterRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone" binding:"required,len=10"`
	Email     string `json:"email" binding:"required,email"`
	Address   string `json:"address" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	Password  string `json:"password"`
}

type DeleteUserRequest struct {
	Password string `json:"password" binding:"required"`
}

type IssueTokenRequest struct {
	Phone    string `json:"phone" binding:"required,len=10"`
	Password string `json:"password" binding:"required"`
}

type CartMutateRequest struct {
	Action   string `json:"itemAction" binding:"required,oneof=add remove"`
	Category string `json:"itemCategory" binding:"required"`
	ItemID   string `json:"itemId" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

type PlaceOrderRequest struct {
	PaymentSource string `json:"paymentSource" binding:"required"`
}
