package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pizza-service/internal/domain"
	"pizza-service/internal/services"
)

// Handler wires the service layer to gin routes and maps domain errors to
// status codes.
type Handler struct {
	tokens  *services.TokenService
	users   *services.UserService
	carts   *services.CartService
	catalog *services.CatalogService
	orders  *services.OrderService
}

func NewHandler(tokens *services.TokenService, users *services.UserService, carts *services.CartService, catalog *services.CatalogService, orders *services.OrderService) *Handler {
	return &Handler{
		tokens:  tokens,
		users:   users,
		carts:   carts,
		catalog: catalog,
		orders:  orders,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.HandleMethodNotAllowed = true

	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.POST("/users", h.Register)
	r.POST("/tokens", h.IssueToken)
	r.GET("/tokens/:id", h.GetToken)
	r.PUT("/tokens/:id", h.RenewToken)
	r.DELETE("/tokens/:id", h.RevokeToken)

	auth := r.Group("/", h.requireToken)
	auth.GET("/users", h.GetProfile)
	auth.PUT("/users", h.UpdateProfile)
	auth.DELETE("/users", h.DeleteUser)
	auth.GET("/menu", h.Menu)
	auth.POST("/carts", h.OpenCart)
	auth.GET("/carts", h.ViewCart)
	auth.PUT("/carts", h.MutateCart)
	auth.DELETE("/carts", h.CloseCart)
	auth.POST("/orders", h.PlaceOrder)
	auth.GET("/orders/:orderId", h.GetOrder)
}

// requireToken resolves the bearer token and stashes the owning user for
// the handler. Verify is the single authorization gate.
func (h *Handler) requireToken(c *gin.Context) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}
	user, token, ok := h.tokens.Verify(c.Request.Context(), parts[1])
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": domain.ErrUnauthorized.Error()})
		return
	}
	c.Set("user", user)
	c.Set("token", token)
	c.Next()
}

func currentUser(c *gin.Context) *domain.User {
	return c.MustGet("user").(*domain.User)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.users.Register(c.Request.Context(), services.Registration{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
		Password:  req.Password,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user.Sanitized())
}

func (h *Handler) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c).Sanitized())
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.users.Update(c.Request.Context(), currentUser(c), services.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Address:   req.Address,
		Password:  req.Password,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user.Sanitized())
}

func (h *Handler) DeleteUser(c *gin.Context) {
	var req DeleteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.users.Delete(c.Request.Context(), currentUser(c), req.Password); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *Handler) IssueToken(c *gin.Context) {
	var req IssueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	token, err := h.tokens.Issue(c.Request.Context(), req.Phone, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, token)
}

func (h *Handler) GetToken(c *gin.Context) {
	_, token, ok := h.tokens.Verify(c.Request.Context(), c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrTokenNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, token)
}

func (h *Handler) RenewToken(c *gin.Context) {
	if err := h.tokens.Renew(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *Handler) RevokeToken(c *gin.Context) {
	if err := h.tokens.Revoke(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *Handler) Menu(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category required"})
		return
	}
	items, err := h.catalog.Category(c.Request.Context(), category)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) OpenCart(c *gin.Context) {
	cart, err := h.carts.Open(c.Request.Context(), currentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *Handler) ViewCart(c *gin.Context) {
	cart, err := h.carts.View(c.Request.Context(), currentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *Handler) MutateCart(c *gin.Context) {
	var req CartMutateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cart, err := h.carts.Mutate(c.Request.Context(), currentUser(c), domain.CartAction(req.Action), req.Category, req.ItemID, req.Quantity)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *Handler) CloseCart(c *gin.Context) {
	if err := h.carts.Close(c.Request.Context(), currentUser(c)); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *Handler) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := h.orders.Place(c.Request.Context(), currentUser(c), req.PaymentSource)
	if errors.Is(err, domain.ErrReceiptSend) {
		// The order is committed; the client must treat it as placed.
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   err.Error(),
			"orderId": order.ID,
		})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.orders.Get(c.Request.Context(), currentUser(c), c.Param("orderId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrAlreadyAuthenticated),
		errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrCartActive),
		errors.Is(err, domain.ErrItemNotInCart),
		errors.Is(err, domain.ErrUnknownItem),
		errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrPricingFailed):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrPaymentDeclined):
		return http.StatusPaymentRequired
	case errors.Is(err, domain.ErrTokenNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrNoCart),
		errors.Is(err, domain.ErrUnknownCategory),
		errors.Is(err, domain.ErrOrderForbidden),
		errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
