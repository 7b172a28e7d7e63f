package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"pizza-service/internal/domain"
	"pizza-service/internal/infra"
	rabbit "pizza-service/internal/infra/rabbitmq"
	"pizza-service/internal/invoice"
	"pizza-service/internal/repository"
)

// OrderService runs the order pipeline: it turns the user's active cart
// into a priced order, renders the invoice, captures the payment, commits
// the order, and mails the receipt. Stages run strictly in sequence and the
// first failure aborts the rest; there is no rollback of earlier stages and
// no compensation of a captured charge (reconciled externally by design).
type OrderService struct {
	store     repository.Store
	catalog   ItemResolver
	charger   infra.Charger
	mailer    infra.Mailer
	publisher rabbit.PublisherInterface
}

func NewOrderService(store repository.Store, catalog ItemResolver, charger infra.Charger, mailer infra.Mailer, publisher rabbit.PublisherInterface) *OrderService {
	return &OrderService{
		store:     store,
		catalog:   catalog,
		charger:   charger,
		mailer:    mailer,
		publisher: publisher,
	}
}

// Place executes the pipeline for an already verified user. paymentSource
// is the gateway token to charge. On a notify failure the order is still
// committed: the caller gets the order back together with ErrReceiptSend.
func (s *OrderService) Place(ctx context.Context, user *domain.User, paymentSource string) (*domain.Order, error) {
	// Authorize: the token gate already ran; an active cart must exist.
	if user.ActiveCartID == "" {
		return nil, domain.ErrNoCart
	}
	cart, err := readCart(ctx, s.store, user.ActiveCartID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrNoCart
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	// Price: every line must still resolve against the catalog. A single
	// missing item fails the whole order; no partial order is priced.
	lines, total, err := s.price(ctx, cart)
	if err != nil {
		return nil, err
	}

	// Materialize.
	now := time.Now()
	order := &domain.Order{
		ID:           domain.NewOrderID(now),
		SourceCartID: cart.ID,
		PlacedAt:     now,
		Lines:        lines,
		Total:        total,
		DeliverTo:    user.Address,
		Buyer: domain.Buyer{
			FirstName: user.FirstName,
			Email:     user.Email,
		},
		Payment: domain.Payment{Status: domain.PaymentPending},
	}

	// Render the invoice before any money moves.
	html, err := invoice.Render(order)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvoiceGeneration, err)
	}
	if err := s.store.Create(ctx, repository.CategoryInvoices, order.ID, []byte(html)); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvoiceGeneration, err)
	}

	// Capture payment. On failure no order record exists.
	desc := fmt.Sprintf("Receiving payment of %v for %s", order.Total, order.Buyer.Email)
	charge, err := s.charger.Charge(ctx, paymentSource, order.Total, desc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPaymentDeclined, err)
	}

	// Commit. From here the order exists regardless of the notify outcome.
	order.Payment = domain.Payment{
		Status:     domain.PaymentPaid,
		ChargeID:   charge.ChargeID,
		CapturedAt: charge.CapturedAt,
	}
	if err := createJSON(ctx, s.store, repository.CategoryOrders, order.ID, order); err != nil {
		return nil, fmt.Errorf("create order record: %w", err)
	}
	user.Orders = append(user.Orders, order.ID)
	user.ActiveCartID = ""
	if err := updateJSON(ctx, s.store, repository.CategoryUsers, user.Phone, user); err != nil {
		return nil, fmt.Errorf("record order on user: %w", err)
	}
	if err := s.store.Delete(ctx, repository.CategoryCarts, cart.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		log.Printf("order %s: failed to delete cart record %s: %v", order.ID, cart.ID, err)
	}

	go s.publishOrderPlaced(context.Background(), user.Phone, order)

	// Notify. The order stays committed even when the receipt fails.
	if err := s.mailer.Send(ctx, "Your pizza order", html, order.Buyer.Email); err != nil {
		log.Printf("order %s: receipt mail to %s failed: %v", order.ID, order.Buyer.Email, err)
		return order, domain.ErrReceiptSend
	}
	return order, nil
}

// Get returns one of the user's past orders. Orders outside the user's
// history are invisible, whether or not they exist.
func (s *OrderService) Get(ctx context.Context, user *domain.User, orderID string) (*domain.Order, error) {
	if !user.HasOrder(orderID) {
		return nil, domain.ErrOrderForbidden
	}
	b, err := s.store.Read(ctx, repository.CategoryOrders, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	var order domain.Order
	if err := json.Unmarshal(b, &order); err != nil {
		return nil, fmt.Errorf("decode order %s: %w", orderID, err)
	}
	return &order, nil
}

func (s *OrderService) price(ctx context.Context, cart *domain.Cart) ([]domain.OrderLine, float64, error) {
	lines := make([]domain.OrderLine, 0, len(cart.Items))
	var total float64
	for _, l := range cart.Items {
		item, err := s.catalog.Item(ctx, l.Category, l.ItemID)
		if err != nil {
			if errors.Is(err, domain.ErrUnknownItem) || errors.Is(err, domain.ErrUnknownCategory) {
				return nil, 0, domain.ErrPricingFailed
			}
			return nil, 0, err
		}
		value := item.Price * float64(l.Quantity)
		lines = append(lines, domain.OrderLine{
			Category: l.Category,
			ItemID:   l.ItemID,
			Name:     item.Name,
			Qty:      l.Quantity,
			Rate:     item.Price,
			Value:    value,
		})
		total += value
	}
	return lines, total, nil
}

func (s *OrderService) publishOrderPlaced(ctx context.Context, phone string, order *domain.Order) {
	if s.publisher == nil {
		return
	}
	evt := domain.OrderPlacedEvent{
		OrderID:  order.ID,
		Phone:    phone,
		Total:    order.Total,
		PlacedAt: order.PlacedAt,
	}
	if err := s.publisher.Publish(ctx, "order.placed", evt); err != nil {
		log.Printf("order %s: failed to publish order.placed: %v", order.ID, err)
	}
}
