package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"food-storefront/clients"
	"food-storefront/events"
	"food-storefront/models"
)

// PaymentMethodPlaceholder is recorded on every order. Payment is not
// processed by this system.
const PaymentMethodPlaceholder = "CREDIT_CARD"

// justPlacedWindow bounds how long a fresh PENDING order is eligible for the
// success banner. Display policy only, recomputed on every call.
const justPlacedWindow = 5 * time.Minute

const defaultDeliveryAddress = "Address not provided"

// CheckoutCoordinator turns a non-empty cart plus verified contact
// information into a submitted order, and owns the post-submission
// transition: clear the cart, remember the "just placed" order, publish the
// creation event.
type CheckoutCoordinator struct {
	cart   *CartStore
	orders clients.OrderService
	pub    events.Publisher
	logger *slog.Logger
	now    func() time.Time

	mu         sync.Mutex
	lastPlaced map[uint]models.Order
}

func NewCheckoutCoordinator(cart *CartStore, orders clients.OrderService, pub events.Publisher, logger *slog.Logger) *CheckoutCoordinator {
	if pub == nil {
		pub = events.NoopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckoutCoordinator{
		cart:       cart,
		orders:     orders,
		pub:        pub,
		logger:     logger,
		now:        time.Now,
		lastPlaced: map[uint]models.Order{},
	}
}

// ValidateContact checks the contact fields before any network call. The
// email check is deliberately shallow: non-empty local and domain parts
// around a single '@'. Delivery address is free text and may be defaulted.
func (c *CheckoutCoordinator) ValidateContact(contact models.Contact) error {
	email := strings.TrimSpace(contact.Email)
	at := strings.Index(email, "@")
	if at <= 0 || at != strings.LastIndex(email, "@") || at == len(email)-1 {
		return fmt.Errorf("%w: email must look like local@domain", ErrInvalidContact)
	}
	if len(strings.TrimSpace(contact.FullName)) < 2 {
		return fmt.Errorf("%w: full name must be at least 2 characters", ErrInvalidContact)
	}
	if len(strings.TrimSpace(contact.Telephone)) < 5 {
		return fmt.Errorf("%w: telephone must be at least 5 characters", ErrInvalidContact)
	}
	return nil
}

// Submit validates the cart and contact, builds the order submission with
// item snapshots and sends it to the order service. On success the cart is
// cleared and the order recorded for the success banner. On failure the cart
// is left untouched so the customer can resubmit.
func (c *CheckoutCoordinator) Submit(ctx context.Context, userID uint, contact models.Contact) (models.Order, error) {
	snapshot := c.cart.Get(ctx, userID)

	if snapshot.IsEmpty() {
		return models.Order{}, ErrEmptyCart
	}
	if snapshot.RestaurantID == 0 {
		return models.Order{}, ErrNoRestaurantSelected
	}
	if err := c.ValidateContact(contact); err != nil {
		return models.Order{}, err
	}

	address := strings.TrimSpace(contact.DeliveryAddress)
	if address == "" {
		address = defaultDeliveryAddress
	}

	req := clients.CreateOrderRequest{
		RestaurantID:    snapshot.RestaurantID,
		PaymentMethod:   PaymentMethodPlaceholder,
		DeliveryAddress: address,
		CustomerEmail:   strings.TrimSpace(contact.Email),
		CustomerName:    strings.TrimSpace(contact.FullName),
		CustomerPhone:   strings.TrimSpace(contact.Telephone),
	}
	for _, it := range snapshot.Items {
		req.Items = append(req.Items, clients.OrderItemPayload{
			DishID:          it.DishID,
			DishName:        it.DishName,
			DishDescription: it.DishDescription,
			Quantity:        it.Quantity,
			Price:           it.UnitPrice,
		})
	}

	payload, err := c.orders.Create(ctx, userID, req)
	if err != nil {
		// Cart untouched: the customer may retry.
		return models.Order{}, fmt.Errorf("order submission failed: %w", err)
	}

	order := payload.ToModel()
	c.cart.Clear(ctx, userID)

	c.mu.Lock()
	c.lastPlaced[userID] = order
	c.mu.Unlock()

	if err := c.pub.OrderCreated(ctx, order); err != nil {
		c.logger.Warn("order created event publish failed", "order_id", order.ID, "error", err)
	}
	return order, nil
}

// IsJustPlaced reports whether the order should still show the success
// banner: PENDING and created within the last five minutes.
func (c *CheckoutCoordinator) IsJustPlaced(order models.Order) bool {
	if order.Status != models.StatusPending {
		return false
	}
	return c.now().Sub(order.CreatedAt) < justPlacedWindow
}

// JustPlaced returns the customer's most recently placed order while it is
// still inside the banner window.
func (c *CheckoutCoordinator) JustPlaced(userID uint) (models.Order, bool) {
	c.mu.Lock()
	order, ok := c.lastPlaced[userID]
	c.mu.Unlock()
	if !ok || !c.IsJustPlaced(order) {
		return models.Order{}, false
	}
	return order, true
}
