package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"food-storefront/clients"
	"food-storefront/models"
)

// AdminScope is the tracker list key for the all-orders admin view.
const AdminScope uint = 0

// OrderTracker holds the read-mostly cached copies of server-owned orders:
// one list per customer plus the admin all-orders list, and the last fetched
// detail per order. A failed refresh keeps the previous list; stale but
// present beats empty.
type OrderTracker struct {
	orders      clients.OrderService
	restaurants clients.RestaurantLookup
	logger      *slog.Logger

	mu      sync.RWMutex
	lists   map[uint][]models.Order
	details map[uint]models.Order
	names   map[uint]string
}

func NewOrderTracker(orders clients.OrderService, restaurants clients.RestaurantLookup, logger *slog.Logger) *OrderTracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderTracker{
		orders:      orders,
		restaurants: restaurants,
		logger:      logger,
		lists:       map[uint][]models.Order{},
		details:     map[uint]models.Order{},
		names:       map[uint]string{},
	}
}

// RefreshList fetches the order list (the customer's own, or every order for
// AdminScope), enriches each entry with a restaurant name and re-sorts by
// creation time, newest first. On failure the previously cached list is
// returned alongside the error.
func (t *OrderTracker) RefreshList(ctx context.Context, scope uint) ([]models.Order, error) {
	var payloads []clients.OrderPayload
	var err error
	if scope == AdminScope {
		payloads, err = t.orders.ListAll(ctx)
	} else {
		payloads, err = t.orders.List(ctx, scope)
	}
	if err != nil {
		t.logger.Warn("order list refresh failed, serving cached list", "scope", scope, "error", err)
		return t.CachedList(scope), fmt.Errorf("order list refresh failed: %w", err)
	}

	list := make([]models.Order, 0, len(payloads))
	for _, p := range payloads {
		o := p.ToModel()
		o.RestaurantName = t.restaurantName(ctx, o.RestaurantID)
		list = append(list, o)
	}
	// Missing dates mapped to the zero time sort as oldest.
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})

	t.mu.Lock()
	t.lists[scope] = list
	t.mu.Unlock()
	return append([]models.Order(nil), list...), nil
}

// CachedList returns the last successfully refreshed list for the scope.
func (t *OrderTracker) CachedList(scope uint) []models.Order {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]models.Order(nil), t.lists[scope]...)
}

// GetDetails fetches a single order. On remote failure it falls back to the
// summary already held in a cached list so the view is never blank; stale
// reports whether the caller got the degraded copy.
func (t *OrderTracker) GetDetails(ctx context.Context, scope, orderID uint) (order models.Order, stale bool, err error) {
	payload, err := t.orders.Get(ctx, scope, orderID)
	if err != nil {
		t.logger.Warn("order detail fetch failed, falling back to cached summary",
			"order_id", orderID, "error", err)
		if cached, ok := t.lookupCached(orderID); ok {
			return cached, true, nil
		}
		return models.Order{}, false, fmt.Errorf("%w: order %d", ErrOrderNotFound, orderID)
	}

	order = payload.ToModel()
	order.RestaurantName = t.restaurantName(ctx, order.RestaurantID)

	t.mu.Lock()
	t.details[orderID] = order
	t.mu.Unlock()
	return order, false, nil
}

func (t *OrderTracker) lookupCached(orderID uint) (models.Order, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if o, ok := t.details[orderID]; ok {
		return o, true
	}
	for _, list := range t.lists {
		for _, o := range list {
			if o.ID == orderID {
				return o, true
			}
		}
	}
	return models.Order{}, false
}

// CurrentStatus returns the last observed status for the order.
func (t *OrderTracker) CurrentStatus(orderID uint) (models.OrderStatus, bool) {
	o, ok := t.lookupCached(orderID)
	return o.Status, ok
}

// ApplyStatus updates every cached copy of the order in place: list entries
// and, if fetched, the detail view. Optimistic; a deferred refresh
// reconciles with the server copy.
func (t *OrderTracker) ApplyStatus(orderID uint, status models.OrderStatus) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for scope, list := range t.lists {
		for i := range list {
			if list[i].ID == orderID {
				list[i].Status = status
			}
		}
		t.lists[scope] = list
	}
	if o, ok := t.details[orderID]; ok {
		o.Status = status
		t.details[orderID] = o
	}
}

// restaurantName resolves display enrichment through the lookup service,
// memoizing hits. Failures fall back to a numbered placeholder.
func (t *OrderTracker) restaurantName(ctx context.Context, restaurantID uint) string {
	t.mu.RLock()
	name, ok := t.names[restaurantID]
	t.mu.RUnlock()
	if ok {
		return name
	}

	restaurant, err := t.restaurants.GetByID(ctx, restaurantID)
	if err != nil || restaurant.Name == "" {
		return fmt.Sprintf("Restaurant #%d", restaurantID)
	}

	t.mu.Lock()
	t.names[restaurantID] = restaurant.Name
	t.mu.Unlock()
	return restaurant.Name
}
