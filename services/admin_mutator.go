package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"food-storefront/clients"
	"food-storefront/events"
	"food-storefront/models"
	"food-storefront/statemachine"
)

// reconcileDelay is how long after an optimistic status update the cached
// list is re-fetched to pick up server-side effects such as timestamps.
const reconcileDelay = time.Second

// AdminStatusMutator applies validated transitions to a single order and
// propagates the result into every cached view. The update is optimistic: it
// lands in the caches immediately and a deferred refresh reconciles with the
// server rather than trusting the local copy indefinitely.
type AdminStatusMutator struct {
	tracker *OrderTracker
	orders  clients.OrderService
	pub     events.Publisher
	logger  *slog.Logger

	// schedule defers the reconciling refresh; swapped out in tests.
	schedule func(d time.Duration, f func())
}

func NewAdminStatusMutator(tracker *OrderTracker, orders clients.OrderService, pub events.Publisher, logger *slog.Logger) *AdminStatusMutator {
	if pub == nil {
		pub = events.NoopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminStatusMutator{
		tracker: tracker,
		orders:  orders,
		pub:     pub,
		logger:  logger,
		schedule: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
}

// Cancel moves the order to CANCELLED. Terminal orders are rejected before
// any remote call.
func (m *AdminStatusMutator) Cancel(ctx context.Context, order models.Order) (models.Order, error) {
	switch order.Status {
	case models.StatusCancelled:
		return models.Order{}, fmt.Errorf("%w: order %d", ErrAlreadyCancelled, order.ID)
	case models.StatusDelivered:
		return models.Order{}, fmt.Errorf("%w: order %d", ErrAlreadyDelivered, order.ID)
	}
	return m.SetStatus(ctx, order.ID, models.StatusCancelled)
}

// SetStatus validates the transition against the last observed status, sends
// it to the order service, applies it to the cached copies and schedules the
// reconciling refresh. Transition failures carry the current and requested
// status; they are never silently swallowed.
func (m *AdminStatusMutator) SetStatus(ctx context.Context, orderID uint, newStatus models.OrderStatus) (models.Order, error) {
	current, ok := m.tracker.CurrentStatus(orderID)
	if !ok {
		// Nothing observed yet; fetch the authoritative copy first.
		order, stale, err := m.tracker.GetDetails(ctx, AdminScope, orderID)
		if err != nil {
			return models.Order{}, err
		}
		if stale {
			m.logger.Warn("validating transition against stale order copy", "order_id", orderID)
		}
		current = order.Status
	}

	if !statemachine.CanTransition(current, newStatus) {
		return models.Order{}, &TransitionError{OrderID: orderID, Current: current, Requested: newStatus}
	}

	payload, err := m.orders.UpdateStatus(ctx, orderID, newStatus)
	if err != nil {
		return models.Order{}, fmt.Errorf("status update failed: %w", err)
	}

	order := payload.ToModel()
	m.tracker.ApplyStatus(orderID, order.Status)

	if err := m.pub.OrderStatusChanged(ctx, orderID, current, order.Status); err != nil {
		m.logger.Warn("status changed event publish failed", "order_id", orderID, "error", err)
	}

	m.schedule(reconcileDelay, func() {
		if _, err := m.tracker.RefreshList(context.Background(), AdminScope); err != nil {
			m.logger.Warn("post-transition list refresh failed", "order_id", orderID, "error", err)
		}
	})
	return order, nil
}
