// Package events publishes order lifecycle notifications to NATS. Delivery
// is best-effort: downstream consumers (notifications, analytics) must not
// gate the customer flow.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"food-storefront/models"
)

const (
	OrdersTopic             = "orders.events"
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status.changed"
)

// OrderEvent is the wire shape published for both creation and status
// changes. FromStatus is empty on creation.
type OrderEvent struct {
	EventType    string             `json:"event_type"`
	OccurredAt   time.Time          `json:"occurred_at"`
	OrderID      uint               `json:"order_id"`
	RestaurantID uint               `json:"restaurant_id"`
	FromStatus   models.OrderStatus `json:"from_status,omitempty"`
	ToStatus     models.OrderStatus `json:"to_status"`
	TotalPrice   int64              `json:"total_price,omitempty"`
}

// Publisher emits order events.
type Publisher interface {
	OrderCreated(ctx context.Context, order models.Order) error
	OrderStatusChanged(ctx context.Context, orderID uint, from, to models.OrderStatus) error
}

// NATSPublisher publishes order events to a NATS subject.
type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn}, nil
}

func (p *NATSPublisher) OrderCreated(ctx context.Context, order models.Order) error {
	return p.publish(OrderEvent{
		EventType:    EventOrderCreated,
		OccurredAt:   time.Now().UTC(),
		OrderID:      order.ID,
		RestaurantID: order.RestaurantID,
		ToStatus:     order.Status,
		TotalPrice:   order.TotalPrice,
	})
}

func (p *NATSPublisher) OrderStatusChanged(ctx context.Context, orderID uint, from, to models.OrderStatus) error {
	return p.publish(OrderEvent{
		EventType:  EventOrderStatusChanged,
		OccurredAt: time.Now().UTC(),
		OrderID:    orderID,
		FromStatus: from,
		ToStatus:   to,
	})
}

func (p *NATSPublisher) publish(ev OrderEvent) error {
	raw, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode order event: %w", err)
	}
	return p.conn.Publish(OrdersTopic, raw)
}

func (p *NATSPublisher) Close() error {
	p.conn.Close()
	return nil
}

// NoopPublisher drops all events. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) OrderCreated(context.Context, models.Order) error { return nil }

func (NoopPublisher) OrderStatusChanged(context.Context, uint, models.OrderStatus, models.OrderStatus) error {
	return nil
}
