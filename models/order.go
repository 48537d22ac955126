package models

import "time"

// OrderStatus represents all possible states of a submitted order
type OrderStatus string

const (
	StatusPending        OrderStatus = "PENDING"
	StatusConfirmed      OrderStatus = "CONFIRMED"
	StatusPreparing      OrderStatus = "PREPARING"
	StatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	StatusDelivered      OrderStatus = "DELIVERED"
	StatusCancelled      OrderStatus = "CANCELLED"
)

// AllStatuses lists every status in lifecycle order.
var AllStatuses = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusPreparing,
	StatusOutForDelivery,
	StatusDelivered,
	StatusCancelled,
}

// Contact is the customer information validated before submission.
type Contact struct {
	Email           string `json:"email"`
	FullName        string `json:"full_name"`
	Telephone       string `json:"telephone"`
	DeliveryAddress string `json:"delivery_address"`
}

// Order is the read-mostly cached copy of a server-owned order. The backend
// is the system of record; everything here must be treated as stale until
// refreshed.
type Order struct {
	ID                uint        `json:"id"`
	RestaurantID      uint        `json:"restaurant_id"`
	RestaurantName    string      `json:"restaurant_name"`
	Status            OrderStatus `json:"status"`
	Items             []OrderItem `json:"items"`
	CustomerEmail     string      `json:"customer_email"`
	CustomerFullName  string      `json:"customer_full_name"`
	CustomerTelephone string      `json:"customer_telephone"`
	DeliveryAddress   string      `json:"delivery_address"`
	PaymentMethod     string      `json:"payment_method"`
	TotalPrice        int64       `json:"total_price"`
	CreatedAt         time.Time   `json:"created_at"`
}

// OrderItem is an immutable snapshot of a dish at order time, decoupled
// from later catalog changes.
type OrderItem struct {
	DishID          uint   `json:"dish_id"`
	DishName        string `json:"dish_name"`
	DishDescription string `json:"dish_description"`
	Quantity        int    `json:"quantity"`
	Price           int64  `json:"price"`
}

// Subtotal returns quantity × snapshot price in minor units.
func (i OrderItem) Subtotal() int64 {
	return int64(i.Quantity) * i.Price
}
