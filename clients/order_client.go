package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"food-storefront/models"
)

// CreateOrderRequest is the order service's submission contract.
type CreateOrderRequest struct {
	RestaurantID    uint               `json:"restaurantId"`
	Items           []OrderItemPayload `json:"items"`
	PaymentMethod   string             `json:"paymentMethod"`
	DeliveryAddress string             `json:"deliveryAddress"`
	CustomerEmail   string             `json:"customerEmail"`
	CustomerName    string             `json:"customerFullName"`
	CustomerPhone   string             `json:"customerTelephone"`
}

type OrderItemPayload struct {
	DishID          uint   `json:"dishId"`
	DishName        string `json:"dishName"`
	DishDescription string `json:"dishDescription"`
	Quantity        int    `json:"quantity"`
	Price           int64  `json:"price"`
}

// OrderPayload is the wire shape of a server-owned order. Older backend
// responses carry orderDate instead of createdAt; both are kept so the
// tracker can pick whichever is present.
type OrderPayload struct {
	ID              uint               `json:"id"`
	RestaurantID    uint               `json:"restaurantId"`
	Status          string             `json:"status"`
	Items           []OrderItemPayload `json:"orderItems"`
	CustomerEmail   string             `json:"customerEmail"`
	CustomerName    string             `json:"customerFullName"`
	CustomerPhone   string             `json:"customerTelephone"`
	DeliveryAddress string             `json:"deliveryAddress"`
	PaymentMethod   string             `json:"paymentMethod"`
	TotalPrice      int64              `json:"totalPrice"`
	CreatedAt       *time.Time         `json:"createdAt"`
	OrderDate       *time.Time         `json:"orderDate"`
}

// ToModel converts the wire order into the domain shape. A missing date
// maps to the zero time, which sorts as oldest.
func (p OrderPayload) ToModel() models.Order {
	o := models.Order{
		ID:                p.ID,
		RestaurantID:      p.RestaurantID,
		Status:            models.OrderStatus(p.Status),
		CustomerEmail:     p.CustomerEmail,
		CustomerFullName:  p.CustomerName,
		CustomerTelephone: p.CustomerPhone,
		DeliveryAddress:   p.DeliveryAddress,
		PaymentMethod:     p.PaymentMethod,
		TotalPrice:        p.TotalPrice,
	}
	for _, it := range p.Items {
		o.Items = append(o.Items, models.OrderItem{
			DishID:          it.DishID,
			DishName:        it.DishName,
			DishDescription: it.DishDescription,
			Quantity:        it.Quantity,
			Price:           it.Price,
		})
	}
	switch {
	case p.CreatedAt != nil:
		o.CreatedAt = *p.CreatedAt
	case p.OrderDate != nil:
		o.CreatedAt = *p.OrderDate
	}
	return o
}

// OrderService is the backend system of record for orders.
type OrderService interface {
	Create(ctx context.Context, userID uint, req CreateOrderRequest) (OrderPayload, error)
	Get(ctx context.Context, userID, orderID uint) (OrderPayload, error)
	List(ctx context.Context, userID uint) ([]OrderPayload, error)
	ListAll(ctx context.Context) ([]OrderPayload, error)
	UpdateStatus(ctx context.Context, orderID uint, status models.OrderStatus) (OrderPayload, error)
}

// HTTPOrderClient implements OrderService over the backend REST contract.
type HTTPOrderClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPOrderClient creates an order service client for the given base URL.
func NewHTTPOrderClient(baseURL string) *HTTPOrderClient {
	if baseURL == "" {
		baseURL = "http://localhost:8082"
	}
	return &HTTPOrderClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *HTTPOrderClient) Create(ctx context.Context, userID uint, req CreateOrderRequest) (OrderPayload, error) {
	var out OrderPayload
	err := c.do(ctx, userID, http.MethodPost, "/orders/place", req, &out)
	return out, err
}

func (c *HTTPOrderClient) Get(ctx context.Context, userID, orderID uint) (OrderPayload, error) {
	var out OrderPayload
	err := c.do(ctx, userID, http.MethodGet, fmt.Sprintf("/orders/%d", orderID), nil, &out)
	return out, err
}

func (c *HTTPOrderClient) List(ctx context.Context, userID uint) ([]OrderPayload, error) {
	var out []OrderPayload
	err := c.do(ctx, userID, http.MethodGet, "/orders", nil, &out)
	return out, err
}

func (c *HTTPOrderClient) ListAll(ctx context.Context) ([]OrderPayload, error) {
	var out []OrderPayload
	err := c.do(ctx, 0, http.MethodGet, "/orders/all", nil, &out)
	return out, err
}

func (c *HTTPOrderClient) UpdateStatus(ctx context.Context, orderID uint, status models.OrderStatus) (OrderPayload, error) {
	var out OrderPayload
	path := fmt.Sprintf("/orders/%d/status?status=%s", orderID, status)
	err := c.do(ctx, 0, http.MethodPut, path, nil, &out)
	return out, err
}

func (c *HTTPOrderClient) do(ctx context.Context, userID uint, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set("X-User-Id", strconv.FormatUint(uint64(userID), 10))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: order service: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: order service returned status %d", ErrUnavailable, resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode order response: %v", ErrUnavailable, err)
		}
	}
	return nil
}
