package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// ErrUnavailable marks a remote collaborator failure: network error, non-2xx
// response or malformed payload. Callers match it with errors.Is to decide
// between fallback and surfacing.
var ErrUnavailable = errors.New("remote service unavailable")

// CartItemPayload is the wire shape the remote cart service speaks. Price is
// already in minor currency units.
type CartItemPayload struct {
	DishID          uint   `json:"dishId"`
	DishName        string `json:"dishName"`
	DishDescription string `json:"dishDescription"`
	Price           int64  `json:"price"`
	Quantity        int    `json:"quantity"`
	RestaurantID    uint   `json:"restaurantId"`
}

// CartService is the remote authoritative cart.
type CartService interface {
	Get(ctx context.Context, userID uint) ([]CartItemPayload, error)
	Add(ctx context.Context, userID uint, item CartItemPayload) error
	UpdateQuantity(ctx context.Context, userID, dishID uint, quantity int) error
	Remove(ctx context.Context, userID, dishID uint) error
	Clear(ctx context.Context, userID uint) error
}

// HTTPCartClient implements CartService over the backend REST contract.
type HTTPCartClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPCartClient creates a cart service client for the given base URL.
func NewHTTPCartClient(baseURL string) *HTTPCartClient {
	if baseURL == "" {
		baseURL = "http://localhost:8081"
	}
	return &HTTPCartClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *HTTPCartClient) Get(ctx context.Context, userID uint) ([]CartItemPayload, error) {
	var items []CartItemPayload
	if err := c.do(ctx, userID, http.MethodGet, "/cart", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *HTTPCartClient) Add(ctx context.Context, userID uint, item CartItemPayload) error {
	return c.do(ctx, userID, http.MethodPost, "/cart/add", item, nil)
}

func (c *HTTPCartClient) UpdateQuantity(ctx context.Context, userID, dishID uint, quantity int) error {
	path := fmt.Sprintf("/cart/update/%d?quantity=%d", dishID, quantity)
	return c.do(ctx, userID, http.MethodPut, path, nil, nil)
}

func (c *HTTPCartClient) Remove(ctx context.Context, userID, dishID uint) error {
	return c.do(ctx, userID, http.MethodDelete, fmt.Sprintf("/cart/remove/%d", dishID), nil, nil)
}

func (c *HTTPCartClient) Clear(ctx context.Context, userID uint) error {
	return c.do(ctx, userID, http.MethodDelete, "/cart/clear", nil, nil)
}

func (c *HTTPCartClient) do(ctx context.Context, userID uint, method, path string, body, out interface{}) error {
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
	// The gateway identifies the customer by header, not by body field.
	req.Header.Set("X-User-Id", strconv.FormatUint(uint64(userID), 10))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: cart service: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: cart service returned status %d", ErrUnavailable, resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode cart response: %v", ErrUnavailable, err)
		}
	}
	return nil
}
