package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"food-storefront/models"
)

// RestaurantLookup resolves restaurant identifiers to display data. Used
// only for enrichment, never for invariants.
type RestaurantLookup interface {
	GetByID(ctx context.Context, id uint) (models.Restaurant, error)
}

// HTTPRestaurantClient implements RestaurantLookup over the catalog REST API.
type HTTPRestaurantClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPRestaurantClient creates a restaurant lookup client.
func NewHTTPRestaurantClient(baseURL string) *HTTPRestaurantClient {
	if baseURL == "" {
		baseURL = "http://localhost:8083"
	}
	return &HTTPRestaurantClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *HTTPRestaurantClient) GetByID(ctx context.Context, id uint) (models.Restaurant, error) {
	var out models.Restaurant
	url := fmt.Sprintf("%s/restaurants/%d", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return out, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return out, fmt.Errorf("%w: restaurant service: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return out, fmt.Errorf("%w: restaurant service returned status %d", ErrUnavailable, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("%w: decode restaurant response: %v", ErrUnavailable, err)
	}
	return out, nil
}

// NoopRestaurantLookup always misses; display falls back to the placeholder
// name. Useful when the catalog is down or in tests.
type NoopRestaurantLookup struct{}

func (NoopRestaurantLookup) GetByID(ctx context.Context, id uint) (models.Restaurant, error) {
	return models.Restaurant{}, fmt.Errorf("%w: restaurant lookup disabled", ErrUnavailable)
}
