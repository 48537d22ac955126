package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCartClientSendsUserHeader(t *testing.T) {
	var gotPath, gotMethod, gotUser string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.RequestURI()
		gotMethod = r.Method
		gotUser = r.Header.Get("X-User-Id")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewHTTPCartClient(srv.URL)
	err := client.UpdateQuantity(context.Background(), 7, 3, 2)
	require.NoError(t, err)
	require.Equal(t, "/cart/update/3?quantity=2", gotPath)
	require.Equal(t, http.MethodPut, gotMethod)
	require.Equal(t, "7", gotUser)
}

func TestCartClientGetDecodesItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/cart", r.URL.Path)
		json.NewEncoder(w).Encode([]CartItemPayload{
			{DishID: 3, DishName: "Pad Thai", Price: 1125, Quantity: 2, RestaurantID: 20},
		})
	}))
	defer srv.Close()

	client := NewHTTPCartClient(srv.URL)
	items, err := client.Get(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, uint(3), items[0].DishID)
	require.Equal(t, int64(1125), items[0].Price)
}

func TestCartClientWrapsFailuresAsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewHTTPCartClient(srv.URL)
	err := client.Clear(context.Background(), 7)
	require.ErrorIs(t, err, ErrUnavailable)

	srv.Close()
	err = client.Clear(context.Background(), 7)
	require.ErrorIs(t, err, ErrUnavailable)
}
