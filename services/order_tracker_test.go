package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"food-storefront/clients"
	"food-storefront/models"
)

func newTestTracker(orders *fakeOrderService, restaurants *fakeRestaurantLookup) *OrderTracker {
	if restaurants == nil {
		restaurants = &fakeRestaurantLookup{names: map[uint]string{}}
	}
	return NewOrderTracker(orders, restaurants, discardLogger())
}

func orderPayload(id, restaurantID uint, status models.OrderStatus, createdAt *time.Time) clients.OrderPayload {
	return clients.OrderPayload{
		ID:           id,
		RestaurantID: restaurantID,
		Status:       string(status),
		CreatedAt:    createdAt,
	}
}

func TestRefreshListSortsNewestFirst(t *testing.T) {
	orders := newFakeOrderService()
	oldest := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	middle := oldest.Add(24 * time.Hour)
	newest := oldest.Add(48 * time.Hour)
	orders.put(orderPayload(1, 10, models.StatusDelivered, &oldest))
	orders.put(orderPayload(2, 10, models.StatusPreparing, &newest))
	orders.put(orderPayload(3, 10, models.StatusConfirmed, &middle))
	// No date at all: sorts as oldest.
	orders.put(orderPayload(4, 10, models.StatusPending, nil))

	tracker := newTestTracker(orders, nil)
	list, err := tracker.RefreshList(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, list, 4)
	require.Equal(t, uint(2), list[0].ID)
	require.Equal(t, uint(3), list[1].ID)
	require.Equal(t, uint(1), list[2].ID)
	require.Equal(t, uint(4), list[3].ID)
}

func TestRefreshListFallsBackToOrderDate(t *testing.T) {
	orders := newFakeOrderService()
	legacy := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)
	p := orderPayload(1, 10, models.StatusPending, nil)
	p.OrderDate = &legacy
	orders.put(p)

	tracker := newTestTracker(orders, nil)
	list, err := tracker.RefreshList(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, legacy, list[0].CreatedAt)
}

func TestRefreshListEnrichesRestaurantNames(t *testing.T) {
	orders := newFakeOrderService()
	now := time.Now()
	orders.put(orderPayload(1, 10, models.StatusPending, &now))
	orders.put(orderPayload(2, 20, models.StatusPending, &now))
	orders.put(orderPayload(3, 10, models.StatusPending, &now))

	restaurants := &fakeRestaurantLookup{names: map[uint]string{10: "Luigi's"}}
	tracker := newTestTracker(orders, restaurants)

	list, err := tracker.RefreshList(context.Background(), 7)
	require.NoError(t, err)

	byID := map[uint]models.Order{}
	for _, o := range list {
		byID[o.ID] = o
	}
	require.Equal(t, "Luigi's", byID[1].RestaurantName)
	require.Equal(t, "Luigi's", byID[3].RestaurantName)
	// Unknown restaurant degrades to a numbered placeholder.
	require.Equal(t, "Restaurant #20", byID[2].RestaurantName)
}

func TestRestaurantNameLookupIsMemoized(t *testing.T) {
	orders := newFakeOrderService()
	now := time.Now()
	orders.put(orderPayload(1, 10, models.StatusPending, &now))
	orders.put(orderPayload(2, 10, models.StatusPending, &now))

	restaurants := &fakeRestaurantLookup{names: map[uint]string{10: "Luigi's"}}
	tracker := newTestTracker(orders, restaurants)

	_, err := tracker.RefreshList(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 1, restaurants.calls)
}

func TestRefreshListFailureServesCachedList(t *testing.T) {
	orders := newFakeOrderService()
	now := time.Now()
	orders.put(orderPayload(1, 10, models.StatusPending, &now))

	tracker := newTestTracker(orders, nil)
	ctx := context.Background()

	first, err := tracker.RefreshList(ctx, 7)
	require.NoError(t, err)
	require.Len(t, first, 1)

	orders.listErr = errRemoteDown
	second, err := tracker.RefreshList(ctx, 7)
	require.Error(t, err)
	require.Len(t, second, 1)
	require.Equal(t, first[0].ID, second[0].ID)
}

func TestRefreshListAdminScopeListsAllOrders(t *testing.T) {
	orders := newFakeOrderService()
	now := time.Now()
	orders.put(orderPayload(1, 10, models.StatusPending, &now))

	tracker := newTestTracker(orders, nil)
	list, err := tracker.RefreshList(context.Background(), AdminScope)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, list, tracker.CachedList(AdminScope))
}

func TestGetDetailsCachesAndReportsFresh(t *testing.T) {
	orders := newFakeOrderService()
	now := time.Now()
	orders.put(orderPayload(5, 10, models.StatusConfirmed, &now))

	tracker := newTestTracker(orders, &fakeRestaurantLookup{names: map[uint]string{10: "Luigi's"}})
	order, stale, err := tracker.GetDetails(context.Background(), 7, 5)
	require.NoError(t, err)
	require.False(t, stale)
	require.Equal(t, models.StatusConfirmed, order.Status)
	require.Equal(t, "Luigi's", order.RestaurantName)

	status, ok := tracker.CurrentStatus(5)
	require.True(t, ok)
	require.Equal(t, models.StatusConfirmed, status)
}

func TestGetDetailsFallsBackToCachedSummary(t *testing.T) {
	orders := newFakeOrderService()
	now := time.Now()
	orders.put(orderPayload(5, 10, models.StatusConfirmed, &now))

	tracker := newTestTracker(orders, nil)
	ctx := context.Background()

	_, err := tracker.RefreshList(ctx, 7)
	require.NoError(t, err)

	orders.getErr = errRemoteDown
	order, stale, err := tracker.GetDetails(ctx, 7, 5)
	require.NoError(t, err)
	require.True(t, stale)
	require.Equal(t, uint(5), order.ID)
	require.Equal(t, models.StatusConfirmed, order.Status)
}

func TestGetDetailsUnknownOrder(t *testing.T) {
	orders := newFakeOrderService()
	orders.getErr = errRemoteDown

	tracker := newTestTracker(orders, nil)
	_, _, err := tracker.GetDetails(context.Background(), 7, 99)
	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestApplyStatusUpdatesEveryCachedCopy(t *testing.T) {
	orders := newFakeOrderService()
	now := time.Now()
	orders.put(orderPayload(5, 10, models.StatusPending, &now))

	tracker := newTestTracker(orders, nil)
	ctx := context.Background()

	_, err := tracker.RefreshList(ctx, AdminScope)
	require.NoError(t, err)
	_, err = tracker.RefreshList(ctx, 7)
	require.NoError(t, err)
	_, _, err = tracker.GetDetails(ctx, 7, 5)
	require.NoError(t, err)

	tracker.ApplyStatus(5, models.StatusConfirmed)

	require.Equal(t, models.StatusConfirmed, tracker.CachedList(AdminScope)[0].Status)
	require.Equal(t, models.StatusConfirmed, tracker.CachedList(7)[0].Status)
	status, ok := tracker.CurrentStatus(5)
	require.True(t, ok)
	require.Equal(t, models.StatusConfirmed, status)
}
