package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"food-storefront/clients"
	"food-storefront/models"
)

var errRemoteDown = fmt.Errorf("%w: connection refused", clients.ErrUnavailable)

type fakeCartService struct {
	items   []clients.CartItemPayload
	failAll bool
	failGet bool
	calls   map[string]int
}

func newFakeCartService() *fakeCartService {
	return &fakeCartService{calls: map[string]int{}}
}

func (f *fakeCartService) Get(_ context.Context, _ uint) ([]clients.CartItemPayload, error) {
	f.calls["get"]++
	if f.failAll || f.failGet {
		return nil, errRemoteDown
	}
	return append([]clients.CartItemPayload(nil), f.items...), nil
}

func (f *fakeCartService) Add(_ context.Context, _ uint, item clients.CartItemPayload) error {
	f.calls["add"]++
	if f.failAll {
		return errRemoteDown
	}
	f.items = append(f.items, item)
	return nil
}

func (f *fakeCartService) UpdateQuantity(_ context.Context, _, dishID uint, quantity int) error {
	f.calls["update"]++
	if f.failAll {
		return errRemoteDown
	}
	for i := range f.items {
		if f.items[i].DishID == dishID {
			f.items[i].Quantity = quantity
		}
	}
	return nil
}

func (f *fakeCartService) Remove(_ context.Context, _, dishID uint) error {
	f.calls["remove"]++
	if f.failAll {
		return errRemoteDown
	}
	kept := f.items[:0]
	for _, it := range f.items {
		if it.DishID != dishID {
			kept = append(kept, it)
		}
	}
	f.items = kept
	return nil
}

func (f *fakeCartService) Clear(_ context.Context, _ uint) error {
	f.calls["clear"]++
	if f.failAll {
		return errRemoteDown
	}
	f.items = nil
	return nil
}

type fakeOrderService struct {
	nextID      uint
	orders      map[uint]clients.OrderPayload
	created     []clients.CreateOrderRequest
	createErr   error
	getErr      error
	listErr     error
	updateErr   error
	updateCalls int
}

func newFakeOrderService() *fakeOrderService {
	return &fakeOrderService{nextID: 100, orders: map[uint]clients.OrderPayload{}}
}

func (f *fakeOrderService) put(p clients.OrderPayload) {
	f.orders[p.ID] = p
}

func (f *fakeOrderService) Create(_ context.Context, _ uint, req clients.CreateOrderRequest) (clients.OrderPayload, error) {
	if f.createErr != nil {
		return clients.OrderPayload{}, f.createErr
	}
	f.created = append(f.created, req)
	f.nextID++
	now := time.Now()
	var total int64
	for _, it := range req.Items {
		total += it.Price * int64(it.Quantity)
	}
	p := clients.OrderPayload{
		ID:              f.nextID,
		RestaurantID:    req.RestaurantID,
		Status:          string(models.StatusPending),
		CustomerEmail:   req.CustomerEmail,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		DeliveryAddress: req.DeliveryAddress,
		PaymentMethod:   req.PaymentMethod,
		TotalPrice:      total,
		CreatedAt:       &now,
	}
	for _, it := range req.Items {
		p.Items = append(p.Items, it)
	}
	f.put(p)
	return p, nil
}

func (f *fakeOrderService) Get(_ context.Context, _, orderID uint) (clients.OrderPayload, error) {
	if f.getErr != nil {
		return clients.OrderPayload{}, f.getErr
	}
	p, ok := f.orders[orderID]
	if !ok {
		return clients.OrderPayload{}, errors.New("order not found")
	}
	return p, nil
}

func (f *fakeOrderService) List(_ context.Context, _ uint) ([]clients.OrderPayload, error) {
	return f.ListAll(nil)
}

func (f *fakeOrderService) ListAll(_ context.Context) ([]clients.OrderPayload, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []clients.OrderPayload
	for _, p := range f.orders {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeOrderService) UpdateStatus(_ context.Context, orderID uint, status models.OrderStatus) (clients.OrderPayload, error) {
	f.updateCalls++
	if f.updateErr != nil {
		return clients.OrderPayload{}, f.updateErr
	}
	p, ok := f.orders[orderID]
	if !ok {
		return clients.OrderPayload{}, errors.New("order not found")
	}
	p.Status = string(status)
	f.put(p)
	return p, nil
}

type fakeRestaurantLookup struct {
	names map[uint]string
	fail  bool
	calls int
}

func (f *fakeRestaurantLookup) GetByID(_ context.Context, id uint) (models.Restaurant, error) {
	f.calls++
	if f.fail {
		return models.Restaurant{}, errRemoteDown
	}
	name, ok := f.names[id]
	if !ok {
		return models.Restaurant{}, errors.New("restaurant not found")
	}
	return models.Restaurant{ID: id, Name: name}, nil
}
