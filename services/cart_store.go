package services

import (
	"context"
	"log/slog"
	"sync"

	"food-storefront/cache"
	"food-storefront/clients"
	"food-storefront/models"
)

// CartStore maintains one consistent CartSession per customer, mirrored
// between the durable local cache and the remote cart service. Local state
// is the source of truth for rendering: every mutation writes the durable
// cache synchronously and propagates to the remote cart best-effort, so a
// remote outage never blocks the customer.
type CartStore struct {
	mu       sync.Mutex
	sessions map[uint]*models.CartSession
	cache    cache.CartCache
	remote   clients.CartService
	logger   *slog.Logger
}

func NewCartStore(cartCache cache.CartCache, remote clients.CartService, logger *slog.Logger) *CartStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &CartStore{
		sessions: map[uint]*models.CartSession{},
		cache:    cartCache,
		remote:   remote,
		logger:   logger,
	}
}

// Load fetches the authoritative remote cart and replaces the local state
// with its normalized form. On any remote failure it falls back to the last
// durable snapshot; the operation itself never fails on remote errors.
func (s *CartStore) Load(ctx context.Context, userID uint) (models.CartSession, error) {
	remoteItems, err := s.remote.Get(ctx, userID)
	if err != nil {
		s.logger.Warn("remote cart fetch failed, falling back to local snapshot",
			"user_id", userID, "error", err)
		return s.loadFromCache(ctx, userID)
	}

	session := models.CartSession{}
	for _, it := range remoteItems {
		session.Items = append(session.Items, models.CartLineItem{
			DishID:          it.DishID,
			DishName:        it.DishName,
			DishDescription: it.DishDescription,
			Quantity:        it.Quantity,
			UnitPrice:       it.Price,
			RestaurantID:    it.RestaurantID,
		})
	}
	if len(session.Items) > 0 {
		session.RestaurantID = session.Items[0].RestaurantID
	}

	s.mu.Lock()
	s.sessions[userID] = &session
	s.mu.Unlock()
	s.persist(ctx, userID, &session)
	return session.Clone(), nil
}

func (s *CartStore) loadFromCache(ctx context.Context, userID uint) (models.CartSession, error) {
	cached, err := s.cache.Load(ctx, userID)
	if err != nil {
		s.logger.Error("durable cart cache read failed", "user_id", userID, "error", err)
		cached = models.CartSession{}
	}
	s.mu.Lock()
	s.sessions[userID] = &cached
	s.mu.Unlock()
	return cached.Clone(), nil
}

// session returns the in-memory session for the user, hydrating it from the
// durable cache on first touch so carts survive process restarts.
func (s *CartStore) session(ctx context.Context, userID uint) *models.CartSession {
	s.mu.Lock()
	if sess, ok := s.sessions[userID]; ok {
		s.mu.Unlock()
		return sess
	}
	s.mu.Unlock()

	cached, err := s.cache.Load(ctx, userID)
	if err != nil {
		s.logger.Error("durable cart cache read failed", "user_id", userID, "error", err)
		cached = models.CartSession{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[userID]; ok {
		return sess
	}
	s.sessions[userID] = &cached
	return &cached
}

// Get returns the current session snapshot without touching the remote cart.
func (s *CartStore) Get(ctx context.Context, userID uint) models.CartSession {
	return s.session(ctx, userID).Clone()
}

// TotalPrice sums quantity × unit price across the session, in minor units.
func (s *CartStore) TotalPrice(ctx context.Context, userID uint) int64 {
	return s.session(ctx, userID).TotalPrice()
}

// Add puts one more of the dish into the cart, capturing its price in minor
// units. Fails with ErrRestaurantMismatch when the session is non-empty and
// bound to a different restaurant.
func (s *CartStore) Add(ctx context.Context, userID uint, dish models.Dish, restaurantID uint) (models.CartSession, error) {
	sess := s.session(ctx, userID)

	if !sess.IsEmpty() && sess.RestaurantID != restaurantID {
		return sess.Clone(), ErrRestaurantMismatch
	}

	if existing, ok := sess.Find(dish.ID); ok {
		existing.Quantity++
		quantity := existing.Quantity
		s.persist(ctx, userID, sess)
		// The remote add endpoint increments; push the resulting quantity
		// instead so a lost earlier write cannot skew the remote copy.
		s.propagate(ctx, userID, "add", func() error {
			return s.remote.UpdateQuantity(ctx, userID, dish.ID, quantity)
		})
		return sess.Clone(), nil
	}

	sess.RestaurantID = restaurantID
	item := models.CartLineItem{
		DishID:          dish.ID,
		DishName:        dish.Name,
		DishDescription: dish.Description,
		Quantity:        1,
		UnitPrice:       models.ToMinorUnits(dish.Price),
		RestaurantID:    restaurantID,
	}
	sess.Items = append(sess.Items, item)

	s.persist(ctx, userID, sess)
	s.propagate(ctx, userID, "add", func() error {
		return s.remote.Add(ctx, userID, clients.CartItemPayload{
			DishID:          item.DishID,
			DishName:        item.DishName,
			DishDescription: item.DishDescription,
			Price:           item.UnitPrice,
			Quantity:        item.Quantity,
			RestaurantID:    item.RestaurantID,
		})
	})
	return sess.Clone(), nil
}

// UpdateQuantity replaces the line item's quantity. A quantity of zero or
// less removes the item.
func (s *CartStore) UpdateQuantity(ctx context.Context, userID, dishID uint, quantity int) (models.CartSession, error) {
	if quantity <= 0 {
		return s.Remove(ctx, userID, dishID)
	}

	sess := s.session(ctx, userID)
	item, ok := sess.Find(dishID)
	if !ok {
		return sess.Clone(), nil
	}
	item.Quantity = quantity

	s.persist(ctx, userID, sess)
	s.propagate(ctx, userID, "update", func() error {
		return s.remote.UpdateQuantity(ctx, userID, dishID, quantity)
	})
	return sess.Clone(), nil
}

// Remove deletes the line item; an emptied session loses its restaurant
// binding.
func (s *CartStore) Remove(ctx context.Context, userID, dishID uint) (models.CartSession, error) {
	sess := s.session(ctx, userID)
	sess.Remove(dishID)

	s.persist(ctx, userID, sess)
	s.propagate(ctx, userID, "remove", func() error {
		return s.remote.Remove(ctx, userID, dishID)
	})
	return sess.Clone(), nil
}

// Clear empties the session. It always succeeds locally, even when the
// remote clear call fails.
func (s *CartStore) Clear(ctx context.Context, userID uint) models.CartSession {
	sess := s.session(ctx, userID)
	sess.Clear()

	if err := s.cache.Clear(ctx, userID); err != nil {
		s.logger.Error("durable cart cache clear failed", "user_id", userID, "error", err)
	}
	s.propagate(ctx, userID, "clear", func() error {
		return s.remote.Clear(ctx, userID)
	})
	return sess.Clone()
}

// persist writes the durable snapshot. A cache failure degrades the fallback
// but must not fail the mutation: local in-memory state already changed.
func (s *CartStore) persist(ctx context.Context, userID uint, sess *models.CartSession) {
	if err := s.cache.Save(ctx, userID, *sess); err != nil {
		s.logger.Error("durable cart cache write failed", "user_id", userID, "error", err)
	}
}

// propagate pushes a mutation to the remote cart. Failures are logged, never
// surfaced: the remote copy exists for recovery and other devices, not for
// rendering.
func (s *CartStore) propagate(ctx context.Context, userID uint, op string, call func() error) {
	if err := call(); err != nil {
		s.logger.Warn("remote cart propagation failed",
			"user_id", userID, "op", op, "error", err)
	}
}
