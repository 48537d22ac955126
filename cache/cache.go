// Package cache holds the durable local cart snapshot: the fallback the
// storefront renders from whenever the remote cart is unreachable. Writes
// are whole-snapshot, last-write-wins; there is exactly one writer per
// customer session.
package cache

import (
	"context"

	"food-storefront/models"
)

// CartCache persists one cart snapshot per customer.
type CartCache interface {
	// Load returns the last saved snapshot, or an empty session when none
	// exists.
	Load(ctx context.Context, userID uint) (models.CartSession, error)
	// Save replaces the stored snapshot.
	Save(ctx context.Context, userID uint, session models.CartSession) error
	// Clear drops the stored snapshot.
	Clear(ctx context.Context, userID uint) error
}
