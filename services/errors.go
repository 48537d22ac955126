package services

import (
	"errors"
	"fmt"

	"food-storefront/models"
	"food-storefront/statemachine"
)

var (
	// ErrRestaurantMismatch signals an add for a different restaurant while
	// the cart is non-empty. The caller must confirm clearing first.
	ErrRestaurantMismatch = errors.New("cart is bound to another restaurant")
	// ErrEmptyCart rejects submission of a cart with no line items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrNoRestaurantSelected rejects submission without a bound restaurant.
	ErrNoRestaurantSelected = errors.New("no restaurant selected")
	// ErrInvalidContact wraps contact validation failures.
	ErrInvalidContact = errors.New("invalid contact information")
	// ErrAlreadyCancelled rejects cancelling a cancelled order.
	ErrAlreadyCancelled = errors.New("order is already cancelled")
	// ErrAlreadyDelivered rejects cancelling a delivered order.
	ErrAlreadyDelivered = errors.New("order is already delivered")
	// ErrInvalidTransition is the sentinel behind TransitionError.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrOrderNotFound signals neither the remote service nor the cached
	// list knows the order.
	ErrOrderNotFound = errors.New("order not found")
)

// TransitionError reports a rejected status change with enough detail to
// render a human-readable message.
type TransitionError struct {
	OrderID   uint
	Current   models.OrderStatus
	Requested models.OrderStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid transition for order %d: %s → %s is not allowed; valid transitions from %s are: %s",
		e.OrderID, e.Current, e.Requested, e.Current, statemachine.DescribeValidFrom(e.Current))
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
