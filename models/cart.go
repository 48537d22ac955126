package models

import "math"

// CartLineItem is one dish/quantity pairing within a cart. UnitPrice is
// captured at add-time in minor currency units so later catalog edits and
// float arithmetic cannot drift the total.
type CartLineItem struct {
	DishID          uint   `json:"dish_id" gorm:"primaryKey;autoIncrement:false"`
	OwnerID         uint   `json:"-" gorm:"primaryKey;autoIncrement:false"`
	DishName        string `json:"dish_name"`
	DishDescription string `json:"dish_description"`
	Quantity        int    `json:"quantity" gorm:"not null"`
	UnitPrice       int64  `json:"unit_price" gorm:"not null"`
	RestaurantID    uint   `json:"restaurant_id" gorm:"not null"`
	Position        int    `json:"-"`
}

// Subtotal returns quantity × unit price in minor units.
func (i CartLineItem) Subtotal() int64 {
	return int64(i.Quantity) * i.UnitPrice
}

// CartSession is the customer's in-progress selection: an ordered set of
// line items bound to a single restaurant. RestaurantID is zero while the
// session is empty.
type CartSession struct {
	RestaurantID uint           `json:"restaurant_id"`
	Items        []CartLineItem `json:"items"`
}

// Find returns the line item for dishID and whether it exists.
func (s *CartSession) Find(dishID uint) (*CartLineItem, bool) {
	for i := range s.Items {
		if s.Items[i].DishID == dishID {
			return &s.Items[i], true
		}
	}
	return nil, false
}

// Remove deletes the line item for dishID. When the session becomes empty
// the restaurant binding is cleared.
func (s *CartSession) Remove(dishID uint) {
	kept := s.Items[:0]
	for _, it := range s.Items {
		if it.DishID != dishID {
			kept = append(kept, it)
		}
	}
	s.Items = kept
	if len(s.Items) == 0 {
		s.RestaurantID = 0
	}
}

// Clear empties the session and unbinds the restaurant.
func (s *CartSession) Clear() {
	s.Items = nil
	s.RestaurantID = 0
}

// IsEmpty reports whether the session holds no line items.
func (s *CartSession) IsEmpty() bool {
	return len(s.Items) == 0
}

// TotalPrice sums quantity × unit price over all line items, in minor units.
func (s *CartSession) TotalPrice() int64 {
	var total int64
	for _, it := range s.Items {
		total += it.Subtotal()
	}
	return total
}

// Clone returns a deep copy so callers can hold a snapshot without racing
// later mutations.
func (s *CartSession) Clone() CartSession {
	out := CartSession{RestaurantID: s.RestaurantID}
	out.Items = append([]CartLineItem(nil), s.Items...)
	return out
}

// ToMinorUnits converts a display-currency price from the catalog into
// integer minor units (e.g. 4.99 → 499).
func ToMinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}
