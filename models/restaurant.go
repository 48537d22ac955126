package models

// Restaurant is the display shape handed back by the restaurant lookup
// service. The core never mutates it and never relies on it for invariants.
type Restaurant struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Cuisine string `json:"cuisine"`
	Phone   string `json:"phone,omitempty"`
}

// Dish is the catalog payload a line item is captured from. Price is in
// display currency as the catalog hands it; it is converted to minor units
// the moment it enters a cart.
type Dish struct {
	ID           uint    `json:"id"`
	RestaurantID uint    `json:"restaurant_id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
}
