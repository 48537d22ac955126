package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"food-storefront/middleware"
	"food-storefront/models"
	"food-storefront/services"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	Store *services.CartStore
}

func NewCartHandler(store *services.CartStore) *CartHandler {
	return &CartHandler{Store: store}
}

// GetCart loads the cart: remote first, durable local snapshot on failure
func (h *CartHandler) GetCart(c *gin.Context) {
	userID := middleware.GetUserID(c)

	session, err := h.Store.Load(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant_id": session.RestaurantID,
		"items":         session.Items,
		"total_price":   session.TotalPrice(),
	})
}

type AddToCartRequest struct {
	RestaurantID uint        `json:"restaurant_id" binding:"required"`
	Dish         models.Dish `json:"dish" binding:"required"`
}

// AddToCart puts one more of the dish into the customer's cart
func (h *CartHandler) AddToCart(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.Store.Add(c.Request.Context(), userID, req.Dish, req.RestaurantID)
	if err != nil {
		if errors.Is(err, services.ErrRestaurantMismatch) {
			// The client must confirm clearing the cart before retrying.
			c.JSON(http.StatusConflict, gin.H{
				"error":                 "Cart contains items from another restaurant",
				"current_restaurant_id": session.RestaurantID,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":       session.Items,
		"total_price": session.TotalPrice(),
	})
}

// UpdateCartItem replaces a line item's quantity; zero or less removes it
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	userID := middleware.GetUserID(c)

	dishID, err := strconv.ParseUint(c.Param("dishId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dish id"})
		return
	}
	quantity, err := strconv.Atoi(c.DefaultQuery("quantity", "1"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
		return
	}

	session, err := h.Store.UpdateQuantity(c.Request.Context(), userID, uint(dishID), quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":       session.Items,
		"total_price": session.TotalPrice(),
	})
}

// RemoveFromCart deletes a line item
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	userID := middleware.GetUserID(c)

	dishID, err := strconv.ParseUint(c.Param("dishId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dish id"})
		return
	}

	session, err := h.Store.Remove(c.Request.Context(), userID, uint(dishID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove from cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":       session.Items,
		"total_price": session.TotalPrice(),
	})
}

// ClearCart empties the cart; always succeeds locally
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID := middleware.GetUserID(c)

	session := h.Store.Clear(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{
		"message":     "Cart cleared",
		"items":       session.Items,
		"total_price": session.TotalPrice(),
	})
}
