package handlers

import (
	"errors"
	"net/http"

	"food-storefront/middleware"
	"food-storefront/models"
	"food-storefront/services"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	Coordinator *services.CheckoutCoordinator
}

func NewCheckoutHandler(coordinator *services.CheckoutCoordinator) *CheckoutHandler {
	return &CheckoutHandler{Coordinator: coordinator}
}

type PlaceOrderRequest struct {
	Email           string `json:"email" binding:"required"`
	FullName        string `json:"full_name" binding:"required"`
	Telephone       string `json:"telephone" binding:"required"`
	DeliveryAddress string `json:"delivery_address"`
}

// PlaceOrder submits the current cart as an order
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contact := models.Contact{
		Email:           req.Email,
		FullName:        req.FullName,
		Telephone:       req.Telephone,
		DeliveryAddress: req.DeliveryAddress,
	}

	order, err := h.Coordinator.Submit(c.Request.Context(), userID, contact)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart),
			errors.Is(err, services.ErrNoRestaurantSelected),
			errors.Is(err, services.ErrInvalidContact):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			// Submission failed remotely; the cart is untouched and the
			// customer may retry.
			c.JSON(http.StatusBadGateway, gin.H{
				"error":     "Order submission failed, please try again",
				"retryable": true,
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// JustPlaced reports whether the customer's latest order should still show
// the success banner
func (h *CheckoutHandler) JustPlaced(c *gin.Context) {
	userID := middleware.GetUserID(c)

	order, ok := h.Coordinator.JustPlaced(userID)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"just_placed": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"just_placed": true, "order": order})
}
