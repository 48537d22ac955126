package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"food-storefront/middleware"
	"food-storefront/services"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	Tracker *services.OrderTracker
	Mutator *services.AdminStatusMutator
}

func NewOrderHandler(tracker *services.OrderTracker, mutator *services.AdminStatusMutator) *OrderHandler {
	return &OrderHandler{Tracker: tracker, Mutator: mutator}
}

// GetMyOrders returns the customer's orders, newest first. A failed refresh
// serves the previously fetched list flagged as stale.
func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	userID := middleware.GetUserID(c)

	orders, err := h.Tracker.RefreshList(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"count":  len(orders),
			"orders": orders,
			"stale":  true,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrderDetail returns a single order, degrading to the cached summary
// when the order service is unreachable
func (h *OrderHandler) GetOrderDetail(c *gin.Context) {
	userID := middleware.GetUserID(c)

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	order, stale, err := h.Tracker.GetDetails(c.Request.Context(), userID, uint(orderID))
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order, "stale": stale})
}

// CancelOrder lets the customer cancel their own order before delivery. It
// goes through the same transition validation as the admin surface.
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	order, _, err := h.Tracker.GetDetails(c.Request.Context(), userID, uint(orderID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	cancelled, err := h.Mutator.Cancel(c.Request.Context(), order)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadyCancelled),
			errors.Is(err, services.ErrAlreadyDelivered),
			errors.Is(err, services.ErrInvalidTransition):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":          "Cannot cancel order",
				"reason":         err.Error(),
				"current_status": order.Status,
			})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to cancel order"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Order cancelled successfully",
		"order_id":       cancelled.ID,
		"current_status": cancelled.Status,
	})
}
