package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"food-storefront/models"
	"food-storefront/services"
	"food-storefront/statemachine"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	Tracker *services.OrderTracker
	Mutator *services.AdminStatusMutator
}

func NewAdminHandler(tracker *services.OrderTracker, mutator *services.AdminStatusMutator) *AdminHandler {
	return &AdminHandler{Tracker: tracker, Mutator: mutator}
}

// AdminGetAllOrders returns every order, newest first, optionally filtered
// by status
func (h *AdminHandler) AdminGetAllOrders(c *gin.Context) {
	orders, err := h.Tracker.RefreshList(c.Request.Context(), services.AdminScope)
	stale := err != nil

	if status := c.Query("status"); status != "" {
		filtered := orders[:0]
		for _, o := range orders {
			if o.Status == models.OrderStatus(status) {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}

	summary := map[string]int{}
	for _, o := range orders {
		summary[string(o.Status)]++
	}

	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary,
		"count":         len(orders),
		"orders":        orders,
		"stale":         stale,
	})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// AdminUpdateOrderStatus applies a validated state transition to an order
func (h *AdminHandler) AdminUpdateOrderStatus(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.Mutator.SetStatus(c.Request.Context(), uint(orderID), req.Status)
	if err != nil {
		var transitionErr *services.TransitionError
		if errors.As(err, &transitionErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":             "Invalid state transition",
				"current_status":    transitionErr.Current,
				"requested":         transitionErr.Requested,
				"reason":            transitionErr.Error(),
				"valid_next_states": statemachine.ValidTransitionsFrom(transitionErr.Current),
			})
			return
		}
		if errors.Is(err, services.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to update order status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Order status updated",
		"order_id":       order.ID,
		"current_status": order.Status,
	})
}

// AdminCancelOrder cancels an order unless it is already terminal
func (h *AdminHandler) AdminCancelOrder(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	order, stale, err := h.Tracker.GetDetails(c.Request.Context(), services.AdminScope, uint(orderID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if stale {
		c.Header("X-Stale-Data", "true")
	}

	cancelled, err := h.Mutator.Cancel(c.Request.Context(), order)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadyCancelled),
			errors.Is(err, services.ErrAlreadyDelivered):
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
