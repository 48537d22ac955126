package handlers

import (
	"net/http"
	"strconv"

	"food-storefront/clients"
	"food-storefront/models"
	"food-storefront/statemachine"

	"github.com/gin-gonic/gin"
)

type PublicHandler struct {
	Restaurants clients.RestaurantLookup
}

func NewPublicHandler(restaurants clients.RestaurantLookup) *PublicHandler {
	return &PublicHandler{Restaurants: restaurants}
}

// GetRestaurant proxies the restaurant lookup for display enrichment
func (h *PublicHandler) GetRestaurant(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid restaurant id"})
		return
	}

	restaurant, err := h.Restaurants.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// GetStateMachineInfo documents the order lifecycle; also serves the admin
// UI's status dropdown
func (h *PublicHandler) GetStateMachineInfo(c *gin.Context) {
	transitions := []gin.H{}
	for _, t := range statemachine.GetAllTransitions() {
		transitions = append(transitions, gin.H{"from": t.From, "to": t.To})
	}

	nextStates := gin.H{}
	for _, s := range models.AllStatuses {
		nextStates[string(s)] = statemachine.ValidTransitionsFrom(s)
	}

	c.JSON(http.StatusOK, gin.H{
		"statuses":    models.AllStatuses,
		"initial":     models.StatusPending,
		"terminal":    []models.OrderStatus{models.StatusDelivered, models.StatusCancelled},
		"transitions": transitions,
		"next_states": nextStates,
	})
}
