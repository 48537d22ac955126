package routes

import (
	"food-storefront/handlers"
	"food-storefront/middleware"
	"food-storefront/models"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything SetupRoutes wires up.
type Handlers struct {
	Cart     *handlers.CartHandler
	Checkout *handlers.CheckoutHandler
	Orders   *handlers.OrderHandler
	Admin    *handlers.AdminHandler
	Public   *handlers.PublicHandler
}

func SetupRoutes(r *gin.Engine, h Handlers) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.GET("/restaurants/:id", h.Public.GetRestaurant)
		public.GET("/state-machine", h.Public.GetStateMachineInfo)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api")
	customer.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleCustomer, models.RoleAdmin))
	{
		customer.GET("/cart", h.Cart.GetCart)
		customer.POST("/cart/add", h.Cart.AddToCart)
		customer.PUT("/cart/update/:dishId", h.Cart.UpdateCartItem)
		customer.DELETE("/cart/remove/:dishId", h.Cart.RemoveFromCart)
		customer.DELETE("/cart/clear", h.Cart.ClearCart)

		customer.POST("/orders/place", h.Checkout.PlaceOrder)
		customer.GET("/orders/just-placed", h.Checkout.JustPlaced)
		customer.GET("/orders", h.Orders.GetMyOrders)
		customer.GET("/orders/:id", h.Orders.GetOrderDetail)
		customer.PUT("/orders/:id/cancel", h.Orders.CancelOrder)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/orders", h.Admin.AdminGetAllOrders)
		admin.PUT("/orders/:id/status", h.Admin.AdminUpdateOrderStatus)
		admin.PUT("/orders/:id/cancel", h.Admin.AdminCancelOrder)
	}
}
