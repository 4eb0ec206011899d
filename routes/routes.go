package routes

import (
	"food-order-api/events"
	"food-order-api/handlers"
	"food-order-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, hub *events.Hub) {
	api := r.Group("/api")
	{
		// Accounts
		api.POST("/users", middleware.Guard("createAccount"), handlers.CreateAccount)
		api.POST("/login", middleware.Guard("login"), handlers.Login)
		api.GET("/me", middleware.Guard("me"), handlers.Me)
		api.PUT("/me", middleware.Guard("editProfile"), handlers.EditProfile)

		// Catalog (public reads). The listing doubles as name search via
		// the query parameter.
		api.GET("/restaurants", middleware.Guard("restaurants"), handlers.ListRestaurants)
		api.GET("/restaurants/:id", middleware.Guard("restaurant"), handlers.GetRestaurant)
		api.GET("/categories", middleware.Guard("allCategories"), handlers.ListCategories)
		api.GET("/categories/:slug", middleware.Guard("category"), handlers.CategoryBySlug)

		// Catalog (owner writes)
		api.POST("/restaurants", middleware.Guard("createRestaurant"), handlers.CreateRestaurant)
		api.PUT("/restaurants/:id", middleware.Guard("editRestaurant"), handlers.EditRestaurant)
		api.DELETE("/restaurants/:id", middleware.Guard("deleteRestaurant"), handlers.DeleteRestaurant)
		api.POST("/dishes", middleware.Guard("createDish"), handlers.CreateDish)
		api.PUT("/dishes/:id", middleware.Guard("editDish"), handlers.EditDish)
		api.DELETE("/dishes/:id", middleware.Guard("deleteDish"), handlers.DeleteDish)

		// Orders
		api.POST("/orders", middleware.Guard("createOrder"), handlers.CreateOrder(hub))
		api.GET("/orders", middleware.Guard("getOrders"), handlers.GetOrders)
		api.GET("/orders/:id", middleware.Guard("getOrder"), handlers.GetOrder)
		api.PUT("/orders/:id", middleware.Guard("editOrder"), handlers.EditOrder(hub))
		api.PUT("/orders/:id/take", middleware.Guard("takeOrder"), handlers.TakeOrder(hub))

		// Payments
		api.POST("/payments", middleware.Guard("createPayment"), handlers.CreatePayment)
		api.GET("/payments", middleware.Guard("getPayments"), handlers.GetPayments)
	}

	// Order-lifecycle subscriptions. The token rides in the query string
	// since browsers can't set headers on websocket connects.
	ws := r.Group("/ws")
	{
		ws.GET("/orders/pending", middleware.Guard("pendingOrders"), handlers.PendingOrders(hub))
		ws.GET("/orders/cooked", middleware.Guard("cookedOrders"), handlers.CookedOrders(hub))
		ws.GET("/orders/:id/updates", middleware.Guard("orderUpdates"), handlers.OrderUpdates(hub))
	}
}
