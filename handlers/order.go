package handlers

import (
	"net/http"

	"food-order-api/config"
	"food-order-api/events"
	"food-order-api/middleware"
	"food-order-api/models"
	"food-order-api/services"

	"github.com/gin-gonic/gin"
)

// CreateOrder places a new order (Client only)
func CreateOrder(hub *events.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer := middleware.CurrentUser(c)

		var input services.CreateOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			badRequest(c, err)
			return
		}

		order, err := services.CreateOrder(config.DB, hub, customer, input)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, http.StatusCreated, gin.H{"order_id": order.ID, "total_price": order.TotalPrice})
	}
}

// GetOrders lists the caller's orders, optionally filtered by status
func GetOrders(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var status *models.OrderStatus
	if s := c.Query("status"); s != "" {
		st := models.OrderStatus(s)
		if !models.ValidOrderStatus(st) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "unknown order status"})
			return
		}
		status = &st
	}

	orders, err := services.GetOrders(config.DB, user, status)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

// GetOrder returns one order, subject to the view rule
func GetOrder(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id, valid := idParam(c)
	if !valid {
		return
	}

	order, err := services.GetOrder(config.DB, user, id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"order": order})
}

type EditOrderRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// EditOrder applies a role-gated status edit
func EditOrder(hub *events.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		id, valid := idParam(c)
		if !valid {
			return
		}

		var req EditOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		order, err := services.EditOrderStatus(config.DB, hub, user, id, req.Status)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, http.StatusOK, gin.H{"order_id": order.ID, "status": order.Status})
	}
}

// TakeOrder assigns the calling Delivery user as the order's driver
func TakeOrder(hub *events.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		driver := middleware.CurrentUser(c)
		id, valid := idParam(c)
		if !valid {
			return
		}

		order, err := services.TakeOrder(config.DB, hub, driver, id)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, http.StatusOK, gin.H{"order_id": order.ID})
	}
}
