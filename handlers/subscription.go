package handlers

import (
	"log"
	"net/http"

	"food-order-api/config"
	"food-order-api/events"
	"food-order-api/middleware"
	"food-order-api/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// pump upgrades the connection and forwards hub events as JSON frames until
// the peer disconnects. Disconnected subscribers are removed; nothing
// back-pressures the publisher.
func pump(c *gin.Context, hub *events.Hub, topic events.Topic, filter events.Filter) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("ws upgrade error:", err)
		return
	}
	sub := hub.Subscribe(topic, filter)

	// reader: only to notice the peer closing
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				hub.Unsubscribe(sub)
				return
			}
		}
	}()

	for order := range sub.C {
		if err := conn.WriteJSON(gin.H{"topic": topic, "order": order}); err != nil {
			hub.Unsubscribe(sub)
			break
		}
	}
	conn.Close()
}

// PendingOrders streams new pending orders of the calling Owner's restaurants
func PendingOrders(hub *events.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := middleware.CurrentUser(c)
		pump(c, hub, events.TopicPendingOrders, events.PendingOrdersFilter(owner.ID))
	}
}

// CookedOrders streams cooked orders to the delivery pool
func CookedOrders(hub *events.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		pump(c, hub, events.TopicCookedOrders, nil)
	}
}

// OrderUpdates streams updates of one order to its customer, driver, or
// restaurant owner
func OrderUpdates(hub *events.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		id, valid := idParam(c)
		if !valid {
			return
		}

		// the subscriber must be allowed to see the order at all
		var order models.Order
		if err := config.DB.Preload("Restaurant").First(&order, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "order not found"})
			return
		}
		filter := events.OrderUpdatesFilter(user, id)
		if !filter(&order) {
			c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "you can't watch this order"})
			return
		}
		pump(c, hub, events.TopicOrderUpdates, filter)
	}
}
