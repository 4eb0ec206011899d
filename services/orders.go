package services

import (
	"food-order-api/events"
	"food-order-api/models"
	"food-order-api/statemachine"

	"gorm.io/gorm"
)

type OrderItemInput struct {
	DishID  uint                `json:"dish_id" binding:"required"`
	Options []models.ItemOption `json:"options"`
}

type CreateOrderInput struct {
	RestaurantID uint             `json:"restaurant_id" binding:"required"`
	Items        []OrderItemInput `json:"items" binding:"required,min=1"`
}

// ItemPrice computes the effective price of one line item against the dish's
// live option schema: base price plus, per selected option, either the
// option's flat extra or the matched choice's extra. Selections that no
// longer exist on the dish contribute nothing.
func ItemPrice(dish *models.Dish, selected []models.ItemOption) float64 {
	price := dish.Price
	for _, sel := range selected {
		for _, opt := range dish.Options {
			if opt.Name != sel.Name {
				continue
			}
			if opt.Extra > 0 {
				price += opt.Extra
				break
			}
			for _, choice := range opt.Choices {
				if choice.Name == sel.Choice {
					price += choice.Extra
					break
				}
			}
			break
		}
	}
	return price
}

// CreateOrder validates the request against the catalog, prices it, and
// persists the order with its items in one transaction. Any missing dish
// aborts the whole order before anything is written.
func CreateOrder(db *gorm.DB, hub *events.Hub, customer *models.User, input CreateOrderInput) (*models.Order, error) {
	var restaurant models.Restaurant
	if err := db.First(&restaurant, input.RestaurantID).Error; err != nil {
		return nil, NotFound("restaurant not found")
	}

	var items []models.OrderItem
	var total float64
	for _, reqItem := range input.Items {
		var dish models.Dish
		if err := db.Where("id = ? AND restaurant_id = ?", reqItem.DishID, restaurant.ID).
			First(&dish).Error; err != nil {
			return nil, NotFound("dish not found")
		}
		total += ItemPrice(&dish, reqItem.Options)
		items = append(items, models.OrderItem{DishID: dish.ID, Options: reqItem.Options})
	}

	order := models.Order{
		CustomerID:   customer.ID,
		RestaurantID: restaurant.ID,
		Status:       models.StatusPending,
		TotalPrice:   total,
		Items:        items,
	}
	if err := db.Create(&order).Error; err != nil {
		return nil, err
	}

	order.Restaurant = restaurant
	if hub != nil {
		hub.Publish(events.TopicPendingOrders, &order)
	}
	return &order, nil
}

// GetOrders returns the orders visible to the caller: a Client sees orders
// they placed, a Delivery user orders they drive, an Owner orders of the
// restaurants they own. Optionally filtered by status.
func GetOrders(db *gorm.DB, user *models.User, status *models.OrderStatus) ([]models.Order, error) {
	query := db.Preload("Items").Preload("Restaurant")
	switch user.Role {
	case models.RoleClient:
		query = query.Where("customer_id = ?", user.ID)
	case models.RoleDelivery:
		query = query.Where("driver_id = ?", user.ID)
	case models.RoleOwner:
		query = query.Where("restaurant_id IN (?)",
			db.Model(&models.Restaurant{}).Select("id").Where("owner_id = ?", user.ID))
	default:
		return nil, Forbidden("you are not allowed to do this")
	}
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	var orders []models.Order
	err := query.Order("created_at desc").Find(&orders).Error
	return orders, err
}

// GetOrder loads an order and enforces the view rule.
func GetOrder(db *gorm.DB, user *models.User, id uint) (*models.Order, error) {
	var order models.Order
	if err := db.Preload("Items.Dish").Preload("Restaurant").Preload("Customer").
		First(&order, id).Error; err != nil {
		return nil, NotFound("order not found")
	}
	if !statemachine.CanView(user, &order) {
		return nil, Forbidden("you can't see this order")
	}
	return &order, nil
}

// EditOrderStatus applies a role-gated status edit and publishes the
// resulting lifecycle events.
func EditOrderStatus(db *gorm.DB, hub *events.Hub, user *models.User, id uint, status models.OrderStatus) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, Invalid("unknown order status")
	}

	var order models.Order
	if err := db.Preload("Restaurant").First(&order, id).Error; err != nil {
		return nil, NotFound("order not found")
	}
	if !statemachine.CanView(user, &order) {
		return nil, Forbidden("you can't see this order")
	}
	if statemachine.IsTerminal(order.Status) {
		return nil, Conflict("this order is already delivered")
	}
	if !statemachine.CanSetStatus(user.Role, status) {
		return nil, Forbidden("you can't edit this order status")
	}

	if err := db.Model(&order).Update("status", status).Error; err != nil {
		return nil, err
	}
	order.Status = status

	if hub != nil {
		if status == models.StatusCooked {
			hub.Publish(events.TopicCookedOrders, &order)
		}
		hub.Publish(events.TopicOrderUpdates, &order)
	}
	return &order, nil
}

// TakeOrder assigns the calling Delivery user as the order's driver.
func TakeOrder(db *gorm.DB, hub *events.Hub, driver *models.User, id uint) (*models.Order, error) {
	var order models.Order
	if err := db.Preload("Restaurant").First(&order, id).Error; err != nil {
		return nil, NotFound("order not found")
	}
	if order.DriverID != nil {
		return nil, Conflict("this order already has a driver")
	}

	if err := db.Model(&order).Update("driver_id", driver.ID).Error; err != nil {
		return nil, err
	}
	order.DriverID = &driver.ID
	order.Driver = driver

	if hub != nil {
		hub.Publish(events.TopicOrderUpdates, &order)
	}
	return &order, nil
}
