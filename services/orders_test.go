package services

import (
	"testing"

	"food-order-api/events"
	"food-order-api/models"
)

func TestItemPrice(t *testing.T) {
	dish := &models.Dish{
		Price: 10,
		Options: []models.DishOption{
			{Name: "size", Choices: []models.DishChoice{
				{Name: "small"},
				{Name: "large", Extra: 3},
			}},
			{Name: "spicy", Extra: 1.5},
		},
	}

	tests := []struct {
		name     string
		selected []models.ItemOption
		want     float64
	}{
		{"no options", nil, 10},
		{"free choice", []models.ItemOption{{Name: "size", Choice: "small"}}, 10},
		{"priced choice", []models.ItemOption{{Name: "size", Choice: "large"}}, 13},
		{"flat extra", []models.ItemOption{{Name: "spicy"}}, 11.5},
		{"both", []models.ItemOption{{Name: "size", Choice: "large"}, {Name: "spicy"}}, 14.5},
		{"unknown option ignored", []models.ItemOption{{Name: "topping", Choice: "cheese"}}, 10},
		{"unknown choice ignored", []models.ItemOption{{Name: "size", Choice: "mega"}}, 10},
	}
	for _, tt := range tests {
		if got := ItemPrice(dish, tt.selected); got != tt.want {
			t.Errorf("%s: ItemPrice = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCreateOrderMissingRestaurant(t *testing.T) {
	db := openTestDB(t)
	client := seedUser(t, db, "c@a.com", models.RoleClient)

	_, err := CreateOrder(db, nil, client, CreateOrderInput{
		RestaurantID: 5,
		Items:        []OrderItemInput{{DishID: 99}},
	})
	if se, ok := err.(*Error); !ok || se.Code != 404 {
		t.Fatalf("want NotFound, got %v", err)
	}
	if n := countRows(t, db, &models.Order{}); n != 0 {
		t.Errorf("order rows = %d, want 0", n)
	}
	if n := countRows(t, db, &models.OrderItem{}); n != 0 {
		t.Errorf("order item rows = %d, want 0", n)
	}
}

func TestCreateOrderMissingDishAborts(t *testing.T) {
	db := openTestDB(t)
	client := seedUser(t, db, "c@a.com", models.RoleClient)
	owner := seedUser(t, db, "o@a.com", models.RoleOwner)
	restaurant := seedRestaurant(t, db, owner, "Pasta Place")
	d1 := seedDish(t, db, restaurant, "carbonara", 9, nil)
	d3 := seedDish(t, db, restaurant, "pesto", 8, nil)

	// item 2 of 3 references a missing dish: nothing may be persisted
	_, err := CreateOrder(db, nil, client, CreateOrderInput{
		RestaurantID: restaurant.ID,
		Items: []OrderItemInput{
			{DishID: d1.ID},
			{DishID: 999},
			{DishID: d3.ID},
		},
	})
	if se, ok := err.(*Error); !ok || se.Code != 404 {
		t.Fatalf("want NotFound, got %v", err)
	}
	if n := countRows(t, db, &models.Order{}); n != 0 {
		t.Errorf("order rows = %d, want 0", n)
	}
	if n := countRows(t, db, &models.OrderItem{}); n != 0 {
		t.Errorf("order item rows = %d, want 0", n)
	}
}

func TestCreateOrderDishFromOtherRestaurant(t *testing.T) {
	db := openTestDB(t)
	client := seedUser(t, db, "c@a.com", models.RoleClient)
	owner := seedUser(t, db, "o@a.com", models.RoleOwner)
	r1 := seedRestaurant(t, db, owner, "One")
	r2 := seedRestaurant(t, db, owner, "Two")
	foreign := seedDish(t, db, r2, "sushi", 12, nil)

	_, err := CreateOrder(db, nil, client, CreateOrderInput{
		RestaurantID: r1.ID,
		Items:        []OrderItemInput{{DishID: foreign.ID}},
	})
	if se, ok := err.(*Error); !ok || se.Code != 404 {
		t.Fatalf("want NotFound, got %v", err)
	}
}

func TestCreateOrderTotalAndRepricing(t *testing.T) {
	db := openTestDB(t)
	client := seedUser(t, db, "c@a.com", models.RoleClient)
	owner := seedUser(t, db, "o@a.com", models.RoleOwner)
	restaurant := seedRestaurant(t, db, owner, "Burgers")
	dish := seedDish(t, db, restaurant, "burger", 10, []models.DishOption{
		{Name: "size", Choices: []models.DishChoice{{Name: "large", Extra: 3}}},
	})

	input := CreateOrderInput{
		RestaurantID: restaurant.ID,
		Items: []OrderItemInput{
			{DishID: dish.ID, Options: []models.ItemOption{{Name: "size", Choice: "large"}}},
			{DishID: dish.ID},
		},
	}
	first, err := CreateOrder(db, nil, client, input)
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if first.TotalPrice != 23 {
		t.Errorf("total = %v, want 23", first.TotalPrice)
	}
	if first.Status != models.StatusPending {
		t.Errorf("status = %s, want Pending", first.Status)
	}
	if n := countRows(t, db, &models.OrderItem{}); n != 2 {
		t.Errorf("order item rows = %d, want 2", n)
	}

	// raising the choice surcharge re-prices new orders only
	dish.Options = []models.DishOption{
		{Name: "size", Choices: []models.DishChoice{{Name: "large", Extra: 5}}},
	}
	if err := db.Save(dish).Error; err != nil {
		t.Fatalf("update dish: %v", err)
	}

	second, err := CreateOrder(db, nil, client, input)
	if err != nil {
		t.Fatalf("create second order: %v", err)
	}
	if second.TotalPrice != 25 {
		t.Errorf("second total = %v, want 25", second.TotalPrice)
	}

	var stored models.Order
	if err := db.First(&stored, first.ID).Error; err != nil {
		t.Fatalf("reload first order: %v", err)
	}
	if stored.TotalPrice != 23 {
		t.Errorf("stored total mutated to %v, want 23", stored.TotalPrice)
	}
}

func TestCreateOrderPublishesPendingEvent(t *testing.T) {
	db := openTestDB(t)
	hub := events.NewHub()
	client := seedUser(t, db, "c@a.com", models.RoleClient)
	owner := seedUser(t, db, "o@a.com", models.RoleOwner)
	restaurant := seedRestaurant(t, db, owner, "Tacos")
	dish := seedDish(t, db, restaurant, "taco", 4, nil)

	sub := hub.Subscribe(events.TopicPendingOrders, events.PendingOrdersFilter(owner.ID))
	defer hub.Unsubscribe(sub)

	order, err := CreateOrder(db, hub, client, CreateOrderInput{
		RestaurantID: restaurant.ID,
		Items:        []OrderItemInput{{DishID: dish.ID}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	select {
	case got := <-sub.C:
		if got.ID != order.ID {
			t.Errorf("event order id = %d, want %d", got.ID, order.ID)
		}
	default:
		t.Fatal("owner did not receive the pending-order event")
	}
}

func TestEditOrderStatus(t *testing.T) {
	db := openTestDB(t)
	client := seedUser(t, db, "c@a.com", models.RoleClient)
	owner := seedUser(t, db, "o@a.com", models.RoleOwner)
	driver := seedUser(t, db, "d@a.com", models.RoleDelivery)
	restaurant := seedRestaurant(t, db, owner, "Pizza")
	dish := seedDish(t, db, restaurant, "margherita", 7, nil)

	newOrder := func() *models.Order {
		order, err := CreateOrder(db, nil, client, CreateOrderInput{
			RestaurantID: restaurant.ID,
			Items:        []OrderItemInput{{DishID: dish.ID}},
		})
		if err != nil {
			t.Fatalf("create order: %v", err)
		}
		if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("driver_id", driver.ID).Error; err != nil {
			t.Fatalf("assign driver: %v", err)
		}
		return order
	}

	t.Run("client never edits", func(t *testing.T) {
		order := newOrder()
		for _, s := range []models.OrderStatus{
			models.StatusPending, models.StatusCooking, models.StatusCooked,
			models.StatusPickedUp, models.StatusDelivered,
		} {
			if _, err := EditOrderStatus(db, nil, client, order.ID, s); err == nil {
				t.Errorf("client set %s, want deny", s)
			}
		}
	})

	t.Run("owner matrix", func(t *testing.T) {
		order := newOrder()
		if _, err := EditOrderStatus(db, nil, owner, order.ID, models.StatusCooking); err != nil {
			t.Errorf("owner → Cooking: %v", err)
		}
		// no current-state precondition: Cooked is reachable from anywhere
		if _, err := EditOrderStatus(db, nil, owner, order.ID, models.StatusCooked); err != nil {
			t.Errorf("owner → Cooked: %v", err)
		}
		if _, err := EditOrderStatus(db, nil, owner, order.ID, models.StatusPickedUp); err == nil {
			t.Error("owner set PickedUp, want deny")
		}
		if _, err := EditOrderStatus(db, nil, owner, order.ID, models.StatusDelivered); err == nil {
			t.Error("owner set Delivered, want deny")
		}
	})

	t.Run("delivery matrix and terminal", func(t *testing.T) {
		order := newOrder()
		if _, err := EditOrderStatus(db, nil, driver, order.ID, models.StatusCooking); err == nil {
			t.Error("delivery set Cooking, want deny")
		}
		if _, err := EditOrderStatus(db, nil, driver, order.ID, models.StatusPickedUp); err != nil {
			t.Errorf("delivery → PickedUp: %v", err)
		}
		if _, err := EditOrderStatus(db, nil, driver, order.ID, models.StatusDelivered); err != nil {
			t.Errorf("delivery → Delivered: %v", err)
		}
		// Delivered is terminal
		if _, err := EditOrderStatus(db, nil, owner, order.ID, models.StatusCooking); err == nil {
			t.Error("edited a delivered order, want deny")
		}
	})

	t.Run("stranger owner denied", func(t *testing.T) {
		order := newOrder()
		other := seedUser(t, db, "o2@a.com", models.RoleOwner)
		if _, err := EditOrderStatus(db, nil, other, order.ID, models.StatusCooking); err == nil {
			t.Error("unrelated owner edited the order, want deny")
		}
	})
}

func TestEditOrderStatusPublishes(t *testing.T) {
	db := openTestDB(t)
	hub := events.NewHub()
	client := seedUser(t, db, "c@a.com", models.RoleClient)
	owner := seedUser(t, db, "o@a.com", models.RoleOwner)
	restaurant := seedRestaurant(t, db, owner, "Kebab")
	dish := seedDish(t, db, restaurant, "kebab", 6, nil)

	order, err := CreateOrder(db, hub, client, CreateOrderInput{
		RestaurantID: restaurant.ID,
		Items:        []OrderItemInput{{DishID: dish.ID}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	cooked := hub.Subscribe(events.TopicCookedOrders, nil)
	updates := hub.Subscribe(events.TopicOrderUpdates, events.OrderUpdatesFilter(client, order.ID))
	defer hub.Unsubscribe(cooked)
	defer hub.Unsubscribe(updates)

	if _, err := EditOrderStatus(db, hub, owner, order.ID, models.StatusCooked); err != nil {
		t.Fatalf("edit status: %v", err)
	}

	select {
	case got := <-cooked.C:
		if got.Status != models.StatusCooked {
			t.Errorf("cooked event status = %s", got.Status)
		}
	default:
		t.Error("delivery pool did not receive the cooked event")
	}
	select {
	case got := <-updates.C:
		if got.ID != order.ID {
			t.Errorf("update event order id = %d, want %d", got.ID, order.ID)
		}
	default:
		t.Error("customer did not receive the update event")
	}
}

func TestTakeOrder(t *testing.T) {
	db := openTestDB(t)
	client := seedUser(t, db, "c@a.com", models.RoleClient)
	owner := seedUser(t, db, "o@a.com", models.RoleOwner)
	driver := seedUser(t, db, "d@a.com", models.RoleDelivery)
	rival := seedUser(t, db, "d2@a.com", models.RoleDelivery)
	restaurant := seedRestaurant(t, db, owner, "Wok")
	dish := seedDish(t, db, restaurant, "noodles", 8, nil)

	order, err := CreateOrder(db, nil, client, CreateOrderInput{
		RestaurantID: restaurant.ID,
		Items:        []OrderItemInput{{DishID: dish.ID}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	taken, err := TakeOrder(db, nil, driver, order.ID)
	if err != nil {
		t.Fatalf("take order: %v", err)
	}
	if taken.DriverID == nil || *taken.DriverID != driver.ID {
		t.Errorf("driver id = %v, want %d", taken.DriverID, driver.ID)
	}

	if _, err := TakeOrder(db, nil, rival, order.ID); err == nil {
		t.Error("second driver took an assigned order, want deny")
	}
}

func TestGetOrdersVisibility(t *testing.T) {
	db := openTestDB(t)
	client := seedUser(t, db, "c@a.com", models.RoleClient)
	other := seedUser(t, db, "c2@a.com", models.RoleClient)
	owner := seedUser(t, db, "o@a.com", models.RoleOwner)
	stranger := seedUser(t, db, "o2@a.com", models.RoleOwner)
	driver := seedUser(t, db, "d@a.com", models.RoleDelivery)
	restaurant := seedRestaurant(t, db, owner, "Diner")
	dish := seedDish(t, db, restaurant, "pancakes", 5, nil)

	order, err := CreateOrder(db, nil, client, CreateOrderInput{
		RestaurantID: restaurant.ID,
		Items:        []OrderItemInput{{DishID: dish.ID}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if _, err := TakeOrder(db, nil, driver, order.ID); err != nil {
		t.Fatalf("take order: %v", err)
	}

	for _, tt := range []struct {
		name string
		user *models.User
		want int
	}{
		{"customer", client, 1},
		{"other client", other, 0},
		{"owner", owner, 1},
		{"other owner", stranger, 0},
		{"driver", driver, 1},
	} {
		orders, err := GetOrders(db, tt.user, nil)
		if err != nil {
			t.Fatalf("%s: get orders: %v", tt.name, err)
		}
		if len(orders) != tt.want {
			t.Errorf("%s: got %d orders, want %d", tt.name, len(orders), tt.want)
		}
	}

	// status filter
	pending := models.StatusPending
	cooked := models.StatusCooked
	if orders, _ := GetOrders(db, client, &pending); len(orders) != 1 {
		t.Errorf("pending filter: got %d, want 1", len(orders))
	}
	if orders, _ := GetOrders(db, client, &cooked); len(orders) != 0 {
		t.Errorf("cooked filter: got %d, want 0", len(orders))
	}

	// GetOrder applies the same view rule
	if _, err := GetOrder(db, other, order.ID); err == nil {
		t.Error("unrelated client read the order, want deny")
	}
	if _, err := GetOrder(db, client, order.ID); err != nil {
		t.Errorf("customer read denied: %v", err)
	}
}
