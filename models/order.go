package models

import "time"

// OrderStatus represents all possible states of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusCooking   OrderStatus = "Cooking"
	StatusCooked    OrderStatus = "Cooked"
	StatusPickedUp  OrderStatus = "PickedUp"
	StatusDelivered OrderStatus = "Delivered"
)

// ValidOrderStatus reports whether s is one of the known statuses
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusCooking, StatusCooked, StatusPickedUp, StatusDelivered:
		return true
	}
	return false
}

type Order struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	CustomerID   uint        `json:"customer_id" gorm:"not null"`
	Customer     User        `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	DriverID     *uint       `json:"driver_id"`
	Driver       *User       `json:"driver,omitempty" gorm:"foreignKey:DriverID"`
	RestaurantID uint        `json:"restaurant_id" gorm:"not null"`
	Restaurant   Restaurant  `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	Items        []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	TotalPrice   float64     `json:"total_price"`
	Status       OrderStatus `json:"status" gorm:"not null;default:'Pending'"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// ItemOption is a customer's selection for one dish option. Only names are
// stored; the price is recomputed from the dish's live option schema.
type ItemOption struct {
	Name   string `json:"name"`
	Choice string `json:"choice,omitempty"`
}

type OrderItem struct {
	ID      uint         `json:"id" gorm:"primaryKey"`
	OrderID uint         `json:"order_id" gorm:"not null"`
	DishID  uint         `json:"dish_id" gorm:"not null"`
	Dish    Dish         `json:"dish,omitempty" gorm:"foreignKey:DishID"`
	Options []ItemOption `json:"options,omitempty" gorm:"serializer:json"`
}
