package models

import "time"

type Category struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"not null"`
	Slug       string    `json:"slug" gorm:"uniqueIndex;not null"`
	CoverImage string    `json:"cover_image"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Restaurant struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	Name          string     `json:"name" gorm:"not null"`
	Address       string     `json:"address"`
	CoverImage    string     `json:"cover_image"`
	OwnerID       uint       `json:"owner_id" gorm:"not null"`
	Owner         User       `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	CategoryID    *uint      `json:"category_id"`
	Category      *Category  `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Menu          []Dish     `json:"menu,omitempty" gorm:"foreignKey:RestaurantID"`
	IsPromoted    bool       `json:"is_promoted" gorm:"default:false"`
	PromotedUntil *time.Time `json:"promoted_until"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// DishChoice is one selectable value of a dish option, optionally carrying
// its own surcharge.
type DishChoice struct {
	Name  string  `json:"name"`
	Extra float64 `json:"extra,omitempty"`
}

// DishOption is a customization axis of a dish (e.g. "size"). It carries
// either a flat Extra or per-choice extras, never both.
type DishOption struct {
	Name    string       `json:"name"`
	Extra   float64      `json:"extra,omitempty"`
	Choices []DishChoice `json:"choices,omitempty"`
}

type Dish struct {
	ID           uint         `json:"id" gorm:"primaryKey"`
	RestaurantID uint         `json:"restaurant_id" gorm:"not null"`
	Name         string       `json:"name" gorm:"not null"`
	Price        float64      `json:"price" gorm:"not null"`
	Description  string       `json:"description"`
	Photo        string       `json:"photo"`
	Options      []DishOption `json:"options,omitempty" gorm:"serializer:json"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
