package models

import "time"

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleClient   UserRole = "Client"
	RoleOwner    UserRole = "Owner"
	RoleDelivery UserRole = "Delivery"
)

// ValidRole reports whether r is one of the known roles
func ValidRole(r UserRole) bool {
	switch r {
	case RoleClient, RoleOwner, RoleDelivery:
		return true
	}
	return false
}

type User struct {
	ID           uint         `json:"id" gorm:"primaryKey"`
	Email        string       `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string       `json:"-" gorm:"not null"`
	Role         UserRole     `json:"role" gorm:"not null"`
	Verified     bool         `json:"verified" gorm:"default:false"`
	Restaurants  []Restaurant `json:"restaurants,omitempty" gorm:"foreignKey:OwnerID"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
