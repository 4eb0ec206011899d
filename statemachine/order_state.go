package statemachine

import (
	"food-order-api/models"
)

// editableBy lists the target statuses each role may set on an order.
// Clients may never edit status. The current status is deliberately not part
// of the rule: an Owner may set Cooked straight from Pending.
var editableBy = map[models.UserRole][]models.OrderStatus{
	models.RoleOwner:    {models.StatusCooking, models.StatusCooked},
	models.RoleDelivery: {models.StatusPickedUp, models.StatusDelivered},
}

type editKey struct {
	Role   models.UserRole
	Target models.OrderStatus
}

var editMap = func() map[editKey]bool {
	m := make(map[editKey]bool)
	for role, targets := range editableBy {
		for _, s := range targets {
			m[editKey{role, s}] = true
		}
	}
	return m
}()

// CanSetStatus reports whether a role is allowed to move an order to the
// target status.
func CanSetStatus(role models.UserRole, target models.OrderStatus) bool {
	return editMap[editKey{role, target}]
}

// EditableStatuses returns the statuses a role may set, for error messages.
func EditableStatuses(role models.UserRole) []models.OrderStatus {
	return editableBy[role]
}

// IsTerminal reports whether no further status edit is accepted.
func IsTerminal(status models.OrderStatus) bool {
	return status == models.StatusDelivered
}

// CanView reports whether a user may read (or edit) an order: a Client only
// where they are the customer, a Delivery user only where they are the
// driver, an Owner only where they own the order's restaurant. The order's
// Restaurant must be loaded for the Owner case.
func CanView(user *models.User, order *models.Order) bool {
	switch user.Role {
	case models.RoleClient:
		return order.CustomerID == user.ID
	case models.RoleDelivery:
		return order.DriverID != nil && *order.DriverID == user.ID
	case models.RoleOwner:
		return order.Restaurant.OwnerID == user.ID
	}
	return false
}
