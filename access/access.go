// Package access decides whether a resolved identity may invoke an
// operation. Each endpoint declares a Requirement in the table below; the
// auth middleware evaluates it against the caller.
package access

import (
	"errors"

	"food-order-api/models"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("you are not allowed to do this")
)

// Requirement is what an endpoint demands of its caller: nothing (public),
// any authenticated user, or one of a list of roles.
type Requirement struct {
	public bool
	any    bool
	roles  []models.UserRole
}

func Public() Requirement { return Requirement{public: true} }

// Any admits every authenticated user regardless of role.
func Any() Requirement { return Requirement{any: true} }

func Roles(roles ...models.UserRole) Requirement { return Requirement{roles: roles} }

// Check evaluates the requirement against the resolved user (nil when the
// request carried no token, an undecodable token, or an unknown user id).
func Check(req Requirement, user *models.User) error {
	if req.public {
		return nil
	}
	if user == nil {
		return ErrUnauthenticated
	}
	if req.any {
		return nil
	}
	for _, r := range req.roles {
		if user.Role == r {
			return nil
		}
	}
	return ErrForbidden
}

// table maps operation names to their requirement. Every routed operation
// is listed, public ones included, so this table is the single source of
// truth; unknown names fall back to public.
var table = map[string]Requirement{
	"createAccount": Public(),
	"login":         Public(),
	"me":            Any(),
	"editProfile":   Any(),

	"restaurants":      Public(),
	"restaurant":       Public(),
	"allCategories":    Public(),
	"category":         Public(),
	"createRestaurant": Roles(models.RoleOwner),
	"editRestaurant":   Roles(models.RoleOwner),
	"deleteRestaurant": Roles(models.RoleOwner),
	"createDish":       Roles(models.RoleOwner),
	"editDish":         Roles(models.RoleOwner),
	"deleteDish":       Roles(models.RoleOwner),

	"createOrder": Roles(models.RoleClient),
	"getOrders":   Any(),
	"getOrder":    Any(),
	"editOrder":   Any(),
	"takeOrder":   Roles(models.RoleDelivery),

	"createPayment": Roles(models.RoleOwner),
	"getPayments":   Roles(models.RoleOwner),

	"pendingOrders": Roles(models.RoleOwner),
	"cookedOrders":  Roles(models.RoleDelivery),
	"orderUpdates":  Any(),
}

// For returns the declared requirement for an operation.
func For(operation string) Requirement {
	if req, ok := table[operation]; ok {
		return req
	}
	return Public()
}
