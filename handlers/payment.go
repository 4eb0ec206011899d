package handlers

import (
	"net/http"

	"food-order-api/config"
	"food-order-api/middleware"
	"food-order-api/services"

	"github.com/gin-gonic/gin"
)

type CreatePaymentRequest struct {
	TransactionID string `json:"transaction_id" binding:"required"`
	RestaurantID  uint   `json:"restaurant_id" binding:"required"`
}

// CreatePayment records a promotion purchase for a restaurant the caller
// owns and starts its promotion window
func CreatePayment(c *gin.Context) {
	owner := middleware.CurrentUser(c)

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	payment, err := services.CreatePayment(config.DB, owner, req.TransactionID, req.RestaurantID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, gin.H{"payment_id": payment.ID})
}

// GetPayments lists the caller's payments
func GetPayments(c *gin.Context) {
	user := middleware.CurrentUser(c)

	payments, err := services.GetPayments(config.DB, user)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"payments": payments})
}
