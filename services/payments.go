package services

import (
	"context"
	"log"
	"time"

	"food-order-api/models"

	"gorm.io/gorm"
)

// PromotionDays is how long one payment promotes a restaurant.
const PromotionDays = 7

// CreatePayment records a promotion purchase and starts the restaurant's
// 7-day promotion window.
func CreatePayment(db *gorm.DB, owner *models.User, transactionID string, restaurantID uint) (*models.Payment, error) {
	restaurant, err := ownedRestaurant(db, owner, restaurantID)
	if err != nil {
		return nil, err
	}

	payment := models.Payment{
		TransactionID: transactionID,
		UserID:        owner.ID,
		RestaurantID:  restaurant.ID,
	}
	if err := db.Create(&payment).Error; err != nil {
		return nil, err
	}

	until := time.Now().AddDate(0, 0, PromotionDays)
	restaurant.IsPromoted = true
	restaurant.PromotedUntil = &until
	if err := db.Save(restaurant).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func GetPayments(db *gorm.DB, user *models.User) ([]models.Payment, error) {
	var payments []models.Payment
	err := db.Where("user_id = ?", user.ID).Find(&payments).Error
	return payments, err
}

// ExpirePromotions clears the promoted flag of restaurants whose window has
// passed. Returns how many were demoted.
func ExpirePromotions(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Model(&models.Restaurant{}).
		Where("is_promoted = ? AND promoted_until < ?", true, now).
		Updates(map[string]interface{}{"is_promoted": false, "promoted_until": nil})
	return result.RowsAffected, result.Error
}

// RunPromotionSweeper expires promotions on every tick until ctx is done.
func RunPromotionSweeper(ctx context.Context, db *gorm.DB, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n, err := ExpirePromotions(db, now); err != nil {
				log.Println("promotion sweep failed:", err)
			} else if n > 0 {
				log.Printf("promotion sweep: %d restaurant(s) demoted", n)
			}
		}
	}
}
