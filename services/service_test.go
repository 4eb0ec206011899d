package services

import (
	"testing"

	"food-order-api/config"
	"food-order-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB gives each test its own migrated in-memory database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) *models.User {
	t.Helper()
	user := models.User{Email: email, PasswordHash: "x", Role: role}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return &user
}

func seedRestaurant(t *testing.T, db *gorm.DB, owner *models.User, name string) *models.Restaurant {
	t.Helper()
	restaurant := models.Restaurant{Name: name, OwnerID: owner.ID}
	if err := db.Create(&restaurant).Error; err != nil {
		t.Fatalf("seed restaurant: %v", err)
	}
	return &restaurant
}

func seedDish(t *testing.T, db *gorm.DB, restaurant *models.Restaurant, name string, price float64, options []models.DishOption) *models.Dish {
	t.Helper()
	dish := models.Dish{RestaurantID: restaurant.ID, Name: name, Price: price, Options: options}
	if err := db.Create(&dish).Error; err != nil {
		t.Fatalf("seed dish: %v", err)
	}
	return &dish
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return n
}
