package config

import (
	"log"
	"os"

	"food-order-api/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret used to sign tokens — read from env or fallback
var JWTSecret = []byte(getEnv("JWT_SECRET", "food_order_super_secret_2026"))

// Load reads the optional .env file and re-reads the JWT secret. Call once
// at startup before touching JWTSecret or opening the database.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}
	JWTSecret = []byte(getEnv("JWT_SECRET", "food_order_super_secret_2026"))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func InitDB() {
	var err error
	DB, err = gorm.Open(sqlite.Open(getEnv("DB_PATH", "food_order.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("database connected and migrated")
}

// Migrate runs the schema migration on db. Split out so tests can migrate
// in-memory databases.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Restaurant{},
		&models.Dish{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
	)
}
