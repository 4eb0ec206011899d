package services

import (
	"errors"
	"strings"

	"food-order-api/models"

	"gorm.io/gorm"
)

const restaurantsPerPage = 25

// getOrCreateCategory resolves a category by its slug, creating it on first
// use. "Fast Food" and "fast  food " map to the same slug.
func getOrCreateCategory(db *gorm.DB, name string) (*models.Category, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	slug := strings.ReplaceAll(name, " ", "-")

	var category models.Category
	err := db.Where("slug = ?", slug).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		category = models.Category{Name: name, Slug: slug}
		err = db.Create(&category).Error
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

type RestaurantInput struct {
	Name         string `json:"name" binding:"required"`
	Address      string `json:"address"`
	CoverImage   string `json:"cover_image"`
	CategoryName string `json:"category_name"`
}

func CreateRestaurant(db *gorm.DB, owner *models.User, input RestaurantInput) (*models.Restaurant, error) {
	restaurant := models.Restaurant{
		Name:       input.Name,
		Address:    input.Address,
		CoverImage: input.CoverImage,
		OwnerID:    owner.ID,
	}
	if input.CategoryName != "" {
		category, err := getOrCreateCategory(db, input.CategoryName)
		if err != nil {
			return nil, err
		}
		restaurant.CategoryID = &category.ID
	}
	if err := db.Create(&restaurant).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// ownedRestaurant loads a restaurant and checks the caller owns it.
func ownedRestaurant(db *gorm.DB, owner *models.User, id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := db.First(&restaurant, id).Error; err != nil {
		return nil, NotFound("restaurant not found")
	}
	if restaurant.OwnerID != owner.ID {
		return nil, Forbidden("you don't own this restaurant")
	}
	return &restaurant, nil
}

func EditRestaurant(db *gorm.DB, owner *models.User, id uint, input RestaurantInput) error {
	restaurant, err := ownedRestaurant(db, owner, id)
	if err != nil {
		return err
	}
	if input.Name != "" {
		restaurant.Name = input.Name
	}
	if input.Address != "" {
		restaurant.Address = input.Address
	}
	if input.CoverImage != "" {
		restaurant.CoverImage = input.CoverImage
	}
	if input.CategoryName != "" {
		category, err := getOrCreateCategory(db, input.CategoryName)
		if err != nil {
			return err
		}
		restaurant.CategoryID = &category.ID
	}
	return db.Save(restaurant).Error
}

func DeleteRestaurant(db *gorm.DB, owner *models.User, id uint) error {
	restaurant, err := ownedRestaurant(db, owner, id)
	if err != nil {
		return err
	}
	return db.Select("Menu").Delete(restaurant).Error
}

// ListRestaurants returns a page of restaurants, promoted ones first.
func ListRestaurants(db *gorm.DB, page int) ([]models.Restaurant, int64, error) {
	if page < 1 {
		page = 1
	}
	var total int64
	if err := db.Model(&models.Restaurant{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var restaurants []models.Restaurant
	err := db.Preload("Category").
		Order("is_promoted desc, id asc").
		Limit(restaurantsPerPage).
		Offset((page - 1) * restaurantsPerPage).
		Find(&restaurants).Error
	return restaurants, total, err
}

// SearchRestaurants returns a page of restaurants whose name contains the
// query, with the total match count.
func SearchRestaurants(db *gorm.DB, query string, page int) ([]models.Restaurant, int64, error) {
	if page < 1 {
		page = 1
	}
	pattern := "%" + query + "%"
	var total int64
	if err := db.Model(&models.Restaurant{}).Where("name LIKE ?", pattern).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var restaurants []models.Restaurant
	err := db.Preload("Category").
		Where("name LIKE ?", pattern).
		Order("is_promoted desc, id asc").
		Limit(restaurantsPerPage).
		Offset((page - 1) * restaurantsPerPage).
		Find(&restaurants).Error
	return restaurants, total, err
}

func GetRestaurant(db *gorm.DB, id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := db.Preload("Menu").Preload("Category").First(&restaurant, id).Error; err != nil {
		return nil, NotFound("restaurant not found")
	}
	return &restaurant, nil
}

func ListCategories(db *gorm.DB) ([]models.Category, error) {
	var categories []models.Category
	err := db.Find(&categories).Error
	return categories, err
}

// CategoryBySlug resolves a category and returns a page of its restaurants
// plus the category's total restaurant count.
func CategoryBySlug(db *gorm.DB, slug string, page int) (*models.Category, []models.Restaurant, int64, error) {
	if page < 1 {
		page = 1
	}
	var category models.Category
	if err := db.Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, nil, 0, NotFound("category not found")
	}
	var total int64
	if err := db.Model(&models.Restaurant{}).Where("category_id = ?", category.ID).Count(&total).Error; err != nil {
		return nil, nil, 0, err
	}
	var restaurants []models.Restaurant
	err := db.Where("category_id = ?", category.ID).
		Order("is_promoted desc, id asc").
		Limit(restaurantsPerPage).
		Offset((page - 1) * restaurantsPerPage).
		Find(&restaurants).Error
	if err != nil {
		return nil, nil, 0, err
	}
	return &category, restaurants, total, nil
}

type DishInput struct {
	RestaurantID uint                `json:"restaurant_id"`
	Name         string              `json:"name"`
	Price        float64             `json:"price"`
	Description  string              `json:"description"`
	Photo        string              `json:"photo"`
	Options      []models.DishOption `json:"options"`
}

func CreateDish(db *gorm.DB, owner *models.User, input DishInput) (*models.Dish, error) {
	if _, err := ownedRestaurant(db, owner, input.RestaurantID); err != nil {
		return nil, err
	}
	dish := models.Dish{
		RestaurantID: input.RestaurantID,
		Name:         input.Name,
		Price:        input.Price,
		Description:  input.Description,
		Photo:        input.Photo,
		Options:      input.Options,
	}
	if err := db.Create(&dish).Error; err != nil {
		return nil, err
	}
	return &dish, nil
}

// ownedDish loads a dish and checks the caller owns its restaurant.
func ownedDish(db *gorm.DB, owner *models.User, id uint) (*models.Dish, error) {
	var dish models.Dish
	if err := db.First(&dish, id).Error; err != nil {
		return nil, NotFound("dish not found")
	}
	if _, err := ownedRestaurant(db, owner, dish.RestaurantID); err != nil {
		return nil, err
	}
	return &dish, nil
}

func EditDish(db *gorm.DB, owner *models.User, id uint, input DishInput) error {
	dish, err := ownedDish(db, owner, id)
	if err != nil {
		return err
	}
	if input.Name != "" {
		dish.Name = input.Name
	}
	if input.Price > 0 {
		dish.Price = input.Price
	}
	if input.Description != "" {
		dish.Description = input.Description
	}
	if input.Photo != "" {
		dish.Photo = input.Photo
	}
	if input.Options != nil {
		dish.Options = input.Options
	}
	return db.Save(dish).Error
}

func DeleteDish(db *gorm.DB, owner *models.User, id uint) error {
	dish, err := ownedDish(db, owner, id)
	if err != nil {
		return err
	}
	return db.Delete(dish).Error
}
