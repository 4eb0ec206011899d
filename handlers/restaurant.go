package handlers

import (
	"net/http"
	"strconv"

	"food-order-api/config"
	"food-order-api/middleware"
	"food-order-api/models"
	"food-order-api/services"

	"github.com/gin-gonic/gin"
)

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// CreateRestaurant lets an Owner create a restaurant
func CreateRestaurant(c *gin.Context) {
	owner := middleware.CurrentUser(c)

	var input services.RestaurantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	restaurant, err := services.CreateRestaurant(config.DB, owner, input)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, gin.H{"restaurant_id": restaurant.ID})
}

// EditRestaurant updates a restaurant the caller owns
func EditRestaurant(c *gin.Context) {
	owner := middleware.CurrentUser(c)
	id, valid := idParam(c)
	if !valid {
		return
	}

	var input services.RestaurantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	if err := services.EditRestaurant(config.DB, owner, id, input); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, nil)
}

// DeleteRestaurant removes a restaurant the caller owns
func DeleteRestaurant(c *gin.Context) {
	owner := middleware.CurrentUser(c)
	id, valid := idParam(c)
	if !valid {
		return
	}

	if err := services.DeleteRestaurant(config.DB, owner, id); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, nil)
}

// ListRestaurants returns a page of restaurants, promoted ones first. A
// query parameter narrows the page to restaurants whose name matches.
func ListRestaurants(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	var restaurants []models.Restaurant
	var total int64
	var err error
	if query := c.Query("query"); query != "" {
		restaurants, total, err = services.SearchRestaurants(config.DB, query, page)
	} else {
		restaurants, total, err = services.ListRestaurants(config.DB, page)
	}
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"restaurants": restaurants, "total": total, "page": page})
}

// GetRestaurant returns one restaurant with its menu
func GetRestaurant(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	restaurant, err := services.GetRestaurant(config.DB, id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"restaurant": restaurant})
}

// ListCategories returns all categories
func ListCategories(c *gin.Context) {
	categories, err := services.ListCategories(config.DB)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"categories": categories})
}

// CategoryBySlug returns one category with a page of its restaurants and
// its restaurant count
func CategoryBySlug(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	category, restaurants, total, err := services.CategoryBySlug(config.DB, c.Param("slug"), page)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{
		"category":    category,
		"restaurants": restaurants,
		"total":       total,
		"page":        page,
	})
}

// CreateDish adds a dish to a restaurant the caller owns
func CreateDish(c *gin.Context) {
	owner := middleware.CurrentUser(c)

	var input services.DishInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	dish, err := services.CreateDish(config.DB, owner, input)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, gin.H{"dish_id": dish.ID})
}

// EditDish updates a dish on a restaurant the caller owns
func EditDish(c *gin.Context) {
	owner := middleware.CurrentUser(c)
	id, valid := idParam(c)
	if !valid {
		return
	}

	var input services.DishInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	if err := services.EditDish(config.DB, owner, id, input); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, nil)
}

// DeleteDish removes a dish from a restaurant the caller owns
func DeleteDish(c *gin.Context) {
	owner := middleware.CurrentUser(c)
	id, valid := idParam(c)
	if !valid {
		return
	}

	if err := services.DeleteDish(config.DB, owner, id); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, nil)
}
