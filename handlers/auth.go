package handlers

import (
	"net/http"

	"food-order-api/config"
	"food-order-api/middleware"
	"food-order-api/models"
	"food-order-api/services"

	"github.com/gin-gonic/gin"
)

type CreateAccountRequest struct {
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=6"`
	Role     models.UserRole `json:"role" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateAccount registers a new user
func CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := services.CreateAccount(config.DB, req.Email, req.Password, req.Role)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, gin.H{"user_id": user.ID})
}

// Login authenticates a user and returns a signed token
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := services.Login(config.DB, req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	token, err := middleware.GenerateToken(user)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"token": token})
}

// Me returns the authenticated caller's profile
func Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	ok(c, http.StatusOK, gin.H{"user": user})
}

type EditProfileRequest struct {
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"omitempty,min=6"`
}

// EditProfile updates the caller's email and/or password
func EditProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req EditProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := services.EditProfile(config.DB, user, req.Email, req.Password); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, nil)
}
