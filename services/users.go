package services

import (
	"errors"

	"food-order-api/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// HashPassword is applied explicitly before every write that sets a
// password; there is no save hook.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// CreateAccount registers a new user. The email must be unused.
func CreateAccount(db *gorm.DB, email, password string, role models.UserRole) (*models.User, error) {
	if !models.ValidRole(role) {
		return nil, Invalid("role must be Client, Owner or Delivery")
	}

	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, Conflict("there is a user with that email already")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{Email: email, PasswordHash: hash, Role: role}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Login verifies the credentials and returns the user. Unknown email and
// wrong password yield the same error.
func Login(db *gorm.DB, email, password string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, Unauthenticated("wrong email or password")
	}
	if !CheckPassword(user.PasswordHash, password) {
		return nil, Unauthenticated("wrong email or password")
	}
	return &user, nil
}

// Profile looks a user up by id.
func Profile(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return nil, NotFound("user not found")
	}
	return &user, nil
}

// EditProfile updates the caller's email and/or password. Empty fields are
// left untouched. The new email must not belong to another user.
func EditProfile(db *gorm.DB, user *models.User, email, password string) error {
	if email != "" && email != user.Email {
		var existing models.User
		if err := db.Where("email = ? AND id <> ?", email, user.ID).First(&existing).Error; err == nil {
			return Conflict("there is a user with that email already")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		user.Email = email
		user.Verified = false
	}
	if password != "" {
		hash, err := HashPassword(password)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
	}
	return db.Save(user).Error
}
