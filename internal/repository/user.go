package repository

import (
	"context"

	"github.com/LksLvnt/studymate/internal/database"
	"github.com/LksLvnt/studymate/internal/models"
)

func CreateUser(ctx context.Context, email, password string) (*models.User, error) {
	user := &models.User{Email: email}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	result := database.DB.WithContext(ctx).Create(user)
	return user, result.Error
}

func GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	result := database.DB.WithContext(ctx).First(&user, "email = ?", email)
	return &user, translate(result.Error)
}

func GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	result := database.DB.WithContext(ctx).First(&user, "id = ?", id)
	return &user, translate(result.Error)
}
