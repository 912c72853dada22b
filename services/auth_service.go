package services

import (
    "errors"

    "backend/config"
    "backend/models"
    "backend/utils"

    "gorm.io/gorm"
)

func RegisterUser(username, password string, calorieNeed, calorieLimit int) (*models.User, error) {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     username,
		Password:     hashedPassword,
		CalorieNeed:  calorieNeed,
		CalorieLimit: calorieLimit,
	}

	if err := config.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return &user, nil
}

func AuthenticateUser(username, password string) (*models.User, string, error) {
    var user models.User
    result := config.DB.Where("username = ?", username).First(&user)
    if result.Error != nil {
        return nil, "", errors.New("invalid username or password")
    }

    if !utils.CheckPasswordHash(password, user.Password) {
        return nil, "", errors.New("invalid username or password")
    }

    token, err := utils.GenerateJWT(user.ID, user.Username)
    if err != nil {
        return nil, "", err
    }

    return &user, token, nil
}
