package services

import (
	"fmt"
	"testing"

	"backend/config"
	"backend/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	original := config.DB
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	config.DB = db
	t.Cleanup(func() {
		config.DB = original
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
}

func seedUser(t *testing.T, username string, need, limit int) *models.User {
	t.Helper()
	user := models.User{
		Username:     username,
		Password:     "not-a-real-hash",
		CalorieNeed:  need,
		CalorieLimit: limit,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user %s: %v", username, err)
	}
	return &user
}

// seedFood creates a catalog food with a per-100g serving and a per-cup
// serving, mirroring the two shapes the lookup service reports.
func seedFood(t *testing.T, fatsecretID int64, name string) *models.Food {
	t.Helper()
	food := models.Food{
		FatsecretID: fatsecretID,
		Name:        name,
		Brand:       "Generic",
		Servings: []models.FoodServing{
			{
				FatsecretServingID: fatsecretID*100 + 1,
				Description:        "100 g",
				NumberOfUnits:      100,
				Calories:           55,
			},
			{
				FatsecretServingID: fatsecretID*100 + 2,
				Description:        "1 cup",
				NumberOfUnits:      1,
				Calories:           250,
			},
		},
	}
	if err := config.DB.Create(&food).Error; err != nil {
		t.Fatalf("failed to seed food %s: %v", name, err)
	}
	return &food
}
