// services/log_service.go
package services

import (
	"errors"
	"math"
	"time"

	"backend/config"
	"backend/models"
	"backend/utils"

	"gorm.io/gorm"
)

type LogService struct{}

func NewLogService() *LogService {
	return &LogService{}
}

// DateOnly truncates a timestamp to midnight UTC so log rows for the same
// calendar day always compare equal.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddLog records a consumption of one of the food's servings, chosen by
// description, against the given day. The serving's calorie value and
// reference unit count are snapshotted onto the row.
func (s *LogService) AddLog(
	userID uint,
	food *models.Food,
	servingDescription string,
	amount float64,
	day time.Time,
) (*models.FoodLog, error) {
	var serving *models.FoodServing
	for i := range food.Servings {
		if food.Servings[i].Description == servingDescription {
			serving = &food.Servings[i]
			break
		}
	}
	if serving == nil {
		return nil, ErrNotFound
	}

	calories, err := utils.ComputeCalories(serving.Calories, serving.NumberOfUnits, amount)
	if err != nil {
		return nil, err
	}

	entry := models.FoodLog{
		UserID:             userID,
		FoodID:             food.ID,
		ServingID:          serving.ID,
		ServingDescription: serving.Description,
		Amount:             amount,
		UnitCalories:       serving.Calories,
		NumberOfUnits:      serving.NumberOfUnits,
		Calories:           calories,
		Date:               DateOnly(day),
	}
	if err := config.DB.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateLog changes the amount of an entry and rescales its calories from
// the values snapshotted at logging time. Scoped to the owning user; a
// foreign entry id reads as not found and the row stays untouched.
func (s *LogService) UpdateLog(userID, logID uint, amount float64) (*models.FoodLog, error) {
	var entry models.FoodLog
	err := config.DB.Where("id = ? AND user_id = ?", logID, userID).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	calories, err := utils.ComputeCalories(entry.UnitCalories, entry.NumberOfUnits, amount)
	if err != nil {
		return nil, err
	}

	entry.Amount = amount
	entry.Calories = calories
	if err := config.DB.Save(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *LogService) DeleteLog(userID, logID uint) error {
	res := config.DB.Where("id = ? AND user_id = ?", logID, userID).Delete(&models.FoodLog{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DayEntry is one displayed log row; Calories is rounded for display,
// the stored value stays unrounded.
type DayEntry struct {
	ID                 uint    `json:"id"`
	FoodName           string  `json:"food_name"`
	Brand              string  `json:"brand"`
	ServingDescription string  `json:"serving_description"`
	Amount             float64 `json:"amount"`
	Calories           int     `json:"calories"`
}

type DaySummary struct {
	Date         string     `json:"date"`
	Entries      []DayEntry `json:"entries"`
	CalorieSum   int        `json:"calorie_sum"`
	CalorieNeed  int        `json:"calorie_need"`
	CalorieLimit int        `json:"calorie_limit"`
}

type dayRow struct {
	ID                 uint
	FoodName           string
	Brand              string
	ServingDescription string
	Amount             float64
	Calories           float64
}

// DaySummary collects the user's entries for one day, rounds each entry's
// calories to the nearest integer and sums the rounded values. A day with
// no entries is a valid day with sum 0.
func (s *LogService) DaySummary(userID uint, day time.Time) (*DaySummary, error) {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var rows []dayRow
	err := config.DB.
		Table("food_logs").
		Select("food_logs.id, foods.name AS food_name, foods.brand, food_logs.serving_description, food_logs.amount, food_logs.calories").
		Joins("JOIN foods ON foods.id = food_logs.food_id").
		Where("food_logs.user_id = ? AND food_logs.date = ? AND food_logs.deleted_at IS NULL", userID, DateOnly(day)).
		Order("food_logs.created_at").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summary := &DaySummary{
		Date:         DateOnly(day).Format("2006-01-02"),
		Entries:      make([]DayEntry, 0, len(rows)),
		CalorieNeed:  user.CalorieNeed,
		CalorieLimit: user.CalorieLimit,
	}
	for _, r := range rows {
		rounded := int(math.Round(r.Calories))
		summary.Entries = append(summary.Entries, DayEntry{
			ID:                 r.ID,
			FoodName:           r.FoodName,
			Brand:              r.Brand,
			ServingDescription: r.ServingDescription,
			Amount:             r.Amount,
			Calories:           rounded,
		})
		summary.CalorieSum += rounded
	}
	return summary, nil
}

// FoodFrequency is one row of the most-logged-foods ranking.
type FoodFrequency struct {
	FoodID uint   `json:"food_id"`
	Name   string `json:"name"`
	Brand  string `json:"brand"`
	Count  int64  `json:"count" gorm:"column:log_count"`
}

// FrequentFoods groups the user's whole log history by food, counts
// occurrences and returns the top 20 by count descending. Ties carry no
// defined order.
func (s *LogService) FrequentFoods(userID uint) ([]FoodFrequency, error) {
	var rows []FoodFrequency
	err := config.DB.
		Table("food_logs").
		Select("food_logs.food_id, foods.name, foods.brand, COUNT(food_logs.id) AS log_count").
		Joins("JOIN foods ON foods.id = food_logs.food_id").
		Where("food_logs.user_id = ? AND food_logs.deleted_at IS NULL", userID).
		Group("food_logs.food_id, foods.name, foods.brand").
		Order("log_count DESC").
		Limit(20).
		Scan(&rows).Error
	return rows, err
}
