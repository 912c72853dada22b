package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"backend/config"
	"backend/models"

	"gorm.io/gorm"
)

type CatalogService struct{}

func NewCatalogService() *CatalogService {
	return &CatalogService{}
}

// EnsureFood inserts the food and all of its serving variants the first
// time an external id is seen, in one transaction. Later references skip
// the insert entirely; catalog rows are never refreshed. Two requests
// racing on the same new id resolve through the unique index: the loser's
// duplicate key error reads as success.
func (s *CatalogService) EnsureFood(detail *FoodDetail) (*models.Food, error) {
	fsID, err := strconv.ParseInt(detail.FoodID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bad food id %q: %w", detail.FoodID, err)
	}

	var existing models.Food
	err = config.DB.Preload("Servings").Where("fatsecret_id = ?", fsID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	brand := detail.BrandName
	if brand == "" {
		brand = "Generic"
	}

	food := models.Food{
		FatsecretID: fsID,
		Name:        detail.FoodName,
		Brand:       brand,
		FoodURL:     detail.FoodURL,
	}
	for _, sp := range detail.Servings.Serving {
		serving, err := buildServing(sp)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCatalogWrite, err)
		}
		food.Servings = append(food.Servings, serving)
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&food).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// another request inserted this id first
			var won models.Food
			if err := config.DB.Preload("Servings").Where("fatsecret_id = ?", fsID).First(&won).Error; err == nil {
				return &won, nil
			}
		}
		return nil, fmt.Errorf("%w: %v", ErrCatalogWrite, err)
	}
	return &food, nil
}

func buildServing(sp ServingPayload) (models.FoodServing, error) {
	servingID, err := strconv.ParseInt(sp.ServingID, 10, 64)
	if err != nil {
		return models.FoodServing{}, fmt.Errorf("bad serving id %q: %w", sp.ServingID, err)
	}

	raw, err := json.Marshal(sp)
	if err != nil {
		return models.FoodServing{}, err
	}

	return models.FoodServing{
		FatsecretServingID:     servingID,
		Description:            sp.ServingDescription,
		ServingURL:             sp.ServingURL,
		MeasurementDescription: sp.MeasurementDescription,
		MetricServingAmount:    sp.MetricServingAmount,
		MetricServingUnit:      sp.MetricServingUnit,
		NumberOfUnits:          parseFloat(sp.NumberOfUnits),
		Calories:               parseFloat(sp.Calories),
		Carbohydrate:           parseFloat(sp.Carbohydrate),
		Protein:                parseFloat(sp.Protein),
		Fat:                    parseFloat(sp.Fat),
		Sugar:                  parseFloat(sp.Sugar),
		Fiber:                  parseFloat(sp.Fiber),
		Sodium:                 parseFloat(sp.Sodium),
		Nutrients:              raw,
	}, nil
}
