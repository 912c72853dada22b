package models

import (
    "gorm.io/datatypes"
    "gorm.io/gorm"
)

// One serving variant of a Food (e.g. "1 cup", "100 g"). Nutrient values
// describe NumberOfUnits units of the serving.
type FoodServing struct {
    gorm.Model
    FoodID             uint  `gorm:"index;not null"` // FK → foods.id
    FatsecretServingID int64 `gorm:"uniqueIndex;not null"`

    Description            string `gorm:"not null"`
    ServingURL             string
    MeasurementDescription string
    MetricServingAmount    string
    MetricServingUnit      string
    NumberOfUnits          float64 // reference unit count for calorie scaling

    Calories     float64 // kcal per NumberOfUnits units
    Carbohydrate float64
    Protein      float64
    Fat          float64
    Sugar        float64
    Fiber        float64
    Sodium       float64

    Nutrients datatypes.JSON // raw serving payload, carried through opaquely
}
