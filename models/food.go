package models

import "gorm.io/gorm"

// A catalog entry cached from FatSecret on first use.
type Food struct {
    gorm.Model
    FatsecretID int64  `gorm:"uniqueIndex;not null"`
    Name        string `gorm:"not null"`
    Brand       string `gorm:"not null;default:Generic"`
    FoodURL     string

    Servings []FoodServing `gorm:"constraint:OnDelete:CASCADE"`
}
