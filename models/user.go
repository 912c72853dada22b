package models

import (
    "gorm.io/gorm"
)

type User struct {
    gorm.Model
    Username     string `gorm:"uniqueIndex;not null"`
    Password     string `gorm:"not null"`
    CalorieNeed  int    `gorm:"not null"` // daily kcal target
    CalorieLimit int    `gorm:"not null"` // daily kcal ceiling
}
