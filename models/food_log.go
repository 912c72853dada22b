package models

import (
    "time"

    "gorm.io/gorm"
)

// One recorded consumption of a food serving on a calendar day.
// UnitCalories and NumberOfUnits are snapshots taken at logging time so an
// edit can rescale without re-reading the serving row.
type FoodLog struct {
    gorm.Model
    UserID    uint `gorm:"index;not null"` // FK → users.id
    FoodID    uint `gorm:"index;not null"`
    ServingID uint `gorm:"not null"`

    ServingDescription string  `gorm:"not null"`
    Amount             float64 `gorm:"not null"` // user-entered quantity in serving units
    UnitCalories       float64 `gorm:"not null"` // serving kcal at logging time
    NumberOfUnits      float64 `gorm:"not null"`
    Calories           float64 `gorm:"not null"` // derived, stored unrounded

    Date time.Time `gorm:"index;not null"` // midnight UTC of the day logged against
}
