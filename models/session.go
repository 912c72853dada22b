package models

import (
    "time"

    "gorm.io/datatypes"
)

// Session carries the per-login view state: which day's log is being
// viewed and the food detail payload held between the choose-serving and
// confirm-amount steps. Created at login, deleted at logout.
type Session struct {
    ID          string `gorm:"primaryKey;size:64"` // UUID
    UserID      uint   `gorm:"index;not null"`
    ViewedDate  string `gorm:"not null"` // ISO date, e.g. "2024-03-10"
    PendingFood datatypes.JSON
    ExpiresAt   time.Time `gorm:"index;not null"`
    CreatedAt   time.Time

    User User `gorm:"constraint:OnDelete:CASCADE"`
}
