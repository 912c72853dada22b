package services

import (
	"encoding/json"
	"errors"
	"time"

	"backend/config"
	"backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// session lifetime matches the token lifetime
const sessionTTL = 72 * time.Hour

const isoDate = "2006-01-02"

// StartSession replaces any existing session for the user with a fresh one
// whose date cursor points at today.
func StartSession(userID uint, today time.Time) (*models.Session, error) {
	if err := config.DB.Where("user_id = ?", userID).Delete(&models.Session{}).Error; err != nil {
		return nil, err
	}

	sess := models.Session{
		ID:         uuid.NewString(),
		UserID:     userID,
		ViewedDate: today.Format(isoDate),
		ExpiresAt:  time.Now().Add(sessionTTL),
	}
	if err := config.DB.Create(&sess).Error; err != nil {
		return nil, err
	}
	return &sess, nil
}

// EndSession drops the user's session, clearing the date cursor and any
// pending food payload.
func EndSession(userID uint) error {
	return config.DB.Where("user_id = ?", userID).Delete(&models.Session{}).Error
}

// CurrentSession returns the user's unexpired session.
func CurrentSession(userID uint) (*models.Session, error) {
	var sess models.Session
	err := config.DB.
		Where("user_id = ? AND expires_at > ?", userID, time.Now()).
		First(&sess).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sess, nil
}

// ViewedDate parses the session's date cursor.
func ViewedDate(sess *models.Session) (time.Time, error) {
	return time.Parse(isoDate, sess.ViewedDate)
}

// SetViewedDate jumps the cursor to an explicit ISO date.
func SetViewedDate(sess *models.Session, date string) error {
	parsed, err := time.Parse(isoDate, date)
	if err != nil {
		return err
	}
	sess.ViewedDate = parsed.Format(isoDate)
	return config.DB.Model(sess).Update("viewed_date", sess.ViewedDate).Error
}

// AdvanceViewedDate moves the cursor forward by days (days >= 0).
func AdvanceViewedDate(sess *models.Session, days int) error {
	return shiftViewedDate(sess, days)
}

// RetreatViewedDate moves the cursor back by days (days >= 0).
func RetreatViewedDate(sess *models.Session, days int) error {
	return shiftViewedDate(sess, -days)
}

func shiftViewedDate(sess *models.Session, days int) error {
	current, err := ViewedDate(sess)
	if err != nil {
		return err
	}
	sess.ViewedDate = current.AddDate(0, 0, days).Format(isoDate)
	return config.DB.Model(sess).Update("viewed_date", sess.ViewedDate).Error
}

// StashPendingFood holds a fetched food detail between the choose-serving
// and confirm-amount steps.
func StashPendingFood(sess *models.Session, detail *FoodDetail) error {
	raw, err := json.Marshal(detail)
	if err != nil {
		return err
	}
	sess.PendingFood = raw
	return config.DB.Model(sess).Update("pending_food", sess.PendingFood).Error
}

// PendingFood returns the stashed food detail, if any.
func PendingFood(sess *models.Session) (*FoodDetail, error) {
	if len(sess.PendingFood) == 0 {
		return nil, ErrNotFound
	}
	var detail FoodDetail
	if err := json.Unmarshal(sess.PendingFood, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// ClearPendingFood drops the stashed payload after the log entry is written.
func ClearPendingFood(sess *models.Session) error {
	sess.PendingFood = nil
	return config.DB.Model(sess).Update("pending_food", nil).Error
}
