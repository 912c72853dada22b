package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type logFoodInput struct {
	Amount             *float64 `json:"amount" binding:"required"`
	ServingDescription string   `json:"serving_description" binding:"required"`
}

// POST /food/log
// Confirms the pending food: persists it into the catalog on first use,
// computes calories for the chosen serving and amount, and writes the log
// entry against the session's viewed date.
func LogFood(c *gin.Context) {
	var input logFoodInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if *input.Amount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be non-negative"})
		return
	}

	sess, ok := currentSession(c)
	if !ok {
		return
	}

	detail, err := services.PendingFood(sess)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no food selected"})
		return
	}

	catalog := services.NewCatalogService()
	food, err := catalog.EnsureFood(detail)
	if err != nil {
		if errors.Is(err, services.ErrCatalogWrite) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	day, err := services.ViewedDate(sess)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	logSvc := services.NewLogService()
	entry, err := logSvc.AddLog(c.GetUint("userID"), food, input.ServingDescription, *input.Amount, day)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown serving"})
		case errors.Is(err, utils.ErrDivisionUndefined):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	// the add-food flow is done, drop the stashed payload
	if err := services.ClearPendingFood(sess); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// PUT /food/log/:id
func UpdateLog(c *gin.Context) {
	logID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log id"})
		return
	}

	var input struct {
		Amount *float64 `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if *input.Amount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be non-negative"})
		return
	}

	logSvc := services.NewLogService()
	entry, err := logSvc.UpdateLog(c.GetUint("userID"), uint(logID), *input.Amount)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "log entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entry)
}

// DELETE /food/log/:id
func DeleteLog(c *gin.Context) {
	logID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log id"})
		return
	}

	logSvc := services.NewLogService()
	if err := logSvc.DeleteLog(c.GetUint("userID"), uint(logID)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "log entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /day
// The day view: entries for the session's viewed date, each rounded for
// display, plus the running total and the user's thresholds.
func GetDay(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	day, err := services.ViewedDate(sess)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	logSvc := services.NewLogService()
	summary, err := logSvc.DaySummary(c.GetUint("userID"), day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}
