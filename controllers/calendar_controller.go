package controllers

import (
	"net/http"

	"backend/services"

	"github.com/gin-gonic/gin"
)

// POST /calendar  { "date": "2024-03-10" }
// Jumps the date cursor to an explicit day from the date picker.
func SetDate(c *gin.Context) {
	var input struct {
		Date string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, ok := currentSession(c)
	if !ok {
		return
	}

	if err := services.SetViewedDate(sess, input.Date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"viewed_date": sess.ViewedDate})
}

// POST /day-change  { "direction": "forward"|"back", "days": 1 }
func ChangeDay(c *gin.Context) {
	var input struct {
		Direction string `json:"direction" binding:"required"`
		Days      *int   `json:"days" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if *input.Days < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "days must be non-negative"})
		return
	}

	sess, ok := currentSession(c)
	if !ok {
		return
	}

	var err error
	switch input.Direction {
	case "forward":
		err = services.AdvanceViewedDate(sess, *input.Days)
	case "back":
		err = services.RetreatViewedDate(sess, *input.Days)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "direction must be 'forward' or 'back'"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"viewed_date": sess.ViewedDate})
}
