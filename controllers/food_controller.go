package controllers

import (
	"net/http"
	"strconv"

	"backend/models"
	"backend/services"

	"github.com/gin-gonic/gin"
)

// fetches the caller's session or answers 401
func currentSession(c *gin.Context) (*models.Session, bool) {
	sess, err := services.CurrentSession(c.GetUint("userID"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no active session, please log in"})
		return nil, false
	}
	return sess, true
}

// GET /food/search?q=apple&page=0
func SearchFoods(c *gin.Context) {
	term := c.Query("q")
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'q' query param"})
		return
	}
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'page' query param"})
		return
	}

	fs := services.NewFatsecretService()
	foods, err := fs.SearchFoods(term, page, 20)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "food lookup failed", "search_term": term})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"search_term": term,
		"page":        page,
		"foods":       foods,
	})
}

// GET /food/:id
// Fetches the food detail, stashes it on the session as the pending food
// and returns the serving choices for the confirm-amount step.
func GetFood(c *gin.Context) {
	foodID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food id"})
		return
	}

	sess, ok := currentSession(c)
	if !ok {
		return
	}

	fs := services.NewFatsecretService()
	detail, err := fs.GetFood(foodID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "food lookup failed", "food_id": foodID})
		return
	}

	if err := services.StashPendingFood(sess, detail); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	type servingChoice struct {
		Description   string  `json:"serving_description"`
		Calories      float64 `json:"calories"`
		NumberOfUnits float64 `json:"number_of_units"`
	}
	choices := make([]servingChoice, 0, len(detail.Servings.Serving))
	for _, sp := range detail.Servings.Serving {
		choices = append(choices, servingChoice{
			Description:   sp.ServingDescription,
			Calories:      servingFloat(sp.Calories),
			NumberOfUnits: servingFloat(sp.NumberOfUnits),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"food_id":   detail.FoodID,
		"food_name": detail.FoodName,
		"brand":     detail.BrandName,
		"servings":  choices,
	})
}

func servingFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

// GET /food/frequent
func FrequentFoods(c *gin.Context) {
	logSvc := services.NewLogService()
	rows, err := logSvc.FrequentFoods(c.GetUint("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"foods": rows})
}
