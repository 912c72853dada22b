package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"backend/config"
	"backend/models"
	"backend/routes"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const appleDetailBody = `{"food":{"food_id":"35718","food_name":"Apple","food_url":"u","servings":{"serving":[
	{"serving_id":"32915","serving_description":"100 g","number_of_units":"100.000","calories":"52"},
	{"serving_id":"32916","serving_description":"1 cup","number_of_units":"1.000","calories":"65"}
]}}}`

func setupApp(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	original := config.DB
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	config.DB = db
	t.Cleanup(func() {
		config.DB = original
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return routes.SetupRouter()
}

func stubLookup(t *testing.T, body string) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	t.Setenv("FATSECRET_BASE_URL", srv.URL)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"username":      username,
		"password":      "secret-pass",
		"calorie_need":  2200,
		"calorie_limit": 1850,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d: %s", username, w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"username": username,
		"password": "secret-pass",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: status %d: %s", username, w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Token == "" {
		t.Fatalf("login %s: no token in %s", username, w.Body.String())
	}
	return resp.Token
}

// Walks the whole add-food flow: pick the food (stashes the pending
// payload), confirm an amount, then read the day view.
func TestAddFoodFlow(t *testing.T) {
	r := setupApp(t)
	stubLookup(t, appleDetailBody)
	token := registerAndLogin(t, r, "alice")

	w := doJSON(t, r, http.MethodGet, "/food/35718", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /food/35718: status %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/food/log", token, gin.H{
		"amount":              150,
		"serving_description": "100 g",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /food/log: status %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/day", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /day: status %d: %s", w.Code, w.Body.String())
	}
	var day struct {
		CalorieSum   int `json:"calorie_sum"`
		CalorieNeed  int `json:"calorie_need"`
		CalorieLimit int `json:"calorie_limit"`
		Entries      []struct {
			FoodName string `json:"food_name"`
			Calories int    `json:"calories"`
		} `json:"entries"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &day); err != nil {
		t.Fatalf("decode day view: %v", err)
	}
	// 52 * 150 / 100 = 78, rounded for display
	if day.CalorieSum != 78 {
		t.Errorf("calorie_sum = %d, want 78", day.CalorieSum)
	}
	if len(day.Entries) != 1 || day.Entries[0].FoodName != "Apple" {
		t.Errorf("entries = %+v, want one Apple row", day.Entries)
	}
	if day.CalorieNeed != 2200 || day.CalorieLimit != 1850 {
		t.Errorf("thresholds = (%d, %d), want (2200, 1850)", day.CalorieNeed, day.CalorieLimit)
	}

	// pending food is consumed by the confirm step
	w = doJSON(t, r, http.MethodPost, "/food/log", token, gin.H{
		"amount":              1,
		"serving_description": "1 cup",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("second confirm without a new pick: status %d, want 404", w.Code)
	}
}

func TestLogFoodValidation(t *testing.T) {
	r := setupApp(t)
	stubLookup(t, appleDetailBody)
	token := registerAndLogin(t, r, "alice")

	if w := doJSON(t, r, http.MethodGet, "/food/35718", token, nil); w.Code != http.StatusOK {
		t.Fatalf("GET /food/35718: status %d", w.Code)
	}

	w := doJSON(t, r, http.MethodPost, "/food/log", token, gin.H{
		"amount":              -2,
		"serving_description": "100 g",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("negative amount: status %d, want 400", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/food/log", token, gin.H{
		"serving_description": "100 g",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing amount: status %d, want 400", w.Code)
	}

	// nothing was written
	var count int64
	config.DB.Model(&models.FoodLog{}).Count(&count)
	if count != 0 {
		t.Fatalf("rejected requests wrote %d log rows", count)
	}
}

func TestForeignLogEntryReadsAsNotFound(t *testing.T) {
	r := setupApp(t)
	stubLookup(t, appleDetailBody)
	aliceToken := registerAndLogin(t, r, "alice")
	malloryToken := registerAndLogin(t, r, "mallory")

	if w := doJSON(t, r, http.MethodGet, "/food/35718", aliceToken, nil); w.Code != http.StatusOK {
		t.Fatalf("GET /food/35718: status %d", w.Code)
	}
	w := doJSON(t, r, http.MethodPost, "/food/log", aliceToken, gin.H{
		"amount":              1,
		"serving_description": "1 cup",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /food/log: status %d: %s", w.Code, w.Body.String())
	}
	var created models.FoodLog
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created entry: %v", err)
	}

	path := fmt.Sprintf("/food/log/%d", created.ID)
	if w := doJSON(t, r, http.MethodPut, path, malloryToken, gin.H{"amount": 99}); w.Code != http.StatusNotFound {
		t.Fatalf("foreign edit: status %d, want 404", w.Code)
	}
	if w := doJSON(t, r, http.MethodDelete, path, malloryToken, nil); w.Code != http.StatusNotFound {
		t.Fatalf("foreign delete: status %d, want 404", w.Code)
	}

	var unchanged models.FoodLog
	if err := config.DB.First(&unchanged, created.ID).Error; err != nil {
		t.Fatalf("entry vanished: %v", err)
	}
	if unchanged.Amount != 1 {
		t.Fatalf("entry amount = %v after rejected edit, want 1", unchanged.Amount)
	}
}

func TestDateCursorEndpoints(t *testing.T) {
	r := setupApp(t)
	token := registerAndLogin(t, r, "alice")

	w := doJSON(t, r, http.MethodPost, "/calendar", token, gin.H{"date": "2024-03-10"})
	if w.Code != http.StatusOK {
		t.Fatalf("POST /calendar: status %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/day-change", token, gin.H{"direction": "forward", "days": 5})
	if w.Code != http.StatusOK {
		t.Fatalf("POST /day-change: status %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		ViewedDate string `json:"viewed_date"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.ViewedDate != "2024-03-15" {
		t.Fatalf("after forward 5: %q, want 2024-03-15", resp.ViewedDate)
	}

	w = doJSON(t, r, http.MethodPost, "/day-change", token, gin.H{"direction": "back", "days": 20})
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.ViewedDate != "2024-02-24" {
		t.Fatalf("after back 20: %q, want 2024-02-24", resp.ViewedDate)
	}

	if w := doJSON(t, r, http.MethodPost, "/day-change", token, gin.H{"direction": "sideways", "days": 1}); w.Code != http.StatusBadRequest {
		t.Fatalf("bad direction: status %d, want 400", w.Code)
	}
	if w := doJSON(t, r, http.MethodPost, "/calendar", token, gin.H{"date": "03/10/2024"}); w.Code != http.StatusBadRequest {
		t.Fatalf("bad date: status %d, want 400", w.Code)
	}
}

func TestLookupFailureEchoesSearchTerm(t *testing.T) {
	r := setupApp(t)
	token := registerAndLogin(t, r, "alice")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream down", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)
	t.Setenv("FATSECRET_BASE_URL", srv.URL)

	w := doJSON(t, r, http.MethodGet, "/food/search?q=apple", token, nil)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("search with broken upstream: status %d, want 502", w.Code)
	}
	var resp struct {
		SearchTerm string `json:"search_term"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.SearchTerm != "apple" {
		t.Fatalf("error payload search_term = %q, want apple", resp.SearchTerm)
	}
}

func TestLogoutEndsTheSession(t *testing.T) {
	r := setupApp(t)
	token := registerAndLogin(t, r, "alice")

	if w := doJSON(t, r, http.MethodPost, "/auth/logout", token, nil); w.Code != http.StatusOK {
		t.Fatalf("logout: status %d", w.Code)
	}
	// the token is still valid but the session state is gone
	if w := doJSON(t, r, http.MethodGet, "/day", token, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("GET /day after logout: status %d, want 401", w.Code)
	}
}

func TestDuplicateUsername(t *testing.T) {
	r := setupApp(t)
	registerAndLogin(t, r, "alice")

	w := doJSON(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"username":      "alice",
		"password":      "another-pass",
		"calorie_need":  2000,
		"calorie_limit": 1800,
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate register: status %d, want 409", w.Code)
	}
}

func TestUnauthenticatedRequestsAreRejected(t *testing.T) {
	r := setupApp(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/day"},
		{http.MethodPost, "/food/log"},
		{http.MethodGet, "/food/search?q=apple"},
		{http.MethodPost, "/calendar"},
	} {
		if w := doJSON(t, r, route.method, route.path, "", nil); w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without token: status %d, want 401", route.method, route.path, w.Code)
		}
	}
}
