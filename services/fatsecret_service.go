package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"
)

const defaultFatsecretURL = "https://platform.fatsecret.com/rest/server.api"

type FatsecretService struct {
	baseURL                     string
	consumerKey, consumerSecret string
	client                      *http.Client
}

// NewFatsecretService initializes the FatsecretService with credentials and HTTP client
func NewFatsecretService() *FatsecretService {
	base := os.Getenv("FATSECRET_BASE_URL")
	if base == "" {
		base = defaultFatsecretURL
	}
	return &FatsecretService{
		baseURL:        base,
		consumerKey:    os.Getenv("FATSECRET_CONSUMER_KEY"),
		consumerSecret: os.Getenv("FATSECRET_CONSUMER_SECRET"),
		client:         &http.Client{Timeout: 10 * time.Second},
	}
}

// FoodSummary is one search hit. FatSecret reports numbers as strings.
type FoodSummary struct {
	FoodID          string `json:"food_id"`
	FoodName        string `json:"food_name"`
	BrandName       string `json:"brand_name,omitempty"`
	FoodType        string `json:"food_type,omitempty"`
	FoodURL         string `json:"food_url"`
	FoodDescription string `json:"food_description,omitempty"`
}

// ServingPayload is one serving record of a food detail.
type ServingPayload struct {
	ServingID              string `json:"serving_id"`
	ServingDescription     string `json:"serving_description"`
	ServingURL             string `json:"serving_url,omitempty"`
	MeasurementDescription string `json:"measurement_description,omitempty"`
	MetricServingAmount    string `json:"metric_serving_amount,omitempty"`
	MetricServingUnit      string `json:"metric_serving_unit,omitempty"`
	NumberOfUnits          string `json:"number_of_units,omitempty"`
	Calories               string `json:"calories,omitempty"`
	Carbohydrate           string `json:"carbohydrate,omitempty"`
	Protein                string `json:"protein,omitempty"`
	Fat                    string `json:"fat,omitempty"`
	Sugar                  string `json:"sugar,omitempty"`
	Fiber                  string `json:"fiber,omitempty"`
	Sodium                 string `json:"sodium,omitempty"`
}

// ServingList accepts both shapes FatSecret sends for "servings.serving":
// a single object when the food has one serving, a JSON array otherwise.
// Either way it lands as a plain list so nothing downstream shape-checks.
type ServingList []ServingPayload

func (l *ServingList) UnmarshalJSON(data []byte) error {
	var many []ServingPayload
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}
	var one ServingPayload
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*l = ServingList{one}
	return nil
}

type foodSummaryList []FoodSummary

func (l *foodSummaryList) UnmarshalJSON(data []byte) error {
	var many []FoodSummary
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}
	var one FoodSummary
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*l = foodSummaryList{one}
	return nil
}

// FoodDetail is the food.get response body.
type FoodDetail struct {
	FoodID    string `json:"food_id"`
	FoodName  string `json:"food_name"`
	BrandName string `json:"brand_name,omitempty"`
	FoodURL   string `json:"food_url"`
	Servings  struct {
		Serving ServingList `json:"serving"`
	} `json:"servings"`
}

type foodSearchResponse struct {
	Foods struct {
		Food         foodSummaryList `json:"food"`
		PageNumber   string          `json:"page_number"`
		TotalResults string          `json:"total_results"`
	} `json:"foods"`
}

type foodGetResponse struct {
	Food FoodDetail `json:"food"`
}

// SearchFoods calls the foods.search method. A single hit comes back as a
// bare object; it is normalized into a one-element list.
func (s *FatsecretService) SearchFoods(term string, pageNumber, maxResults int) ([]FoodSummary, error) {
	u := fmt.Sprintf(
		"%s?method=foods.search&format=json&search_expression=%s&page_number=%d&max_results=%d&oauth_consumer_key=%s&oauth_consumer_secret=%s",
		s.baseURL, url.QueryEscape(term), pageNumber, maxResults, s.consumerKey, s.consumerSecret,
	)

	resp, err := s.client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("failed to call foods.search: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read foods.search response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fatsecret foods.search error %d: %s", resp.StatusCode, string(body))
	}

	var sr foodSearchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("failed to parse foods.search JSON: %w", err)
	}
	return sr.Foods.Food, nil
}

// GetFood calls the food.get method for one external id.
func (s *FatsecretService) GetFood(foodID int64) (*FoodDetail, error) {
	u := fmt.Sprintf(
		"%s?method=food.get&format=json&food_id=%d&oauth_consumer_key=%s&oauth_consumer_secret=%s",
		s.baseURL, foodID, s.consumerKey, s.consumerSecret,
	)

	resp, err := s.client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("failed to call food.get: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read food.get response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fatsecret food.get error %d: %s", resp.StatusCode, string(body))
	}

	var gr foodGetResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return nil, fmt.Errorf("failed to parse food.get JSON: %w", err)
	}
	return &gr.Food, nil
}

// parseFloat tolerates FatSecret's stringly-typed numbers; a missing or
// malformed value reads as 0.
func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
