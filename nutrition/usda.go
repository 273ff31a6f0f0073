package nutrition

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"
)

const defaultUSDABaseURL = "https://api.nal.usda.gov/fdc/v1"

// FoodData Central nutrient ids for the macros we track.
const (
	nutrientEnergy  = 1008
	nutrientProtein = 1003
	nutrientFat     = 1004
	nutrientCarbs   = 1005
)

// USDAClient searches the USDA FoodData Central database. Values in search
// results are per 100g.
type USDAClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewUSDAClient(apiKey string) *USDAClient {
	if apiKey == "" {
		apiKey = "DEMO_KEY"
	}
	return &USDAClient{
		apiKey:  apiKey,
		baseURL: defaultUSDABaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type usdaSearchResponse struct {
	Foods []struct {
		FdcID         int    `json:"fdcId"`
		Description   string `json:"description"`
		FoodNutrients []struct {
			NutrientID int     `json:"nutrientId"`
			Value      float64 `json:"value"`
		} `json:"foodNutrients"`
	} `json:"foods"`
}

// Search returns per-100g nutrients for the top search hit, or nil when the
// database has nothing for the item.
func (c *USDAClient) Search(ctx context.Context, item string) (*Nutrients, error) {
	endpoint := fmt.Sprintf("%s/foods/search?query=%s&pageSize=1&api_key=%s",
		c.baseURL, url.QueryEscape(item), url.QueryEscape(c.apiKey))

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	response, err := c.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("usda search request: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("usda search returned %s", response.Status)
	}

	var search usdaSearchResponse
	if err := json.NewDecoder(response.Body).Decode(&search); err != nil {
		return nil, fmt.Errorf("decoding usda response: %w", err)
	}
	if len(search.Foods) == 0 {
		return nil, nil
	}

	food := search.Foods[0]
	log.Printf("USDA match for %q: %s (fdc %d)", item, food.Description, food.FdcID)

	base := &Nutrients{}
	for _, n := range food.FoodNutrients {
		switch n.NutrientID {
		case nutrientEnergy:
			base.Calories = n.Value
		case nutrientProtein:
			base.Protein = n.Value
		case nutrientFat:
			base.Fat = n.Value
		case nutrientCarbs:
			base.Carbs = n.Value
		}
	}
	return base, nil
}
