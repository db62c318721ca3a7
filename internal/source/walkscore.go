package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"propboard/internal/config"
	"propboard/internal/model"
)

// WalkScoreClient talks to the Walk Score query-string API.
type WalkScoreClient struct {
	config     *config.SourceConfig
	httpClient *http.Client
}

// NewWalkScoreClient creates a new Walk Score client
func NewWalkScoreClient(cfg *config.SourceConfig, timeout time.Duration) *WalkScoreClient {
	return &WalkScoreClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// IsEnabled returns whether the client has a credential configured
func (c *WalkScoreClient) IsEnabled() bool {
	return c.config.Enabled
}

type walkScoreResponse struct {
	Status      int    `json:"status"`
	WalkScore   *int   `json:"walkscore"`
	Description string `json:"description"`
	Transit     struct {
		Score *int `json:"score"`
	} `json:"transit"`
	Bike struct {
		Score *int `json:"score"`
	} `json:"bike"`
}

// FetchWalkScore retrieves walk/transit/bike scores for an address.
func (c *WalkScoreClient) FetchWalkScore(ctx context.Context, addr model.ParsedAddress) (*model.WalkScoreReport, error) {
	if !c.config.Enabled {
		return nil, ErrUnconfigured
	}

	params := url.Values{}
	params.Set("format", "json")
	params.Set("address", addr.Line())
	params.Set("transit", "1")
	params.Set("bike", "1")
	params.Set("wsapikey", c.config.APIKey)
	endpoint := fmt.Sprintf("%s/score?%s", c.config.BaseURL, params.Encode())

	var resp walkScoreResponse
	if err := getJSON(ctx, c.httpClient, endpoint, &resp); err != nil {
		return nil, err
	}

	// Status 1 is the only success code; 2 means the score is still being
	// calculated, everything else is an address the API cannot place.
	if resp.Status != 1 || resp.WalkScore == nil {
		return nil, ErrNoData
	}

	return &model.WalkScoreReport{
		WalkScore:    resp.WalkScore,
		TransitScore: resp.Transit.Score,
		BikeScore:    resp.Bike.Score,
		Description:  resp.Description,
	}, nil
}
