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

// SchoolsClient talks to a school-ratings API for nearby schools.
type SchoolsClient struct {
	config     *config.SourceConfig
	httpClient *http.Client
}

// NewSchoolsClient creates a new school-ratings client
func NewSchoolsClient(cfg *config.SourceConfig, timeout time.Duration) *SchoolsClient {
	return &SchoolsClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// IsEnabled returns whether the client has a credential configured
func (c *SchoolsClient) IsEnabled() bool {
	return c.config.Enabled
}

type schoolsResponse struct {
	Schools []struct {
		Name     string   `json:"name"`
		Level    string   `json:"level"`
		Rating   *float64 `json:"rating"`
		Distance *float64 `json:"distance"`
	} `json:"schools"`
}

// FetchSchools retrieves nearby schools and their ratings.
func (c *SchoolsClient) FetchSchools(ctx context.Context, addr model.ParsedAddress) (*model.SchoolReport, error) {
	if !c.config.Enabled {
		return nil, ErrUnconfigured
	}

	params := url.Values{}
	params.Set("address", addr.Line())
	params.Set("limit", "5")
	params.Set("key", c.config.APIKey)
	endpoint := fmt.Sprintf("%s/v1/schools/nearby?%s", c.config.BaseURL, params.Encode())

	var resp schoolsResponse
	if err := getJSON(ctx, c.httpClient, endpoint, &resp); err != nil {
		return nil, err
	}
	if len(resp.Schools) == 0 {
		return nil, ErrNoData
	}

	report := &model.SchoolReport{}
	for _, s := range resp.Schools {
		report.Schools = append(report.Schools, model.School{
			Name:          s.Name,
			Level:         s.Level,
			Rating:        s.Rating,
			DistanceMiles: s.Distance,
		})
	}
	return report, nil
}
