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

// CrimeClient talks to the FBI Crime Data Explorer API for area crime
// statistics.
type CrimeClient struct {
	config     *config.SourceConfig
	httpClient *http.Client
}

// NewCrimeClient creates a new crime-statistics client
func NewCrimeClient(cfg *config.SourceConfig, timeout time.Duration) *CrimeClient {
	return &CrimeClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// IsEnabled returns whether the client has a credential configured
func (c *CrimeClient) IsEnabled() bool {
	return c.config.Enabled
}

type crimeResponse struct {
	Results []struct {
		ViolentRate  *float64 `json:"violent_crime_rate"`
		PropertyRate *float64 `json:"property_crime_rate"`
	} `json:"results"`
}

// FetchCrime retrieves area crime rates. The CDE reports at state/agency
// granularity, so a missing state means no data.
func (c *CrimeClient) FetchCrime(ctx context.Context, addr model.ParsedAddress) (*model.CrimeReport, error) {
	if !c.config.Enabled {
		return nil, ErrUnconfigured
	}
	if addr.State == "" {
		return nil, ErrNoData
	}

	params := url.Values{}
	params.Set("API_KEY", c.config.APIKey)
	endpoint := fmt.Sprintf("%s/estimate/state/%s?%s", c.config.BaseURL, url.PathEscape(addr.State), params.Encode())

	var resp crimeResponse
	if err := getJSON(ctx, c.httpClient, endpoint, &resp); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, ErrNoData
	}

	r := resp.Results[0]
	report := &model.CrimeReport{
		ViolentRate:  r.ViolentRate,
		PropertyRate: r.PropertyRate,
	}
	if r.ViolentRate != nil && r.PropertyRate != nil {
		total := (*r.ViolentRate + *r.PropertyRate) / 1000
		report.IncidentsPerThousand = &total
		report.Grade = gradeCrimeRate(total)
	}
	return report, nil
}

// gradeCrimeRate buckets a per-thousand incident rate into a letter grade.
func gradeCrimeRate(perThousand float64) string {
	switch {
	case perThousand < 15:
		return "A"
	case perThousand < 30:
		return "B"
	case perThousand < 45:
		return "C"
	case perThousand < 60:
		return "D"
	default:
		return "F"
	}
}
