package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"propboard/internal/config"
	"propboard/internal/model"
)

// CensusClient talks to the Census ACS API for area demographics.
type CensusClient struct {
	config     *config.SourceConfig
	httpClient *http.Client
}

// NewCensusClient creates a new Census API client
func NewCensusClient(cfg *config.SourceConfig, timeout time.Duration) *CensusClient {
	return &CensusClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// IsEnabled returns whether the client has a credential configured
func (c *CensusClient) IsEnabled() bool {
	return c.config.Enabled
}

// acsVariables are the ACS 5-year estimates we request, in column order:
// population, median household income, median age, owner-occupied rate,
// median home value.
const acsVariables = "B01003_001E,B19013_001E,B01002_001E,B25003_002E,B25077_001E"

// FetchDemographics retrieves ACS estimates for the address's ZCTA. The
// Census API has no address lookup, so a missing ZIP means no data.
func (c *CensusClient) FetchDemographics(ctx context.Context, addr model.ParsedAddress) (*model.Demographics, error) {
	if !c.config.Enabled {
		return nil, ErrUnconfigured
	}
	if addr.Zip == "" {
		return nil, ErrNoData
	}

	params := url.Values{}
	params.Set("get", acsVariables)
	params.Set("for", "zip code tabulation area:"+addr.Zip)
	params.Set("key", c.config.APIKey)
	endpoint := fmt.Sprintf("%s/2022/acs/acs5?%s", c.config.BaseURL, params.Encode())

	// The Census API returns a header row followed by value rows, all strings.
	var rows [][]string
	if err := getJSON(ctx, c.httpClient, endpoint, &rows); err != nil {
		return nil, err
	}
	if len(rows) < 2 || len(rows[1]) < 5 {
		return nil, ErrNoData
	}

	values := rows[1]
	return &model.Demographics{
		Population:       parseIntCol(values[0]),
		MedianIncome:     parseFloatCol(values[1]),
		MedianAge:        parseFloatCol(values[2]),
		OwnerOccupiedPct: parseFloatCol(values[3]),
		MedianHomeValue:  parseFloatCol(values[4]),
	}, nil
}

func parseIntCol(s string) *int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

func parseFloatCol(s string) *float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		// The ACS uses large negative sentinels for suppressed estimates.
		return nil
	}
	return &v
}
