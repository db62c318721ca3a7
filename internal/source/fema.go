package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"propboard/internal/config"
	"propboard/internal/model"
)

// FemaClient queries the FEMA National Flood Hazard Layer for flood-zone
// designations. Open data, no credential.
type FemaClient struct {
	config     *config.SourceConfig
	httpClient *http.Client
}

// NewFemaClient creates a new FEMA NFHL client
func NewFemaClient(cfg *config.SourceConfig, timeout time.Duration) *FemaClient {
	return &FemaClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// IsEnabled returns whether a base URL is configured
func (c *FemaClient) IsEnabled() bool {
	return c.config.Enabled
}

type femaResponse struct {
	Features []struct {
		Attributes struct {
			FloodZone   string `json:"FLD_ZONE"`
			ZoneSubtype string `json:"ZONE_SUBTY"`
		} `json:"attributes"`
	} `json:"features"`
}

// FetchFloodZone retrieves the flood-zone designation for an address.
func (c *FemaClient) FetchFloodZone(ctx context.Context, addr model.ParsedAddress) (*model.FloodZoneReport, error) {
	if !c.config.Enabled {
		return nil, ErrUnconfigured
	}

	params := url.Values{}
	params.Set("f", "json")
	params.Set("searchText", addr.Line())
	endpoint := fmt.Sprintf("%s/query?%s", c.config.BaseURL, params.Encode())

	var resp femaResponse
	if err := getJSON(ctx, c.httpClient, endpoint, &resp); err != nil {
		return nil, err
	}
	if len(resp.Features) == 0 || resp.Features[0].Attributes.FloodZone == "" {
		return nil, ErrNoData
	}

	zone := resp.Features[0].Attributes.FloodZone
	return &model.FloodZoneReport{
		Zone:              zone,
		Description:       resp.Features[0].Attributes.ZoneSubtype,
		InsuranceRequired: isHighRiskZone(zone),
	}, nil
}

// isHighRiskZone reports whether a FEMA zone designation mandates flood
// insurance for federally backed mortgages (the A and V zone families).
func isHighRiskZone(zone string) bool {
	return strings.HasPrefix(zone, "A") || strings.HasPrefix(zone, "V")
}
