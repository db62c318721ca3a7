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

// AttomClient talks to the ATTOM property data API. It covers the tax,
// market, and sales categories.
type AttomClient struct {
	config     *config.SourceConfig
	httpClient *http.Client
}

// NewAttomClient creates a new ATTOM API client
func NewAttomClient(cfg *config.SourceConfig, timeout time.Duration) *AttomClient {
	return &AttomClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// IsEnabled returns whether the client has a credential configured
func (c *AttomClient) IsEnabled() bool {
	return c.config.Enabled
}

type attomAssessmentResponse struct {
	Property []struct {
		Identifier struct {
			ParcelID string `json:"apn"`
		} `json:"identifier"`
		Assessment struct {
			Assessed struct {
				Total       *float64 `json:"assdttlvalue"`
				Land        *float64 `json:"assdlandvalue"`
				Improvement *float64 `json:"assdimprvalue"`
			} `json:"assessed"`
			Tax struct {
				Amount *float64 `json:"taxamt"`
				Year   *int     `json:"taxyear"`
			} `json:"tax"`
		} `json:"assessment"`
	} `json:"property"`
}

// FetchTax retrieves the assessor record for an address.
func (c *AttomClient) FetchTax(ctx context.Context, addr model.ParsedAddress) (*model.TaxRecord, error) {
	var resp attomAssessmentResponse
	if err := c.get(ctx, "/assessment/detail", addr, &resp); err != nil {
		return nil, err
	}
	if len(resp.Property) == 0 {
		return nil, ErrNoData
	}

	p := resp.Property[0]
	record := &model.TaxRecord{
		AssessedValue:    p.Assessment.Assessed.Total,
		LandValue:        p.Assessment.Assessed.Land,
		ImprovementValue: p.Assessment.Assessed.Improvement,
		AnnualTax:        p.Assessment.Tax.Amount,
		TaxYear:          p.Assessment.Tax.Year,
	}
	if p.Identifier.ParcelID != "" {
		record.ParcelID = &p.Identifier.ParcelID
	}
	return record, nil
}

type attomValuationResponse struct {
	Property []struct {
		Avm struct {
			Amount struct {
				Value *float64 `json:"value"`
			} `json:"amount"`
			EventDate string `json:"eventdate"`
		} `json:"avm"`
		Rental struct {
			Estimate *float64 `json:"estimate"`
		} `json:"rental"`
		Building struct {
			Size struct {
				SqFt *float64 `json:"livingsize"`
			} `json:"size"`
		} `json:"building"`
	} `json:"property"`
}

// FetchMarket retrieves the automated valuation and rent estimate.
func (c *AttomClient) FetchMarket(ctx context.Context, addr model.ParsedAddress) (*model.MarketRecord, error) {
	var resp attomValuationResponse
	if err := c.get(ctx, "/attomavm/detail", addr, &resp); err != nil {
		return nil, err
	}
	if len(resp.Property) == 0 {
		return nil, ErrNoData
	}

	p := resp.Property[0]
	record := &model.MarketRecord{
		EstimatedValue: p.Avm.Amount.Value,
		RentEstimate:   p.Rental.Estimate,
	}
	if p.Avm.Amount.Value != nil && p.Building.Size.SqFt != nil && *p.Building.Size.SqFt > 0 {
		ppsf := *p.Avm.Amount.Value / *p.Building.Size.SqFt
		record.PricePerSqft = &ppsf
	}
	if t, err := time.Parse("2006-01-02", p.Avm.EventDate); err == nil {
		record.AsOf = &t
	}
	return record, nil
}

type attomSalesResponse struct {
	Property []struct {
		SaleHistory []struct {
			SaleTransDate string   `json:"saleTransDate"`
			Amount        *float64 `json:"saleAmt"`
			DeedType      string   `json:"deedType"`
		} `json:"salehistory"`
	} `json:"property"`
}

// FetchSales retrieves the recorded transfer history.
func (c *AttomClient) FetchSales(ctx context.Context, addr model.ParsedAddress) (*model.SalesHistory, error) {
	var resp attomSalesResponse
	if err := c.get(ctx, "/saleshistory/detail", addr, &resp); err != nil {
		return nil, err
	}
	if len(resp.Property) == 0 || len(resp.Property[0].SaleHistory) == 0 {
		return nil, ErrNoData
	}

	history := &model.SalesHistory{}
	for _, s := range resp.Property[0].SaleHistory {
		event := model.SaleEvent{
			Price:    s.Amount,
			DeedType: s.DeedType,
		}
		if t, err := time.Parse("2006-01-02", s.SaleTransDate); err == nil {
			event.Date = &t
		}
		history.Sales = append(history.Sales, event)
	}
	return history, nil
}

// get performs a keyed GET against an ATTOM endpoint with address params.
func (c *AttomClient) get(ctx context.Context, path string, addr model.ParsedAddress, target interface{}) error {
	if !c.config.Enabled {
		return ErrUnconfigured
	}

	params := url.Values{}
	params.Set("address1", addr.Street)
	locality := addr.City
	if addr.State != "" {
		locality += ", " + addr.State
	}
	if addr.Zip != "" {
		locality += " " + addr.Zip
	}
	params.Set("address2", locality)

	endpoint := fmt.Sprintf("%s%s?%s", c.config.BaseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNoData
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	return decodeJSON(resp, target)
}
