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

// CountyClient talks to a Socrata-style county open-data portal. It covers
// permits, violations, and zoning, and serves as the fallback tax source
// when the primary assessor API fails.
type CountyClient struct {
	config     *config.SourceConfig
	httpClient *http.Client
}

// NewCountyClient creates a new county open-data client
func NewCountyClient(cfg *config.SourceConfig, timeout time.Duration) *CountyClient {
	return &CountyClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// IsEnabled returns whether a portal base URL is configured
func (c *CountyClient) IsEnabled() bool {
	return c.config.Enabled
}

type countyAssessmentRow struct {
	ParcelID      string   `json:"parcel_id"`
	AssessedTotal *float64 `json:"av_total,string,omitempty"`
	AssessedLand  *float64 `json:"av_land,string,omitempty"`
	AssessedBldg  *float64 `json:"av_bldg,string,omitempty"`
	GrossTax      *float64 `json:"gross_tax,string,omitempty"`
	FiscalYear    *int     `json:"fiscal_year,string,omitempty"`
}

// FetchTax retrieves the county assessment roll entry for an address.
func (c *CountyClient) FetchTax(ctx context.Context, addr model.ParsedAddress) (*model.TaxRecord, error) {
	var rows []countyAssessmentRow
	if err := c.query(ctx, "assessments.json", addr, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoData
	}

	row := rows[0]
	record := &model.TaxRecord{
		AssessedValue:    row.AssessedTotal,
		LandValue:        row.AssessedLand,
		ImprovementValue: row.AssessedBldg,
		AnnualTax:        row.GrossTax,
		TaxYear:          row.FiscalYear,
	}
	if row.ParcelID != "" {
		record.ParcelID = &row.ParcelID
	}
	return record, nil
}

type countyPermitRow struct {
	PermitNumber string   `json:"permitnumber"`
	WorkType     string   `json:"worktype"`
	Description  string   `json:"description"`
	Status       string   `json:"status"`
	IssuedDate   string   `json:"issued_date"`
	DeclaredVal  *float64 `json:"declared_valuation,string,omitempty"`
}

// FetchPermits retrieves building permits on file for an address.
func (c *CountyClient) FetchPermits(ctx context.Context, addr model.ParsedAddress) (*model.PermitHistory, error) {
	var rows []countyPermitRow
	if err := c.query(ctx, "building-permits.json", addr, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoData
	}

	history := &model.PermitHistory{}
	for _, row := range rows {
		permit := model.Permit{
			Number:      row.PermitNumber,
			Type:        row.WorkType,
			Description: row.Description,
			Status:      row.Status,
			Valuation:   row.DeclaredVal,
		}
		if t, err := time.Parse(time.RFC3339, row.IssuedDate); err == nil {
			permit.IssuedDate = &t
		}
		history.Permits = append(history.Permits, permit)
	}
	return history, nil
}

type countyViolationRow struct {
	CaseNumber  string `json:"case_no"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Status      string `json:"status"`
	OpenedDate  string `json:"status_dttm"`
}

// FetchViolations retrieves code-enforcement cases for an address.
func (c *CountyClient) FetchViolations(ctx context.Context, addr model.ParsedAddress) (*model.ViolationHistory, error) {
	var rows []countyViolationRow
	if err := c.query(ctx, "code-violations.json", addr, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoData
	}

	history := &model.ViolationHistory{}
	for _, row := range rows {
		violation := model.Violation{
			CaseNumber:  row.CaseNumber,
			Type:        row.Code,
			Description: row.Description,
			Status:      row.Status,
		}
		if t, err := time.Parse(time.RFC3339, row.OpenedDate); err == nil {
			violation.OpenedDate = &t
		}
		history.Violations = append(history.Violations, violation)
	}
	return history, nil
}

type countyZoningRow struct {
	ZoningCode string `json:"zoning"`
	District   string `json:"district_name"`
	LandUse    string `json:"land_use"`
}

// FetchZoning retrieves the zoning designation for an address.
func (c *CountyClient) FetchZoning(ctx context.Context, addr model.ParsedAddress) (*model.ZoningReport, error) {
	var rows []countyZoningRow
	if err := c.query(ctx, "zoning.json", addr, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 || rows[0].ZoningCode == "" {
		return nil, ErrNoData
	}

	return &model.ZoningReport{
		Code:        rows[0].ZoningCode,
		Description: rows[0].District,
		AllowedUse:  rows[0].LandUse,
	}, nil
}

// query performs an address-filtered dataset query against the portal.
func (c *CountyClient) query(ctx context.Context, dataset string, addr model.ParsedAddress, target interface{}) error {
	if !c.config.Enabled {
		return ErrUnconfigured
	}

	params := url.Values{}
	params.Set("address", addr.Street)
	if addr.Zip != "" {
		params.Set("zip", addr.Zip)
	}
	endpoint := fmt.Sprintf("%s/%s?%s", c.config.BaseURL, dataset, params.Encode())

	return getJSON(ctx, c.httpClient, endpoint, target)
}
