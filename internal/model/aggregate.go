package model

import "time"

// Category identifies one public-data category in the aggregation pipeline.
type Category string

const (
	CategoryTax          Category = "tax"
	CategoryMarket       Category = "market"
	CategoryPermits      Category = "permits"
	CategoryViolations   Category = "violations"
	CategorySales        Category = "sales"
	CategoryDemographics Category = "demographics"
	CategorySchools      Category = "schools"
	CategoryCrime        Category = "crime"
	CategoryWalkScore    Category = "walkscore"
	CategoryFloodZone    Category = "floodzone"
	CategoryZoning       Category = "zoning"
)

// Categories lists every category in merge order. The coordinator uses this
// to report outcomes deterministically regardless of completion order.
var Categories = []Category{
	CategoryTax, CategoryMarket, CategoryPermits, CategoryViolations,
	CategorySales, CategoryDemographics, CategorySchools, CategoryCrime,
	CategoryWalkScore, CategoryFloodZone, CategoryZoning,
}

// CategoryRecord is the tagged union over per-category record types. Each
// record reports its own category so the merge step can map any settled
// fetch back to its slot.
type CategoryRecord interface {
	Category() Category
}

// TaxRecord holds assessor data for a parcel.
type TaxRecord struct {
	AssessedValue    *float64 `json:"assessed_value,omitempty"`
	LandValue        *float64 `json:"land_value,omitempty"`
	ImprovementValue *float64 `json:"improvement_value,omitempty"`
	AnnualTax        *float64 `json:"annual_tax,omitempty"`
	TaxYear          *int     `json:"tax_year,omitempty"`
	ParcelID         *string  `json:"parcel_id,omitempty"`
}

// MarketRecord holds valuation and rent estimates.
type MarketRecord struct {
	EstimatedValue *float64   `json:"estimated_value,omitempty"`
	RentEstimate   *float64   `json:"rent_estimate,omitempty"`
	PricePerSqft   *float64   `json:"price_per_sqft,omitempty"`
	AsOf           *time.Time `json:"as_of,omitempty"`
}

// Permit is a single building permit on file.
type Permit struct {
	Number      string     `json:"number"`
	Type        string     `json:"type,omitempty"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status,omitempty"`
	IssuedDate  *time.Time `json:"issued_date,omitempty"`
	Valuation   *float64   `json:"valuation,omitempty"`
}

// PermitHistory holds the permits on file for a parcel.
type PermitHistory struct {
	Permits []Permit `json:"permits"`
}

// Violation is a single open or closed code-enforcement case.
type Violation struct {
	CaseNumber  string     `json:"case_number"`
	Type        string     `json:"type,omitempty"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status,omitempty"`
	OpenedDate  *time.Time `json:"opened_date,omitempty"`
}

// ViolationHistory holds code-enforcement cases for a parcel.
type ViolationHistory struct {
	Violations []Violation `json:"violations"`
}

// SaleEvent is a single recorded transfer.
type SaleEvent struct {
	Date     *time.Time `json:"date,omitempty"`
	Price    *float64   `json:"price,omitempty"`
	DeedType string     `json:"deed_type,omitempty"`
}

// SalesHistory holds recorded transfers for a parcel.
type SalesHistory struct {
	Sales []SaleEvent `json:"sales"`
}

// Demographics holds census data for the surrounding area.
type Demographics struct {
	Population       *int     `json:"population,omitempty"`
	MedianIncome     *float64 `json:"median_income,omitempty"`
	MedianAge        *float64 `json:"median_age,omitempty"`
	OwnerOccupiedPct *float64 `json:"owner_occupied_pct,omitempty"`
	MedianHomeValue  *float64 `json:"median_home_value,omitempty"`
}

// School is a single nearby school.
type School struct {
	Name          string   `json:"name"`
	Level         string   `json:"level,omitempty"`
	Rating        *float64 `json:"rating,omitempty"`
	DistanceMiles *float64 `json:"distance_miles,omitempty"`
}

// SchoolReport holds nearby schools and their ratings.
type SchoolReport struct {
	Schools []School `json:"schools"`
}

// CrimeReport holds area crime statistics.
type CrimeReport struct {
	IncidentsPerThousand *float64 `json:"incidents_per_thousand,omitempty"`
	ViolentRate          *float64 `json:"violent_rate,omitempty"`
	PropertyRate         *float64 `json:"property_rate,omitempty"`
	Grade                string   `json:"grade,omitempty"`
}

// WalkScoreReport holds walkability scores.
type WalkScoreReport struct {
	WalkScore    *int   `json:"walk_score,omitempty"`
	TransitScore *int   `json:"transit_score,omitempty"`
	BikeScore    *int   `json:"bike_score,omitempty"`
	Description  string `json:"description,omitempty"`
}

// FloodZoneReport holds the FEMA flood designation.
type FloodZoneReport struct {
	Zone              string `json:"zone"`
	Description       string `json:"description,omitempty"`
	InsuranceRequired bool   `json:"insurance_required"`
}

// ZoningReport holds the zoning designation for a parcel.
type ZoningReport struct {
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
	AllowedUse  string `json:"allowed_use,omitempty"`
}

func (*TaxRecord) Category() Category        { return CategoryTax }
func (*MarketRecord) Category() Category     { return CategoryMarket }
func (*PermitHistory) Category() Category    { return CategoryPermits }
func (*ViolationHistory) Category() Category { return CategoryViolations }
func (*SalesHistory) Category() Category     { return CategorySales }
func (*Demographics) Category() Category     { return CategoryDemographics }
func (*SchoolReport) Category() Category     { return CategorySchools }
func (*CrimeReport) Category() Category      { return CategoryCrime }
func (*WalkScoreReport) Category() Category  { return CategoryWalkScore }
func (*FloodZoneReport) Category() Category  { return CategoryFloodZone }
func (*ZoningReport) Category() Category     { return CategoryZoning }

// OutcomeStatus records whether a source query settled fulfilled or failed.
type OutcomeStatus string

const (
	OutcomeFulfilled OutcomeStatus = "fulfilled"
	OutcomeFailed    OutcomeStatus = "failed"
)

// SourceOutcome is the per-category diagnostic record. A failed outcome
// always carries an error message; a fulfilled one never does.
type SourceOutcome struct {
	SourceID string        `json:"source_id"`
	Category Category      `json:"category"`
	Status   OutcomeStatus `json:"status"`
	Error    string        `json:"error,omitempty"`
	TookMs   int64         `json:"took_ms"`
}

// AggregatedPropertyData is the best-effort merged result of one address
// lookup. A category whose source failed or is unconfigured is simply nil;
// Outcomes records why.
type AggregatedPropertyData struct {
	Address      string            `json:"address"`
	Tax          *TaxRecord        `json:"tax,omitempty"`
	Market       *MarketRecord     `json:"market,omitempty"`
	Permits      *PermitHistory    `json:"permits,omitempty"`
	Violations   *ViolationHistory `json:"violations,omitempty"`
	Sales        *SalesHistory     `json:"sales,omitempty"`
	Demographics *Demographics     `json:"demographics,omitempty"`
	Schools      *SchoolReport     `json:"schools,omitempty"`
	Crime        *CrimeReport      `json:"crime,omitempty"`
	WalkScore    *WalkScoreReport  `json:"walkscore,omitempty"`
	FloodZone    *FloodZoneReport  `json:"floodzone,omitempty"`
	Zoning       *ZoningReport     `json:"zoning,omitempty"`
	Outcomes     []SourceOutcome   `json:"outcomes,omitempty"`
	FetchedAt    time.Time         `json:"fetched_at"`
}

// Attach stores a fulfilled record under its category slot.
func (a *AggregatedPropertyData) Attach(rec CategoryRecord) {
	switch v := rec.(type) {
	case *TaxRecord:
		a.Tax = v
	case *MarketRecord:
		a.Market = v
	case *PermitHistory:
		a.Permits = v
	case *ViolationHistory:
		a.Violations = v
	case *SalesHistory:
		a.Sales = v
	case *Demographics:
		a.Demographics = v
	case *SchoolReport:
		a.Schools = v
	case *CrimeReport:
		a.Crime = v
	case *WalkScoreReport:
		a.WalkScore = v
	case *FloodZoneReport:
		a.FloodZone = v
	case *ZoningReport:
		a.Zoning = v
	}
}

// Has reports whether a category made it into the merged result.
func (a *AggregatedPropertyData) Has(cat Category) bool {
	switch cat {
	case CategoryTax:
		return a.Tax != nil
	case CategoryMarket:
		return a.Market != nil
	case CategoryPermits:
		return a.Permits != nil
	case CategoryViolations:
		return a.Violations != nil
	case CategorySales:
		return a.Sales != nil
	case CategoryDemographics:
		return a.Demographics != nil
	case CategorySchools:
		return a.Schools != nil
	case CategoryCrime:
		return a.Crime != nil
	case CategoryWalkScore:
		return a.WalkScore != nil
	case CategoryFloodZone:
		return a.FloodZone != nil
	case CategoryZoning:
		return a.Zoning != nil
	}
	return false
}

// CategoryCount returns how many categories are present.
func (a *AggregatedPropertyData) CategoryCount() int {
	n := 0
	for _, cat := range Categories {
		if a.Has(cat) {
			n++
		}
	}
	return n
}
