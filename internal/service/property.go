package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"propboard/internal/model"
	"propboard/internal/repository"

	"github.com/google/uuid"
)

// PropertyService handles property business logic: the user-confirmed
// creation step, and the list/search queries the dashboard tabs use.
type PropertyService struct {
	repo       *repository.PostgresRepository
	aggregator *AggregationCoordinator
}

// NewPropertyService creates a new property service
func NewPropertyService(repo *repository.PostgresRepository, aggregator *AggregationCoordinator) *PropertyService {
	return &PropertyService{
		repo:       repo,
		aggregator: aggregator,
	}
}

// Create runs the public-data aggregation for the input address, merges the
// caller's known fields over the aggregated values, and persists the
// property. This is the confirmed step after address detection; it is the
// only place aggregation feeds a stored record.
func (s *PropertyService) Create(ctx context.Context, input *model.PropertyInput) (*model.Property, error) {
	address := strings.TrimSpace(input.Address)
	if address == "" {
		return nil, fmt.Errorf("address is required")
	}

	publicData := s.aggregator.Aggregate(ctx, address)

	parsed := model.ParseAddress(address)
	property := &model.Property{
		Address:    address,
		Value:      input.Value,
		Rent:       input.Rent,
		Expenses:   input.Expenses,
		YearBuilt:  input.YearBuilt,
		SquareFeet: input.SquareFeet,
		Bedrooms:   input.Bedrooms,
		Bathrooms:  input.Bathrooms,
		Tenant:     input.Tenant,
		PublicData: model.PublicData{AggregatedPropertyData: publicData},
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if parsed.Street != "" {
		property.Street = &parsed.Street
	}
	if parsed.City != "" {
		property.City = &parsed.City
	}
	if parsed.State != "" {
		property.State = &parsed.State
	}
	if parsed.Zip != "" {
		property.Zip = &parsed.Zip
	}

	mergePublicData(property, publicData)

	created, err := s.repo.CreateProperty(ctx, property)
	if err != nil {
		return nil, fmt.Errorf("failed to create property: %w", err)
	}
	return created, nil
}

// Get retrieves a single property by ID.
func (s *PropertyService) Get(ctx context.Context, id uuid.UUID) (*model.Property, error) {
	return s.repo.GetPropertyByID(ctx, id)
}

// List returns properties matching an optional free-text query.
func (s *PropertyService) List(ctx context.Context, query string, limit, offset int) ([]model.Property, int, error) {
	return s.repo.ListProperties(ctx, query, limit, offset)
}

// Lookup runs the aggregation pipeline for an address without creating
// anything.
func (s *PropertyService) Lookup(ctx context.Context, address string) *model.AggregatedPropertyData {
	return s.aggregator.Aggregate(ctx, address)
}

// mergePublicData fills fields the caller did not supply from aggregated
// data. Explicit input always wins; the market estimate beats the assessed
// value for the property's value.
func mergePublicData(property *model.Property, data *model.AggregatedPropertyData) {
	if data == nil {
		return
	}
	if property.Value == nil && data.Market != nil && data.Market.EstimatedValue != nil {
		property.Value = data.Market.EstimatedValue
	}
	if property.Value == nil && data.Tax != nil && data.Tax.AssessedValue != nil {
		property.Value = data.Tax.AssessedValue
	}
	if property.Rent == nil && data.Market != nil && data.Market.RentEstimate != nil {
		property.Rent = data.Market.RentEstimate
	}
}
