package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Property represents a managed property record.
type Property struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	Address    string     `json:"address" db:"address"`
	Street     *string    `json:"street,omitempty" db:"street"`
	City       *string    `json:"city,omitempty" db:"city"`
	State      *string    `json:"state,omitempty" db:"state"`
	Zip        *string    `json:"zip,omitempty" db:"zip"`
	Value      *float64   `json:"value,omitempty" db:"value"`
	Rent       *float64   `json:"rent,omitempty" db:"rent"`
	Expenses   *float64   `json:"expenses,omitempty" db:"expenses"`
	YearBuilt  *int       `json:"year_built,omitempty" db:"year_built"`
	SquareFeet *int       `json:"square_feet,omitempty" db:"square_feet"`
	Bedrooms   *int       `json:"bedrooms,omitempty" db:"bedrooms"`
	Bathrooms  *float64   `json:"bathrooms,omitempty" db:"bathrooms"`
	Tenant     *string    `json:"tenant,omitempty" db:"tenant"`
	PublicData PublicData `json:"public_data,omitempty" db:"public_data"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}

// PropertyInput is the structured input the creation step accepts: an
// address plus whatever fields the caller already knows. Unknown fields are
// filled from aggregated public data where available.
type PropertyInput struct {
	Address    string   `json:"address" binding:"required"`
	Value      *float64 `json:"value,omitempty"`
	Rent       *float64 `json:"rent,omitempty"`
	Expenses   *float64 `json:"expenses,omitempty"`
	YearBuilt  *int     `json:"year_built,omitempty"`
	SquareFeet *int     `json:"square_feet,omitempty"`
	Bedrooms   *int     `json:"bedrooms,omitempty"`
	Bathrooms  *float64 `json:"bathrooms,omitempty"`
	Tenant     *string  `json:"tenant,omitempty"`
}

// PublicData wraps the aggregated lookup result for JSONB storage.
type PublicData struct {
	*AggregatedPropertyData
}

// Value implements driver.Valuer interface
func (p PublicData) Value() (driver.Value, error) {
	if p.AggregatedPropertyData == nil {
		return nil, nil
	}
	return json.Marshal(p.AggregatedPropertyData)
}

// Scan implements sql.Scanner interface
func (p *PublicData) Scan(value interface{}) error {
	if value == nil {
		p.AggregatedPropertyData = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("unsupported type %T for public_data", value)
		}
		bytes = []byte(s)
	}
	data := &AggregatedPropertyData{}
	if err := json.Unmarshal(bytes, data); err != nil {
		return err
	}
	p.AggregatedPropertyData = data
	return nil
}
