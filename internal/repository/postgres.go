package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"propboard/internal/model"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// PostgresRepository handles database operations
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	// Disable prepared statement caching to avoid "unnamed prepared statement does not exist" errors
	if !strings.Contains(dsn, "?") {
		dsn += "?prefer_simple_protocol=true"
	} else {
		dsn += "&prefer_simple_protocol=true"
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute) // Shorter lifetime to avoid stale connections
	db.SetConnMaxIdleTime(2 * time.Minute) // Close idle connections sooner

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// CreateProperty inserts a property record and returns it with its ID set.
func (r *PostgresRepository) CreateProperty(ctx context.Context, p *model.Property) (*model.Property, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	query := `
		INSERT INTO properties (
			id, address, street, city, state, zip,
			value, rent, expenses, year_built, square_feet,
			bedrooms, bathrooms, tenant, public_data, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11,
			$12, $13, $14, $15, NOW(), NOW()
		)
		RETURNING created_at, updated_at
	`
	row := r.db.QueryRowxContext(ctx, query,
		p.ID, p.Address, p.Street, p.City, p.State, p.Zip,
		p.Value, p.Rent, p.Expenses, p.YearBuilt, p.SquareFeet,
		p.Bedrooms, p.Bathrooms, p.Tenant, p.PublicData,
	)
	if err := row.Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to insert property: %w", err)
	}
	return p, nil
}

// GetPropertyByID retrieves a single property. Returns nil when not found.
func (r *PostgresRepository) GetPropertyByID(ctx context.Context, id uuid.UUID) (*model.Property, error) {
	var property model.Property
	query := `
		SELECT
			id, address, street, city, state, zip,
			value, rent, expenses, year_built, square_feet,
			bedrooms, bathrooms, tenant, public_data, created_at, updated_at
		FROM properties
		WHERE id = $1
	`
	err := r.db.GetContext(ctx, &property, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return &property, nil
}

// ListProperties returns a page of properties, optionally filtered by a
// free-text query over address and tenant.
func (r *PostgresRepository) ListProperties(ctx context.Context, search string, limit, offset int) ([]model.Property, int, error) {
	// Build WHERE clause
	whereClauses := []string{"1=1"}
	args := []interface{}{}
	argIndex := 1

	if search = strings.TrimSpace(search); search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("(address ILIKE $%d OR tenant ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+search+"%")
		argIndex++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	// Count total matching records
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM properties WHERE %s", whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count properties: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT
			id, address, street, city, state, zip,
			value, rent, expenses, year_built, square_feet,
			bedrooms, bathrooms, tenant, public_data, created_at, updated_at
		FROM properties
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIndex, argIndex+1)
	args = append(args, limit, offset)

	var properties []model.Property
	if err := r.db.SelectContext(ctx, &properties, selectQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to fetch properties: %w", err)
	}

	return properties, total, nil
}

// LogCommand logs one command-bar submission and its outcome.
func (r *PostgresRepository) LogCommand(ctx context.Context, rawInput string, kind model.CommandKind, confidence float64, succeeded bool, responseTimeMs int) error {
	query := `
		INSERT INTO command_logs (id, raw_input, kind, confidence, succeeded, response_time_ms)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query, uuid.New(), rawInput, kind, confidence, succeeded, responseTimeMs)
	if err != nil {
		return fmt.Errorf("failed to log command: %w", err)
	}
	return nil
}
