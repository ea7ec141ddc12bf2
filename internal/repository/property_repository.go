package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/vasanta-estates/listings-api/internal/database"
	"github.com/vasanta-estates/listings-api/internal/models"
	"github.com/vasanta-estates/listings-api/internal/query"
)

// ErrDuplicateSlug is returned when a slug lookup matches more than one
// row. Slugs are unique by schema constraint, so this signals a
// data-integrity violation upstream and is treated as a failure rather
// than picking one of the rows arbitrarily.
var ErrDuplicateSlug = errors.New("slug matches more than one property")

// CityCount is one distinct city with its number of listings.
type CityCount struct {
	City  string `json:"city"`
	Count int    `json:"count"`
}

// PropertyRepository defines read access to the listings store.
type PropertyRepository interface {
	// Search returns the properties matching the composed constraints,
	// newest first. An empty slice means no matches, which is not an
	// error; errors are actual store failures.
	Search(ctx context.Context, constraints []query.Constraint) ([]models.Property, error)

	// FindBySlug returns the single property with the given slug.
	// Returns nil, nil when no row matches and ErrDuplicateSlug when
	// more than one does.
	FindBySlug(ctx context.Context, slug string) (*models.Property, error)

	// ListCities returns the distinct cities that currently have
	// listings, with per-city counts, ordered by city name.
	ListCities(ctx context.Context) ([]CityCount, error)
}

// propertyRepository is the pgx-backed implementation of PropertyRepository.
type propertyRepository struct {
	db *database.Database
}

// NewPropertyRepository creates a new PropertyRepository over the given
// database.
func NewPropertyRepository(db *database.Database) PropertyRepository {
	return &propertyRepository{db: db}
}

// propertyColumns is the select list for property rows, in scan order.
const propertyColumns = `id,
	slug,
	title,
	property_type,
	price,
	status,
	city,
	locality,
	address,
	description,
	area_sqft,
	bedrooms,
	bathrooms,
	furnishing_status,
	amenities,
	agent_name,
	agent_phone,
	agent_email,
	image1, image2, image3, image4, image5,
	image6, image7, image8, image9, image10,
	listed_on,
	created_at`

// Search applies the constraint list to a properties query and executes
// it. Results always come back in created_at descending order; the sort
// is fixed, not caller-selectable.
func (r *propertyRepository) Search(ctx context.Context, constraints []query.Constraint) ([]models.Property, error) {
	sql, args := query.New(models.Property{}.TableName(), propertyColumns).
		Apply(constraints).
		OrderBy("created_at", "DESC").
		SQL()

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer rows.Close()

	properties := []models.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property row: %w", err)
		}
		properties = append(properties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating property rows: %w", err)
	}

	return properties, nil
}

// FindBySlug fetches the property with the given slug. The query is
// capped at two rows: one is the expected case, two proves a uniqueness
// violation without pulling the whole table.
func (r *propertyRepository) FindBySlug(ctx context.Context, slug string) (*models.Property, error) {
	sql, args := query.New(models.Property{}.TableName(), propertyColumns).
		Equals("slug", slug).
		Limit(2).
		SQL()

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query property by slug %q: %w", slug, err)
	}
	defer rows.Close()

	var matches []models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property row: %w", err)
		}
		matches = append(matches, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating property rows: %w", err)
	}

	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrDuplicateSlug, slug)
	}
}

// ListCities returns distinct cities with listing counts.
func (r *propertyRepository) ListCities(ctx context.Context) ([]CityCount, error) {
	sql := `SELECT city, COUNT(*) FROM properties GROUP BY city ORDER BY city`

	rows, err := r.db.Pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query cities: %w", err)
	}
	defer rows.Close()

	cities := []CityCount{}
	for rows.Next() {
		var cc CityCount
		if err := rows.Scan(&cc.City, &cc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan city row: %w", err)
		}
		cities = append(cities, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating city rows: %w", err)
	}

	return cities, nil
}

// rowScanner is the subset of pgx.Rows needed to scan one property.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanProperty reads one row in propertyColumns order.
func scanProperty(row rowScanner) (models.Property, error) {
	var p models.Property
	err := row.Scan(
		&p.ID,
		&p.Slug,
		&p.Title,
		&p.PropertyType,
		&p.Price,
		&p.Status,
		&p.City,
		&p.Locality,
		&p.Address,
		&p.Description,
		&p.AreaSqft,
		&p.Bedrooms,
		&p.Bathrooms,
		&p.FurnishingStatus,
		&p.Amenities,
		&p.AgentName,
		&p.AgentPhone,
		&p.AgentEmail,
		&p.ImageURLs[0], &p.ImageURLs[1], &p.ImageURLs[2], &p.ImageURLs[3], &p.ImageURLs[4],
		&p.ImageURLs[5], &p.ImageURLs[6], &p.ImageURLs[7], &p.ImageURLs[8], &p.ImageURLs[9],
		&p.ListedOn,
		&p.CreatedAt,
	)
	if err != nil {
		return models.Property{}, err
	}
	p.Amenities = models.NormalizeAmenities(p.Amenities)
	return p, nil
}
