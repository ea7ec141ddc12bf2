package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/vasanta-estates/listings-api/internal/cache"
	"github.com/vasanta-estates/listings-api/internal/logger"
	"github.com/vasanta-estates/listings-api/internal/models"
	"github.com/vasanta-estates/listings-api/internal/query"
	"github.com/vasanta-estates/listings-api/internal/repository"
)

// Service-level errors.
var (
	// ErrPropertyNotFound means a slug matched no record. This is a
	// distinct user-visible state, not a transport failure.
	ErrPropertyNotFound = errors.New("property not found")
	// ErrSlugConflict means a slug matched more than one record, which
	// violates the store's uniqueness invariant.
	ErrSlugConflict = errors.New("slug is not unique in the listings store")
)

// PropertyService defines the business operations over listings.
type PropertyService interface {
	// SearchProperties returns the listings matching a filter snapshot,
	// newest first. An empty result set is valid and distinct from an
	// error. Numeric bounds that fail to parse are dropped with a
	// warning rather than failing the search.
	SearchProperties(ctx context.Context, criteria models.FilterCriteria) ([]models.Property, error)

	// GetPropertyBySlug returns exactly one listing.
	// Returns ErrPropertyNotFound for zero matches and ErrSlugConflict
	// when the slug resolves ambiguously.
	GetPropertyBySlug(ctx context.Context, slug string) (*models.Property, error)

	// ListCities returns the distinct cities with listings.
	ListCities(ctx context.Context) ([]repository.CityCount, error)
}

// propertyService is the concrete implementation of PropertyService.
type propertyService struct {
	repo  repository.PropertyRepository
	cache *cache.ListingCache
	log   *logger.Logger
}

// NewPropertyService creates a PropertyService. The cache may be nil,
// which disables it.
func NewPropertyService(repo repository.PropertyRepository, listingCache *cache.ListingCache, log *logger.Logger) PropertyService {
	return &propertyService{
		repo:  repo,
		cache: listingCache,
		log:   log,
	}
}

// SearchProperties composes the criteria into constraints, consults the
// cache, and falls through to the store on a miss. Cache failures are
// logged and otherwise ignored; the store remains the source of truth.
func (s *propertyService) SearchProperties(ctx context.Context, criteria models.FilterCriteria) ([]models.Property, error) {
	constraints, dropped := query.Compose(criteria)
	for _, field := range dropped {
		s.log.Warn("Dropping malformed filter bound", map[string]interface{}{
			"field": field,
		})
	}

	if cached, hit, err := s.cache.Get(ctx, criteria); err != nil {
		s.log.Warn("Listing cache read failed", map[string]interface{}{
			"error": err.Error(),
		})
	} else if hit {
		s.log.Debug("Listing cache hit", map[string]interface{}{
			"count": len(cached),
		})
		return cached, nil
	}

	s.log.Info("Searching properties", map[string]interface{}{
		"constraints": len(constraints),
	})

	properties, err := s.repo.Search(ctx, constraints)
	if err != nil {
		s.log.Error("Failed to search properties", err, map[string]interface{}{
			"constraints": len(constraints),
		})
		return nil, fmt.Errorf("failed to search properties: %w", err)
	}

	if err := s.cache.Set(ctx, criteria, properties); err != nil {
		s.log.Warn("Listing cache write failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	s.log.Info("Properties found", map[string]interface{}{
		"count": len(properties),
	})

	return properties, nil
}

// GetPropertyBySlug fetches one listing by its public slug, translating
// repository outcomes into the service's sentinel errors.
func (s *propertyService) GetPropertyBySlug(ctx context.Context, slug string) (*models.Property, error) {
	s.log.Info("Fetching property", map[string]interface{}{
		"slug": slug,
	})

	property, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateSlug) {
			s.log.Error("Slug uniqueness violated in listings store", err, map[string]interface{}{
				"slug": slug,
			})
			return nil, fmt.Errorf("%w: %q", ErrSlugConflict, slug)
		}
		s.log.Error("Failed to fetch property", err, map[string]interface{}{
			"slug": slug,
		})
		return nil, fmt.Errorf("failed to fetch property: %w", err)
	}

	if property == nil {
		s.log.Debug("No property for slug", map[string]interface{}{
			"slug": slug,
		})
		return nil, ErrPropertyNotFound
	}

	return property, nil
}

// ListCities returns the distinct cities that currently have listings.
func (s *propertyService) ListCities(ctx context.Context) ([]repository.CityCount, error) {
	cities, err := s.repo.ListCities(ctx)
	if err != nil {
		s.log.Error("Failed to list cities", err, nil)
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	return cities, nil
}
