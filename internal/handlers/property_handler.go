package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	apierrors "github.com/vasanta-estates/listings-api/internal/errors"
	"github.com/vasanta-estates/listings-api/internal/middleware"
	"github.com/vasanta-estates/listings-api/internal/models"
	"github.com/vasanta-estates/listings-api/internal/services"
)

// PropertyHandler handles listing and detail HTTP requests.
type PropertyHandler struct {
	service services.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler instance.
func NewPropertyHandler(service services.PropertyService) *PropertyHandler {
	return &PropertyHandler{
		service: service,
	}
}

// ListResponse is the response for the listing endpoint.
type ListResponse struct {
	Properties []PropertySummary `json:"properties"`
	Count      int               `json:"count"`
}

// PropertySummary is the card-level view of a listing.
type PropertySummary struct {
	ID           string  `json:"id"`
	Slug         string  `json:"slug"`
	Title        string  `json:"title"`
	PropertyType string  `json:"propertyType"`
	Status       string  `json:"status"`
	City         string  `json:"city"`
	Locality     string  `json:"locality"`
	Image        string  `json:"image,omitempty"`
	PriceDisplay string  `json:"priceDisplay"`
	Price        int64   `json:"price"`
	AreaSqft     float64 `json:"areaSqft"`
	Bedrooms     int     `json:"bedrooms"`
	Bathrooms    int     `json:"bathrooms"`
}

// DetailResponse is the response for the detail endpoint.
type DetailResponse struct {
	Property PropertyDetail `json:"property"`
}

// PropertyDetail is the full view of a listing.
type PropertyDetail struct {
	ID               string        `json:"id"`
	Slug             string        `json:"slug"`
	Title            string        `json:"title"`
	PropertyType     string        `json:"propertyType"`
	Status           string        `json:"status"`
	City             string        `json:"city"`
	Locality         string        `json:"locality"`
	Address          string        `json:"address,omitempty"`
	Description      string        `json:"description,omitempty"`
	FurnishingStatus string        `json:"furnishingStatus"`
	PriceDisplay     string        `json:"priceDisplay"`
	Images           []string      `json:"images"`
	Amenities        []AmenityItem `json:"amenities"`
	Agent            AgentInfo     `json:"agent"`
	ListedOn         string        `json:"listedOn"`
	Price            int64         `json:"price"`
	AreaSqft         float64       `json:"areaSqft"`
	Bedrooms         int           `json:"bedrooms"`
	Bathrooms        int           `json:"bathrooms"`
}

// AmenityItem pairs an amenity label with its display icon identifier.
type AmenityItem struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// AgentInfo is the listing agent's contact block, taken verbatim from the
// record. Contact details are per-record data; nothing is hardcoded here.
type AgentInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// CitiesResponse is the response for the cities endpoint.
type CitiesResponse struct {
	Cities []CityInfo `json:"cities"`
	Count  int        `json:"count"`
}

// CityInfo is one distinct city with its listing count.
type CityInfo struct {
	City  string `json:"city"`
	Count int    `json:"count"`
}

// List handles GET /api/v1/properties. Query parameters map one-to-one
// onto the filter snapshot; absent parameters mean no constraint, so a
// bare request returns the whole collection newest-first. The city
// parameter doubles as the pre-applied seed for /properties?city=X links.
func (h *PropertyHandler) List(c *gin.Context) {
	var criteria models.FilterCriteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		// Check if it's a validation error
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		// Generic bad request for other binding errors
		apierrors.BadRequest(c, "Invalid query parameters", nil)
		return
	}

	if log := middleware.GetLogger(c); log != nil {
		log.Info("Processing listing search", map[string]interface{}{
			"criteria_empty": criteria.IsEmpty(),
		})
	}

	properties, err := h.service.SearchProperties(c.Request.Context(), criteria)
	if err != nil {
		apierrors.QueryTransport(c, "Failed to load listings", err)
		return
	}

	summaries := make([]PropertySummary, 0, len(properties))
	for i := range properties {
		summaries = append(summaries, mapPropertyToSummary(&properties[i]))
	}

	c.JSON(http.StatusOK, ListResponse{
		Properties: summaries,
		Count:      len(summaries),
	})
}

// Detail handles GET /api/v1/properties/:slug.
func (h *PropertyHandler) Detail(c *gin.Context) {
	slug := c.Param("slug")

	property, err := h.service.GetPropertyBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, services.ErrPropertyNotFound) {
			apierrors.NotFound(c, "This property does not exist or was removed")
			return
		}
		if errors.Is(err, services.ErrSlugConflict) {
			apierrors.InternalServerError(c, "Listing data is inconsistent", err)
			return
		}
		apierrors.QueryTransport(c, "Failed to load property details", err)
		return
	}

	c.JSON(http.StatusOK, DetailResponse{
		Property: mapPropertyToDetail(property),
	})
}

// Cities handles GET /api/v1/cities.
func (h *PropertyHandler) Cities(c *gin.Context) {
	cities, err := h.service.ListCities(c.Request.Context())
	if err != nil {
		apierrors.QueryTransport(c, "Failed to load cities", err)
		return
	}

	infos := make([]CityInfo, 0, len(cities))
	for _, city := range cities {
		infos = append(infos, CityInfo{City: city.City, Count: city.Count})
	}

	c.JSON(http.StatusOK, CitiesResponse{
		Cities: infos,
		Count:  len(infos),
	})
}

// mapPropertyToSummary converts a Property to its card-level DTO.
func mapPropertyToSummary(p *models.Property) PropertySummary {
	summary := PropertySummary{
		ID:           p.ID,
		Slug:         p.Slug,
		Title:        p.Title,
		PropertyType: p.PropertyType,
		Status:       p.Status,
		City:         p.City,
		Locality:     p.Locality,
		Price:        p.Price,
		PriceDisplay: models.FormatPriceShort(p.Price),
		AreaSqft:     p.AreaSqft,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
	}
	if image, ok := p.PrimaryImage(); ok {
		summary.Image = image
	}
	return summary
}

// mapPropertyToDetail converts a Property to its full DTO, resolving
// image slots and amenity icons.
func mapPropertyToDetail(p *models.Property) PropertyDetail {
	detail := PropertyDetail{
		ID:               p.ID,
		Slug:             p.Slug,
		Title:            p.Title,
		PropertyType:     p.PropertyType,
		Status:           p.Status,
		City:             p.City,
		Locality:         p.Locality,
		FurnishingStatus: p.FurnishingStatus,
		Price:            p.Price,
		PriceDisplay:     models.FormatPrice(p.Price),
		Images:           p.Images(),
		ListedOn:         p.ListedOn.Format(time.DateOnly),
		AreaSqft:         p.AreaSqft,
		Bedrooms:         p.Bedrooms,
		Bathrooms:        p.Bathrooms,
		Agent: AgentInfo{
			Name:  p.AgentName,
			Phone: p.AgentPhone,
			Email: p.AgentEmail,
		},
	}
	if p.Address != nil {
		detail.Address = *p.Address
	}
	if p.Description != nil {
		detail.Description = *p.Description
	}

	detail.Amenities = make([]AmenityItem, 0, len(p.Amenities))
	for _, amenity := range p.Amenities {
		detail.Amenities = append(detail.Amenities, AmenityItem{
			Label: amenity,
			Icon:  models.AmenityIcon(amenity),
		})
	}

	return detail
}
