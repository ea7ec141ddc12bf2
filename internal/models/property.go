package models

import (
	"time"
)

// Property status values as stored in the properties table.
const (
	StatusAvailable         = "Available"
	StatusSold              = "Sold"
	StatusUnderConstruction = "Under Construction"
)

// Property type values as stored in the properties table.
const (
	TypeVilla      = "Villa"
	TypeFlat       = "Flat"
	TypePlot       = "Plot"
	TypeFarmhouse  = "Farmhouse"
	TypeCommercial = "Commercial"
)

// ImageSlots is the fixed number of image columns on a property row.
const ImageSlots = 10

// Property represents one listing row in the properties table.
// Records are created and maintained by administrative tooling; this
// service only ever reads them. All nullable columns use pointers to
// distinguish between zero values and NULL.
type Property struct {
	CreatedAt        time.Time           `json:"createdAt"`
	ListedOn         time.Time           `json:"listedOn"`
	ID               string              `json:"id"`
	Slug             string              `json:"slug"`
	Title            string              `json:"title"`
	PropertyType     string              `json:"propertyType"`
	City             string              `json:"city"`
	Locality         string              `json:"locality"`
	Address          *string             `json:"address,omitempty"`
	Description      *string             `json:"description,omitempty"`
	FurnishingStatus string              `json:"furnishingStatus"`
	Status           string              `json:"status"`
	AgentName        string              `json:"agentName"`
	AgentPhone       string              `json:"agentPhone"`
	AgentEmail       string              `json:"agentEmail"`
	Amenities        []string            `json:"amenities"`
	ImageURLs        [ImageSlots]*string `json:"imageUrls"`
	Price            int64               `json:"price"`
	AreaSqft         float64             `json:"areaSqft"`
	Bedrooms         int                 `json:"bedrooms"`
	Bathrooms        int                 `json:"bathrooms"`
}

// Images returns the defined image URLs in slot order, dropping empty
// slots. Gaps in the middle of the sequence are tolerated; relative
// order of the defined entries is preserved.
func (p *Property) Images() []string {
	images := make([]string, 0, ImageSlots)
	for _, url := range p.ImageURLs {
		if url != nil && *url != "" {
			images = append(images, *url)
		}
	}
	return images
}

// PrimaryImage returns the first defined image URL, or ok=false when the
// record has no images at all. Card views fall back to a placeholder.
func (p *Property) PrimaryImage() (string, bool) {
	for _, url := range p.ImageURLs {
		if url != nil && *url != "" {
			return *url, true
		}
	}
	return "", false
}

// TableName returns the table backing Property rows.
func (Property) TableName() string {
	return "properties"
}
