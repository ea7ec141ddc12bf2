package models

// BedroomsFivePlus is the literal bedrooms value meaning "5 or more".
const BedroomsFivePlus = "5+"

// FilterCriteria is one immutable snapshot of the search and filter
// selection for the listing view. Every field is independently optional;
// the empty string means "no constraint on this field", so the zero value
// matches the entire collection. Snapshots are replaced wholesale on every
// edit, never merged.
//
// Price bounds and bedrooms are carried as strings because they arrive
// straight from form inputs; parsing happens in the query composer, which
// drops a bound it cannot parse rather than failing the whole query. The
// free-text search term is the one field with a binding rule: it feeds an
// ILIKE pattern, so its length is capped at input.
type FilterCriteria struct {
	Search       string `form:"search" json:"search" binding:"omitempty,max=120"`
	City         string `form:"city" json:"city"`
	PropertyType string `form:"property_type" json:"propertyType"`
	Status       string `form:"status" json:"status"`
	MinPrice     string `form:"min_price" json:"minPrice"`
	MaxPrice     string `form:"max_price" json:"maxPrice"`
	Bedrooms     string `form:"bedrooms" json:"bedrooms"`
}

// IsEmpty reports whether no field carries a constraint.
func (f FilterCriteria) IsEmpty() bool {
	return f == FilterCriteria{}
}
