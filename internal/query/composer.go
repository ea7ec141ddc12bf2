package query

import (
	"strconv"

	"github.com/vasanta-estates/listings-api/internal/models"
)

// Op identifies the kind of predicate a Constraint applies.
type Op string

const (
	// OpEquals matches rows where a column equals a value exactly.
	OpEquals Op = "eq"
	// OpGreaterOrEqual matches rows where a numeric column is >= a value.
	OpGreaterOrEqual Op = "gte"
	// OpLessOrEqual matches rows where a numeric column is <= a value.
	OpLessOrEqual Op = "lte"
	// OpSubstringAny matches rows where any of several text columns
	// contains a value, case-insensitively and unanchored.
	OpSubstringAny Op = "ilike_any"
)

// Constraint is a single predicate against the properties collection.
// Field names one column, except for OpSubstringAny where Fields names
// the columns the substring may appear in.
type Constraint struct {
	Arg    any
	Op     Op
	Field  string
	Fields []string
}

// Compose translates a filter snapshot into the ordered predicate list to
// apply to a properties query, all predicates combined with AND. It is a
// pure function: the same criteria always yield the same list, in the
// same order, with no I/O.
//
// A numeric bound that fails to parse is dropped rather than propagated;
// the names of dropped fields come back in the second return so callers
// can log a warning. The empty criteria produce an empty list, which the
// builder renders as the unconstrained full-collection query.
func Compose(f models.FilterCriteria) ([]Constraint, []string) {
	var (
		constraints []Constraint
		dropped     []string
	)

	if f.Search != "" {
		constraints = append(constraints, Constraint{
			Op:     OpSubstringAny,
			Fields: []string{"title", "locality", "city"},
			Arg:    f.Search,
		})
	}
	if f.City != "" {
		constraints = append(constraints, Constraint{Op: OpEquals, Field: "city", Arg: f.City})
	}
	if f.PropertyType != "" {
		constraints = append(constraints, Constraint{Op: OpEquals, Field: "property_type", Arg: f.PropertyType})
	}
	if f.MinPrice != "" {
		if n, err := strconv.ParseInt(f.MinPrice, 10, 64); err == nil {
			constraints = append(constraints, Constraint{Op: OpGreaterOrEqual, Field: "price", Arg: n})
		} else {
			dropped = append(dropped, "min_price")
		}
	}
	if f.MaxPrice != "" {
		if n, err := strconv.ParseInt(f.MaxPrice, 10, 64); err == nil {
			constraints = append(constraints, Constraint{Op: OpLessOrEqual, Field: "price", Arg: n})
		} else {
			dropped = append(dropped, "max_price")
		}
	}
	if f.Bedrooms != "" {
		if f.Bedrooms == models.BedroomsFivePlus {
			constraints = append(constraints, Constraint{Op: OpGreaterOrEqual, Field: "bedrooms", Arg: int64(5)})
		} else if n, err := strconv.ParseInt(f.Bedrooms, 10, 64); err == nil {
			constraints = append(constraints, Constraint{Op: OpEquals, Field: "bedrooms", Arg: n})
		} else {
			dropped = append(dropped, "bedrooms")
		}
	}
	if f.Status != "" {
		constraints = append(constraints, Constraint{Op: OpEquals, Field: "status", Arg: f.Status})
	}

	return constraints, dropped
}
