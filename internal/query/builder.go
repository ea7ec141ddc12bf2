package query

import (
	"fmt"
	"strings"
)

// Builder assembles a parameterized SELECT over one table. It mirrors the
// shape of a hosted-store query client: predicates accumulate in call
// order, combine with AND, and render once via SQL(). Substring arguments
// are bound as ILIKE patterns with the wildcards added here, so caller
// input is never interpolated into the statement text.
type Builder struct {
	table   string
	columns string
	where   []string
	orderBy string
	limit   int
	args    []any
}

// New starts a query against the given table selecting the given columns.
func New(table, columns string) *Builder {
	return &Builder{table: table, columns: columns}
}

// Equals adds "field = value".
func (b *Builder) Equals(field string, value any) *Builder {
	b.where = append(b.where, fmt.Sprintf("%s = %s", field, b.bind(value)))
	return b
}

// GreaterOrEqual adds "field >= value".
func (b *Builder) GreaterOrEqual(field string, value any) *Builder {
	b.where = append(b.where, fmt.Sprintf("%s >= %s", field, b.bind(value)))
	return b
}

// LessOrEqual adds "field <= value".
func (b *Builder) LessOrEqual(field string, value any) *Builder {
	b.where = append(b.where, fmt.Sprintf("%s <= %s", field, b.bind(value)))
	return b
}

// SubstringAny adds a case-insensitive unanchored substring match that is
// satisfied when any of the given text fields contains the value.
func (b *Builder) SubstringAny(fields []string, value string) *Builder {
	placeholder := b.bind("%" + escapeLike(value) + "%")
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("%s ILIKE %s", f, placeholder)
	}
	b.where = append(b.where, "("+strings.Join(parts, " OR ")+")")
	return b
}

// OrderBy sets the ORDER BY clause, e.g. ("created_at", "DESC").
func (b *Builder) OrderBy(field, direction string) *Builder {
	b.orderBy = field + " " + direction
	return b
}

// Limit caps the number of rows returned. Zero means no limit.
func (b *Builder) Limit(n int) *Builder {
	b.limit = n
	return b
}

// Apply adds every composed constraint to the builder in order.
func (b *Builder) Apply(constraints []Constraint) *Builder {
	for _, c := range constraints {
		switch c.Op {
		case OpEquals:
			b.Equals(c.Field, c.Arg)
		case OpGreaterOrEqual:
			b.GreaterOrEqual(c.Field, c.Arg)
		case OpLessOrEqual:
			b.LessOrEqual(c.Field, c.Arg)
		case OpSubstringAny:
			if s, ok := c.Arg.(string); ok {
				b.SubstringAny(c.Fields, s)
			}
		}
	}
	return b
}

// SQL renders the accumulated statement and its positional arguments.
func (b *Builder) SQL() (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(b.columns)
	sb.WriteString(" FROM ")
	sb.WriteString(b.table)
	if len(b.where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(b.where, " AND "))
	}
	if b.orderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(b.orderBy)
	}
	if b.limit > 0 {
		sb.WriteString(fmt.Sprintf(" LIMIT %d", b.limit))
	}
	return sb.String(), b.args
}

// bind appends an argument and returns its positional placeholder.
func (b *Builder) bind(value any) string {
	b.args = append(b.args, value)
	return fmt.Sprintf("$%d", len(b.args))
}

// escapeLike neutralizes LIKE metacharacters in user text so a search for
// "100%" matches the literal string rather than acting as a wildcard.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
