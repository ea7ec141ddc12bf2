package models

import "strings"

// AmenityIconRule maps a set of keywords to an icon identifier. Rules are
// evaluated top to bottom; the first rule whose keywords match wins.
type AmenityIconRule struct {
	Keywords []string
	Icon     string
}

// amenityIconRules is the ordered rule table for picking a display icon
// for a free-text amenity label. Matching is case-insensitive substring
// match on any keyword in the rule.
var amenityIconRules = []AmenityIconRule{
	{Keywords: []string{"wifi", "internet"}, Icon: "wifi"},
	{Keywords: []string{"parking", "garage"}, Icon: "car"},
	{Keywords: []string{"security", "guard"}, Icon: "shield"},
	{Keywords: []string{"power", "electricity", "backup"}, Icon: "zap"},
	{Keywords: []string{"water", "swimming", "pool"}, Icon: "droplets"},
	{Keywords: []string{"garden", "organic", "green"}, Icon: "tree-pine"},
	{Keywords: []string{"view", "mountain", "lake"}, Icon: "mountain"},
	{Keywords: []string{"kitchen", "dining"}, Icon: "utensils"},
	{Keywords: []string{"gym", "fitness", "club"}, Icon: "home"},
}

// AmenityFallbackIcon is used when no rule matches.
const AmenityFallbackIcon = "check"

// AmenityIcon picks the display icon identifier for an amenity label.
func AmenityIcon(amenity string) string {
	lower := strings.ToLower(amenity)
	for _, rule := range amenityIconRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Icon
			}
		}
	}
	return AmenityFallbackIcon
}

// NormalizeAmenities collapses duplicate labels (case-insensitively) and
// drops empty ones, preserving first-seen casing and order for display.
func NormalizeAmenities(amenities []string) []string {
	seen := make(map[string]struct{}, len(amenities))
	out := make([]string, 0, len(amenities))
	for _, a := range amenities {
		trimmed := strings.TrimSpace(a)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
