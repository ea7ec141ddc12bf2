package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmenityIcon(t *testing.T) {
	tests := []struct {
		amenity string
		want    string
	}{
		{"High-Speed WiFi", "wifi"},
		{"Covered Parking", "car"},
		{"24x7 Security", "shield"},
		{"Power Backup", "zap"},
		{"Swimming Pool", "droplets"},
		{"Organic Garden", "tree-pine"},
		{"Lake View", "mountain"},
		{"Modular Kitchen", "utensils"},
		{"Clubhouse", "home"},
		{"Vastu Compliant", AmenityFallbackIcon},
	}

	for _, tt := range tests {
		t.Run(tt.amenity, func(t *testing.T) {
			assert.Equal(t, tt.want, AmenityIcon(tt.amenity))
		})
	}
}

func TestAmenityIcon_CaseInsensitive(t *testing.T) {
	assert.Equal(t, AmenityIcon("wifi"), AmenityIcon("WIFI"))
	assert.Equal(t, "shield", AmenityIcon("SECURITY GUARD CABIN"))
}

func TestAmenityIcon_FirstRuleWins(t *testing.T) {
	// "parking" appears before "view" in the rule table, so a label
	// matching both resolves to the earlier rule every time.
	assert.Equal(t, "car", AmenityIcon("Parking with Valley View"))
}

func TestNormalizeAmenities(t *testing.T) {
	got := NormalizeAmenities([]string{"Lake View", "", "  ", "lake view", "Gym", "Gym"})
	assert.Equal(t, []string{"Lake View", "Gym"}, got)
}

func TestNormalizeAmenities_Empty(t *testing.T) {
	assert.Empty(t, NormalizeAmenities(nil))
}
