// Command seeder loads sample property listings into the store for local
// development. The serving path never writes; this is the only writer in
// the repository and it is not part of the deployed service.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/vasanta-estates/listings-api/internal/config"
	"github.com/vasanta-estates/listings-api/internal/database"
	"github.com/vasanta-estates/listings-api/internal/models"
)

// seedProperty is the fixture-file form of one listing. Images holds up
// to ten URLs which map onto the image1..image10 columns in order.
type seedProperty struct {
	Slug             string   `json:"slug"`
	Title            string   `json:"title"`
	PropertyType     string   `json:"propertyType"`
	Price            int64    `json:"price"`
	Status           string   `json:"status"`
	City             string   `json:"city"`
	Locality         string   `json:"locality"`
	Address          string   `json:"address"`
	Description      string   `json:"description"`
	AreaSqft         float64  `json:"areaSqft"`
	Bedrooms         int      `json:"bedrooms"`
	Bathrooms        int      `json:"bathrooms"`
	FurnishingStatus string   `json:"furnishingStatus"`
	Amenities        []string `json:"amenities"`
	AgentName        string   `json:"agentName"`
	AgentPhone       string   `json:"agentPhone"`
	AgentEmail       string   `json:"agentEmail"`
	Images           []string `json:"images"`
	ListedOn         string   `json:"listedOn"`
}

const insertSQL = `
	INSERT INTO properties (
		id, slug, title, property_type, price, status,
		city, locality, address, description,
		area_sqft, bedrooms, bathrooms, furnishing_status, amenities,
		agent_name, agent_phone, agent_email,
		image1, image2, image3, image4, image5,
		image6, image7, image8, image9, image10,
		listed_on, created_at
	) VALUES (
		gen_random_uuid(), $1, $2, $3, $4, $5,
		$6, $7, $8, $9,
		$10, $11, $12, $13, $14,
		$15, $16, $17,
		$18, $19, $20, $21, $22,
		$23, $24, $25, $26, $27,
		$28, now()
	)
	ON CONFLICT (slug) DO NOTHING
`

func main() {
	fixtureFile := flag.String("file", "testdata/properties.json", "JSON fixture of listings to insert")
	dryRun := flag.Bool("dry-run", false, "Parse and validate the fixture without writing")
	truncate := flag.Bool("truncate", false, "Delete existing listings before seeding")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	raw, err := os.ReadFile(*fixtureFile)
	if err != nil {
		log.Fatalf("Failed to read fixture %s: %v", *fixtureFile, err)
	}

	var seeds []seedProperty
	if err := json.Unmarshal(raw, &seeds); err != nil {
		log.Fatalf("Failed to parse fixture %s: %v", *fixtureFile, err)
	}

	for i, seed := range seeds {
		if err := validateSeed(seed); err != nil {
			log.Fatalf("Invalid fixture entry %d (%s): %v", i, seed.Slug, err)
		}
	}

	log.Printf("Parsed %d listings from %s", len(seeds), *fixtureFile)
	if *dryRun {
		log.Println("Dry run, not writing to the store")
		return
	}

	ctx := context.Background()
	db, err := database.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if *truncate {
		if _, err := db.Pool.Exec(ctx, "DELETE FROM properties"); err != nil {
			log.Fatalf("Failed to clear properties: %v", err)
		}
		log.Println("Cleared existing listings")
	}

	inserted := 0
	for _, seed := range seeds {
		tag, err := db.Pool.Exec(ctx, insertSQL, seedArgs(seed)...)
		if err != nil {
			log.Fatalf("Failed to insert %s: %v", seed.Slug, err)
		}
		inserted += int(tag.RowsAffected())
	}

	log.Printf("Seeded %d listings (%d skipped as already present)", inserted, len(seeds)-inserted)
}

// validateSeed enforces the record invariants the store also carries.
func validateSeed(seed seedProperty) error {
	switch {
	case seed.Slug == "":
		return errMissing("slug")
	case seed.Title == "":
		return errMissing("title")
	case seed.Price < 0:
		return errNegative("price")
	case seed.Bedrooms < 0:
		return errNegative("bedrooms")
	case seed.Bathrooms < 0:
		return errNegative("bathrooms")
	case seed.AreaSqft < 0:
		return errNegative("areaSqft")
	case len(seed.Images) > models.ImageSlots:
		return fmt.Errorf("at most %d images are supported, got %d", models.ImageSlots, len(seed.Images))
	}
	if _, err := time.Parse(time.DateOnly, seed.ListedOn); err != nil {
		return err
	}
	return nil
}

// seedArgs flattens a fixture entry into insertSQL's argument order.
func seedArgs(seed seedProperty) []any {
	args := []any{
		seed.Slug,
		seed.Title,
		seed.PropertyType,
		seed.Price,
		seed.Status,
		seed.City,
		seed.Locality,
		nullable(seed.Address),
		nullable(seed.Description),
		seed.AreaSqft,
		seed.Bedrooms,
		seed.Bathrooms,
		seed.FurnishingStatus,
		models.NormalizeAmenities(seed.Amenities),
		seed.AgentName,
		seed.AgentPhone,
		seed.AgentEmail,
	}
	for i := 0; i < models.ImageSlots; i++ {
		if i < len(seed.Images) {
			args = append(args, nullable(seed.Images[i]))
		} else {
			args = append(args, nil)
		}
	}
	return append(args, seed.ListedOn)
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func errMissing(field string) error {
	return fmt.Errorf("%s is required", field)
}

func errNegative(field string) error {
	return fmt.Errorf("%s must be non-negative", field)
}
