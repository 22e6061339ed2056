// Command normalize backfills the normalized quantity/unit columns of
// recipe_ingredients. It re-runs the write-time conversion for every line,
// so it also picks up rows stored before a conversion table change.
package main

import (
	"flag"
	"log"

	"github.com/prepmyweek/prepmyweek-api/internal/config"
	"github.com/prepmyweek/prepmyweek-api/internal/database"
	"github.com/prepmyweek/prepmyweek-api/internal/models"
	"github.com/prepmyweek/prepmyweek-api/internal/units"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "report what would change without writing")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	var lines []models.RecipeIngredient
	if err := db.Find(&lines).Error; err != nil {
		log.Fatalf("Failed to load recipe ingredients: %v", err)
	}

	updated, skipped := 0, 0
	for i := range lines {
		line := &lines[i]
		n := units.Normalize(line.Quantity, line.Unit)

		if !n.Converted {
			if line.NormalizedQuantity == nil && line.NormalizedUnit == nil {
				skipped++
				continue
			}
			// Stale normalization on a unit that no longer converts.
			line.NormalizedQuantity = nil
			line.NormalizedUnit = nil
		} else {
			if line.NormalizedQuantity != nil && *line.NormalizedQuantity == n.Quantity &&
				line.NormalizedUnit != nil && *line.NormalizedUnit == n.Unit {
				skipped++
				continue
			}
			q, u := n.Quantity, n.Unit
			line.NormalizedQuantity = &q
			line.NormalizedUnit = &u
		}

		updated++
		if *dryRun {
			log.Printf("would update line %d (%g %s)", line.ID, line.Quantity, line.Unit)
			continue
		}
		err := db.Model(line).
			Select("normalized_quantity", "normalized_unit").
			Updates(map[string]interface{}{
				"normalized_quantity": line.NormalizedQuantity,
				"normalized_unit":     line.NormalizedUnit,
			}).Error
		if err != nil {
			log.Fatalf("Failed to update line %d: %v", line.ID, err)
		}
	}

	verb := "updated"
	if *dryRun {
		verb = "would update"
	}
	log.Printf("normalize: %s %d lines, %d already current", verb, updated, skipped)
}
