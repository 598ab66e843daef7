package collector

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"lotus-ge/src/logger"
	"lotus-ge/src/models"
)

// -----------------------------------------------------------------------------

// LoadRecipes reads the manufacturing recipe CSV and indexes it by product
// item id. A missing or unreadable file is not an error: recipes enrich the
// master view but the cycle runs fine without them.
//
// Expected columns:
//
//	id, ProductName, RecipeType, QtyProduced, ProcessingCost,
//	ingredient1id, ingredient1Qty, ingredient2id, ingredient2Qty,
//	ingredient3id, ingredient3Qty
func LoadRecipes(path string, log *logger.Logger) map[int]models.MRecipe {
	recipes := make(map[int]models.MRecipe)

	if path == "" {
		return recipes
	}

	f, err := os.Open(path)
	if err != nil {
		log.Warning("recipe file %s unavailable: %v", path, err)
		return recipes
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header := true
	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warning("recipe file %s parse error: %v", path, err)
			break
		}
		if header {
			header = false
			continue
		}

		recipe, ok := parseRecipeRow(row)
		if !ok {
			skipped++
			continue
		}
		recipes[recipe.ItemID] = recipe
	}

	if skipped > 0 {
		log.Warning("skipped %d malformed recipe rows in %s", skipped, path)
	}
	log.Debug("loaded %d recipes from %s", len(recipes), path)

	return recipes
}

// -----------------------------------------------------------------------------

func parseRecipeRow(row []string) (models.MRecipe, bool) {
	if len(row) < 5 {
		return models.MRecipe{}, false
	}

	itemID, err := strconv.Atoi(row[0])
	if err != nil {
		return models.MRecipe{}, false
	}
	qty, err := strconv.Atoi(row[3])
	if err != nil {
		return models.MRecipe{}, false
	}
	cost, err := strconv.ParseFloat(row[4], 64)
	if err != nil {
		return models.MRecipe{}, false
	}

	recipe := models.MRecipe{
		ItemID:         itemID,
		ProductName:    row[1],
		RecipeType:     row[2],
		QtyProduced:    qty,
		ProcessingCost: cost,
	}

	// Up to three ingredient pairs, each optional.
	for i := 5; i+1 < len(row); i += 2 {
		if row[i] == "" {
			continue
		}
		ingID, err := strconv.Atoi(row[i])
		if err != nil {
			continue
		}
		ingQty, err := strconv.Atoi(row[i+1])
		if err != nil {
			continue
		}
		recipe.Ingredients = append(recipe.Ingredients, models.MRecipeIngredient{
			ItemID: ingID,
			Qty:    ingQty,
		})
	}

	return recipe, true
}
