package collector

import (
	"os"
	"path/filepath"
	"testing"

	"lotus-ge/src/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

func writeRecipeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipes.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// -----------------------------------------------------------------------------

func TestLoadRecipes(t *testing.T) {
	path := writeRecipeFile(t,
		"id,ProductName,RecipeType,QtyProduced,ProcessingCost,ingredient1id,ingredient1Qty,ingredient2id,ingredient2Qty,ingredient3id,ingredient3Qty\n"+
			"2434,Prayer potion(4),herblore,1,0,99,1,231,1,227,1\n"+
			"2353,Steel bar,smithing,1,0,440,1,453,2,,\n")

	recipes := LoadRecipes(path, logger.NewLogger("test"))
	require.Len(t, recipes, 2)

	potion := recipes[2434]
	assert.Equal(t, "Prayer potion(4)", potion.ProductName)
	assert.Equal(t, "herblore", potion.RecipeType)
	assert.Len(t, potion.Ingredients, 3)

	bar := recipes[2353]
	require.Len(t, bar.Ingredients, 2)
	assert.Equal(t, 453, bar.Ingredients[1].ItemID)
	assert.Equal(t, 2, bar.Ingredients[1].Qty)
}

// -----------------------------------------------------------------------------

func TestLoadRecipesSkipsMalformedRows(t *testing.T) {
	path := writeRecipeFile(t,
		"id,ProductName,RecipeType,QtyProduced,ProcessingCost\n"+
			"notanumber,Broken,smithing,1,0\n"+
			"443,Gold bar,smithing,1,0\n")

	recipes := LoadRecipes(path, logger.NewLogger("test"))
	require.Len(t, recipes, 1)
	assert.Equal(t, "Gold bar", recipes[443].ProductName)
}

// -----------------------------------------------------------------------------

func TestLoadRecipesMissingFileIsEmpty(t *testing.T) {
	recipes := LoadRecipes("/nonexistent/recipes.csv", logger.NewLogger("test"))
	assert.Empty(t, recipes)
}

// -----------------------------------------------------------------------------

func TestLoadRecipesEmptyPathIsEmpty(t *testing.T) {
	recipes := LoadRecipes("", logger.NewLogger("test"))
	assert.Empty(t, recipes)
}
