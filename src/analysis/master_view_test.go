package analysis

import (
	"testing"

	"lotus-ge/src/logger"
	"lotus-ge/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

func TestMasterViewBuild(t *testing.T) {
	store := newAggStore(t)
	builder := NewMasterViewBuilder(store, logger.NewLogger("test"))

	require.NoError(t, store.ReplaceLatestPrices([]models.MLatestPrice{
		{ItemID: 9, High: fptr(300), Low: fptr(280)},
		{ItemID: 2, High: fptr(150)},
	}))
	require.NoError(t, store.ReplaceMapping([]models.MItemMapping{
		{ItemID: 2, Name: "Cannonball", BuyLimit: 13000, HighAlch: 3},
	}))
	require.NoError(t, store.SaveAggregates([]models.MAggregateRecord{
		{ItemID: 2, ReportType: "Weekly", MeanLow: fptr(140)},
	}))

	recipes := map[int]models.MRecipe{
		2: {ItemID: 2, ProductName: "Cannonball", QtyProduced: 4},
	}

	view, err := builder.Build(recipes)
	require.NoError(t, err)
	require.Len(t, view, 2)

	// Sorted by item id.
	assert.Equal(t, 2, view[0].ItemID)
	assert.Equal(t, 9, view[1].ItemID)

	// Item 2 has everything joined.
	assert.Equal(t, "Cannonball", view[0].Name)
	assert.Equal(t, 13000, view[0].BuyLimit)
	require.Contains(t, view[0].Aggregates, "Weekly")
	assert.Equal(t, 140.0, *view[0].Aggregates["Weekly"].MeanLow)
	require.NotNil(t, view[0].Recipe)
	assert.Equal(t, 4, view[0].Recipe.QtyProduced)

	// Item 9 has a price but no metadata, aggregates, or recipe.
	assert.Empty(t, view[1].Name)
	assert.Empty(t, view[1].Aggregates)
	assert.Nil(t, view[1].Recipe)
	assert.Equal(t, 300.0, *view[1].High)
}

// -----------------------------------------------------------------------------

func TestMasterViewBuildEmptyStore(t *testing.T) {
	store := newAggStore(t)
	builder := NewMasterViewBuilder(store, logger.NewLogger("test"))

	view, err := builder.Build(nil)
	require.NoError(t, err)
	assert.Empty(t, view)
}
