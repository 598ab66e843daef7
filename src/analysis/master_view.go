package analysis

import (
	"sort"

	"lotus-ge/src/interfaces"
	"lotus-ge/src/logger"
	"lotus-ge/src/models"
)

// -----------------------------------------------------------------------------

// MasterViewBuilder produces the denormalized per-item projection. The view
// is a pure derived join with no state of its own, so it is rebuilt from
// scratch every cycle rather than updated incrementally.
type MasterViewBuilder struct {
	Store  interfaces.IMarketStore
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewMasterViewBuilder(store interfaces.IMarketStore, log *logger.Logger) *MasterViewBuilder {
	return &MasterViewBuilder{
		Store:  store,
		Logger: log,
	}
}

// -----------------------------------------------------------------------------

// Build joins the latest price table, item metadata, all stored aggregates,
// and the supplied recipe data into one record per item with a latest price.
// Metadata and recipe joins are optional: an item missing from either still
// produces a record with those fields absent.
func (b *MasterViewBuilder) Build(recipes map[int]models.MRecipe) ([]models.MMasterRecord, error) {
	latest, err := b.Store.LatestPrices()
	if err != nil {
		return nil, err
	}

	mapping, err := b.Store.Mapping()
	if err != nil {
		return nil, err
	}

	aggregates, err := b.Store.AggregateRecords()
	if err != nil {
		return nil, err
	}

	records := make([]models.MMasterRecord, 0, len(latest))
	for _, price := range latest {
		record := models.MMasterRecord{
			ItemID:     price.ItemID,
			High:       price.High,
			Low:        price.Low,
			Aggregates: make(map[string]models.MAggregateRecord),
		}

		if meta, ok := mapping[price.ItemID]; ok {
			record.Name = meta.Name
			record.BuyLimit = meta.BuyLimit
			record.HighAlch = meta.HighAlch
		}

		for reportType, agg := range aggregates[price.ItemID] {
			record.Aggregates[reportType] = agg
		}

		if recipe, ok := recipes[price.ItemID]; ok {
			r := recipe
			record.Recipe = &r
		}

		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].ItemID < records[j].ItemID
	})

	b.Logger.Info("Master view rebuilt: %d items", len(records))
	return records, nil
}
