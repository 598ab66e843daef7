package models

// MRecipe is externally supplied manufacturing data for an item. Absence is
// tolerated everywhere it is joined.
type MRecipe struct {
	ItemID         int                 `json:"item_id"`
	ProductName    string              `json:"product_name"`
	RecipeType     string              `json:"recipe_type"`
	QtyProduced    int                 `json:"qty_produced"`
	ProcessingCost float64             `json:"processing_cost"`
	Ingredients    []MRecipeIngredient `json:"ingredients"`
}

type MRecipeIngredient struct {
	ItemID int `json:"item_id"`
	Qty    int `json:"qty"`
}

// -----------------------------------------------------------------------------

// MMasterRecord is the denormalized per-item projection rebuilt from scratch
// every cycle: newest prices, item metadata, and one aggregate record per
// report type. Metadata and recipe joins are optional.
type MMasterRecord struct {
	ItemID     int                         `json:"item_id"`
	Name       string                      `json:"name"`
	BuyLimit   int                         `json:"buy_limit"`
	HighAlch   int                         `json:"high_alch"`
	High       *float64                    `json:"high"`
	Low        *float64                    `json:"low"`
	Aggregates map[string]MAggregateRecord `json:"aggregates"`
	Recipe     *MRecipe                    `json:"recipe,omitempty"`
}

// -----------------------------------------------------------------------------

// MCycleSummary describes one completed collection cycle, broadcast to
// websocket subscribers and served on the API.
type MCycleSummary struct {
	StartedAt        int64           `json:"started_at"`
	FinishedAt       int64           `json:"finished_at"`
	LatestTimestamps map[int64]int64 `json:"latest_timestamps"`
	Backfilled       map[int64]int   `json:"backfilled"`
	Pruned           map[int64]int64 `json:"pruned"`
	WindowsRefreshed []string        `json:"windows_refreshed"`
	ItemCount        int             `json:"item_count"`
}
