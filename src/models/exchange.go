package models

// -----------------------------------------------------------------------------

// MClientCommand is what a websocket client sends to request data.
type MClientCommand struct {
	Command string `json:"command"`
	ItemIDs []int  `json:"item_ids"`
}

// -----------------------------------------------------------------------------

// MExchangeMessage is the envelope pushed to websocket clients.
type MExchangeMessage struct {
	Type    string          `json:"type"`
	Summary *MCycleSummary  `json:"summary,omitempty"`
	Items   []MMasterRecord `json:"items,omitempty"`
}
