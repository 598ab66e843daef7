package interfaces

import "lotus-ge/src/models"

// -----------------------------------------------------------------------------
// IDataExchanger defines the read-only serving surface fed by the collector.
// -----------------------------------------------------------------------------

type IDataExchanger interface {

	// Start runs the HTTP server (blocking).
	Start() error

	// UpdateMasterView swaps the served master view snapshot.
	UpdateMasterView(records []models.MMasterRecord)

	// UpdateSummary swaps the served cycle summary.
	UpdateSummary(summary models.MCycleSummary)

	// Broadcast pushes a cycle summary to websocket subscribers.
	Broadcast(summary models.MCycleSummary)
}
