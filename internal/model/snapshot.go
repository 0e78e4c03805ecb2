package model

import "time"

// SnapshotVersion tags the export format.
const SnapshotVersion = 1

// Snapshot is a complete serializable capture of the persisted state,
// constructed on demand for export and applied wholesale on import.
type Snapshot struct {
	GeneratedAt time.Time     `json:"generatedAt"`
	Settings    Settings      `json:"settings"`
	Expenses    []Expense     `json:"expenses"`
	Trash       []TrashRecord `json:"trash"`
	Categories  []Category    `json:"categories,omitempty"`
	Version     int           `json:"version"`
}
