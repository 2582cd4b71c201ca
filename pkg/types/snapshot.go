package types

import "time"

// SnapshotVersion is the version string written into export documents.
// Importers treat a mismatch as a warning and attempt a best-effort
// import regardless.
const SnapshotVersion = "1"

// Snapshot is the versioned export document: every record of every entity
// collection, readonly and mutable alike. Click events are excluded by
// design. The entity arrays are always present, possibly empty.
type Snapshot struct {
	Version    string      `json:"version"`
	ExportedAt time.Time   `json:"exportedAt"`
	Pictures   []*Picture  `json:"pictures"`
	Tags       []*Tag      `json:"tags"`
	Urls       []*Url      `json:"urls"`
	Themes     []*Theme    `json:"themes"`
	Categories []*Category `json:"categories"`
	Profiles   []*Profile  `json:"profiles"`
}
