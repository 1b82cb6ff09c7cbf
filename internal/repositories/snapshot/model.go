package snapshot

import (
	"time"

	"github.com/sarnathbank/banking_app/internal/core/domain"
)

// Meta records how and when a snapshot was written, so the format can be
// versioned and snapshots can be traced when debugging.
type Meta struct {
	Storage   string    `json:"storage"`
	Version   int       `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// currentVersion is bumped whenever the snapshot layout changes shape.
const currentVersion = 1

// Snapshot is the complete serialized account table: every account with its
// full ledger, plus the administrator record. Round-tripping through Save
// then Load reproduces an identical table.
type Snapshot struct {
	Meta          Meta                  `json:"_meta"`
	Administrator *domain.Administrator `json:"administrator,omitempty"`
	Accounts      []domain.Account      `json:"accounts"`
}
