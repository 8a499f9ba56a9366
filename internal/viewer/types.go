package viewer

import (
	"time"

	"github.com/structviz/cifview/internal/structure"
)

// Record is a stored structure upload. Counts are derived once at upload
// time; the original bytes live on disk next to the database and are
// never rewritten.
type Record struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Format     structure.Format `json:"format"`
	SizeBytes  int64            `json:"size_bytes"`
	Title      string           `json:"title,omitempty"`
	Models     int              `json:"models"`
	Chains     int              `json:"chains"`
	Residues   int              `json:"residues"`
	Atoms      int              `json:"atoms"`
	HetAtoms   int              `json:"het_atoms"`
	UploadedAt time.Time        `json:"uploaded_at"`
}

// Event is broadcast over the websocket feed when the set of stored
// structures changes.
type Event struct {
	Type      string `json:"type"` // "created" or "deleted"
	Structure Record `json:"structure"`
}
