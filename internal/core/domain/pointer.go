package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditIndexSlot is the single logical pointer slot holding the current index blob.
const AuditIndexSlot = "audit-index"

// IndexPointer is the server-side record of the current index blob for a slot.
type IndexPointer struct {
	Slot      string    `json:"slot"`
	BlobID    string    `json:"blobId"`
	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PointerMove records one change of a pointer slot.
type PointerMove struct {
	ID         uuid.UUID `json:"id"`
	Slot       string    `json:"slot"`
	PrevBlobID string    `json:"prevBlobId,omitempty"`
	BlobID     string    `json:"blobId"`
	Forced     bool      `json:"forced"`
	CreatedAt  time.Time `json:"createdAt"`
}
