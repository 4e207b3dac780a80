package models

import (
	"time"

	"github.com/google/uuid"
)

// Pick represents a single pick slot in a season's draft.
//
// Overall is unique per season in 1..TotalPicks. CurrentOwnerID may diverge
// from OriginalOwnerID through trades, which happen outside this engine.
// PlayerID stays nil until the slot is filled and, once set, is only ever
// cleared by an explicit admin wipe.
type Pick struct {
	ID              uuid.UUID  `json:"id"`
	Season          int        `json:"season"`
	Overall         int        `json:"overall"`
	Round           int        `json:"round"`
	OriginalOwnerID uuid.UUID  `json:"original_owner_id"`
	CurrentOwnerID  uuid.UUID  `json:"current_owner_id"`
	PlayerID        *uuid.UUID `json:"player_id,omitempty"`
	PickedAt        *time.Time `json:"picked_at,omitempty"`
}

// Filled reports whether a player has been committed to this slot.
func (p *Pick) Filled() bool {
	return p.PlayerID != nil
}
