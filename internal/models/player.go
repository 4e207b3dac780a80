package models

import (
	"github.com/google/uuid"
)

// Player represents a draftable player in a season's pool.
// TeamID is nil while the player is a free agent.
type Player struct {
	ID       uuid.UUID  `json:"id"`
	Season   int        `json:"season"`
	FullName string     `json:"full_name"`
	Cost     float64    `json:"cost"`
	TeamID   *uuid.UUID `json:"team_id,omitempty"`
}
