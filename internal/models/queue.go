package models

import (
	"github.com/google/uuid"
)

// QueueEntry is one row of a team's autopick priority list.
// Ranks are contiguous 1..N per team per season.
type QueueEntry struct {
	Season   int       `json:"season"`
	TeamID   uuid.UUID `json:"team_id"`
	PlayerID uuid.UUID `json:"player_id"`
	Rank     int       `json:"rank"`
}
