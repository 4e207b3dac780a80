package models

import (
	"github.com/google/uuid"
)

// Team represents a franchise competing in a season.
type Team struct {
	ID          uuid.UUID `json:"id"`
	Season      int       `json:"season"`
	Name        string    `json:"name"`
	OwnerUserID string    `json:"owner_user_id"` // chat-surface identity of the general manager
}

// RosterSpot is one rostered player and the cost it carries against the cap.
type RosterSpot struct {
	PlayerID uuid.UUID `json:"player_id"`
	Cost     float64   `json:"cost"`
}
