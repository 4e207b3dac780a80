package pick

import (
	"github.com/google/uuid"
)

// FillPickRequest commits a player to a pick slot.
type FillPickRequest struct {
	PickID   uuid.UUID `json:"pick_id"`
	PlayerID uuid.UUID `json:"player_id"`
}

// PickQuery filters pick listings for the read-only endpoints.
type PickQuery struct {
	Season        int        `json:"season"`
	Round         *int       `json:"round,omitempty"`
	TeamID        *uuid.UUID `json:"team_id,omitempty"`
	BeforeOverall *int       `json:"before_overall,omitempty"`
	AfterOverall  *int       `json:"after_overall,omitempty"`
	OnlyUnfilled  bool       `json:"only_unfilled,omitempty"`
	OnlyFilled    bool       `json:"only_filled,omitempty"`
	Descending    bool       `json:"descending,omitempty"`
	Limit         int        `json:"limit,omitempty"`
}
