package models

import (
	"time"
)

// DraftPhase defines the lifecycle phase of a season's draft.
type DraftPhase string

const (
	DraftPhaseNotStarted DraftPhase = "NOT_STARTED"
	DraftPhaseInProgress DraftPhase = "IN_PROGRESS"
	DraftPhasePaused     DraftPhase = "PAUSED"
	DraftPhaseComplete   DraftPhase = "COMPLETE"
)

// DraftSettings holds the per-season draft configuration.
type DraftSettings struct {
	TeamCount    int     `json:"team_count"`
	TotalRounds  int     `json:"total_rounds"`
	LinearRounds int     `json:"linear_rounds"` // rounds before snake ordering kicks in
	PickMinutes  int     `json:"pick_minutes"`
	CapLimit     float64 `json:"cap_limit"`
	CountedSlots int     `json:"counted_slots"` // cheapest-N slots counted toward the cap
}

// TotalPicks returns the number of pick slots in the draft.
func (s DraftSettings) TotalPicks() int {
	return s.TeamCount * s.TotalRounds
}

// DraftState is the singleton draft record for a season.
//
// CurrentPick always names an unfilled pick, or exceeds TotalPicks once the
// draft is complete. PickDeadline is nil whenever the timer is disabled.
type DraftState struct {
	Season         int           `json:"season"`
	Phase          DraftPhase    `json:"phase"`
	CurrentPick    int           `json:"current_pick"`
	TimerEnabled   bool          `json:"timer_enabled"`
	PickDeadline   *time.Time    `json:"pick_deadline,omitempty"`
	Settings       DraftSettings `json:"settings"`
	NotifyChannels []string      `json:"notify_channels,omitempty"` // opaque notification-target refs
	UpdatedAt      time.Time     `json:"updated_at"`
}
