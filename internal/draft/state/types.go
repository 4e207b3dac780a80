package state

import (
	"errors"
)

// ErrStateNotFound is returned when no draft state row exists for the season.
var ErrStateNotFound = errors.New("draft state not found")

// ErrTimerDisabled is returned when a deadline operation runs while the pick
// timer is off.
var ErrTimerDisabled = errors.New("pick timer is disabled")

// ErrPickRecordMissing is returned when the advance scan hits a gap in the
// pick slate. A missing record is a data-integrity failure, never a skip.
var ErrPickRecordMissing = errors.New("pick record missing from slate")

// CreateStateRequest creates the singleton draft state at season setup.
type CreateStateRequest struct {
	Season         int      `json:"season"`
	TeamCount      int      `json:"team_count"`
	TotalRounds    int      `json:"total_rounds"`
	LinearRounds   int      `json:"linear_rounds"`
	PickMinutes    int      `json:"pick_minutes"`
	CapLimit       float64  `json:"cap_limit"`
	CountedSlots   int      `json:"counted_slots"`
	NotifyChannels []string `json:"notify_channels,omitempty"`
}
