package coordinator

import (
	"github.com/draftline/draftline/internal/models"
)

type eligibleKind int

const (
	kindCurrentTurn eligibleKind = iota
	kindSkippedMakeup
)

// EligiblePick is the slot a selection is allowed to fill: either the pick
// currently on the clock, or an earlier skipped pick the team is making up.
// Only the former moves the turn pointer, and the distinction is carried in
// the type rather than inferred from overall numbers.
type EligiblePick struct {
	kind eligibleKind
	pick models.Pick
}

func CurrentTurn(p models.Pick) EligiblePick {
	return EligiblePick{kind: kindCurrentTurn, pick: p}
}

func SkippedMakeup(p models.Pick) EligiblePick {
	return EligiblePick{kind: kindSkippedMakeup, pick: p}
}

// Pick returns the slot to fill.
func (e EligiblePick) Pick() models.Pick {
	return e.pick
}

// AdvancesTurn reports whether filling this slot moves the current-pick
// pointer. A skipped-pick makeup never does.
func (e EligiblePick) AdvancesTurn() bool {
	return e.kind == kindCurrentTurn
}
