// Package draftorder maps overall pick numbers to (round, position) under the
// league's hybrid ordering: a fixed linear order for the opening rounds, then
// snake ordering for the rest. The first snake round continues the ascending
// sequence from the last linear round, so there is no reversal at the seam.
package draftorder

import (
	"fmt"

	"github.com/draftline/draftline/internal/models"
	"github.com/google/uuid"
)

// PickToRoundPosition converts an overall pick number to its round and the
// 1-based position within that round.
func PickToRoundPosition(overall, teamCount, linearRounds int) (round, position int, err error) {
	if teamCount < 1 {
		return 0, 0, fmt.Errorf("team count must be at least 1, got %d", teamCount)
	}
	if linearRounds < 0 {
		return 0, 0, fmt.Errorf("linear rounds must not be negative, got %d", linearRounds)
	}
	if overall < 1 {
		return 0, 0, fmt.Errorf("overall pick must be at least 1, got %d", overall)
	}

	round = (overall-1)/teamCount + 1
	index := (overall-1)%teamCount + 1

	if reversed(round, linearRounds) {
		return round, teamCount + 1 - index, nil
	}
	return round, index, nil
}

// RoundPositionToPick is the exact inverse of PickToRoundPosition.
func RoundPositionToPick(round, position, teamCount, linearRounds int) (int, error) {
	if teamCount < 1 {
		return 0, fmt.Errorf("team count must be at least 1, got %d", teamCount)
	}
	if round < 1 {
		return 0, fmt.Errorf("round must be at least 1, got %d", round)
	}
	if position < 1 || position > teamCount {
		return 0, fmt.Errorf("position %d out of range 1..%d", position, teamCount)
	}

	index := position
	if reversed(round, linearRounds) {
		index = teamCount + 1 - position
	}
	return (round-1)*teamCount + index, nil
}

// reversed reports whether the given round runs in reverse draft order.
// Rounds are counted relative to the start of the snake phase: the first
// snake round keeps the ascending order, the second reverses, and so on.
func reversed(round, linearRounds int) bool {
	if round <= linearRounds {
		return false
	}
	return (round-linearRounds)%2 == 0
}

// GeneratePicks builds the full slate of unfilled pick slots for a season,
// in overall order, given the round-one draft order.
func GeneratePicks(season int, draftOrder []uuid.UUID, totalRounds, linearRounds int) ([]models.Pick, error) {
	teamCount := len(draftOrder)
	if teamCount == 0 {
		return nil, fmt.Errorf("draft order is empty")
	}
	if totalRounds < 1 {
		return nil, fmt.Errorf("total rounds must be at least 1, got %d", totalRounds)
	}

	picks := make([]models.Pick, 0, teamCount*totalRounds)
	for overall := 1; overall <= teamCount*totalRounds; overall++ {
		round, position, err := PickToRoundPosition(overall, teamCount, linearRounds)
		if err != nil {
			return nil, err
		}
		teamID := draftOrder[position-1]
		picks = append(picks, models.Pick{
			ID:              uuid.New(),
			Season:          season,
			Overall:         overall,
			Round:           round,
			OriginalOwnerID: teamID,
			CurrentOwnerID:  teamID,
		})
	}
	return picks, nil
}
