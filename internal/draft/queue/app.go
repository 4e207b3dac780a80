// Package queue manages each team's autopick priority list. The list is
// consumed by the autopick feature when a deadline lapses; this package only
// keeps it consistent: contiguous ranks, no duplicates, drafted players
// dropped from every queue.
package queue

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/draftline/draftline/internal/models"
)

// QueueRepository defines what the app layer needs from persistence.
type QueueRepository interface {
	GetQueue(ctx context.Context, season int, teamID uuid.UUID) ([]models.QueueEntry, error)
	ReplaceQueue(ctx context.Context, season int, teamID uuid.UUID, playerIDs []uuid.UUID) error
	RemovePlayer(ctx context.Context, season int, playerID uuid.UUID) error
}

type App struct {
	repo QueueRepository
}

func NewApp(repo QueueRepository) *App {
	return &App{repo: repo}
}

// GetQueue returns a team's queue in rank order.
func (a *App) GetQueue(ctx context.Context, season int, teamID uuid.UUID) ([]models.QueueEntry, error) {
	return a.repo.GetQueue(ctx, season, teamID)
}

// SetQueue replaces a team's queue. Order of playerIDs is the priority; ranks
// are assigned contiguously from 1.
func (a *App) SetQueue(ctx context.Context, season int, teamID uuid.UUID, playerIDs []uuid.UUID) error {
	seen := make(map[uuid.UUID]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		if id == uuid.Nil {
			return fmt.Errorf("queue contains an empty player id")
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("queue contains player %s twice", id)
		}
		seen[id] = struct{}{}
	}
	return a.repo.ReplaceQueue(ctx, season, teamID, playerIDs)
}

// RemovePlayer drops a drafted player from every queue.
func (a *App) RemovePlayer(ctx context.Context, season int, playerID uuid.UUID) error {
	return a.repo.RemovePlayer(ctx, season, playerID)
}
