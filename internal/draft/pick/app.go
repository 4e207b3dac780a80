package pick

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/draftline/draftline/internal/draftorder"
	"github.com/draftline/draftline/internal/models"
)

// PickRepository defines what the pick app layer needs from the pick repository.
type PickRepository interface {
	GetPickByOverall(ctx context.Context, season, overall int) (*models.Pick, error)
	GetPick(ctx context.Context, id uuid.UUID) (*models.Pick, error)
	FillPick(ctx context.Context, req FillPickRequest) (*models.Pick, error)
	ClearPick(ctx context.Context, id uuid.UUID) (*models.Pick, error)
	CreatePicksBatch(ctx context.Context, picks []models.Pick) error
	FindSkippedPicks(ctx context.Context, season int, teamID uuid.UUID, beforeOverall int) ([]models.Pick, error)
	QueryPicks(ctx context.Context, q PickQuery) ([]models.Pick, error)
}

// App handles pick slot business logic.
type App struct {
	repo PickRepository
}

func NewApp(repo PickRepository) *App {
	return &App{repo: repo}
}

// PrepopulatePicks creates every pick slot for a season from the round-one
// draft order. Refuses to run twice for the same season.
func (a *App) PrepopulatePicks(ctx context.Context, season int, draftOrder []uuid.UUID, totalRounds, linearRounds int) error {
	existing, err := a.repo.QueryPicks(ctx, PickQuery{Season: season, Limit: 1})
	if err != nil {
		return fmt.Errorf("failed to check existing picks: %w", err)
	}
	if len(existing) > 0 {
		return fmt.Errorf("picks already exist for season %d", season)
	}

	picks, err := draftorder.GeneratePicks(season, draftOrder, totalRounds, linearRounds)
	if err != nil {
		return fmt.Errorf("failed to generate pick slots: %w", err)
	}

	if err := a.repo.CreatePicksBatch(ctx, picks); err != nil {
		return fmt.Errorf("failed to create pick slots: %w", err)
	}

	log.Info().Int("season", season).Int("slots", len(picks)).Msg("prepopulated pick slate")
	return nil
}

// GetPickByOverall retrieves one pick slot by its overall number.
func (a *App) GetPickByOverall(ctx context.Context, season, overall int) (*models.Pick, error) {
	return a.repo.GetPickByOverall(ctx, season, overall)
}

// FillPick commits a player to a slot.
func (a *App) FillPick(ctx context.Context, req FillPickRequest) (*models.Pick, error) {
	if req.PickID == uuid.Nil {
		return nil, fmt.Errorf("pick_id is required")
	}
	if req.PlayerID == uuid.Nil {
		return nil, fmt.Errorf("player_id is required")
	}
	return a.repo.FillPick(ctx, req)
}

// ClearPick wipes a committed selection. Admin override only; the normal
// workflow never clears a filled slot.
func (a *App) ClearPick(ctx context.Context, id uuid.UUID) (*models.Pick, error) {
	p, err := a.repo.ClearPick(ctx, id)
	if err != nil {
		return nil, err
	}
	log.Info().Int("season", p.Season).Int("overall", p.Overall).Msg("cleared pick by admin override")
	return p, nil
}

// FindSkippedPicks returns the unfilled picks a team owns before the given
// overall number, ascending. A team that missed its turn fills the earliest.
func (a *App) FindSkippedPicks(ctx context.Context, season int, teamID uuid.UUID, beforeOverall int) ([]models.Pick, error) {
	if teamID == uuid.Nil {
		return nil, fmt.Errorf("team_id is required")
	}
	picks, err := a.repo.FindSkippedPicks(ctx, season, teamID, beforeOverall)
	if err != nil {
		return nil, fmt.Errorf("failed to find skipped picks: %w", err)
	}
	return picks, nil
}

// ListPicksByRound returns every slot of one round in overall order.
func (a *App) ListPicksByRound(ctx context.Context, season, round int) ([]models.Pick, error) {
	if round <= 0 {
		return nil, fmt.Errorf("round must be greater than 0")
	}
	return a.repo.QueryPicks(ctx, PickQuery{Season: season, Round: &round})
}

// ListPicksByTeam returns every slot a team currently owns.
func (a *App) ListPicksByTeam(ctx context.Context, season int, teamID uuid.UUID) ([]models.Pick, error) {
	return a.repo.QueryPicks(ctx, PickQuery{Season: season, TeamID: &teamID})
}

// ListRecentPicks returns the most recently numbered filled slots before the
// given overall, newest first.
func (a *App) ListRecentPicks(ctx context.Context, season, beforeOverall, limit int) ([]models.Pick, error) {
	return a.repo.QueryPicks(ctx, PickQuery{
		Season:        season,
		BeforeOverall: &beforeOverall,
		OnlyFilled:    true,
		Descending:    true,
		Limit:         limit,
	})
}

// ListUpcomingPicks returns the next unfilled slots from the given overall.
func (a *App) ListUpcomingPicks(ctx context.Context, season, fromOverall, limit int) ([]models.Pick, error) {
	return a.repo.QueryPicks(ctx, PickQuery{
		Season:       season,
		AfterOverall: &fromOverall,
		OnlyUnfilled: true,
		Limit:        limit,
	})
}

// ListFilledPicks returns every filled slot in overall order, for resync.
func (a *App) ListFilledPicks(ctx context.Context, season int) ([]models.Pick, error) {
	return a.repo.QueryPicks(ctx, PickQuery{Season: season, OnlyFilled: true})
}
