package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/draftline/draftline/internal/models"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const stateColumns = `season, phase, current_pick, timer_enabled, pick_deadline,
	team_count, total_rounds, linear_rounds, pick_minutes, cap_limit, counted_slots,
	notify_channels, updated_at`

func (r *Repository) GetDraftState(ctx context.Context, season int) (*models.DraftState, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+stateColumns+" FROM draft_states WHERE season = $1", season)

	st, err := scanState(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft state for season %d: %w", season, err)
	}
	return st, nil
}

func (r *Repository) CreateDraftState(ctx context.Context, st models.DraftState) (*models.DraftState, error) {
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO draft_states (season, phase, current_pick, timer_enabled, pick_deadline,
			team_count, total_rounds, linear_rounds, pick_minutes, cap_limit, counted_slots,
			notify_channels, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		 RETURNING `+stateColumns,
		st.Season, st.Phase, st.CurrentPick, st.TimerEnabled, st.PickDeadline,
		st.Settings.TeamCount, st.Settings.TotalRounds, st.Settings.LinearRounds,
		st.Settings.PickMinutes, st.Settings.CapLimit, st.Settings.CountedSlots,
		pq.Array(st.NotifyChannels))

	created, err := scanState(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create draft state for season %d: %w", st.Season, err)
	}
	return created, nil
}

func (r *Repository) UpdateCurrentPick(ctx context.Context, season, overall int) (*models.DraftState, error) {
	return r.update(ctx, season,
		"UPDATE draft_states SET current_pick = $2, updated_at = NOW() WHERE season = $1 RETURNING "+stateColumns,
		overall)
}

func (r *Repository) UpdatePhase(ctx context.Context, season int, phase models.DraftPhase) (*models.DraftState, error) {
	return r.update(ctx, season,
		"UPDATE draft_states SET phase = $2, updated_at = NOW() WHERE season = $1 RETURNING "+stateColumns,
		phase)
}

func (r *Repository) UpdateTimer(ctx context.Context, season int, enabled bool, deadline *time.Time, pickMinutes int) (*models.DraftState, error) {
	return r.update(ctx, season,
		`UPDATE draft_states SET timer_enabled = $2, pick_deadline = $3, pick_minutes = $4, updated_at = NOW()
		 WHERE season = $1 RETURNING `+stateColumns,
		enabled, deadline, pickMinutes)
}

func (r *Repository) UpdateChannels(ctx context.Context, season int, channels []string) (*models.DraftState, error) {
	return r.update(ctx, season,
		"UPDATE draft_states SET notify_channels = $2, updated_at = NOW() WHERE season = $1 RETURNING "+stateColumns,
		pq.Array(channels))
}

func (r *Repository) update(ctx context.Context, season int, query string, args ...interface{}) (*models.DraftState, error) {
	allArgs := append([]interface{}{season}, args...)
	row := r.db.QueryRowContext(ctx, query, allArgs...)

	st, err := scanState(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update draft state for season %d: %w", season, err)
	}
	return st, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanState(row rowScanner) (*models.DraftState, error) {
	var (
		st       models.DraftState
		deadline sql.NullTime
		channels pq.StringArray
	)
	err := row.Scan(&st.Season, &st.Phase, &st.CurrentPick, &st.TimerEnabled, &deadline,
		&st.Settings.TeamCount, &st.Settings.TotalRounds, &st.Settings.LinearRounds,
		&st.Settings.PickMinutes, &st.Settings.CapLimit, &st.Settings.CountedSlots,
		&channels, &st.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if deadline.Valid {
		st.PickDeadline = &deadline.Time
	}
	st.NotifyChannels = channels
	return &st, nil
}
