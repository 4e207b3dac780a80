package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	pickstore "github.com/draftline/draftline/internal/draft/pick"
	"github.com/draftline/draftline/internal/models"
)

// StateRepository defines what the state machine needs from persistence.
type StateRepository interface {
	GetDraftState(ctx context.Context, season int) (*models.DraftState, error)
	CreateDraftState(ctx context.Context, st models.DraftState) (*models.DraftState, error)
	UpdateCurrentPick(ctx context.Context, season, overall int) (*models.DraftState, error)
	UpdatePhase(ctx context.Context, season int, phase models.DraftPhase) (*models.DraftState, error)
	UpdateTimer(ctx context.Context, season int, enabled bool, deadline *time.Time, pickMinutes int) (*models.DraftState, error)
	UpdateChannels(ctx context.Context, season int, channels []string) (*models.DraftState, error)
}

// PickStore defines what the state machine needs from the pick slate.
type PickStore interface {
	GetPickByOverall(ctx context.Context, season, overall int) (*models.Pick, error)
}

// App owns the draft state machine: the current-pick pointer, the pick timer
// and its deadline, and the phase transitions.
type App struct {
	repo  StateRepository
	picks PickStore
	clock clockwork.Clock
}

func NewApp(repo StateRepository, picks PickStore, clock clockwork.Clock) *App {
	return &App{repo: repo, picks: picks, clock: clock}
}

// CreateDraftState creates the season singleton in NotStarted with the
// current pick pointing at overall 1 and the timer off.
func (a *App) CreateDraftState(ctx context.Context, req CreateStateRequest) (*models.DraftState, error) {
	if req.TeamCount < 1 {
		return nil, fmt.Errorf("team count must be at least 1")
	}
	if req.TotalRounds < 1 {
		return nil, fmt.Errorf("total rounds must be at least 1")
	}
	if req.LinearRounds < 0 || req.LinearRounds > req.TotalRounds {
		return nil, fmt.Errorf("linear rounds %d out of range 0..%d", req.LinearRounds, req.TotalRounds)
	}

	return a.repo.CreateDraftState(ctx, models.DraftState{
		Season:      req.Season,
		Phase:       models.DraftPhaseNotStarted,
		CurrentPick: 1,
		Settings: models.DraftSettings{
			TeamCount:    req.TeamCount,
			TotalRounds:  req.TotalRounds,
			LinearRounds: req.LinearRounds,
			PickMinutes:  req.PickMinutes,
			CapLimit:     req.CapLimit,
			CountedSlots: req.CountedSlots,
		},
		NotifyChannels: req.NotifyChannels,
	})
}

// GetDraftState returns the season singleton.
func (a *App) GetDraftState(ctx context.Context, season int) (*models.DraftState, error) {
	return a.repo.GetDraftState(ctx, season)
}

// AdvancePick moves the current-pick pointer past previousOverall to the
// first unfilled slot. Slots filled out-of-band (skipped-pick makeups) are
// scanned over. Running past the last slot completes the draft and disables
// the timer. A gap in the slate fails hard: that is corrupt data, not a skip.
func (a *App) AdvancePick(ctx context.Context, season, previousOverall int) (*models.DraftState, error) {
	st, err := a.repo.GetDraftState(ctx, season)
	if err != nil {
		return nil, err
	}

	total := st.Settings.TotalPicks()
	for overall := previousOverall + 1; overall <= total; overall++ {
		p, err := a.picks.GetPickByOverall(ctx, season, overall)
		if errors.Is(err, pickstore.ErrPickNotFound) {
			return nil, fmt.Errorf("%w: season %d overall %d", ErrPickRecordMissing, season, overall)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load pick %d while advancing: %w", overall, err)
		}
		if p.Filled() {
			log.Debug().Int("season", season).Int("overall", overall).
				Msg("skipping already-filled pick while advancing")
			continue
		}

		updated, err := a.repo.UpdateCurrentPick(ctx, season, overall)
		if err != nil {
			return nil, err
		}
		if updated.TimerEnabled {
			deadline := a.clock.Now().Add(time.Duration(updated.Settings.PickMinutes) * time.Minute)
			updated, err = a.repo.UpdateTimer(ctx, season, true, &deadline, updated.Settings.PickMinutes)
			if err != nil {
				return nil, err
			}
		}
		log.Info().Int("season", season).Int("overall", overall).Msg("advanced to next pick")
		return updated, nil
	}

	return a.complete(ctx, season, total)
}

// complete marks the draft finished and force-disables the timer.
func (a *App) complete(ctx context.Context, season, total int) (*models.DraftState, error) {
	if _, err := a.repo.UpdateCurrentPick(ctx, season, total+1); err != nil {
		return nil, err
	}
	st, err := a.repo.GetDraftState(ctx, season)
	if err != nil {
		return nil, err
	}
	if _, err := a.repo.UpdateTimer(ctx, season, false, nil, st.Settings.PickMinutes); err != nil {
		return nil, err
	}
	st, err = a.repo.UpdatePhase(ctx, season, models.DraftPhaseComplete)
	if err != nil {
		return nil, err
	}
	log.Info().Int("season", season).Msg("draft complete")
	return st, nil
}

// SetTimer enables or disables the pick timer. Enabling stamps a fresh
// deadline; a positive minutes value replaces the stored per-pick allowance.
// Disabling clears the deadline outright.
func (a *App) SetTimer(ctx context.Context, season int, enabled bool, minutes int) (*models.DraftState, error) {
	st, err := a.repo.GetDraftState(ctx, season)
	if err != nil {
		return nil, err
	}

	pickMinutes := st.Settings.PickMinutes
	if minutes > 0 {
		pickMinutes = minutes
	}

	if !enabled {
		return a.repo.UpdateTimer(ctx, season, false, nil, pickMinutes)
	}

	deadline := a.clock.Now().Add(time.Duration(pickMinutes) * time.Minute)
	return a.repo.UpdateTimer(ctx, season, true, &deadline, pickMinutes)
}

// SetCurrentPick jumps the pointer to an arbitrary overall number. Admin only.
func (a *App) SetCurrentPick(ctx context.Context, season, overall int, resetTimer bool) (*models.DraftState, error) {
	st, err := a.repo.GetDraftState(ctx, season)
	if err != nil {
		return nil, err
	}
	if overall < 1 || overall > st.Settings.TotalPicks() {
		return nil, fmt.Errorf("overall %d out of range 1..%d", overall, st.Settings.TotalPicks())
	}

	updated, err := a.repo.UpdateCurrentPick(ctx, season, overall)
	if err != nil {
		return nil, err
	}
	if resetTimer && updated.TimerEnabled {
		deadline := a.clock.Now().Add(time.Duration(updated.Settings.PickMinutes) * time.Minute)
		return a.repo.UpdateTimer(ctx, season, true, &deadline, updated.Settings.PickMinutes)
	}
	return updated, nil
}

// ResetDeadline extends the current deadline without moving the pointer.
func (a *App) ResetDeadline(ctx context.Context, season, minutes int) (*models.DraftState, error) {
	st, err := a.repo.GetDraftState(ctx, season)
	if err != nil {
		return nil, err
	}
	if !st.TimerEnabled {
		return nil, ErrTimerDisabled
	}

	pickMinutes := st.Settings.PickMinutes
	if minutes > 0 {
		pickMinutes = minutes
	}
	deadline := a.clock.Now().Add(time.Duration(pickMinutes) * time.Minute)
	return a.repo.UpdateTimer(ctx, season, true, &deadline, st.Settings.PickMinutes)
}

// UpdateChannels replaces the opaque notification-target refs.
func (a *App) UpdateChannels(ctx context.Context, season int, channels []string) (*models.DraftState, error) {
	return a.repo.UpdateChannels(ctx, season, channels)
}

// StartDraft moves NotStarted to InProgress and, if the timer is enabled,
// stamps the first deadline.
func (a *App) StartDraft(ctx context.Context, season int) (*models.DraftState, error) {
	return a.transition(ctx, season, models.DraftPhaseNotStarted, models.DraftPhaseInProgress, true)
}

// PauseDraft suspends an in-progress draft.
func (a *App) PauseDraft(ctx context.Context, season int) (*models.DraftState, error) {
	return a.transition(ctx, season, models.DraftPhaseInProgress, models.DraftPhasePaused, false)
}

// ResumeDraft puts a paused draft back in progress with a fresh deadline.
func (a *App) ResumeDraft(ctx context.Context, season int) (*models.DraftState, error) {
	return a.transition(ctx, season, models.DraftPhasePaused, models.DraftPhaseInProgress, true)
}

func (a *App) transition(ctx context.Context, season int, from, to models.DraftPhase, stampDeadline bool) (*models.DraftState, error) {
	st, err := a.repo.GetDraftState(ctx, season)
	if err != nil {
		return nil, err
	}
	if st.Phase != from {
		return nil, fmt.Errorf("cannot move draft from %s to %s", st.Phase, to)
	}

	updated, err := a.repo.UpdatePhase(ctx, season, to)
	if err != nil {
		return nil, err
	}
	if stampDeadline && updated.TimerEnabled {
		deadline := a.clock.Now().Add(time.Duration(updated.Settings.PickMinutes) * time.Minute)
		return a.repo.UpdateTimer(ctx, season, true, &deadline, updated.Settings.PickMinutes)
	}
	return updated, nil
}
