package coordinator

import (
	"context"

	"github.com/google/uuid"

	"github.com/draftline/draftline/internal/models"
	"github.com/draftline/draftline/internal/notify"
)

// The read-only and admin surface exposed to the presentation layer. These
// calls do not take the lease: reads tolerate racing a selection, and admin
// operations are operator-paced.

func (c *Coordinator) GetDraftState(ctx context.Context, season int) (*models.DraftState, error) {
	return c.state.GetDraftState(ctx, season)
}

// GetCurrentPick returns the pick on the clock.
func (c *Coordinator) GetCurrentPick(ctx context.Context, season int) (*models.Pick, error) {
	st, err := c.state.GetDraftState(ctx, season)
	if err != nil {
		return nil, err
	}
	return c.picks.GetPickByOverall(ctx, season, st.CurrentPick)
}

func (c *Coordinator) GetSkippedPicks(ctx context.Context, season int, teamID uuid.UUID, beforeOverall int) ([]models.Pick, error) {
	return c.picks.FindSkippedPicks(ctx, season, teamID, beforeOverall)
}

func (c *Coordinator) GetPicksByRound(ctx context.Context, season, round int) ([]models.Pick, error) {
	return c.picks.ListPicksByRound(ctx, season, round)
}

func (c *Coordinator) GetPicksByTeam(ctx context.Context, season int, teamID uuid.UUID) ([]models.Pick, error) {
	return c.picks.ListPicksByTeam(ctx, season, teamID)
}

func (c *Coordinator) GetRecentPicks(ctx context.Context, season, limit int) ([]models.Pick, error) {
	st, err := c.state.GetDraftState(ctx, season)
	if err != nil {
		return nil, err
	}
	return c.picks.ListRecentPicks(ctx, season, st.CurrentPick, limit)
}

func (c *Coordinator) GetUpcomingPicks(ctx context.Context, season, limit int) ([]models.Pick, error) {
	st, err := c.state.GetDraftState(ctx, season)
	if err != nil {
		return nil, err
	}
	return c.picks.ListUpcomingPicks(ctx, season, st.CurrentPick, limit)
}

// AdvancePick moves the pointer past fromOverall. Exposed for the autopick
// worker and operators; the selection path advances on its own.
func (c *Coordinator) AdvancePick(ctx context.Context, season, fromOverall int) (*models.DraftState, error) {
	st, err := c.state.AdvancePick(ctx, season, fromOverall)
	if err != nil {
		return nil, err
	}
	if st.Phase == models.DraftPhaseComplete {
		c.publish(ctx, notify.EventDraftComplete, season, st)
	} else {
		c.publish(ctx, notify.EventDraftAdvanced, season, st)
	}
	return st, nil
}

func (c *Coordinator) SetTimer(ctx context.Context, season int, enabled bool, minutes int) (*models.DraftState, error) {
	return c.state.SetTimer(ctx, season, enabled, minutes)
}

func (c *Coordinator) SetCurrentPick(ctx context.Context, season, overall int, resetTimer bool) (*models.DraftState, error) {
	st, err := c.state.SetCurrentPick(ctx, season, overall, resetTimer)
	if err != nil {
		return nil, err
	}
	c.publish(ctx, notify.EventDraftAdvanced, season, st)
	return st, nil
}

func (c *Coordinator) ResetDeadline(ctx context.Context, season, minutes int) (*models.DraftState, error) {
	return c.state.ResetDeadline(ctx, season, minutes)
}

func (c *Coordinator) UpdateChannels(ctx context.Context, season int, channels []string) (*models.DraftState, error) {
	return c.state.UpdateChannels(ctx, season, channels)
}

func (c *Coordinator) StartDraft(ctx context.Context, season int) (*models.DraftState, error) {
	st, err := c.state.StartDraft(ctx, season)
	if err != nil {
		return nil, err
	}
	c.publish(ctx, notify.EventDraftStarted, season, st)
	return st, nil
}

func (c *Coordinator) PauseDraft(ctx context.Context, season int) (*models.DraftState, error) {
	st, err := c.state.PauseDraft(ctx, season)
	if err != nil {
		return nil, err
	}
	c.publish(ctx, notify.EventDraftPaused, season, st)
	return st, nil
}

func (c *Coordinator) ResumeDraft(ctx context.Context, season int) (*models.DraftState, error) {
	st, err := c.state.ResumeDraft(ctx, season)
	if err != nil {
		return nil, err
	}
	c.publish(ctx, notify.EventDraftResumed, season, st)
	return st, nil
}

// WipePick clears a committed selection. Admin override only; the selection
// invariant is otherwise append-only.
func (c *Coordinator) WipePick(ctx context.Context, season int, pickID uuid.UUID) (*models.Pick, error) {
	p, err := c.picks.ClearPick(ctx, pickID)
	if err != nil {
		return nil, err
	}
	c.publish(ctx, notify.EventPickWiped, season, p)
	return p, nil
}
