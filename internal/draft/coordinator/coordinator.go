// Package coordinator orchestrates the one atomic workflow of the engine:
// committing a selection. Identity, turn, availability and cap checks run
// under a draft-wide lease so at most one selection is in flight, then the
// committed pick fans out to best-effort side-effect surfaces.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	pickstore "github.com/draftline/draftline/internal/draft/pick"
	"github.com/draftline/draftline/internal/draft/state"
	"github.com/draftline/draftline/internal/models"
	"github.com/draftline/draftline/internal/notify"
	"github.com/draftline/draftline/internal/salarycap"
	"github.com/draftline/draftline/internal/teams"
)

// PickApp defines what the coordinator needs from the pick store.
type PickApp interface {
	GetPickByOverall(ctx context.Context, season, overall int) (*models.Pick, error)
	FillPick(ctx context.Context, req pickstore.FillPickRequest) (*models.Pick, error)
	ClearPick(ctx context.Context, id uuid.UUID) (*models.Pick, error)
	FindSkippedPicks(ctx context.Context, season int, teamID uuid.UUID, beforeOverall int) ([]models.Pick, error)
	ListPicksByRound(ctx context.Context, season, round int) ([]models.Pick, error)
	ListPicksByTeam(ctx context.Context, season int, teamID uuid.UUID) ([]models.Pick, error)
	ListRecentPicks(ctx context.Context, season, beforeOverall, limit int) ([]models.Pick, error)
	ListUpcomingPicks(ctx context.Context, season, fromOverall, limit int) ([]models.Pick, error)
	ListFilledPicks(ctx context.Context, season int) ([]models.Pick, error)
}

// StateApp defines what the coordinator needs from the draft state machine.
type StateApp interface {
	GetDraftState(ctx context.Context, season int) (*models.DraftState, error)
	AdvancePick(ctx context.Context, season, previousOverall int) (*models.DraftState, error)
	SetTimer(ctx context.Context, season int, enabled bool, minutes int) (*models.DraftState, error)
	SetCurrentPick(ctx context.Context, season, overall int, resetTimer bool) (*models.DraftState, error)
	ResetDeadline(ctx context.Context, season, minutes int) (*models.DraftState, error)
	UpdateChannels(ctx context.Context, season int, channels []string) (*models.DraftState, error)
	StartDraft(ctx context.Context, season int) (*models.DraftState, error)
	PauseDraft(ctx context.Context, season int) (*models.DraftState, error)
	ResumeDraft(ctx context.Context, season int) (*models.DraftState, error)
}

// TeamDirectory resolves chat identities to teams and loads rosters.
type TeamDirectory interface {
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
	GetTeamByOwner(ctx context.Context, userID string, season int) (*models.Team, error)
	GetRoster(ctx context.Context, teamID uuid.UUID) ([]models.RosterSpot, error)
}

// PlayerDirectory resolves player names and free agency.
type PlayerDirectory interface {
	FindByName(ctx context.Context, name string, season int) ([]models.Player, error)
	IsFreeAgent(ctx context.Context, playerID uuid.UUID) (bool, error)
	ReassignTeam(ctx context.Context, playerID, teamID uuid.UUID) error
}

// Tracker mirrors committed picks to the external tracking surface.
type Tracker interface {
	RecordPick(ctx context.Context, pick models.Pick) error
	ReplacePicks(ctx context.Context, season int, picks []models.Pick) error
}

// QueueApp keeps autopick queues consistent after each selection.
type QueueApp interface {
	RemovePlayer(ctx context.Context, season int, playerID uuid.UUID) error
}

// PickOutcome is the success result of MakePick.
type PickOutcome struct {
	Pick   models.Pick       `json:"pick"`
	Player models.Player     `json:"player"`
	Team   models.Team       `json:"team"`
	Makeup bool              `json:"makeup"` // true when a skipped slot was filled
	State  models.DraftState `json:"state"`  // draft state after the selection
}

// Coordinator composes the whole engine behind the draft-wide lease.
type Coordinator struct {
	picks     PickApp
	state     StateApp
	teams     TeamDirectory
	players   PlayerDirectory
	queue     QueueApp
	tracker   Tracker
	publisher notify.Publisher
	lock      *DraftLock
}

func NewCoordinator(
	picks PickApp,
	stateApp StateApp,
	teamDir TeamDirectory,
	playerDir PlayerDirectory,
	queue QueueApp,
	tracker Tracker,
	publisher notify.Publisher,
	clock clockwork.Clock,
	leaseTTL time.Duration,
) *Coordinator {
	return &Coordinator{
		picks:     picks,
		state:     stateApp,
		teams:     teamDir,
		players:   playerDir,
		queue:     queue,
		tracker:   tracker,
		publisher: publisher,
		lock:      NewDraftLock(clock, leaseTTL),
	}
}

// MakePick commits one selection for the team managed by userID. The checks
// and the selection write run under the lease; side effects and advancement
// complete before the lease is released, serializing everything.
func (c *Coordinator) MakePick(ctx context.Context, season int, userID, playerName string) (*PickOutcome, error) {
	token, err := c.lock.Acquire(userID)
	if err != nil {
		return nil, err
	}
	defer c.lock.Release(token)

	team, err := c.resolveTeam(ctx, season, userID)
	if err != nil {
		return nil, err
	}

	st, err := c.state.GetDraftState(ctx, season)
	if err != nil {
		if errors.Is(err, state.ErrStateNotFound) {
			return nil, ErrDraftNotConfigured
		}
		return nil, fmt.Errorf("failed to load draft state: %w", err)
	}
	if st.Phase == models.DraftPhasePaused {
		return nil, ErrDraftPaused
	}

	eligible, err := c.resolveEligiblePick(ctx, st, team)
	if err != nil {
		return nil, err
	}

	player, err := c.resolvePlayer(ctx, season, playerName)
	if err != nil {
		return nil, err
	}

	free, err := c.players.IsFreeAgent(ctx, player.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check free agency: %w", err)
	}
	if !free {
		return nil, &PlayerNotAvailableError{Name: player.FullName}
	}

	roster, err := c.teams.GetRoster(ctx, team.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	costs := make([]float64, len(roster))
	for i, spot := range roster {
		costs[i] = spot.Cost
	}
	ok, projected := salarycap.Validate(costs, player.Cost, st.Settings.CapLimit, st.Settings.CountedSlots)
	if !ok {
		return nil, &CapExceededError{Projected: projected, Limit: st.Settings.CapLimit}
	}

	// The one write that must not partially apply. The store-level guard
	// refuses already-filled slots, so failure leaves the slate untouched.
	committed, err := c.picks.FillPick(ctx, pickstore.FillPickRequest{
		PickID:   eligible.Pick().ID,
		PlayerID: player.ID,
	})
	if err != nil {
		return nil, &PersistenceError{Err: err}
	}

	log.Info().
		Int("season", season).
		Int("overall", committed.Overall).
		Str("team", team.Name).
		Str("player", player.FullName).
		Bool("makeup", !eligible.AdvancesTurn()).
		Msg("selection committed")

	c.applySideEffects(ctx, season, committed, team, player)

	outcome := &PickOutcome{
		Pick:   *committed,
		Player: *player,
		Team:   *team,
		Makeup: !eligible.AdvancesTurn(),
		State:  *st,
	}

	if eligible.AdvancesTurn() {
		advanced, err := c.state.AdvancePick(ctx, season, committed.Overall)
		if err != nil {
			// The selection is committed; only the pointer move failed. The
			// caller must know, and an admin SetCurrentPick repairs it.
			return nil, fmt.Errorf("selection for %s committed, but advancing the draft failed: %w",
				player.FullName, err)
		}
		outcome.State = *advanced
	}

	c.publish(ctx, notify.EventPickMade, season, outcome)
	return outcome, nil
}

// resolveTeam maps a chat identity to its team.
func (c *Coordinator) resolveTeam(ctx context.Context, season int, userID string) (*models.Team, error) {
	team, err := c.teams.GetTeamByOwner(ctx, userID, season)
	if err != nil {
		if errors.Is(err, teams.ErrTeamNotFound) {
			return nil, ErrNotAGeneralManager
		}
		return nil, fmt.Errorf("failed to resolve team: %w", err)
	}
	return team, nil
}

// resolveEligiblePick decides which slot the team may fill: the pick on the
// clock if it owns it, otherwise its earliest outstanding skipped pick.
func (c *Coordinator) resolveEligiblePick(ctx context.Context, st *models.DraftState, team *models.Team) (EligiblePick, error) {
	current, err := c.picks.GetPickByOverall(ctx, st.Season, st.CurrentPick)
	if err != nil {
		if errors.Is(err, pickstore.ErrPickNotFound) {
			return EligiblePick{}, ErrPickNotFound
		}
		return EligiblePick{}, fmt.Errorf("failed to load current pick: %w", err)
	}

	if current.CurrentOwnerID == team.ID {
		return CurrentTurn(*current), nil
	}

	skipped, err := c.picks.FindSkippedPicks(ctx, st.Season, team.ID, st.CurrentPick)
	if err != nil {
		return EligiblePick{}, fmt.Errorf("failed to find skipped picks: %w", err)
	}
	if len(skipped) > 0 {
		return SkippedMakeup(skipped[0]), nil
	}

	notOnClock := &NotOnTheClockError{Overall: current.Overall}
	if onClock, err := c.teams.GetTeam(ctx, current.CurrentOwnerID); err == nil {
		notOnClock.OnClockTeam = onClock.Name
	}
	return EligiblePick{}, notOnClock
}

// resolvePlayer matches a typed name against the pool. An exact
// case-insensitive match wins among several hits; otherwise the candidates
// are surfaced rather than guessed between.
func (c *Coordinator) resolvePlayer(ctx context.Context, season int, playerName string) (*models.Player, error) {
	name := strings.TrimSpace(playerName)
	matches, err := c.players.FindByName(ctx, name, season)
	if err != nil {
		return nil, fmt.Errorf("failed to search players: %w", err)
	}
	if len(matches) == 0 {
		return nil, &PlayerNotFoundError{Name: name}
	}
	if len(matches) == 1 {
		return &matches[0], nil
	}

	for i := range matches {
		if strings.EqualFold(matches[i].FullName, name) {
			return &matches[i], nil
		}
	}

	candidates := make([]string, len(matches))
	for i, m := range matches {
		candidates[i] = m.FullName
	}
	return nil, &AmbiguousPlayerError{Name: name, Candidates: candidates}
}

// applySideEffects runs the best-effort fan-out after a committed selection:
// the player directory, the autopick queues and the tracking mirror. Failures
// are logged and repaired later by resync, never rolled back into the pick.
func (c *Coordinator) applySideEffects(ctx context.Context, season int, committed *models.Pick, team *models.Team, player *models.Player) {
	if err := c.players.ReassignTeam(ctx, player.ID, team.ID); err != nil {
		log.Error().Err(err).
			Str("player", player.FullName).
			Str("team", team.Name).
			Msg("failed to update player directory, selection stands")
	}

	if err := c.queue.RemovePlayer(ctx, season, player.ID); err != nil {
		log.Error().Err(err).
			Str("player", player.FullName).
			Msg("failed to drop player from autopick queues")
	}

	if err := c.tracker.RecordPick(ctx, *committed); err != nil {
		log.Error().Err(err).
			Int("overall", committed.Overall).
			Msg("failed to mirror pick to tracking surface, resync will repair")
	}
}

// ResyncTracker replays every filled pick to the tracking surface. Idempotent
// by construction: the surface is replaced wholesale.
func (c *Coordinator) ResyncTracker(ctx context.Context, season int) error {
	picks, err := c.picks.ListFilledPicks(ctx, season)
	if err != nil {
		return fmt.Errorf("failed to load filled picks: %w", err)
	}
	if err := c.tracker.ReplacePicks(ctx, season, picks); err != nil {
		return fmt.Errorf("failed to replay picks to tracking surface: %w", err)
	}
	log.Info().Int("season", season).Int("picks", len(picks)).Msg("tracking surface resynced")
	return nil
}

func (c *Coordinator) publish(ctx context.Context, eventType string, season int, payload interface{}) {
	event, err := notify.NewEvent(eventType, season, payload)
	if err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("failed to build event")
		return
	}
	if err := c.publisher.Publish(ctx, event); err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("failed to publish event")
	}
}
