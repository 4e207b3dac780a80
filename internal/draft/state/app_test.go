package state

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pickstore "github.com/draftline/draftline/internal/draft/pick"
	"github.com/draftline/draftline/internal/models"
)

type fakeStateRepo struct {
	states map[int]*models.DraftState
}

func newFakeStateRepo() *fakeStateRepo {
	return &fakeStateRepo{states: make(map[int]*models.DraftState)}
}

func (f *fakeStateRepo) get(season int) (*models.DraftState, error) {
	st, ok := f.states[season]
	if !ok {
		return nil, ErrStateNotFound
	}
	return st, nil
}

func (f *fakeStateRepo) GetDraftState(_ context.Context, season int) (*models.DraftState, error) {
	st, err := f.get(season)
	if err != nil {
		return nil, err
	}
	cp := *st
	return &cp, nil
}

func (f *fakeStateRepo) CreateDraftState(_ context.Context, st models.DraftState) (*models.DraftState, error) {
	cp := st
	f.states[st.Season] = &cp
	out := cp
	return &out, nil
}

func (f *fakeStateRepo) UpdateCurrentPick(_ context.Context, season, overall int) (*models.DraftState, error) {
	st, err := f.get(season)
	if err != nil {
		return nil, err
	}
	st.CurrentPick = overall
	cp := *st
	return &cp, nil
}

func (f *fakeStateRepo) UpdatePhase(_ context.Context, season int, phase models.DraftPhase) (*models.DraftState, error) {
	st, err := f.get(season)
	if err != nil {
		return nil, err
	}
	st.Phase = phase
	cp := *st
	return &cp, nil
}

func (f *fakeStateRepo) UpdateTimer(_ context.Context, season int, enabled bool, deadline *time.Time, pickMinutes int) (*models.DraftState, error) {
	st, err := f.get(season)
	if err != nil {
		return nil, err
	}
	st.TimerEnabled = enabled
	st.PickDeadline = deadline
	st.Settings.PickMinutes = pickMinutes
	cp := *st
	return &cp, nil
}

func (f *fakeStateRepo) UpdateChannels(_ context.Context, season int, channels []string) (*models.DraftState, error) {
	st, err := f.get(season)
	if err != nil {
		return nil, err
	}
	st.NotifyChannels = channels
	cp := *st
	return &cp, nil
}

// fakeSlate is a PickStore over a fixed set of overall numbers.
type fakeSlate struct {
	picks map[int]*models.Pick
}

func newFakeSlate(total int) *fakeSlate {
	f := &fakeSlate{picks: make(map[int]*models.Pick)}
	owner := uuid.New()
	for i := 1; i <= total; i++ {
		f.picks[i] = &models.Pick{
			ID:              uuid.New(),
			Season:          2026,
			Overall:         i,
			Round:           1,
			OriginalOwnerID: owner,
			CurrentOwnerID:  owner,
		}
	}
	return f
}

func (f *fakeSlate) fill(overall int) {
	pid := uuid.New()
	f.picks[overall].PlayerID = &pid
}

func (f *fakeSlate) drop(overall int) {
	delete(f.picks, overall)
}

func (f *fakeSlate) GetPickByOverall(_ context.Context, _, overall int) (*models.Pick, error) {
	p, ok := f.picks[overall]
	if !ok {
		return nil, pickstore.ErrPickNotFound
	}
	cp := *p
	return &cp, nil
}

func newTestApp(t *testing.T, total int) (*App, *fakeStateRepo, *fakeSlate, *clockwork.FakeClock) {
	t.Helper()
	repo := newFakeStateRepo()
	slate := newFakeSlate(total)
	clock := clockwork.NewFakeClock()
	app := NewApp(repo, slate, clock)

	_, err := app.CreateDraftState(context.Background(), CreateStateRequest{
		Season:       2026,
		TeamCount:    total, // one round for simplicity
		TotalRounds:  1,
		LinearRounds: 1,
		PickMinutes:  10,
		CapLimit:     32.0,
		CountedSlots: 26,
	})
	require.NoError(t, err)
	return app, repo, slate, clock
}

func TestAdvancePickSkipsFilledSlots(t *testing.T) {
	app, _, slate, _ := newTestApp(t, 12)

	// Pick 10 was filled out-of-band by a skipped-pick makeup.
	slate.fill(10)

	st, err := app.AdvancePick(context.Background(), 2026, 9)
	require.NoError(t, err)
	assert.Equal(t, 11, st.CurrentPick)
	assert.Equal(t, models.DraftPhaseNotStarted, st.Phase)
}

func TestAdvancePickMissingRecordFailsHard(t *testing.T) {
	app, _, slate, _ := newTestApp(t, 12)
	slate.drop(5)

	_, err := app.AdvancePick(context.Background(), 2026, 4)
	assert.ErrorIs(t, err, ErrPickRecordMissing)
}

func TestAdvancePickEndOfDraft(t *testing.T) {
	app, _, _, _ := newTestApp(t, 12)

	_, err := app.SetTimer(context.Background(), 2026, true, 0)
	require.NoError(t, err)

	// Last slot still unfilled: the pointer lands on it.
	st, err := app.AdvancePick(context.Background(), 2026, 11)
	require.NoError(t, err)
	assert.Equal(t, 12, st.CurrentPick)
	assert.NotEqual(t, models.DraftPhaseComplete, st.Phase)

	// Advancing past the final slot completes the draft and kills the timer.
	st, err = app.AdvancePick(context.Background(), 2026, 12)
	require.NoError(t, err)
	assert.Equal(t, models.DraftPhaseComplete, st.Phase)
	assert.Equal(t, 13, st.CurrentPick)
	assert.False(t, st.TimerEnabled)
	assert.Nil(t, st.PickDeadline)
}

func TestAdvancePickResetsDeadlineWhenTimerOn(t *testing.T) {
	app, _, _, clock := newTestApp(t, 12)

	_, err := app.SetTimer(context.Background(), 2026, true, 15)
	require.NoError(t, err)

	clock.Advance(5 * time.Minute)
	st, err := app.AdvancePick(context.Background(), 2026, 1)
	require.NoError(t, err)
	require.NotNil(t, st.PickDeadline)
	assert.Equal(t, clock.Now().Add(15*time.Minute), *st.PickDeadline)
}

func TestSetTimer(t *testing.T) {
	app, _, _, clock := newTestApp(t, 12)

	st, err := app.SetTimer(context.Background(), 2026, true, 20)
	require.NoError(t, err)
	assert.True(t, st.TimerEnabled)
	require.NotNil(t, st.PickDeadline)
	assert.Equal(t, clock.Now().Add(20*time.Minute), *st.PickDeadline)
	assert.Equal(t, 20, st.Settings.PickMinutes)

	st, err = app.SetTimer(context.Background(), 2026, false, 0)
	require.NoError(t, err)
	assert.False(t, st.TimerEnabled)
	assert.Nil(t, st.PickDeadline)
}

func TestResetDeadline(t *testing.T) {
	app, _, _, clock := newTestApp(t, 12)

	_, err := app.ResetDeadline(context.Background(), 2026, 5)
	assert.ErrorIs(t, err, ErrTimerDisabled)

	_, err = app.SetTimer(context.Background(), 2026, true, 10)
	require.NoError(t, err)

	clock.Advance(8 * time.Minute)
	st, err := app.ResetDeadline(context.Background(), 2026, 30)
	require.NoError(t, err)
	require.NotNil(t, st.PickDeadline)
	assert.Equal(t, clock.Now().Add(30*time.Minute), *st.PickDeadline)
	// A one-off extension must not change the stored per-pick allowance.
	assert.Equal(t, 10, st.Settings.PickMinutes)
}

func TestSetCurrentPick(t *testing.T) {
	app, _, _, clock := newTestApp(t, 12)

	_, err := app.SetTimer(context.Background(), 2026, true, 10)
	require.NoError(t, err)

	clock.Advance(time.Minute)
	st, err := app.SetCurrentPick(context.Background(), 2026, 7, true)
	require.NoError(t, err)
	assert.Equal(t, 7, st.CurrentPick)
	require.NotNil(t, st.PickDeadline)
	assert.Equal(t, clock.Now().Add(10*time.Minute), *st.PickDeadline)

	_, err = app.SetCurrentPick(context.Background(), 2026, 99, false)
	assert.Error(t, err)
}

func TestPhaseTransitions(t *testing.T) {
	app, _, _, _ := newTestApp(t, 12)

	_, err := app.PauseDraft(context.Background(), 2026)
	assert.Error(t, err, "cannot pause before start")

	st, err := app.StartDraft(context.Background(), 2026)
	require.NoError(t, err)
	assert.Equal(t, models.DraftPhaseInProgress, st.Phase)

	st, err = app.PauseDraft(context.Background(), 2026)
	require.NoError(t, err)
	assert.Equal(t, models.DraftPhasePaused, st.Phase)

	st, err = app.ResumeDraft(context.Background(), 2026)
	require.NoError(t, err)
	assert.Equal(t, models.DraftPhaseInProgress, st.Phase)
}
