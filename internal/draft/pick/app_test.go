package pick

import (
	"context"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftline/draftline/internal/models"
)

// fakeRepo is an in-memory PickRepository keyed by (season, overall).
type fakeRepo struct {
	picks map[int]map[int]*models.Pick
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{picks: make(map[int]map[int]*models.Pick)}
}

func (f *fakeRepo) put(p models.Pick) {
	if f.picks[p.Season] == nil {
		f.picks[p.Season] = make(map[int]*models.Pick)
	}
	cp := p
	f.picks[p.Season][p.Overall] = &cp
}

func (f *fakeRepo) GetPickByOverall(_ context.Context, season, overall int) (*models.Pick, error) {
	if p, ok := f.picks[season][overall]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, ErrPickNotFound
}

func (f *fakeRepo) GetPick(_ context.Context, id uuid.UUID) (*models.Pick, error) {
	for _, bySeason := range f.picks {
		for _, p := range bySeason {
			if p.ID == id {
				cp := *p
				return &cp, nil
			}
		}
	}
	return nil, ErrPickNotFound
}

func (f *fakeRepo) FillPick(_ context.Context, req FillPickRequest) (*models.Pick, error) {
	for _, bySeason := range f.picks {
		for _, p := range bySeason {
			if p.ID == req.PickID {
				if p.PlayerID != nil {
					return nil, ErrAlreadyFilled
				}
				pid := req.PlayerID
				p.PlayerID = &pid
				cp := *p
				return &cp, nil
			}
		}
	}
	return nil, ErrPickNotFound
}

func (f *fakeRepo) ClearPick(_ context.Context, id uuid.UUID) (*models.Pick, error) {
	for _, bySeason := range f.picks {
		for _, p := range bySeason {
			if p.ID == id {
				p.PlayerID = nil
				p.PickedAt = nil
				cp := *p
				return &cp, nil
			}
		}
	}
	return nil, ErrPickNotFound
}

func (f *fakeRepo) CreatePicksBatch(_ context.Context, picks []models.Pick) error {
	for _, p := range picks {
		f.put(p)
	}
	return nil
}

func (f *fakeRepo) FindSkippedPicks(_ context.Context, season int, teamID uuid.UUID, beforeOverall int) ([]models.Pick, error) {
	var out []models.Pick
	for _, p := range f.picks[season] {
		if p.CurrentOwnerID == teamID && p.Overall < beforeOverall && p.PlayerID == nil {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Overall < out[j].Overall })
	return out, nil
}

func (f *fakeRepo) QueryPicks(_ context.Context, q PickQuery) ([]models.Pick, error) {
	var out []models.Pick
	for _, p := range f.picks[q.Season] {
		if q.Round != nil && p.Round != *q.Round {
			continue
		}
		if q.TeamID != nil && p.CurrentOwnerID != *q.TeamID {
			continue
		}
		if q.BeforeOverall != nil && p.Overall >= *q.BeforeOverall {
			continue
		}
		if q.AfterOverall != nil && p.Overall < *q.AfterOverall {
			continue
		}
		if q.OnlyUnfilled && p.PlayerID != nil {
			continue
		}
		if q.OnlyFilled && p.PlayerID == nil {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if q.Descending {
			return out[i].Overall > out[j].Overall
		}
		return out[i].Overall < out[j].Overall
	})
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func unfilled(season, overall int, owner uuid.UUID) models.Pick {
	return models.Pick{
		ID:              uuid.New(),
		Season:          season,
		Overall:         overall,
		Round:           1,
		OriginalOwnerID: owner,
		CurrentOwnerID:  owner,
	}
}

func filled(season, overall int, owner uuid.UUID) models.Pick {
	p := unfilled(season, overall, owner)
	pid := uuid.New()
	p.PlayerID = &pid
	return p
}

func TestFindSkippedPicksOrdering(t *testing.T) {
	repo := newFakeRepo()
	app := NewApp(repo)
	teamT := uuid.New()
	other := uuid.New()

	repo.put(unfilled(2026, 31, teamT))
	repo.put(unfilled(2026, 12, teamT))
	repo.put(filled(2026, 5, teamT))       // filled, not a skip
	repo.put(unfilled(2026, 55, teamT))    // not before current
	repo.put(unfilled(2026, 20, other))    // other team's skip
	repo.put(unfilled(2026, 8, uuid.New()))

	skips, err := app.FindSkippedPicks(context.Background(), 2026, teamT, 50)
	require.NoError(t, err)
	require.Len(t, skips, 2)
	assert.Equal(t, 12, skips[0].Overall)
	assert.Equal(t, 31, skips[1].Overall)
}

func TestFindSkippedPicksNoneOutstanding(t *testing.T) {
	repo := newFakeRepo()
	app := NewApp(repo)
	teamT := uuid.New()
	repo.put(filled(2026, 3, teamT))

	skips, err := app.FindSkippedPicks(context.Background(), 2026, teamT, 50)
	require.NoError(t, err)
	assert.Empty(t, skips)

	_, err = app.FindSkippedPicks(context.Background(), 2026, uuid.Nil, 50)
	assert.Error(t, err)
}

func TestPrepopulatePicksRefusesSecondRun(t *testing.T) {
	repo := newFakeRepo()
	app := NewApp(repo)
	order := []uuid.UUID{uuid.New(), uuid.New()}

	require.NoError(t, app.PrepopulatePicks(context.Background(), 2026, order, 3, 1))

	all, err := repo.QueryPicks(context.Background(), PickQuery{Season: 2026})
	require.NoError(t, err)
	assert.Len(t, all, 6)

	err = app.PrepopulatePicks(context.Background(), 2026, order, 3, 1)
	assert.Error(t, err)
}

func TestFillPickGuards(t *testing.T) {
	repo := newFakeRepo()
	app := NewApp(repo)

	p := unfilled(2026, 1, uuid.New())
	repo.put(p)

	_, err := app.FillPick(context.Background(), FillPickRequest{PickID: p.ID})
	assert.Error(t, err, "missing player id")

	got, err := app.FillPick(context.Background(), FillPickRequest{PickID: p.ID, PlayerID: uuid.New()})
	require.NoError(t, err)
	assert.NotNil(t, got.PlayerID)

	_, err = app.FillPick(context.Background(), FillPickRequest{PickID: p.ID, PlayerID: uuid.New()})
	assert.ErrorIs(t, err, ErrAlreadyFilled)
}

func TestListRecentAndUpcoming(t *testing.T) {
	repo := newFakeRepo()
	app := NewApp(repo)
	team := uuid.New()

	repo.put(filled(2026, 1, team))
	repo.put(filled(2026, 2, team))
	repo.put(filled(2026, 3, team))
	repo.put(unfilled(2026, 4, team))
	repo.put(unfilled(2026, 5, team))

	recent, err := app.ListRecentPicks(context.Background(), 2026, 4, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, 3, recent[0].Overall)
	assert.Equal(t, 2, recent[1].Overall)

	upcoming, err := app.ListUpcomingPicks(context.Background(), 2026, 4, 10)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, 4, upcoming[0].Overall)
	assert.Equal(t, 5, upcoming[1].Overall)
}
