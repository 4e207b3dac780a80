package pick

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/draftline/draftline/internal/models"
)

// ErrPickNotFound is returned when no pick record matches the lookup.
var ErrPickNotFound = errors.New("pick not found")

// ErrAlreadyFilled is returned when a fill targets a slot that already has a
// player committed. The guard lives in SQL so two concurrent fills can never
// both succeed.
var ErrAlreadyFilled = errors.New("pick already filled")

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const pickColumns = "id, season, overall, round, original_owner_id, current_owner_id, player_id, picked_at"

func (r *Repository) GetPickByOverall(ctx context.Context, season, overall int) (*models.Pick, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+pickColumns+" FROM picks WHERE season = $1 AND overall = $2",
		season, overall)

	p, err := scanPick(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPickNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pick %d/%d: %w", season, overall, err)
	}
	return p, nil
}

func (r *Repository) GetPick(ctx context.Context, id uuid.UUID) (*models.Pick, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+pickColumns+" FROM picks WHERE id = $1", id)

	p, err := scanPick(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPickNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pick %s: %w", id, err)
	}
	return p, nil
}

// FillPick commits a player to an unfilled slot. The WHERE clause refuses
// slots that already carry a player, so a zero row count distinguishes
// "already filled" from "missing".
func (r *Repository) FillPick(ctx context.Context, req FillPickRequest) (*models.Pick, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE picks
		 SET player_id = $2, picked_at = NOW()
		 WHERE id = $1 AND player_id IS NULL
		 RETURNING `+pickColumns,
		req.PickID, req.PlayerID)

	p, err := scanPick(row)
	if errors.Is(err, sql.ErrNoRows) {
		if _, getErr := r.GetPick(ctx, req.PickID); getErr != nil {
			return nil, getErr
		}
		return nil, ErrAlreadyFilled
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fill pick %s: %w", req.PickID, err)
	}
	return p, nil
}

// ClearPick wipes the committed player from a slot. Admin override only.
func (r *Repository) ClearPick(ctx context.Context, id uuid.UUID) (*models.Pick, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE picks
		 SET player_id = NULL, picked_at = NULL
		 WHERE id = $1
		 RETURNING `+pickColumns,
		id)

	p, err := scanPick(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPickNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to clear pick %s: %w", id, err)
	}
	return p, nil
}

// CreatePicksBatch inserts the full pick slate for a season in one statement
// using parallel arrays, mirroring the bulk setup at season creation.
func (r *Repository) CreatePicksBatch(ctx context.Context, picks []models.Pick) error {
	if len(picks) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(picks))
	seasons := make([]int64, len(picks))
	overalls := make([]int64, len(picks))
	rounds := make([]int64, len(picks))
	originalOwners := make([]uuid.UUID, len(picks))
	currentOwners := make([]uuid.UUID, len(picks))

	for i, p := range picks {
		ids[i] = p.ID
		seasons[i] = int64(p.Season)
		overalls[i] = int64(p.Overall)
		rounds[i] = int64(p.Round)
		originalOwners[i] = p.OriginalOwnerID
		currentOwners[i] = p.CurrentOwnerID
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO picks (id, season, overall, round, original_owner_id, current_owner_id)
		 SELECT * FROM unnest($1::uuid[], $2::bigint[], $3::bigint[], $4::bigint[], $5::uuid[], $6::uuid[])`,
		pq.Array(ids), pq.Array(seasons), pq.Array(overalls), pq.Array(rounds),
		pq.Array(originalOwners), pq.Array(currentOwners))
	if err != nil {
		return fmt.Errorf("failed to batch create picks: %w", err)
	}
	return nil
}

// FindSkippedPicks returns the unfilled picks a team owns with overall
// numbers below beforeOverall, ascending.
func (r *Repository) FindSkippedPicks(ctx context.Context, season int, teamID uuid.UUID, beforeOverall int) ([]models.Pick, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+pickColumns+` FROM picks
		 WHERE season = $1 AND current_owner_id = $2 AND overall < $3 AND player_id IS NULL
		 ORDER BY overall ASC`,
		season, teamID, beforeOverall)
	if err != nil {
		return nil, fmt.Errorf("failed to find skipped picks: %w", err)
	}
	defer rows.Close()

	return collectPicks(rows)
}

// QueryPicks serves the read-only listing endpoints.
func (r *Repository) QueryPicks(ctx context.Context, q PickQuery) ([]models.Pick, error) {
	var (
		conds = []string{"season = $1"}
		args  = []interface{}{q.Season}
	)

	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if q.Round != nil {
		add("round = $%d", *q.Round)
	}
	if q.TeamID != nil {
		add("current_owner_id = $%d", *q.TeamID)
	}
	if q.BeforeOverall != nil {
		add("overall < $%d", *q.BeforeOverall)
	}
	if q.AfterOverall != nil {
		add("overall >= $%d", *q.AfterOverall)
	}
	if q.OnlyUnfilled {
		conds = append(conds, "player_id IS NULL")
	}
	if q.OnlyFilled {
		conds = append(conds, "player_id IS NOT NULL")
	}

	query := "SELECT " + pickColumns + " FROM picks WHERE " + strings.Join(conds, " AND ")
	if q.Descending {
		query += " ORDER BY overall DESC"
	} else {
		query += " ORDER BY overall ASC"
	}
	if q.Limit > 0 {
		args = append(args, q.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query picks: %w", err)
	}
	defer rows.Close()

	return collectPicks(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPick(row rowScanner) (*models.Pick, error) {
	var (
		p        models.Pick
		playerID uuid.NullUUID
		pickedAt sql.NullTime
	)
	err := row.Scan(&p.ID, &p.Season, &p.Overall, &p.Round,
		&p.OriginalOwnerID, &p.CurrentOwnerID, &playerID, &pickedAt)
	if err != nil {
		return nil, err
	}
	if playerID.Valid {
		p.PlayerID = &playerID.UUID
	}
	if pickedAt.Valid {
		p.PickedAt = &pickedAt.Time
	}
	return &p, nil
}

func collectPicks(rows *sql.Rows) ([]models.Pick, error) {
	var picks []models.Pick
	for rows.Next() {
		p, err := scanPick(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pick row: %w", err)
		}
		picks = append(picks, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pick rows: %w", err)
	}
	return picks, nil
}
