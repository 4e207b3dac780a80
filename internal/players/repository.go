package players

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/draftline/draftline/internal/models"
)

// ErrPlayerNotFound is returned when no player matches the lookup.
var ErrPlayerNotFound = errors.New("player not found")

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// FindByName matches players by case-insensitive substring. Callers decide
// how to disambiguate multiple hits.
func (r *Repository) FindByName(ctx context.Context, name string, season int) ([]models.Player, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, season, full_name, cost, team_id FROM players
		 WHERE season = $1 AND full_name ILIKE '%' || $2 || '%'
		 ORDER BY full_name ASC`,
		season, name)
	if err != nil {
		return nil, fmt.Errorf("failed to find players by name: %w", err)
	}
	defer rows.Close()

	var out []models.Player
	for rows.Next() {
		var (
			p      models.Player
			teamID uuid.NullUUID
		)
		if err := rows.Scan(&p.ID, &p.Season, &p.FullName, &p.Cost, &teamID); err != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", err)
		}
		if teamID.Valid {
			p.TeamID = &teamID.UUID
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate player rows: %w", err)
	}
	return out, nil
}

// IsFreeAgent reports whether a player is unassigned and draftable.
func (r *Repository) IsFreeAgent(ctx context.Context, playerID uuid.UUID) (bool, error) {
	var teamID uuid.NullUUID
	err := r.db.QueryRowContext(ctx,
		"SELECT team_id FROM players WHERE id = $1", playerID).Scan(&teamID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}
	if err != nil {
		return false, fmt.Errorf("failed to check free agency for %s: %w", playerID, err)
	}
	return !teamID.Valid, nil
}

// ReassignTeam moves a player onto a team's roster in the player directory.
// The directory is a side-effect surface: the pick record stays the source of
// truth and a failed reassignment is repaired by resync.
func (r *Repository) ReassignTeam(ctx context.Context, playerID, teamID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE players SET team_id = $2 WHERE id = $1", playerID, teamID)
	if err != nil {
		return fmt.Errorf("failed to reassign player %s: %w", playerID, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}
	return nil
}
