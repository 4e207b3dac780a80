package teams

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/draftline/draftline/internal/models"
)

// ErrTeamNotFound is returned when no team matches the lookup.
var ErrTeamNotFound = errors.New("team not found")

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, season, name, owner_user_id FROM teams WHERE id = $1", id)
	return scanTeam(row, id.String())
}

func (r *Repository) GetTeamByOwner(ctx context.Context, userID string, season int) (*models.Team, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, season, name, owner_user_id FROM teams WHERE owner_user_id = $1 AND season = $2",
		userID, season)
	return scanTeam(row, userID)
}

// GetRoster returns the players a team currently rosters with the cost each
// carries against the cap.
func (r *Repository) GetRoster(ctx context.Context, teamID uuid.UUID) ([]models.RosterSpot, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, cost FROM players WHERE team_id = $1", teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster for team %s: %w", teamID, err)
	}
	defer rows.Close()

	var roster []models.RosterSpot
	for rows.Next() {
		var spot models.RosterSpot
		if err := rows.Scan(&spot.PlayerID, &spot.Cost); err != nil {
			return nil, fmt.Errorf("failed to scan roster row: %w", err)
		}
		roster = append(roster, spot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate roster rows: %w", err)
	}
	return roster, nil
}

func scanTeam(row *sql.Row, lookup string) (*models.Team, error) {
	var t models.Team
	err := row.Scan(&t.ID, &t.Season, &t.Name, &t.OwnerUserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrTeamNotFound, lookup)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team %s: %w", lookup, err)
	}
	return &t, nil
}
