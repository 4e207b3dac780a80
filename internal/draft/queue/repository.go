package queue

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/draftline/draftline/internal/models"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetQueue(ctx context.Context, season int, teamID uuid.UUID) ([]models.QueueEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT season, team_id, player_id, rank FROM draft_queue
		 WHERE season = $1 AND team_id = $2 ORDER BY rank ASC`,
		season, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get draft queue: %w", err)
	}
	defer rows.Close()

	var entries []models.QueueEntry
	for rows.Next() {
		var e models.QueueEntry
		if err := rows.Scan(&e.Season, &e.TeamID, &e.PlayerID, &e.Rank); err != nil {
			return nil, fmt.Errorf("failed to scan queue row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate queue rows: %w", err)
	}
	return entries, nil
}

// ReplaceQueue swaps a team's entire queue in one transaction.
func (r *Repository) ReplaceQueue(ctx context.Context, season int, teamID uuid.UUID, playerIDs []uuid.UUID) error {
	txn, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = txn.Rollback()
		}
	}()

	if _, err = txn.ExecContext(ctx,
		"DELETE FROM draft_queue WHERE season = $1 AND team_id = $2", season, teamID); err != nil {
		return fmt.Errorf("failed to clear draft queue: %w", err)
	}

	if len(playerIDs) > 0 {
		ranks := make([]int64, len(playerIDs))
		for i := range playerIDs {
			ranks[i] = int64(i + 1)
		}
		if _, err = txn.ExecContext(ctx,
			`INSERT INTO draft_queue (season, team_id, player_id, rank)
			 SELECT $1, $2, * FROM unnest($3::uuid[], $4::bigint[])`,
			season, teamID, pq.Array(playerIDs), pq.Array(ranks)); err != nil {
			return fmt.Errorf("failed to insert draft queue: %w", err)
		}
	}

	if err = txn.Commit(); err != nil {
		return fmt.Errorf("failed to commit draft queue: %w", err)
	}
	return nil
}

// RemovePlayer drops a player from every team's queue for the season and
// closes the rank gaps it leaves behind.
func (r *Repository) RemovePlayer(ctx context.Context, season int, playerID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`WITH removed AS (
			DELETE FROM draft_queue WHERE season = $1 AND player_id = $2
			RETURNING team_id, rank
		 )
		 UPDATE draft_queue q SET rank = q.rank - 1
		 FROM removed r
		 WHERE q.season = $1 AND q.team_id = r.team_id AND q.rank > r.rank`,
		season, playerID)
	if err != nil {
		return fmt.Errorf("failed to remove player from queues: %w", err)
	}
	return nil
}
