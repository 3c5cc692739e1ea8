package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rocketscienceinc/mindgames-backend/internal/entity"
)

type ResultRepository interface {
	Save(ctx context.Context, result *entity.Result) error
	BestByPlayer(ctx context.Context, playerID string) ([]entity.Best, error)
}

type dbResult struct {
	conn *sql.DB
}

func NewResultRepository(conn *sql.DB) ResultRepository {
	return &dbResult{
		conn: conn,
	}
}

func (that *dbResult) Save(ctx context.Context, result *entity.Result) error {
	finishedAt := result.FinishedAt
	if finishedAt.IsZero() {
		finishedAt = time.Now()
	}

	query := `INSERT INTO results (session_id, player_id, kind, winner, score, moves, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query,
		result.SessionID, result.PlayerID, string(result.Kind), result.Winner,
		result.Score, result.Moves, finishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	return nil
}

// BestByPlayer summarises the player's results per game: the highest score
// for word scramble, the fewest moves for memory and the number of finished
// games otherwise.
func (that *dbResult) BestByPlayer(ctx context.Context, playerID string) ([]entity.Best, error) {
	query := `SELECT kind,
			CASE kind
				WHEN 'scramble' THEN MAX(score)
				WHEN 'memory' THEN MIN(moves)
				ELSE COUNT(*)
			END,
			COUNT(*)
		FROM results
		WHERE player_id = ?
		GROUP BY kind
		ORDER BY kind`

	rows, err := that.conn.QueryContext(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	scores := make([]entity.Best, 0)
	for rows.Next() {
		var (
			kind string
			best entity.Best
		)

		if err = rows.Scan(&kind, &best.Best, &best.Played); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}

		best.Kind = entity.Kind(kind)
		scores = append(scores, best)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read results: %w", err)
	}

	return scores, nil
}
