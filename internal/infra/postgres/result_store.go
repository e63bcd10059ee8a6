package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"skilltrack-service/internal/domain"
)

// ResultStore persists the append-only quiz result log. The primary key on
// id is the uniqueness guarantee; nothing updates a row after insertion.
type ResultStore struct {
	pool *pgxpool.Pool
}

func NewResultStore(pool *pgxpool.Pool) *ResultStore {
	return &ResultStore{pool: pool}
}

func (s *ResultStore) Insert(ctx context.Context, result domain.QuizResult) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO quiz_results (id, user_id, quiz_id, video_id, score, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		result.ID, result.UserID, result.QuizID, result.VideoID, result.Score, result.SubmittedAt)
	if err != nil {
		return fmt.Errorf("insert quiz result: %w", err)
	}
	return nil
}

func (s *ResultStore) ListByUser(ctx context.Context, userID string) ([]domain.QuizResult, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, quiz_id, video_id, score, submitted_at
		FROM quiz_results WHERE user_id=$1 ORDER BY submitted_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("list quiz results: %w", err)
	}
	defer rows.Close()

	out := make([]domain.QuizResult, 0)
	for rows.Next() {
		var row domain.QuizResult
		if err := rows.Scan(&row.ID, &row.UserID, &row.QuizID, &row.VideoID, &row.Score, &row.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scan quiz result: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
