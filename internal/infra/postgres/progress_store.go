package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"skilltrack-service/internal/domain"
)

// ProgressStore persists VideoProgress rows keyed (user_id, video_id).
// The single-statement upsert is what gives the tracker its atomicity.
type ProgressStore struct {
	pool *pgxpool.Pool
}

func NewProgressStore(pool *pgxpool.Pool) *ProgressStore {
	return &ProgressStore{pool: pool}
}

func (s *ProgressStore) Upsert(ctx context.Context, progress domain.VideoProgress) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO user_progress (user_id, video_id, watch_percentage, completed, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, video_id) DO UPDATE
		SET watch_percentage = EXCLUDED.watch_percentage,
		    completed = EXCLUDED.completed,
		    updated_at = EXCLUDED.updated_at`,
		progress.UserID, progress.VideoID, progress.WatchPercentage, progress.Completed, progress.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}
	return nil
}

func (s *ProgressStore) Get(ctx context.Context, userID, videoID string) (domain.VideoProgress, bool, error) {
	row := domain.VideoProgress{}
	err := s.pool.QueryRow(ctx, `
		SELECT user_id, video_id, watch_percentage, completed, updated_at
		FROM user_progress WHERE user_id=$1 AND video_id=$2`, userID, videoID).
		Scan(&row.UserID, &row.VideoID, &row.WatchPercentage, &row.Completed, &row.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.VideoProgress{}, false, nil
	}
	if err != nil {
		return domain.VideoProgress{}, false, fmt.Errorf("load progress: %w", err)
	}
	return row, true, nil
}

func (s *ProgressStore) ListByUser(ctx context.Context, userID string) ([]domain.VideoProgress, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT user_id, video_id, watch_percentage, completed, updated_at
		FROM user_progress WHERE user_id=$1 ORDER BY video_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	defer rows.Close()

	out := make([]domain.VideoProgress, 0)
	for rows.Next() {
		var row domain.VideoProgress
		if err := rows.Scan(&row.UserID, &row.VideoID, &row.WatchPercentage, &row.Completed, &row.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
