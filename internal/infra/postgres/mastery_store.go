package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"skilltrack-service/internal/domain"
)

// MasteryStore persists MasteryScore rows keyed (user_id, topic).
// Last-committing writer wins; there is no CAS discipline.
type MasteryStore struct {
	pool *pgxpool.Pool
}

func NewMasteryStore(pool *pgxpool.Pool) *MasteryStore {
	return &MasteryStore{pool: pool}
}

func (s *MasteryStore) Get(ctx context.Context, userID, topic string) (domain.MasteryScore, bool, error) {
	row := domain.MasteryScore{}
	err := s.pool.QueryRow(ctx, `
		SELECT user_id, topic, score, updated_at
		FROM mastery_scores WHERE user_id=$1 AND topic=$2`, userID, topic).
		Scan(&row.UserID, &row.Topic, &row.Score, &row.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.MasteryScore{}, false, nil
	}
	if err != nil {
		return domain.MasteryScore{}, false, fmt.Errorf("load mastery: %w", err)
	}
	return row, true, nil
}

func (s *MasteryStore) Upsert(ctx context.Context, score domain.MasteryScore) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO mastery_scores (user_id, topic, score, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, topic) DO UPDATE
		SET score = EXCLUDED.score,
		    updated_at = EXCLUDED.updated_at`,
		score.UserID, score.Topic, score.Score, score.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert mastery: %w", err)
	}
	return nil
}

func (s *MasteryStore) ListByUser(ctx context.Context, userID string) ([]domain.MasteryScore, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT user_id, topic, score, updated_at
		FROM mastery_scores WHERE user_id=$1 ORDER BY topic`, userID)
	if err != nil {
		return nil, fmt.Errorf("list mastery: %w", err)
	}
	defer rows.Close()

	out := make([]domain.MasteryScore, 0)
	for rows.Next() {
		var row domain.MasteryScore
		if err := rows.Scan(&row.UserID, &row.Topic, &row.Score, &row.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan mastery: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
