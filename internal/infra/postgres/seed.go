package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"skilltrack-service/internal/domain"
)

// Seeder writes the sample catalog into Postgres. Catalog rows are keyed by
// their stable logical ids, so reseeding upserts in place instead of
// producing duplicates.
type Seeder struct {
	pool *pgxpool.Pool
}

func NewSeeder(pool *pgxpool.Pool) *Seeder {
	return &Seeder{pool: pool}
}

// Seed inserts the given catalog. When force is false and courses already
// exist, nothing is written and Seed reports (false, nil). When force is
// true the catalog tables are cleared first; learner state is untouched.
func (s *Seeder) Seed(ctx context.Context, courses []domain.Course, videos []domain.Video, quizzes []domain.Quiz, force bool) (bool, error) {
	if force {
		if _, err := s.pool.Exec(ctx, `TRUNCATE courses, videos, quizzes`); err != nil {
			return false, fmt.Errorf("clear catalog: %w", err)
		}
	} else {
		var existing int
		if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM courses`).Scan(&existing); err != nil {
			return false, fmt.Errorf("count courses: %w", err)
		}
		if existing > 0 {
			return false, nil
		}
	}

	for _, course := range courses {
		data, err := json.Marshal(course)
		if err != nil {
			return false, fmt.Errorf("marshal course %s: %w", course.ID, err)
		}
		_, err = s.pool.Exec(ctx, `
			INSERT INTO courses (id, data) VALUES ($1, $2)
			ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data`, course.ID, data)
		if err != nil {
			return false, fmt.Errorf("seed course %s: %w", course.ID, err)
		}
	}

	for _, video := range videos {
		data, err := json.Marshal(video)
		if err != nil {
			return false, fmt.Errorf("marshal video %s: %w", video.ID, err)
		}
		_, err = s.pool.Exec(ctx, `
			INSERT INTO videos (id, course_id, ord, data) VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO UPDATE SET course_id = EXCLUDED.course_id, ord = EXCLUDED.ord, data = EXCLUDED.data`,
			video.ID, video.CourseID, video.Order, data)
		if err != nil {
			return false, fmt.Errorf("seed video %s: %w", video.ID, err)
		}
	}

	for _, quiz := range quizzes {
		data, err := json.Marshal(quiz)
		if err != nil {
			return false, fmt.Errorf("marshal quiz %s: %w", quiz.ID, err)
		}
		_, err = s.pool.Exec(ctx, `
			INSERT INTO quizzes (id, video_id, data) VALUES ($1, $2, $3)
			ON CONFLICT (id) DO UPDATE SET video_id = EXCLUDED.video_id, data = EXCLUDED.data`,
			quiz.ID, quiz.VideoID, data)
		if err != nil {
			return false, fmt.Errorf("seed quiz %s: %w", quiz.ID, err)
		}
	}

	return true, nil
}
