package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"skilltrack-service/internal/domain"
)

// CatalogStore reads course/video/quiz JSONB documents from Postgres.
// Catalog rows are written by the seeder only; the core treats them as
// immutable.
type CatalogStore struct {
	pool *pgxpool.Pool
}

func NewCatalogStore(pool *pgxpool.Pool) *CatalogStore {
	return &CatalogStore{pool: pool}
}

func (s *CatalogStore) GetCourse(ctx context.Context, courseID string) (domain.Course, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM courses WHERE id=$1`, courseID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Course{}, domain.ErrCourseNotFound
	}
	if err != nil {
		return domain.Course{}, fmt.Errorf("load course: %w", err)
	}
	var course domain.Course
	if err := json.Unmarshal(raw, &course); err != nil {
		return domain.Course{}, fmt.Errorf("unmarshal course: %w", err)
	}
	return course, nil
}

func (s *CatalogStore) ListCourses(ctx context.Context) ([]domain.Course, error) {
	rows, err := s.pool.Query(ctx, `SELECT data FROM courses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	courses := make([]domain.Course, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		var course domain.Course
		if err := json.Unmarshal(raw, &course); err != nil {
			return nil, fmt.Errorf("unmarshal course: %w", err)
		}
		courses = append(courses, course)
	}
	return courses, rows.Err()
}

func (s *CatalogStore) GetVideo(ctx context.Context, videoID string) (domain.Video, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM videos WHERE id=$1`, videoID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Video{}, domain.ErrVideoNotFound
	}
	if err != nil {
		return domain.Video{}, fmt.Errorf("load video: %w", err)
	}
	var video domain.Video
	if err := json.Unmarshal(raw, &video); err != nil {
		return domain.Video{}, fmt.Errorf("unmarshal video: %w", err)
	}
	return video, nil
}

func (s *CatalogStore) ListVideos(ctx context.Context, courseID string) ([]domain.Video, error) {
	query := `SELECT data FROM videos ORDER BY ord, id`
	args := []interface{}{}
	if courseID != "" {
		query = `SELECT data FROM videos WHERE course_id=$1 ORDER BY ord, id`
		args = append(args, courseID)
	}
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	defer rows.Close()

	videos := make([]domain.Video, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		var video domain.Video
		if err := json.Unmarshal(raw, &video); err != nil {
			return nil, fmt.Errorf("unmarshal video: %w", err)
		}
		videos = append(videos, video)
	}
	return videos, rows.Err()
}

func (s *CatalogStore) GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM quizzes WHERE id=$1`, quizID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load quiz: %w", err)
	}
	return unmarshalQuiz(raw)
}

func (s *CatalogStore) GetQuizByVideo(ctx context.Context, videoID string) (domain.Quiz, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM quizzes WHERE video_id=$1`, videoID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load quiz by video: %w", err)
	}
	return unmarshalQuiz(raw)
}

func (s *CatalogStore) CountVideos(ctx context.Context) (int, error) {
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM videos`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count videos: %w", err)
	}
	return count, nil
}

func unmarshalQuiz(raw []byte) (domain.Quiz, error) {
	var quiz domain.Quiz
	if err := json.Unmarshal(raw, &quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("unmarshal quiz: %w", err)
	}
	return quiz, nil
}
