package app

import (
	"context"

	"skilltrack-service/internal/domain"
)

// CatalogRepository loads immutable course/video/quiz definitions
// (from cache/backing store). Read-only from the core's perspective.
type CatalogRepository interface {
	GetCourse(ctx context.Context, courseID string) (domain.Course, error)
	ListCourses(ctx context.Context) ([]domain.Course, error)
	GetVideo(ctx context.Context, videoID string) (domain.Video, error)
	// ListVideos returns videos ordered by their catalog order; courseID may be
	// empty to list the whole catalog.
	ListVideos(ctx context.Context, courseID string) ([]domain.Video, error)
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
	GetQuizByVideo(ctx context.Context, videoID string) (domain.Quiz, error)
	CountVideos(ctx context.Context) (int, error)
}

// ProgressRepository persists per-(user,video) watch state. Upsert fully
// replaces the stored row; the storage layer guarantees one row per pair.
type ProgressRepository interface {
	Upsert(ctx context.Context, progress domain.VideoProgress) error
	// Get returns (progress, true) when a row exists; (zero, false) otherwise.
	Get(ctx context.Context, userID, videoID string) (domain.VideoProgress, bool, error)
	ListByUser(ctx context.Context, userID string) ([]domain.VideoProgress, error)
}

// MasteryRepository persists per-(user,topic) mastery rows. Only the
// MasteryEngine writes through this interface.
type MasteryRepository interface {
	// Get returns (score, true) when a row exists; (zero, false) otherwise.
	Get(ctx context.Context, userID, topic string) (domain.MasteryScore, bool, error)
	Upsert(ctx context.Context, score domain.MasteryScore) error
	ListByUser(ctx context.Context, userID string) ([]domain.MasteryScore, error)
}

// ResultRepository stores graded quiz results. Append-only; results are
// never updated after insertion.
type ResultRepository interface {
	Insert(ctx context.Context, result domain.QuizResult) error
	ListByUser(ctx context.Context, userID string) ([]domain.QuizResult, error)
}
