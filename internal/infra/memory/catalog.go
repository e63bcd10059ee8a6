package memory

import (
	"context"
	"sort"
	"sync"

	"skilltrack-service/internal/domain"
)

// Catalog is an in-memory CatalogRepository backed by maps (useful for
// tests/demos and as the fallback when no Postgres is configured).
type Catalog struct {
	mu      sync.RWMutex
	courses map[string]domain.Course
	videos  map[string]domain.Video
	quizzes map[string]domain.Quiz
}

func NewCatalog() *Catalog {
	return &Catalog{
		courses: make(map[string]domain.Course),
		videos:  make(map[string]domain.Video),
		quizzes: make(map[string]domain.Quiz),
	}
}

// NewCatalogWith seeds the catalog in one call.
func NewCatalogWith(courses []domain.Course, videos []domain.Video, quizzes []domain.Quiz) *Catalog {
	c := NewCatalog()
	for _, course := range courses {
		c.courses[course.ID] = course
	}
	for _, video := range videos {
		c.videos[video.ID] = video
	}
	for _, quiz := range quizzes {
		c.quizzes[quiz.ID] = quiz
	}
	return c
}

func (c *Catalog) GetCourse(_ context.Context, courseID string) (domain.Course, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if course, ok := c.courses[courseID]; ok {
		return course, nil
	}
	return domain.Course{}, domain.ErrCourseNotFound
}

func (c *Catalog) ListCourses(_ context.Context) ([]domain.Course, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	courses := make([]domain.Course, 0, len(c.courses))
	for _, course := range c.courses {
		courses = append(courses, course)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses, nil
}

func (c *Catalog) GetVideo(_ context.Context, videoID string) (domain.Video, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if video, ok := c.videos[videoID]; ok {
		return video, nil
	}
	return domain.Video{}, domain.ErrVideoNotFound
}

func (c *Catalog) ListVideos(_ context.Context, courseID string) ([]domain.Video, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	videos := make([]domain.Video, 0, len(c.videos))
	for _, video := range c.videos {
		if courseID != "" && video.CourseID != courseID {
			continue
		}
		videos = append(videos, video)
	}
	sort.Slice(videos, func(i, j int) bool {
		if videos[i].Order != videos[j].Order {
			return videos[i].Order < videos[j].Order
		}
		return videos[i].ID < videos[j].ID
	})
	return videos, nil
}

func (c *Catalog) GetQuiz(_ context.Context, quizID string) (domain.Quiz, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if quiz, ok := c.quizzes[quizID]; ok {
		return quiz, nil
	}
	return domain.Quiz{}, domain.ErrQuizNotFound
}

func (c *Catalog) GetQuizByVideo(_ context.Context, videoID string) (domain.Quiz, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, quiz := range c.quizzes {
		if quiz.VideoID == videoID {
			return quiz, nil
		}
	}
	return domain.Quiz{}, domain.ErrQuizNotFound
}

func (c *Catalog) CountVideos(_ context.Context) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.videos), nil
}
