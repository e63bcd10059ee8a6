package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"skilltrack-service/internal/domain"
)

// QuizGrader turns a submitted answer set into a deterministic score,
// persists the append-only result, and feeds the score into the mastery
// engine for every topic on the quiz's owning video.
type QuizGrader struct {
	catalog CatalogRepository
	results ResultRepository
	mastery *MasteryEngine
	log     *zap.SugaredLogger
	now     func() time.Time
	newID   func() string
}

func NewQuizGrader(catalog CatalogRepository, results ResultRepository, mastery *MasteryEngine, log *zap.SugaredLogger) *QuizGrader {
	return &QuizGrader{
		catalog: catalog,
		results: results,
		mastery: mastery,
		log:     log,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// NewQuizGraderWithClock is test-only for deterministic ids and timestamps.
func NewQuizGraderWithClock(catalog CatalogRepository, results ResultRepository, mastery *MasteryEngine, log *zap.SugaredLogger, now func() time.Time, newID func() string) *QuizGrader {
	return &QuizGrader{catalog: catalog, results: results, mastery: mastery, log: log, now: now, newID: newID}
}

// Submit grades the submission against the quiz definition, stores a new
// QuizResult, and fans the score out to mastery. Resubmission appends a new
// result; prior rows are never touched.
func (g *QuizGrader) Submit(ctx context.Context, userID string, sub domain.Submission) (domain.QuizResult, error) {
	quiz, err := g.catalog.GetQuiz(ctx, sub.QuizID)
	if err != nil {
		return domain.QuizResult{}, err
	}

	score := Grade(quiz, sub.Answers)

	result := domain.QuizResult{
		ID:          g.newID(),
		UserID:      userID,
		QuizID:      quiz.ID,
		VideoID:     quiz.VideoID,
		Score:       score,
		SubmittedAt: g.now(),
	}
	if err := g.results.Insert(ctx, result); err != nil {
		return domain.QuizResult{}, fmt.Errorf("store quiz result: %w", err)
	}
	g.log.Infow("quiz graded", "user_id", userID, "quiz_id", quiz.ID, "score", score)

	video, err := g.catalog.GetVideo(ctx, quiz.VideoID)
	if err != nil {
		// The result is committed; a dangling video reference only skips
		// the mastery contribution.
		g.log.Warnw("video lookup after grading failed", "video_id", quiz.VideoID, "error", err)
		return result, nil
	}
	if err := g.mastery.Update(ctx, userID, video.Topics, score); err != nil {
		return result, err
	}
	return result, nil
}

// Grade compares answers positionally against the quiz's questions and
// returns the percentage correct. Positions past either sequence are simply
// not counted; an out-of-range index never equals the correct one and is
// counted wrong. A zero-question quiz grades to 0.
func Grade(quiz domain.Quiz, answers []int) float64 {
	if len(quiz.Questions) == 0 {
		return 0
	}
	correct := 0
	for i, answer := range answers {
		if i >= len(quiz.Questions) {
			break
		}
		if answer == quiz.Questions[i].CorrectAnswer {
			correct++
		}
	}
	return float64(correct) / float64(len(quiz.Questions)) * 100
}
