package app_test

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"go.uber.org/zap"

	"skilltrack-service/internal/app"
	"skilltrack-service/internal/domain"
	"skilltrack-service/internal/infra/memory"
)

func TestGradeAllCorrect(t *testing.T) {
	quiz := fourQuestionQuiz()
	score := app.Grade(quiz, []int{0, 2, 1, 2})
	if score != 100.0 {
		t.Fatalf("expected 100, got %v", score)
	}
}

func TestGradeAllWrong(t *testing.T) {
	quiz := fourQuestionQuiz()
	score := app.Grade(quiz, []int{1, 0, 0, 0})
	if score != 0.0 {
		t.Fatalf("expected 0, got %v", score)
	}
}

func TestGradeEmptyQuiz(t *testing.T) {
	score := app.Grade(domain.Quiz{ID: "q", VideoID: "v"}, []int{0, 1})
	if score != 0.0 {
		t.Fatalf("expected 0 for empty quiz, got %v", score)
	}
}

func TestGradeShortAnswerSequence(t *testing.T) {
	quiz := fourQuestionQuiz()
	// Two answered correctly, two unanswered: unanswered are counted wrong.
	score := app.Grade(quiz, []int{0, 2})
	if score != 50.0 {
		t.Fatalf("expected 50, got %v", score)
	}
}

func TestGradeExtraAndOutOfRangeAnswers(t *testing.T) {
	quiz := fourQuestionQuiz()
	// Out-of-range indices count wrong; answers past the question list are ignored.
	score := app.Grade(quiz, []int{99, 2, -1, 2, 0, 0, 0})
	if score != 50.0 {
		t.Fatalf("expected 50, got %v", score)
	}
}

func TestSubmitPersistsResultAndFansOutTopics(t *testing.T) {
	ctx := context.Background()
	fix := newGraderFixture(t)

	result, err := fix.grader.Submit(ctx, "u1", domain.Submission{QuizID: "quiz-1", Answers: []int{0, 2, 1, 2}})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Score != 100.0 {
		t.Fatalf("expected score 100, got %v", result.Score)
	}
	if result.ID == "" || result.UserID != "u1" || result.QuizID != "quiz-1" || result.VideoID != "vid-1" {
		t.Fatalf("unexpected result record: %+v", result)
	}

	results, err := fix.results.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("list results: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 stored result, got %d", len(results))
	}

	// Video vid-1 carries two topics; both must reflect the observed score.
	scores, err := fix.mastery.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("list mastery: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("expected 2 mastery rows, got %d", len(scores))
	}
	for _, s := range scores {
		if math.Abs(s.Score-80.0) > 1e-9 { // 100 * 0.8 first contact
			t.Fatalf("expected first-contact score 80 for %s, got %v", s.Topic, s.Score)
		}
	}
}

func TestSubmitAppendsOnResubmission(t *testing.T) {
	ctx := context.Background()
	fix := newGraderFixture(t)

	first, err := fix.grader.Submit(ctx, "u1", domain.Submission{QuizID: "quiz-1", Answers: []int{0, 2, 1, 2}})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	second, err := fix.grader.Submit(ctx, "u1", domain.Submission{QuizID: "quiz-1", Answers: []int{1, 0, 0, 0}})
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("expected distinct result ids, both %s", first.ID)
	}

	results, _ := fix.results.ListByUser(ctx, "u1")
	if len(results) != 2 {
		t.Fatalf("expected 2 results after resubmission, got %d", len(results))
	}
}

func TestSubmitUnknownQuiz(t *testing.T) {
	fix := newGraderFixture(t)
	_, err := fix.grader.Submit(context.Background(), "u1", domain.Submission{QuizID: "missing", Answers: []int{0}})
	if err != domain.ErrQuizNotFound {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

type graderFixture struct {
	grader  *app.QuizGrader
	results *memory.ResultStore
	mastery *memory.MasteryStore
}

func newGraderFixture(t *testing.T) *graderFixture {
	t.Helper()
	catalog := memory.NewCatalogWith(nil,
		[]domain.Video{{ID: "vid-1", CourseID: "course-1", Topics: []string{"Python", "Loops"}}},
		[]domain.Quiz{fourQuestionQuiz()},
	)
	results := memory.NewResultStore()
	mastery := memory.NewMasteryStore()
	log := zap.NewNop().Sugar()
	engine := app.NewMasteryEngine(mastery, nil, log)

	ids := 0
	grader := app.NewQuizGraderWithClock(catalog, results, engine, log,
		func() time.Time { return time.Date(2025, 3, 21, 12, 0, 0, 0, time.UTC) },
		func() string { ids++; return fmt.Sprintf("result-%d", ids) },
	)
	return &graderFixture{grader: grader, results: results, mastery: mastery}
}

func fourQuestionQuiz() domain.Quiz {
	return domain.Quiz{
		ID:      "quiz-1",
		VideoID: "vid-1",
		Questions: []domain.Question{
			{Prompt: "Pick the first option", Options: []string{"a", "b", "c"}, CorrectAnswer: 0},
			{Prompt: "Pick the third option", Options: []string{"a", "b", "c"}, CorrectAnswer: 2},
			{Prompt: "Pick the second option", Options: []string{"a", "b", "c"}, CorrectAnswer: 1},
			{Prompt: "Pick the third option again", Options: []string{"a", "b", "c"}, CorrectAnswer: 2},
		},
	}
}
