package app

import (
	"context"
	"fmt"

	"skilltrack-service/internal/domain"
)

// Analytics derives read-only summaries from progress and quiz results.
// It holds no state of its own and recomputes on every call.
type Analytics struct {
	catalog  CatalogRepository
	progress ProgressRepository
	results  ResultRepository
	mastery  MasteryRepository
}

func NewAnalytics(catalog CatalogRepository, progress ProgressRepository, results ResultRepository, mastery MasteryRepository) *Analytics {
	return &Analytics{catalog: catalog, progress: progress, results: results, mastery: mastery}
}

// Overview aggregates completion and quiz performance for one user.
func (a *Analytics) Overview(ctx context.Context, userID string) (domain.ProgressSummary, error) {
	progressRows, err := a.progress.ListByUser(ctx, userID)
	if err != nil {
		return domain.ProgressSummary{}, fmt.Errorf("list progress: %w", err)
	}
	totalVideos, err := a.catalog.CountVideos(ctx)
	if err != nil {
		return domain.ProgressSummary{}, fmt.Errorf("count videos: %w", err)
	}
	results, err := a.results.ListByUser(ctx, userID)
	if err != nil {
		return domain.ProgressSummary{}, fmt.Errorf("list quiz results: %w", err)
	}

	completed := 0
	for _, row := range progressRows {
		if row.Completed {
			completed++
		}
	}

	summary := domain.ProgressSummary{
		TotalVideos:     totalVideos,
		CompletedVideos: completed,
		TotalQuizzes:    len(results),
	}
	if totalVideos > 0 {
		summary.CompletionPercentage = float64(completed) / float64(totalVideos) * 100
	}
	if len(results) > 0 {
		sum := 0.0
		for _, r := range results {
			sum += r.Score
		}
		summary.AverageQuizScore = sum / float64(len(results))
	}
	return summary, nil
}

// MasteryScores lists every mastery row for the user.
func (a *Analytics) MasteryScores(ctx context.Context, userID string) ([]domain.MasteryScore, error) {
	scores, err := a.mastery.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list mastery: %w", err)
	}
	return scores, nil
}
