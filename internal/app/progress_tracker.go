package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"skilltrack-service/internal/domain"
)

// ProgressTracker records per-(user,video) watch state and triggers mastery
// contributions when a video is reported completed.
type ProgressTracker struct {
	catalog  CatalogRepository
	progress ProgressRepository
	mastery  *MasteryEngine
	log      *zap.SugaredLogger
	now      func() time.Time
}

func NewProgressTracker(catalog CatalogRepository, progress ProgressRepository, mastery *MasteryEngine, log *zap.SugaredLogger) *ProgressTracker {
	return &ProgressTracker{catalog: catalog, progress: progress, mastery: mastery, log: log, now: time.Now}
}

// NewProgressTrackerWithClock is test-only for deterministic timestamps.
func NewProgressTrackerWithClock(catalog CatalogRepository, progress ProgressRepository, mastery *MasteryEngine, log *zap.SugaredLogger, now func() time.Time) *ProgressTracker {
	return &ProgressTracker{catalog: catalog, progress: progress, mastery: mastery, log: log, now: now}
}

// Record upserts the watch state for (userID, videoID), fully replacing any
// prior row. Whenever the incoming completed flag is true — not only on the
// false→true transition — the video's topics each receive a fixed mastery
// contribution of 80.
func (t *ProgressTracker) Record(ctx context.Context, userID, videoID string, watchPercentage float64, completed bool) error {
	video, err := t.catalog.GetVideo(ctx, videoID)
	if err != nil {
		return err
	}

	row := domain.VideoProgress{
		UserID:          userID,
		VideoID:         videoID,
		WatchPercentage: watchPercentage,
		Completed:       completed,
		UpdatedAt:       t.now(),
	}
	if err := t.progress.Upsert(ctx, row); err != nil {
		return fmt.Errorf("store progress: %w", err)
	}
	t.log.Debugw("progress recorded", "user_id", userID, "video_id", videoID, "watch_percentage", watchPercentage, "completed", completed)

	if completed {
		return t.mastery.Update(ctx, userID, video.Topics, completionScore)
	}
	return nil
}

// Get returns the stored progress, or the zero default (0%, not completed)
// when no row exists. A missing video is still an error; a missing progress
// row is not.
func (t *ProgressTracker) Get(ctx context.Context, userID, videoID string) (domain.VideoProgress, error) {
	if _, err := t.catalog.GetVideo(ctx, videoID); err != nil {
		return domain.VideoProgress{}, err
	}
	row, found, err := t.progress.Get(ctx, userID, videoID)
	if err != nil {
		return domain.VideoProgress{}, fmt.Errorf("load progress: %w", err)
	}
	if !found {
		return domain.VideoProgress{UserID: userID, VideoID: videoID}, nil
	}
	return row, nil
}
