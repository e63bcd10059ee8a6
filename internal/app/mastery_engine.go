package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"skilltrack-service/internal/domain"
)

const (
	// firstObservationWeight discounts the very first observation for a topic;
	// a single data point is not yet a track record.
	firstObservationWeight = 0.8
	// smoothingFactor is the EMA weight given to each new observation.
	smoothingFactor = 0.3
	// completionScore is the fixed observed score contributed by marking a
	// video completed.
	completionScore = 80.0
)

// MasteryEngine maintains the per-(user,topic) proficiency estimate. Each
// event produces one upsert per topic; topics are applied sequentially in
// list order and a failure leaves earlier topics applied (callers surface
// the error, nothing is rolled back).
type MasteryEngine struct {
	scores MasteryRepository
	hub    *MasteryHub
	log    *zap.SugaredLogger
	now    func() time.Time
}

func NewMasteryEngine(scores MasteryRepository, hub *MasteryHub, log *zap.SugaredLogger) *MasteryEngine {
	return &MasteryEngine{scores: scores, hub: hub, log: log, now: time.Now}
}

// NewMasteryEngineWithClock is test-only for deterministic timestamps.
func NewMasteryEngineWithClock(scores MasteryRepository, hub *MasteryHub, log *zap.SugaredLogger, now func() time.Time) *MasteryEngine {
	return &MasteryEngine{scores: scores, hub: hub, log: log, now: now}
}

// Update folds one observed score into every listed topic for the user.
// First contact with a topic stores observed*0.8; later observations move
// the stored score by old*0.7 + observed*0.3. Last-committing writer wins
// on concurrent updates to the same pair.
func (e *MasteryEngine) Update(ctx context.Context, userID string, topics []string, observed float64) error {
	for _, topic := range topics {
		current, found, err := e.scores.Get(ctx, userID, topic)
		if err != nil {
			return fmt.Errorf("load mastery %q: %w", topic, err)
		}

		score := observed * firstObservationWeight
		if found {
			score = current.Score*(1-smoothingFactor) + observed*smoothingFactor
		}

		updated := domain.MasteryScore{
			UserID:    userID,
			Topic:     topic,
			Score:     score,
			UpdatedAt: e.now(),
		}
		if err := e.scores.Upsert(ctx, updated); err != nil {
			return fmt.Errorf("upsert mastery %q: %w", topic, err)
		}

		e.log.Debugw("mastery updated", "user_id", userID, "topic", topic, "score", score, "observed", observed)
		if e.hub != nil {
			e.hub.Publish(updated)
		}
	}
	return nil
}
