package app_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"go.uber.org/zap"

	"skilltrack-service/internal/app"
	"skilltrack-service/internal/domain"
	"skilltrack-service/internal/infra/memory"
)

func TestMasteryFirstContact(t *testing.T) {
	ctx := context.Background()
	store := memory.NewMasteryStore()
	engine := newTestEngine(store)

	if err := engine.Update(ctx, "u1", []string{"topicA"}, 80.0); err != nil {
		t.Fatalf("update: %v", err)
	}

	score, found, _ := store.Get(ctx, "u1", "topicA")
	if !found {
		t.Fatalf("expected mastery row")
	}
	if math.Abs(score.Score-64.0) > 1e-9 {
		t.Fatalf("expected 64.0 (80*0.8), got %v", score.Score)
	}
}

func TestMasteryTrackedUpdate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewMasteryStore()
	engine := newTestEngine(store)

	_ = store.Upsert(ctx, domain.MasteryScore{UserID: "u1", Topic: "topicA", Score: 64.0})
	if err := engine.Update(ctx, "u1", []string{"topicA"}, 100.0); err != nil {
		t.Fatalf("update: %v", err)
	}

	score, _, _ := store.Get(ctx, "u1", "topicA")
	if math.Abs(score.Score-74.8) > 1e-9 {
		t.Fatalf("expected 74.8 (64*0.7 + 100*0.3), got %v", score.Score)
	}
}

func TestMasteryConvergesWithoutReaching(t *testing.T) {
	ctx := context.Background()
	store := memory.NewMasteryStore()
	engine := newTestEngine(store)

	_ = store.Upsert(ctx, domain.MasteryScore{UserID: "u1", Topic: "t", Score: 64.0})

	prev := 64.0
	for i := 0; i < 50; i++ {
		if err := engine.Update(ctx, "u1", []string{"t"}, 100.0); err != nil {
			t.Fatalf("update %d: %v", i, err)
		}
		score, _, _ := store.Get(ctx, "u1", "t")
		if score.Score <= prev {
			t.Fatalf("iteration %d: expected strict increase, %v -> %v", i, prev, score.Score)
		}
		if score.Score >= 100.0 {
			t.Fatalf("iteration %d: score must stay below 100, got %v", i, score.Score)
		}
		prev = score.Score
	}
	if 100.0-prev > 0.01 {
		t.Fatalf("expected convergence toward 100 after 50 updates, got %v", prev)
	}
}

func TestMasteryTopicsAppliedInOrderUntilFailure(t *testing.T) {
	ctx := context.Background()
	store := &failingMasteryStore{MasteryStore: memory.NewMasteryStore(), failTopic: "topicB"}
	engine := newTestEngine(store)

	err := engine.Update(ctx, "u1", []string{"topicA", "topicB", "topicC"}, 90.0)
	if err == nil {
		t.Fatalf("expected error from failing store")
	}

	// Earlier topics stay applied; later ones were never attempted.
	if _, found, _ := store.Get(ctx, "u1", "topicA"); !found {
		t.Fatalf("expected topicA applied before the failure")
	}
	if _, found, _ := store.Get(ctx, "u1", "topicC"); found {
		t.Fatalf("expected topicC untouched after the failure")
	}
}

func TestMasteryNoTopicsIsNoop(t *testing.T) {
	store := memory.NewMasteryStore()
	engine := newTestEngine(store)
	if err := engine.Update(context.Background(), "u1", nil, 100.0); err != nil {
		t.Fatalf("update with no topics: %v", err)
	}
	rows, _ := store.ListByUser(context.Background(), "u1")
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}

func newTestEngine(store app.MasteryRepository) *app.MasteryEngine {
	return app.NewMasteryEngineWithClock(store, nil, zap.NewNop().Sugar(),
		func() time.Time { return time.Date(2025, 3, 21, 12, 0, 0, 0, time.UTC) })
}

type failingMasteryStore struct {
	*memory.MasteryStore
	failTopic string
}

func (s *failingMasteryStore) Upsert(ctx context.Context, score domain.MasteryScore) error {
	if score.Topic == s.failTopic {
		return errors.New("storage unavailable")
	}
	return s.MasteryStore.Upsert(ctx, score)
}
