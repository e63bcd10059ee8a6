package app_test

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"skilltrack-service/internal/app"
	"skilltrack-service/internal/domain"
	"skilltrack-service/internal/infra/memory"
)

func TestHubDeliversEngineUpdates(t *testing.T) {
	hub := app.NewMasteryHub()
	engine := app.NewMasteryEngine(memory.NewMasteryStore(), hub, zap.NewNop().Sugar())

	updates, cancel := hub.Subscribe("u1")
	defer cancel()

	if err := engine.Update(context.Background(), "u1", []string{"Python"}, 100.0); err != nil {
		t.Fatalf("update: %v", err)
	}

	select {
	case update := <-updates:
		if update.Topic != "Python" || update.Score != 80.0 {
			t.Fatalf("unexpected update: %+v", update)
		}
	case <-time.After(time.Second):
		t.Fatalf("expected hub update")
	}
}

func TestHubScopesUpdatesToUser(t *testing.T) {
	hub := app.NewMasteryHub()

	updates, cancel := hub.Subscribe("u1")
	defer cancel()

	hub.Publish(domain.MasteryScore{UserID: "other", Topic: "Python", Score: 10})
	hub.Publish(domain.MasteryScore{UserID: "u1", Topic: "Loops", Score: 42})

	update := <-updates
	if update.UserID != "u1" || update.Topic != "Loops" {
		t.Fatalf("expected only u1's update, got %+v", update)
	}
}

func TestHubDropsStaleUpdatesForSlowConsumers(t *testing.T) {
	hub := app.NewMasteryHub()
	updates, cancel := hub.Subscribe("u1")
	defer cancel()

	// Overflow the buffered channel; publishing must not block and the
	// newest update must still come through eventually.
	for i := 0; i < 32; i++ {
		hub.Publish(domain.MasteryScore{UserID: "u1", Topic: "t", Score: float64(i)})
	}

	var last domain.MasteryScore
	for {
		select {
		case update := <-updates:
			last = update
		default:
			if last.Score != 31 {
				t.Fatalf("expected newest update to survive, got %v", last.Score)
			}
			return
		}
	}
}

func TestHubCancelClosesChannel(t *testing.T) {
	hub := app.NewMasteryHub()
	updates, cancel := hub.Subscribe("u1")
	cancel()

	if _, ok := <-updates; ok {
		t.Fatalf("expected closed channel after cancel")
	}
	// Cancel twice must be safe.
	cancel()
	hub.Publish(domain.MasteryScore{UserID: "u1", Topic: "t", Score: 1})
}
