package app

import (
	"sync"

	"skilltrack-service/internal/domain"
)

// MasteryHub fans mastery updates out to per-user subscribers (the live
// websocket stream). Publishing never blocks; slow consumers lose stale
// updates rather than stalling the engine.
type MasteryHub struct {
	mu   sync.RWMutex
	subs map[string]map[chan domain.MasteryScore]struct{}
}

func NewMasteryHub() *MasteryHub {
	return &MasteryHub{subs: make(map[string]map[chan domain.MasteryScore]struct{})}
}

// Subscribe returns a channel receiving mastery updates for userID. The
// caller must invoke the returned cancel function to avoid leaks.
func (h *MasteryHub) Subscribe(userID string) (<-chan domain.MasteryScore, func()) {
	ch := make(chan domain.MasteryScore, 8)

	h.mu.Lock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[chan domain.MasteryScore]struct{})
	}
	h.subs[userID][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if set, ok := h.subs[userID]; ok {
			if _, ok := set[ch]; ok {
				delete(set, ch)
				close(ch)
			}
			if len(set) == 0 {
				delete(h.subs, userID)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers an update to every subscriber of the score's user.
func (h *MasteryHub) Publish(score domain.MasteryScore) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[score.UserID] {
		select {
		case ch <- score:
		default:
			// Drop the oldest queued update so the latest lands.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- score:
			default:
			}
		}
	}
}
