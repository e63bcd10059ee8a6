package memory

import (
	"context"
	"sort"
	"sync"

	"skilltrack-service/internal/domain"
)

// ProgressStore is an in-memory implementation of app.ProgressRepository.
type ProgressStore struct {
	mu   sync.RWMutex
	rows map[progressKey]domain.VideoProgress
}

type progressKey struct {
	userID  string
	videoID string
}

func NewProgressStore() *ProgressStore {
	return &ProgressStore{rows: make(map[progressKey]domain.VideoProgress)}
}

func (s *ProgressStore) Upsert(_ context.Context, progress domain.VideoProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[progressKey{progress.UserID, progress.VideoID}] = progress
	return nil
}

func (s *ProgressStore) Get(_ context.Context, userID, videoID string) (domain.VideoProgress, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.rows[progressKey{userID, videoID}]
	return row, ok, nil
}

func (s *ProgressStore) ListByUser(_ context.Context, userID string) ([]domain.VideoProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := make([]domain.VideoProgress, 0)
	for key, row := range s.rows {
		if key.userID == userID {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].VideoID < rows[j].VideoID })
	return rows, nil
}

// MasteryStore is an in-memory implementation of app.MasteryRepository.
type MasteryStore struct {
	mu   sync.RWMutex
	rows map[masteryKey]domain.MasteryScore
}

type masteryKey struct {
	userID string
	topic  string
}

func NewMasteryStore() *MasteryStore {
	return &MasteryStore{rows: make(map[masteryKey]domain.MasteryScore)}
}

func (s *MasteryStore) Get(_ context.Context, userID, topic string) (domain.MasteryScore, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.rows[masteryKey{userID, topic}]
	return row, ok, nil
}

func (s *MasteryStore) Upsert(_ context.Context, score domain.MasteryScore) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[masteryKey{score.UserID, score.Topic}] = score
	return nil
}

func (s *MasteryStore) ListByUser(_ context.Context, userID string) ([]domain.MasteryScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := make([]domain.MasteryScore, 0)
	for key, row := range s.rows {
		if key.userID == userID {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Topic < rows[j].Topic })
	return rows, nil
}

// ResultStore is an in-memory implementation of app.ResultRepository.
// Results are append-only; there is no update path.
type ResultStore struct {
	mu   sync.RWMutex
	rows []domain.QuizResult
}

func NewResultStore() *ResultStore {
	return &ResultStore{}
}

func (s *ResultStore) Insert(_ context.Context, result domain.QuizResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, result)
	return nil
}

func (s *ResultStore) ListByUser(_ context.Context, userID string) ([]domain.QuizResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := make([]domain.QuizResult, 0)
	for _, row := range s.rows {
		if row.UserID == userID {
			rows = append(rows, row)
		}
	}
	return rows, nil
}
