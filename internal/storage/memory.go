package storage

import (
	"context"
	"sync"

	"github.com/martinsvarc/teamtables/internal/types"
)

// MemoryStore is an in-process Store used when DynamoDB is disabled and in
// tests. Reads return copies so callers always work on their own snapshot.
type MemoryStore struct {
	mu      sync.RWMutex
	records []types.CallRecord
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) SaveCallRecord(_ context.Context, record types.CallRecord) error {
	s.mu.Lock()
	s.records = append(s.records, record)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) GetTeamCallRecords(_ context.Context, teamID string) ([]types.CallRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.CallRecord
	for _, rec := range s.records {
		if rec.TeamID == teamID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *MemoryStore) GetUserCallRecords(_ context.Context, userID string) ([]types.CallRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.CallRecord
	for _, rec := range s.records {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *MemoryStore) TruncateAll(_ context.Context) error {
	s.mu.Lock()
	s.records = nil
	s.mu.Unlock()
	return nil
}
