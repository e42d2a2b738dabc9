package logic

import (
	"sync"

	"ghsearch/internal/domain"
)

// MemoryUserStore is an in-memory implementation of UserStore
type MemoryUserStore struct {
	mu    sync.RWMutex
	users []domain.UserSummary
}

// NewMemoryUserStore creates an empty store
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		users: []domain.UserSummary{},
	}
}

func (s *MemoryUserStore) Users() []domain.UserSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Return a copy to prevent external modification
	result := make([]domain.UserSummary, len(s.users))
	copy(result, s.users)
	return result
}

// Replace swaps the whole list; results are never merged
func (s *MemoryUserStore) Replace(users []domain.UserSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = make([]domain.UserSummary, len(users))
	copy(s.users, users)
}

func (s *MemoryUserStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
