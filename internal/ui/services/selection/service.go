package selection

import (
	"log"

	"ghsearch/internal/domain"
	"ghsearch/internal/eventbus"
)

// Service resolves list selections to users
type Service struct {
	state   *State
	bus     eventbus.EventBus
	usersFn func() []domain.UserSummary // current list at resolution time
}

// NewService creates a new selection service
func NewService(bus eventbus.EventBus) *Service {
	return &Service{
		state: &State{
			LastIndex: -1,
		},
		bus: bus,
	}
}

// SetUsersFunction sets the function returning the current user list
func (s *Service) SetUsersFunction(fn func() []domain.UserSummary) {
	s.usersFn = fn
}

// Resolve pairs index with the latest user list. Out-of-range indices
// resolve to nothing.
func (s *Service) Resolve(index int) (string, bool) {
	if s.usersFn == nil {
		return "", false
	}

	users := s.usersFn()
	if index < 0 || index >= len(users) {
		log.Printf("Selection: index %d out of range (%d users), dropped", index, len(users))
		return "", false
	}

	login := users[index].Login
	s.state.LastIndex = index
	s.state.LastLogin = login

	if s.bus != nil {
		s.bus.Publish(domain.UserSelectedEvent{Index: index, Login: login})
	}
	return login, true
}

// GetLastSelected returns the last resolved index and login
func (s *Service) GetLastSelected() (int, string) {
	return s.state.LastIndex, s.state.LastLogin
}
