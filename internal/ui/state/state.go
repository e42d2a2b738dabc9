package state

import (
	"ghsearch/internal/domain"
)

// Focus says which widget receives keys
type Focus int

const (
	FocusInput Focus = iota
	FocusList
)

// AppState contains all the UI state
type AppState struct {
	// Coordinator outputs, as last received
	Summary string
	Users   []domain.UserSummary

	// Selection state
	SelectedIndex int    // cursor position in Users
	SelectedLogin string // last login the coordinator resolved

	// Search activity, tracked from domain events
	InFlight      int
	LastQuery     string
	LastRequestID string

	// UI state
	Focus            Focus
	ViewportOffset   int // offset for scrolling
	ViewportHeight   int // available height for the user list
	ShowHelp         bool
	HelpScrollOffset int // scroll offset for help popup
	ShowInfo         bool
	StatusMessage    string // status bar message
	StatusIsError    bool
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{
		Users:          make([]domain.UserSummary, 0),
		ViewportHeight: 10, // Default
	}
}

// SetUsers replaces the list and keeps the cursor inside it
func (s *AppState) SetUsers(users []domain.UserSummary) {
	s.Users = users
	if s.SelectedIndex >= len(users) {
		s.SelectedIndex = len(users) - 1
	}
	if s.SelectedIndex < 0 {
		s.SelectedIndex = 0
	}
	s.EnsureVisible()
}

// MoveSelection moves the cursor by delta, clamped to the list
func (s *AppState) MoveSelection(delta int) {
	if len(s.Users) == 0 {
		s.SelectedIndex = 0
		return
	}
	s.SelectedIndex += delta
	if s.SelectedIndex < 0 {
		s.SelectedIndex = 0
	}
	if s.SelectedIndex >= len(s.Users) {
		s.SelectedIndex = len(s.Users) - 1
	}
	s.EnsureVisible()
}

// EnsureVisible scrolls the viewport so the cursor is on screen
func (s *AppState) EnsureVisible() {
	if s.ViewportHeight <= 0 {
		s.ViewportOffset = 0
		return
	}
	if s.SelectedIndex < s.ViewportOffset {
		s.ViewportOffset = s.SelectedIndex
	}
	if s.SelectedIndex >= s.ViewportOffset+s.ViewportHeight {
		s.ViewportOffset = s.SelectedIndex - s.ViewportHeight + 1
	}
	maxOffset := len(s.Users) - s.ViewportHeight
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.ViewportOffset > maxOffset {
		s.ViewportOffset = maxOffset
	}
	if s.ViewportOffset < 0 {
		s.ViewportOffset = 0
	}
}

// SelectedUser returns the user whose login was last resolved
func (s *AppState) SelectedUser() (domain.UserSummary, bool) {
	for _, u := range s.Users {
		if u.Login == s.SelectedLogin {
			return u, true
		}
	}
	return domain.UserSummary{}, false
}

// SetStatus sets the status bar message
func (s *AppState) SetStatus(msg string, isError bool) {
	s.StatusMessage = msg
	s.StatusIsError = isError
}
