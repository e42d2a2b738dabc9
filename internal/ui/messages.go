package ui

import (
	"ghsearch/internal/domain"
	"ghsearch/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// summaryMsg carries a new result summary label
type summaryMsg string

// usersMsg carries a new user list
type usersMsg []domain.UserSummary

// selectedMsg carries a resolved selection
type selectedMsg string

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// clearStatusMsg clears the status line if it still shows text
type clearStatusMsg struct {
	text string
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
