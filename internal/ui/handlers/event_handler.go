package handlers

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"ghsearch/internal/eventbus"
	"ghsearch/internal/ui/state"
)

// EventHandler handles domain events and updates state
type EventHandler struct {
	state *state.AppState
}

// NewEventHandler creates a new event handler
func NewEventHandler(appState *state.AppState) *EventHandler {
	return &EventHandler{state: appState}
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.SearchQueuedEvent:
		h.state.SetStatus(fmt.Sprintf("Waiting to search for %q", e.Query), false)

	case eventbus.SearchRequestedEvent:
		h.state.InFlight++
		h.state.LastQuery = e.Query
		h.state.LastRequestID = e.RequestID
		h.state.SetStatus(fmt.Sprintf("Searching for %q", e.Query), false)

	case eventbus.SearchCompletedEvent:
		h.requestFinished()
		h.state.SetStatus(fmt.Sprintf("%q: %d matches, showing %d", e.Query, e.TotalCount, e.Users), false)

	case eventbus.SearchFailedEvent:
		h.requestFinished()
		switch e.Kind {
		case eventbus.FailureTransport:
			h.state.SetStatus(fmt.Sprintf("Search for %q failed: %v", e.Query, e.Err), true)
		case eventbus.FailureDecode:
			h.state.SetStatus(fmt.Sprintf("Unreadable response for %q, results unchanged", e.Query), true)
		}

	case eventbus.UserSelectedEvent:
		h.state.SetStatus(fmt.Sprintf("Selected %s", e.Login), false)

	case eventbus.ConfigLoadedEvent:
		h.state.SetStatus(fmt.Sprintf("Config: %s", e.Path), false)
	}

	return nil
}

func (h *EventHandler) requestFinished() {
	if h.state.InFlight > 0 {
		h.state.InFlight--
	}
}
