package search

import (
	"context"
	"errors"
	"log"
	"strconv"

	"ghsearch/internal/domain"
	"ghsearch/internal/eventbus"
	"ghsearch/internal/github"
	"ghsearch/internal/logic"
)

var errNoSearchFunction = errors.New("no search function configured")

// Service handles the search pipeline state
type Service struct {
	state    *State
	store    logic.UserStore
	bus      eventbus.EventBus
	searchFn func(context.Context, string) (*domain.SearchResponse, error)
}

// NewService creates a new search service
func NewService(bus eventbus.EventBus, store logic.UserStore) *Service {
	return &Service{
		state: &State{
			CountLabel: PlaceholderLabel,
		},
		store: store,
		bus:   bus,
	}
}

// SetSearchFunction sets the function that talks to the API
func (s *Service) SetSearchFunction(fn func(context.Context, string) (*domain.SearchResponse, error)) {
	s.searchFn = fn
}

// Accept records a text change. Nil and empty text are dropped without
// touching state; no trimming is done.
func (s *Service) Accept(text *string) (string, bool) {
	if text == nil || *text == "" {
		return "", false
	}

	s.state.Query = *text
	s.publish(domain.SearchQueuedEvent{Query: *text})
	return *text, true
}

// Begin marks a request as sent
func (s *Service) Begin(requestID, query string) {
	s.state.InFlight++
	log.Printf("Search: request %s for %q", requestID, query)
	s.publish(domain.SearchRequestedEvent{RequestID: requestID, Query: query})
}

// Execute runs the search function. It does not touch state and may run on
// any goroutine.
func (s *Service) Execute(ctx context.Context, requestID, query string) Outcome {
	out := Outcome{RequestID: requestID, Query: query}
	if s.searchFn == nil {
		out.Err = errNoSearchFunction
		return out
	}
	out.Response, out.Err = s.searchFn(ctx, query)
	if out.Err == nil && out.Response == nil {
		out.Err = &github.DecodeError{Err: errors.New("empty response")}
	}
	return out
}

// Apply folds an outcome into state. Outcomes are applied in arrival order,
// so an older request finishing last wins.
func (s *Service) Apply(out Outcome) Change {
	if s.state.InFlight > 0 {
		s.state.InFlight--
	}

	if out.Err == nil {
		s.state.CountLabel = strconv.Itoa(out.Response.TotalCount)
		s.store.Replace(out.Response.Items)
		log.Printf("Search: request %s for %q succeeded: %d total, %d items",
			out.RequestID, out.Query, out.Response.TotalCount, len(out.Response.Items))
		s.publish(domain.SearchCompletedEvent{
			RequestID:  out.RequestID,
			Query:      out.Query,
			TotalCount: out.Response.TotalCount,
			Users:      len(out.Response.Items),
		})
		return Change{Count: true, Users: true}
	}

	if github.IsDecode(out.Err) {
		log.Printf("Search: request %s for %q: %v", out.RequestID, out.Query, out.Err)
		s.publish(domain.SearchFailedEvent{
			RequestID: out.RequestID,
			Query:     out.Query,
			Kind:      domain.FailureDecode,
			Err:       out.Err,
		})
		return Change{}
	}

	log.Printf("Search: request %s for %q failed: %v", out.RequestID, out.Query, out.Err)
	s.state.CountLabel = "0"
	s.publish(domain.SearchFailedEvent{
		RequestID: out.RequestID,
		Query:     out.Query,
		Kind:      domain.FailureTransport,
		Err:       out.Err,
	})
	return Change{Count: true}
}

// GetQuery returns the last accepted query
func (s *Service) GetQuery() string {
	return s.state.Query
}

// GetCountLabel returns the raw count value
func (s *Service) GetCountLabel() string {
	return s.state.CountLabel
}

// GetUsers returns the current user list
func (s *Service) GetUsers() []domain.UserSummary {
	return s.store.Users()
}

// InFlight returns the number of requests not yet applied
func (s *Service) InFlight() int {
	return s.state.InFlight
}

func (s *Service) publish(e domain.DomainEvent) {
	if s.bus != nil {
		s.bus.Publish(e)
	}
}
