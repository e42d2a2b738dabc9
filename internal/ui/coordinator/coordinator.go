package coordinator

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	"ghsearch/internal/debounce"
	"ghsearch/internal/domain"
	"ghsearch/internal/eventbus"
	"ghsearch/internal/logic"
	"ghsearch/internal/stream"
	"ghsearch/internal/ui/services/search"
	"ghsearch/internal/ui/services/selection"
)

const (
	// DefaultDebounce is the quiet period before a search is sent
	DefaultDebounce = 500 * time.Millisecond

	// SummaryFormat renders the raw count value for the result label
	SummaryFormat = "User search result: %s items"
)

// Inputs are the events the view feeds in
type Inputs interface {
	SearchTextChanged(text *string)
	ItemSelected(index int)
}

// Outputs are the streams the view binds to
type Outputs interface {
	ResultSummary() stream.Observable[string]
	Users() stream.Observable[[]domain.UserSummary]
	SelectedLogin() stream.Observable[string]
}

// SearchViewModel is what a view needs from the coordinator
type SearchViewModel interface {
	Inputs
	Outputs
}

// Options configures a Coordinator
type Options struct {
	Searcher     logic.Searcher
	Bus          eventbus.EventBus
	Store        logic.UserStore // defaults to an in-memory store
	Clock        clock.Clock     // defaults to the wall clock
	Debounce     time.Duration   // defaults to DefaultDebounce
	NewRequestID func() string   // defaults to uuid.NewString
}

// loop messages
type (
	textChangedMsg  struct{ text *string }
	itemSelectedMsg struct{ index int }
	settledMsg      struct{ query string }
	outcomeMsg      struct{ outcome search.Outcome }
	loopFunc        func()
)

// Coordinator is the search screen's view model. It owns two pipelines:
// text → debounce → request → (count, users), and index → login.
// All state changes and output emissions happen on one loop goroutine.
type Coordinator struct {
	// Services
	Search    *search.Service
	Selection *selection.Service

	// Dependencies
	store     logic.UserStore
	debouncer *debounce.Debouncer[string]
	newID     func() string

	// Outputs
	count    *stream.Behavior[string]
	summary  stream.Observable[string]
	users    *stream.Behavior[[]domain.UserSummary]
	selected *stream.Signal[string]

	msgs      chan any
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewCoordinator creates a coordinator and starts its loop
func NewCoordinator(opts Options) *Coordinator {
	store := opts.Store
	if store == nil {
		store = logic.NewMemoryUserStore()
	}
	delay := opts.Debounce
	if delay <= 0 {
		delay = DefaultDebounce
	}
	newID := opts.NewRequestID
	if newID == nil {
		newID = uuid.NewString
	}

	c := &Coordinator{
		Search:    search.NewService(opts.Bus, store),
		Selection: selection.NewService(opts.Bus),
		store:     store,
		newID:     newID,
		users:     stream.NewBehavior(store.Users()),
		selected:  stream.NewSignal[string](),
		msgs:      make(chan any, 64),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	c.count = stream.NewBehavior(c.Search.GetCountLabel())
	c.summary = stream.Map[string, string](c.count, FormatSummary)
	c.debouncer = debounce.New(opts.Clock, delay, func(query string) {
		c.post(settledMsg{query: query})
	})

	c.wireServices(opts.Searcher)

	go c.loop()
	return c
}

// wireServices connects services with their dependencies
func (c *Coordinator) wireServices(searcher logic.Searcher) {
	if searcher != nil {
		c.Search.SetSearchFunction(searcher.SearchUsers)
	}

	// Selection pairs with whatever list is current when it resolves
	c.Selection.SetUsersFunction(c.store.Users)
}

// FormatSummary renders a raw count value with SummaryFormat
func FormatSummary(count string) string {
	return fmt.Sprintf(SummaryFormat, count)
}

// SearchTextChanged feeds a text change. Nil and empty text are ignored.
func (c *Coordinator) SearchTextChanged(text *string) {
	c.post(textChangedMsg{text: text})
}

// ItemSelected feeds a list selection
func (c *Coordinator) ItemSelected(index int) {
	c.post(itemSelectedMsg{index: index})
}

// ResultSummary replays the latest "User search result: N items" label
func (c *Coordinator) ResultSummary() stream.Observable[string] {
	return c.summary
}

// Users replays the latest successfully decoded list
func (c *Coordinator) Users() stream.Observable[[]domain.UserSummary] {
	return c.users
}

// SelectedLogin emits the login of each resolved selection; nothing is replayed
func (c *Coordinator) SelectedLogin() stream.Observable[string] {
	return c.selected
}

// Close stops the loop and the debounce timer and drops all subscriptions.
// In-flight requests are not cancelled; their outcomes are discarded.
func (c *Coordinator) Close() {
	c.closeOnce.Do(func() {
		close(c.quit)
		<-c.done
		c.debouncer.Stop()
		c.count.Dispose()
		c.users.Dispose()
		c.selected.Dispose()
		log.Printf("Coordinator: closed")
	})
}

// post queues a message for the loop; after Close it is dropped
func (c *Coordinator) post(msg any) {
	select {
	case <-c.quit:
		return
	default:
	}

	select {
	case c.msgs <- msg:
	case <-c.quit:
	}
}

func (c *Coordinator) loop() {
	defer close(c.done)

	for {
		select {
		case msg := <-c.msgs:
			c.handle(msg)
		case <-c.quit:
			return
		}
	}
}

func (c *Coordinator) handle(msg any) {
	switch m := msg.(type) {
	case textChangedMsg:
		query, ok := c.Search.Accept(m.text)
		if !ok {
			return
		}
		log.Printf("Coordinator: search text %q", query)
		c.debouncer.Push(query)

	case settledMsg:
		id := c.newID()
		c.Search.Begin(id, m.query)
		go c.fetch(id, m.query)

	case outcomeMsg:
		change := c.Search.Apply(m.outcome)
		if change.Count {
			c.count.Accept(c.Search.GetCountLabel())
		}
		if change.Users {
			c.users.Accept(c.Search.GetUsers())
		}

	case itemSelectedMsg:
		if login, ok := c.Selection.Resolve(m.index); ok {
			c.selected.Emit(login)
		}

	case loopFunc:
		m()
	}
}

// fetch runs off the loop. The request is not tied to Close; superseded
// and abandoned requests run to completion.
func (c *Coordinator) fetch(id, query string) {
	out := c.Search.Execute(context.Background(), id, query)
	c.post(outcomeMsg{outcome: out})
}
