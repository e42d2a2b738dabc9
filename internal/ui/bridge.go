package ui

import (
	"log"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"ghsearch/internal/domain"
	"ghsearch/internal/eventbus"
	"ghsearch/internal/ui/coordinator"
)

// Bridge forwards coordinator outputs and bus events into a Bubble Tea
// program from one goroutine, so the coordinator loop never blocks on the
// program.
//
// Summary and users are latest-value outputs: each keeps a single slot that
// newer values overwrite, and the slots are flushed before every queued
// message. Selections and bus events are queued in order.
type Bridge struct {
	msgs chan tea.Msg
	wake chan struct{}
	quit chan struct{}
	done chan struct{}

	mu      sync.Mutex
	unsubs  []func()
	summary *summaryMsg
	users   *usersMsg
	started bool

	startOnce sync.Once
	closeOnce sync.Once
}

// NewBridge creates a bridge. Messages queue up until Start.
func NewBridge() *Bridge {
	return &Bridge{
		msgs: make(chan tea.Msg, 256),
		wake: make(chan struct{}, 1),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// Start begins delivering messages through send
func (b *Bridge) Start(send func(tea.Msg)) {
	b.startOnce.Do(func() {
		b.mu.Lock()
		b.started = true
		b.mu.Unlock()
		go b.run(send)
	})
}

// Bind subscribes to the coordinator outputs. Replayed values are taken
// immediately.
func (b *Bridge) Bind(outputs coordinator.Outputs) {
	b.track(outputs.ResultSummary().Subscribe(func(s string) {
		msg := summaryMsg(s)
		b.setLatest(func() { b.summary = &msg })
	}))
	b.track(outputs.Users().Subscribe(func(users []domain.UserSummary) {
		msg := usersMsg(users)
		b.setLatest(func() { b.users = &msg })
	}))
	b.track(outputs.SelectedLogin().Subscribe(func(login string) {
		b.push(selectedMsg(login))
	}))
}

// ForwardEvents wraps the given bus events in EventMsg
func (b *Bridge) ForwardEvents(bus eventbus.EventBus, types ...eventbus.EventType) {
	for _, t := range types {
		b.track(bus.Subscribe(t, func(e eventbus.DomainEvent) {
			b.push(EventMsg{Event: e})
		}))
	}
}

// Close unsubscribes everything and stops delivery. Pending messages are dropped.
func (b *Bridge) Close() {
	b.closeOnce.Do(func() {
		b.mu.Lock()
		unsubs := b.unsubs
		b.unsubs = nil
		started := b.started
		b.mu.Unlock()
		for _, unsub := range unsubs {
			unsub()
		}
		close(b.quit)
		if started {
			<-b.done
		}
	})
}

func (b *Bridge) track(unsub func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.unsubs = append(b.unsubs, unsub)
}

func (b *Bridge) setLatest(set func()) {
	b.mu.Lock()
	set()
	b.mu.Unlock()

	select {
	case b.wake <- struct{}{}:
	default:
	}
}

func (b *Bridge) push(msg tea.Msg) {
	select {
	case b.msgs <- msg:
	case <-b.quit:
	default:
		log.Printf("Bridge: queue full, dropping %T", msg)
	}
}

// takeLatest empties the latest-value slots
func (b *Bridge) takeLatest() []tea.Msg {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []tea.Msg
	if b.summary != nil {
		out = append(out, *b.summary)
		b.summary = nil
	}
	if b.users != nil {
		out = append(out, *b.users)
		b.users = nil
	}
	return out
}

func (b *Bridge) run(send func(tea.Msg)) {
	defer close(b.done)

	flush := func() {
		for _, msg := range b.takeLatest() {
			send(msg)
		}
	}

	for {
		select {
		case <-b.quit:
			return
		case <-b.wake:
			flush()
		case msg := <-b.msgs:
			// A selection resolves against the users list, so that goes first
			flush()
			send(msg)
		}
	}
}
