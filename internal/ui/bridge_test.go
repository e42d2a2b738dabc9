package ui

import (
	"fmt"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ghsearch/internal/domain"
	"ghsearch/internal/eventbus"
	"ghsearch/internal/stream"
)

type fakeOutputs struct {
	summary  *stream.Behavior[string]
	users    *stream.Behavior[[]domain.UserSummary]
	selected *stream.Signal[string]
}

func newFakeOutputs() *fakeOutputs {
	return &fakeOutputs{
		summary:  stream.NewBehavior("User search result: Github Search API items"),
		users:    stream.NewBehavior([]domain.UserSummary{}),
		selected: stream.NewSignal[string](),
	}
}

func (f *fakeOutputs) ResultSummary() stream.Observable[string] { return f.summary }
func (f *fakeOutputs) Users() stream.Observable[[]domain.UserSummary] {
	return f.users
}
func (f *fakeOutputs) SelectedLogin() stream.Observable[string] { return f.selected }

// program records delivered messages; it blocks until opened when gated
type program struct {
	mu   sync.Mutex
	msgs []tea.Msg
	gate chan struct{}
}

func (p *program) send(msg tea.Msg) {
	if p.gate != nil {
		<-p.gate
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, msg)
}

func (p *program) received() []tea.Msg {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]tea.Msg(nil), p.msgs...)
}

func (p *program) lastUsers() (usersMsg, bool) {
	msgs := p.received()
	for i := len(msgs) - 1; i >= 0; i-- {
		if u, ok := msgs[i].(usersMsg); ok {
			return u, true
		}
	}
	return nil, false
}

func (p *program) lastSummary() (summaryMsg, bool) {
	msgs := p.received()
	for i := len(msgs) - 1; i >= 0; i-- {
		if s, ok := msgs[i].(summaryMsg); ok {
			return s, true
		}
	}
	return "", false
}

func TestBridgeDeliversLatestValuesToBlockedProgram(t *testing.T) {
	out := newFakeOutputs()
	prog := &program{gate: make(chan struct{})}

	b := NewBridge()
	defer b.Close()
	b.Bind(out)
	b.Start(prog.send)

	for i := 0; i < 300; i++ {
		out.summary.Accept(fmt.Sprintf("User search result: %d items", i))
	}
	final := []domain.UserSummary{{Login: "final"}}
	out.users.Accept(final)

	close(prog.gate)

	require.Eventually(t, func() bool {
		users, ok := prog.lastUsers()
		summary, _ := prog.lastSummary()
		return ok && len(users) == 1 && summary == "User search result: 299 items"
	}, 2*time.Second, 10*time.Millisecond)

	users, _ := prog.lastUsers()
	assert.Equal(t, usersMsg(final), users)
	// Coalesced, not one message per value
	assert.Less(t, len(prog.received()), 300)
}

func TestBridgeSendsUsersBeforeSelection(t *testing.T) {
	out := newFakeOutputs()
	prog := &program{}

	b := NewBridge()
	defer b.Close()
	b.Bind(out)

	list := []domain.UserSummary{{Login: "a"}, {Login: "b"}}
	out.users.Accept(list)
	out.selected.Emit("b")
	b.Start(prog.send)

	require.Eventually(t, func() bool {
		for _, msg := range prog.received() {
			if _, ok := msg.(selectedMsg); ok {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)

	usersAt, selectedAt := -1, -1
	for i, msg := range prog.received() {
		switch m := msg.(type) {
		case usersMsg:
			if len(m) == 2 {
				usersAt = i
			}
		case selectedMsg:
			assert.Equal(t, selectedMsg("b"), m)
			selectedAt = i
		}
	}
	require.NotEqual(t, -1, usersAt)
	assert.Less(t, usersAt, selectedAt)
}

func TestBridgeQueuesEventsUntilStart(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	prog := &program{}

	b := NewBridge()
	defer b.Close()
	b.ForwardEvents(bus, eventbus.EventConfigLoaded)

	bus.Publish(eventbus.ConfigLoadedEvent{Path: "/tmp/ghsearch.toml"})
	// Give the bus time to dispatch into the queue
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, prog.received())

	b.Start(prog.send)
	require.Eventually(t, func() bool {
		return len(prog.received()) == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, EventMsg{Event: eventbus.ConfigLoadedEvent{Path: "/tmp/ghsearch.toml"}}, prog.received()[0])
}

func TestBridgeCloseStopsDelivery(t *testing.T) {
	out := newFakeOutputs()
	prog := &program{}

	b := NewBridge()
	b.Bind(out)
	b.Start(prog.send)

	require.Eventually(t, func() bool {
		_, ok := prog.lastUsers()
		return ok
	}, 2*time.Second, 10*time.Millisecond)

	b.Close()
	before := len(prog.received())
	out.users.Accept([]domain.UserSummary{{Login: "late"}})
	out.selected.Emit("late")
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, prog.received(), before)
}

func TestBridgeCloseWithoutStart(t *testing.T) {
	b := NewBridge()
	b.Bind(newFakeOutputs())

	done := make(chan struct{})
	go func() {
		b.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Close blocked on a bridge that never started")
	}
}
