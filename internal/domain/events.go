package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchQueued    EventType = "SearchQueued"
	EventSearchRequested EventType = "SearchRequested"
	EventSearchCompleted EventType = "SearchCompleted"
	EventSearchFailed    EventType = "SearchFailed"
	EventUserSelected    EventType = "UserSelected"
	EventConfigLoaded    EventType = "ConfigLoaded"
)

// FailureKind tells transport failures apart from decode failures
type FailureKind int

const (
	FailureTransport FailureKind = iota
	FailureDecode
)

func (k FailureKind) String() string {
	switch k {
	case FailureTransport:
		return "transport"
	case FailureDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchQueuedEvent is emitted when a non-empty search text enters the debounce
type SearchQueuedEvent struct {
	Query string
}

func (e SearchQueuedEvent) Type() EventType { return EventSearchQueued }

// SearchRequestedEvent is emitted when a settled query is sent to the API
type SearchRequestedEvent struct {
	RequestID string
	Query     string
}

func (e SearchRequestedEvent) Type() EventType { return EventSearchRequested }

// SearchCompletedEvent is emitted after a decoded response has been applied
type SearchCompletedEvent struct {
	RequestID  string
	Query      string
	TotalCount int
	Users      int // number of items in this page
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// SearchFailedEvent is emitted when a request fails or its body cannot be decoded
type SearchFailedEvent struct {
	RequestID string
	Query     string
	Kind      FailureKind
	Err       error
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// UserSelectedEvent is emitted when a selection resolves to a user
type UserSelectedEvent struct {
	Index int
	Login string
}

func (e UserSelectedEvent) Type() EventType { return EventUserSelected }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }
