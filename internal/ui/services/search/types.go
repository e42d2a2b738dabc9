package search

import "ghsearch/internal/domain"

// PlaceholderLabel is the count value shown before any search completes
const PlaceholderLabel = "Github Search API"

// State holds search state
type State struct {
	Query      string // last accepted non-empty text
	CountLabel string // raw count value fed into the summary template
	InFlight   int    // requests sent but not yet applied
}

// Outcome is the result of one request, produced off the coordinator loop
type Outcome struct {
	RequestID string
	Query     string
	Response  *domain.SearchResponse
	Err       error
}

// Change reports which outputs an applied outcome touched
type Change struct {
	Count bool
	Users bool
}
