package logic

import (
	"context"

	"ghsearch/internal/domain"
)

// UserStore holds the most recently applied search result list
type UserStore interface {
	Users() []domain.UserSummary
	Replace(users []domain.UserSummary)
	Len() int
}

// Searcher runs one user search against the remote API
type Searcher interface {
	SearchUsers(ctx context.Context, query string) (*domain.SearchResponse, error)
}
