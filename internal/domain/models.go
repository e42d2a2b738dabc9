package domain

// UserSummary is one entry of the user search result list.
// Login is the identity; the other fields are only used for display.
type UserSummary struct {
	Login     string  `json:"login"`
	ID        int64   `json:"id"`
	AvatarURL string  `json:"avatar_url"`
	HTMLURL   string  `json:"html_url"`
	Type      string  `json:"type"`
	Score     float64 `json:"score"`
}

// SearchResponse is the decoded body of a user search
type SearchResponse struct {
	TotalCount        int           `json:"total_count"`
	IncompleteResults bool          `json:"incomplete_results"`
	Items             []UserSummary `json:"items"`
}

// Logins returns the logins of the response items in response order
func (r *SearchResponse) Logins() []string {
	if r == nil {
		return nil
	}
	logins := make([]string, 0, len(r.Items))
	for _, item := range r.Items {
		logins = append(logins, item.Login)
	}
	return logins
}
