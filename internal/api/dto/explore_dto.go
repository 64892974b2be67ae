package dto

import (
	"time"

	"github.com/dblab/twitterclone/internal/domain"
)

// ExploreRequest names a keyword to search or save.
type ExploreRequest struct {
	Keyword string `json:"keyword" validate:"required,max=100"`
}

// ExploreResponse is a saved or searched keyword.
type ExploreResponse struct {
	ID         string    `json:"id"`
	Keyword    string    `json:"keyword"`
	Saved      bool      `json:"saved"`
	SearchedAt time.Time `json:"searched_at"`
}

// NewExploreResponse maps a domain explore entry.
func NewExploreResponse(e *domain.Explore) ExploreResponse {
	return ExploreResponse{ID: e.ID, Keyword: e.Keyword, Saved: e.Saved, SearchedAt: e.SearchedAt}
}

// AccountSummary is the compact account view used in search results.
type AccountSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
}

// SearchResponse lists keyword matches.
type SearchResponse struct {
	Keyword  string           `json:"keyword"`
	Accounts []AccountSummary `json:"accounts"`
	Tweets   []TweetResponse  `json:"tweets"`
}

// NewSearchResponse maps a search result.
func NewSearchResponse(r *domain.SearchResult) SearchResponse {
	accounts := make([]AccountSummary, 0, len(r.Accounts))
	for _, a := range r.Accounts {
		accounts = append(accounts, AccountSummary{ID: a.ID, Username: a.Username, Nickname: a.Nickname, Email: a.Email})
	}
	return SearchResponse{
		Keyword:  r.Keyword,
		Accounts: accounts,
		Tweets:   NewTweetResponses(r.Tweets),
	}
}
