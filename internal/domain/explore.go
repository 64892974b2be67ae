package domain

import "time"

// Explore is a keyword searched by an account, optionally saved for later.
type Explore struct {
	ID           string
	AccountEmail string
	Keyword      string
	Saved        bool
	SearchedAt   time.Time
}

// SearchResult bundles the matches of a keyword search.
type SearchResult struct {
	Keyword  string
	Accounts []Account
	Tweets   []Tweet
}
