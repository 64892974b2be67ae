package domain

import "time"

// Favorite is a like placed by an account on a tweet.
type Favorite struct {
	ID           string
	TweetID      string
	AccountEmail string
	CreatedAt    time.Time
}
