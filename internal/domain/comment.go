package domain

import "time"

// Comment is a reply attached to a tweet.
type Comment struct {
	ID          string
	TweetID     string
	AuthorEmail string
	Content     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
