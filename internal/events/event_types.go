package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTweetCreated    EventType = "tweet_created"
	EventAccountFollowed EventType = "account_followed"
	EventTweetFavorited  EventType = "tweet_favorited"
	EventCommentAdded    EventType = "comment_added"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	ActorEmail string      `json:"actor_email"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// TweetCreatedPayload payload.
type TweetCreatedPayload struct {
	TweetID  string   `json:"tweet_id"`
	Hashtags []string `json:"hashtags,omitempty"`
	Preview  string   `json:"preview"`
}

// AccountFollowedPayload payload.
type AccountFollowedPayload struct {
	FollowID       string `json:"follow_id"`
	FollowingEmail string `json:"following_email"`
}

// TweetFavoritedPayload payload.
type TweetFavoritedPayload struct {
	TweetID     string `json:"tweet_id"`
	AuthorEmail string `json:"author_email"`
	LikeCount   int    `json:"like_count"`
}

// CommentAddedPayload payload.
type CommentAddedPayload struct {
	CommentID   string `json:"comment_id"`
	TweetID     string `json:"tweet_id"`
	AuthorEmail string `json:"tweet_author_email"`
	Preview     string `json:"preview"`
}
