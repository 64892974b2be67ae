package dto

import (
	"time"

	"github.com/dblab/twitterclone/internal/domain"
)

// TweetRequest creates or edits a tweet.
type TweetRequest struct {
	Content string `json:"content" validate:"required"`
}

// TweetResponse is the public view of a tweet.
type TweetResponse struct {
	ID          string    `json:"id"`
	AuthorEmail string    `json:"author_email"`
	Content     string    `json:"content"`
	Hashtags    []string  `json:"hashtags"`
	LikeCount   int       `json:"like_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTweetResponse maps a domain tweet.
func NewTweetResponse(t *domain.Tweet) TweetResponse {
	hashtags := t.Hashtags
	if hashtags == nil {
		hashtags = []string{}
	}
	return TweetResponse{
		ID:          t.ID,
		AuthorEmail: t.AuthorEmail,
		Content:     t.Content,
		Hashtags:    hashtags,
		LikeCount:   t.LikeCount,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// NewTweetResponses maps a slice of tweets.
func NewTweetResponses(tweets []domain.Tweet) []TweetResponse {
	out := make([]TweetResponse, 0, len(tweets))
	for i := range tweets {
		out = append(out, NewTweetResponse(&tweets[i]))
	}
	return out
}

// CommentRequest creates or edits a comment.
type CommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// CommentResponse is the public view of a comment.
type CommentResponse struct {
	ID          string    `json:"id"`
	TweetID     string    `json:"tweet_id"`
	AuthorEmail string    `json:"author_email"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewCommentResponse maps a domain comment.
func NewCommentResponse(c *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:          c.ID,
		TweetID:     c.TweetID,
		AuthorEmail: c.AuthorEmail,
		Content:     c.Content,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// FavoriteResponse is the public view of a like.
type FavoriteResponse struct {
	ID           string    `json:"id"`
	TweetID      string    `json:"tweet_id"`
	AccountEmail string    `json:"account_email"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewFavoriteResponse maps a domain favorite.
func NewFavoriteResponse(f *domain.Favorite) FavoriteResponse {
	return FavoriteResponse{
		ID:           f.ID,
		TweetID:      f.TweetID,
		AccountEmail: f.AccountEmail,
		CreatedAt:    f.CreatedAt,
	}
}

// LikeCountResponse reports a tweet's like count after a change.
type LikeCountResponse struct {
	LikeCount int `json:"like_count"`
}

// FollowResponse is the public view of a follow.
type FollowResponse struct {
	ID             string    `json:"id"`
	FollowerEmail  string    `json:"follower_email"`
	FollowingEmail string    `json:"following_email"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewFollowResponse maps a domain follow.
func NewFollowResponse(f *domain.Follow) FollowResponse {
	return FollowResponse{
		ID:             f.ID,
		FollowerEmail:  f.FollowerEmail,
		FollowingEmail: f.FollowingEmail,
		CreatedAt:      f.CreatedAt,
	}
}
