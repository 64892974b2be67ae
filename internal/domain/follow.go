package domain

import "time"

// Follow records that FollowerEmail subscribes to FollowingEmail's tweets.
type Follow struct {
	ID             string
	FollowerEmail  string
	FollowingEmail string
	CreatedAt      time.Time
}
