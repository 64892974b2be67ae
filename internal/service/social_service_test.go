package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dblab/twitterclone/internal/domain"
	"github.com/dblab/twitterclone/internal/events"
)

type socialFixture struct {
	accounts   *memAccounts
	tweets     *memTweets
	follows    *memFollows
	favorites  *memFavorites
	comments   *memComments
	dispatcher *recordingDispatcher

	tweetSvc    *TweetService
	followSvc   *FollowService
	favoriteSvc *FavoriteService
	commentSvc  *CommentService
}

func newSocialFixture() *socialFixture {
	f := &socialFixture{
		accounts: newMemAccounts(
			domain.Account{ID: "a1", Username: "alice_wonder", Nickname: "Alice", Email: "alice@example.com"},
			domain.Account{ID: "a2", Username: "bob_builder", Nickname: "Bob", Email: "bob@example.com"},
			domain.Account{ID: "a3", Username: "carol_singer", Nickname: "Carol", Email: "carol@example.com"},
		),
		tweets:     newMemTweets(),
		follows:    newMemFollows(),
		comments:   newMemComments(),
		dispatcher: &recordingDispatcher{},
	}
	f.favorites = newMemFavorites(f.tweets)
	f.tweetSvc = NewTweetService(TweetDependencies{TweetRepo: f.tweets, FollowRepo: f.follows, AccountRepo: f.accounts, Dispatcher: f.dispatcher, Clock: clock})
	f.followSvc = NewFollowService(FollowDependencies{FollowRepo: f.follows, AccountRepo: f.accounts, Dispatcher: f.dispatcher, Clock: clock})
	f.favoriteSvc = NewFavoriteService(FavoriteDependencies{FavoriteRepo: f.favorites, TweetRepo: f.tweets, AccountRepo: f.accounts, Dispatcher: f.dispatcher, Clock: clock})
	f.commentSvc = NewCommentService(CommentDependencies{CommentRepo: f.comments, TweetRepo: f.tweets, AccountRepo: f.accounts, Dispatcher: f.dispatcher, Clock: clock})
	return f
}

func TestTweetService_CreateAndEdit(t *testing.T) {
	f := newSocialFixture()
	ctx := context.Background()
	alice := principalFor("a1")

	tweet, err := f.tweetSvc.Create(ctx, alice, "  hello #world #go  ")
	require.NoError(t, err)
	assert.Equal(t, "hello #world #go", tweet.Content)
	assert.Equal(t, []string{"go", "world"}, tweet.Hashtags)
	assert.Equal(t, "alice@example.com", tweet.AuthorEmail)

	require.Len(t, f.dispatcher.published, 1)
	event := f.dispatcher.published[0]
	assert.Equal(t, events.EventTweetCreated, event.Type)
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, fixedNow, event.Timestamp)

	t.Run("content bounds", func(t *testing.T) {
		_, err := f.tweetSvc.Create(ctx, alice, "   ")
		requireCode(t, err, "VALIDATION_FAILED")
		_, err = f.tweetSvc.Create(ctx, alice, strings.Repeat("x", 256))
		requireCode(t, err, "VALIDATION_FAILED")
		_, err = f.tweetSvc.Create(ctx, alice, strings.Repeat("가", 255))
		assert.NoError(t, err)
	})

	t.Run("author edits and hashtags follow content", func(t *testing.T) {
		updated, err := f.tweetSvc.Update(ctx, alice, tweet.ID, "edited #rust")
		require.NoError(t, err)
		assert.Equal(t, []string{"rust"}, updated.Hashtags)
	})

	t.Run("others cannot edit or delete", func(t *testing.T) {
		bob := principalFor("a2")
		_, err := f.tweetSvc.Update(ctx, bob, tweet.ID, "mine now")
		requireCode(t, err, "FORBIDDEN")
		requireCode(t, f.tweetSvc.Delete(ctx, bob, tweet.ID), "FORBIDDEN")
	})

	t.Run("missing tweet", func(t *testing.T) {
		_, err := f.tweetSvc.Get(ctx, "nope")
		requireCode(t, err, "NOT_FOUND")
	})

	t.Run("author deletes", func(t *testing.T) {
		require.NoError(t, f.tweetSvc.Delete(ctx, alice, tweet.ID))
		_, err := f.tweetSvc.Get(ctx, tweet.ID)
		requireCode(t, err, "NOT_FOUND")
	})
}

func TestTweetService_Timeline(t *testing.T) {
	f := newSocialFixture()
	ctx := context.Background()
	alice := principalFor("a1")
	bob := principalFor("a2")
	carol := principalFor("a3")

	_, err := f.tweetSvc.Create(ctx, alice, "alice one")
	require.NoError(t, err)
	_, err = f.tweetSvc.Create(ctx, bob, "bob one")
	require.NoError(t, err)
	_, err = f.tweetSvc.Create(ctx, carol, "carol one")
	require.NoError(t, err)
	_, err = f.tweetSvc.Create(ctx, alice, "alice two")
	require.NoError(t, err)

	_, err = f.followSvc.Follow(ctx, alice, "bob@example.com")
	require.NoError(t, err)

	timeline, err := f.tweetSvc.Timeline(ctx, alice, 0)
	require.NoError(t, err)

	var contents []string
	for _, tw := range timeline {
		contents = append(contents, tw.Content)
	}
	assert.Equal(t, []string{"alice two", "bob one", "alice one"}, contents)
}

func TestFollowService(t *testing.T) {
	f := newSocialFixture()
	ctx := context.Background()
	alice := principalFor("a1")

	follow, err := f.followSvc.Follow(ctx, alice, "BOB@example.com")
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", follow.FollowingEmail)
	assert.Equal(t, []events.EventType{events.EventAccountFollowed}, f.dispatcher.types())

	_, err = f.followSvc.Follow(ctx, alice, "bob@example.com")
	requireCode(t, err, "CONFLICT")

	_, err = f.followSvc.Follow(ctx, alice, "alice@example.com")
	requireCode(t, err, "VALIDATION_FAILED")

	_, err = f.followSvc.Follow(ctx, alice, "ghost@example.com")
	requireCode(t, err, "NOT_FOUND")

	requireCode(t, f.followSvc.Unfollow(ctx, principalFor("a2"), follow.ID), "FORBIDDEN")
	require.NoError(t, f.followSvc.Unfollow(ctx, alice, follow.ID))
	requireCode(t, f.followSvc.Unfollow(ctx, alice, follow.ID), "NOT_FOUND")
}

func TestFavoriteService(t *testing.T) {
	f := newSocialFixture()
	ctx := context.Background()
	alice := principalFor("a1")
	bob := principalFor("a2")

	tweet, err := f.tweetSvc.Create(ctx, alice, "like me")
	require.NoError(t, err)

	fav, count, err := f.favoriteSvc.Like(ctx, bob, tweet.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, _, err = f.favoriteSvc.Like(ctx, bob, tweet.ID)
	requireCode(t, err, "CONFLICT")

	_, count, err = f.favoriteSvc.Like(ctx, alice, tweet.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	_, _, err = f.favoriteSvc.Like(ctx, bob, "missing")
	requireCode(t, err, "NOT_FOUND")

	list, err := f.favoriteSvc.List(ctx, tweet.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	last := f.dispatcher.published[len(f.dispatcher.published)-1]
	require.Equal(t, events.EventTweetFavorited, last.Type)
	payload, ok := last.Payload.(events.TweetFavoritedPayload)
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", payload.AuthorEmail)

	_, err = f.favoriteSvc.Unlike(ctx, alice, fav.ID)
	requireCode(t, err, "FORBIDDEN")

	count, err = f.favoriteSvc.Unlike(ctx, bob, fav.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCommentService(t *testing.T) {
	f := newSocialFixture()
	ctx := context.Background()
	alice := principalFor("a1")
	bob := principalFor("a2")

	tweet, err := f.tweetSvc.Create(ctx, alice, "discuss")
	require.NoError(t, err)

	comment, err := f.commentSvc.Add(ctx, bob, tweet.ID, " nice ")
	require.NoError(t, err)
	assert.Equal(t, "nice", comment.Content)

	_, err = f.commentSvc.Add(ctx, bob, "missing", "hello")
	requireCode(t, err, "NOT_FOUND")

	_, err = f.commentSvc.Add(ctx, bob, tweet.ID, "")
	requireCode(t, err, "VALIDATION_FAILED")

	list, err := f.commentSvc.List(ctx, tweet.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = f.commentSvc.List(ctx, "missing")
	requireCode(t, err, "NOT_FOUND")

	_, err = f.commentSvc.Update(ctx, alice, comment.ID, "not yours")
	requireCode(t, err, "FORBIDDEN")

	updated, err := f.commentSvc.Update(ctx, bob, comment.ID, "very nice")
	require.NoError(t, err)
	assert.Equal(t, "very nice", updated.Content)

	requireCode(t, f.commentSvc.Delete(ctx, alice, comment.ID), "FORBIDDEN")
	require.NoError(t, f.commentSvc.Delete(ctx, bob, comment.ID))

	empty, err := f.commentSvc.List(ctx, tweet.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.NotNil(t, empty)

	assert.Contains(t, f.dispatcher.types(), events.EventCommentAdded)
}

func TestSocialServices_ActorFollowsAccountID(t *testing.T) {
	f := newSocialFixture()
	ctx := context.Background()
	alice := principalFor("a1")

	renamed := "alice.new@example.com"
	_, err := f.accounts.Update(ctx, "a1", domain.AccountUpdate{Email: &renamed})
	require.NoError(t, err)

	tweet, err := f.tweetSvc.Create(ctx, alice, "after the rename")
	require.NoError(t, err)
	assert.Equal(t, renamed, tweet.AuthorEmail)

	t.Run("deleted account is rejected", func(t *testing.T) {
		require.NoError(t, f.accounts.Delete(ctx, "a3"))
		carol := principalFor("a3")

		_, err := f.tweetSvc.Create(ctx, carol, "still here?")
		requireCode(t, err, "UNAUTHORIZED")
		_, err = f.followSvc.Follow(ctx, carol, "bob@example.com")
		requireCode(t, err, "UNAUTHORIZED")
		_, _, err = f.favoriteSvc.Like(ctx, carol, tweet.ID)
		requireCode(t, err, "UNAUTHORIZED")
		_, err = f.commentSvc.Add(ctx, carol, tweet.ID, "hello")
		requireCode(t, err, "UNAUTHORIZED")
	})
}
