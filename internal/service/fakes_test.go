package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dblab/twitterclone/internal/auth"
	"github.com/dblab/twitterclone/internal/domain"
	"github.com/dblab/twitterclone/internal/events"
	"github.com/dblab/twitterclone/internal/repository"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func principalFor(accountID string, roles ...string) auth.Principal {
	if len(roles) == 0 {
		roles = []string{"USER"}
	}
	return auth.Principal{Identifier: accountID, Roles: auth.NormalizeRoles(roles)}
}

type idSeq struct {
	mu sync.Mutex
	n  int
}

func (s *idSeq) next(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%s-%d", prefix, s.n)
}

type memAccounts struct {
	ids  idSeq
	byID map[string]*domain.Account
}

func newMemAccounts(seed ...domain.Account) *memAccounts {
	m := &memAccounts{byID: map[string]*domain.Account{}}
	for i := range seed {
		a := seed[i]
		m.byID[a.ID] = &a
	}
	return m
}

func (m *memAccounts) Create(ctx context.Context, account *domain.Account) error {
	for _, existing := range m.byID {
		if existing.Email == account.Email {
			return repository.ErrDuplicateEmail
		}
		if existing.Username == account.Username {
			return repository.ErrDuplicateUsername
		}
	}
	if account.ID == "" {
		account.ID = m.ids.next("acc")
	}
	account.CreatedAt, account.UpdatedAt = fixedNow, fixedNow
	cp := *account
	m.byID[account.ID] = &cp
	return nil
}

func (m *memAccounts) Update(ctx context.Context, id string, update domain.AccountUpdate) (*domain.Account, error) {
	account, ok := m.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if update.Email != nil {
		for otherID, other := range m.byID {
			if otherID != id && other.Email == *update.Email {
				return nil, repository.ErrDuplicateEmail
			}
		}
		account.Email = *update.Email
	}
	if update.Username != nil {
		account.Username = *update.Username
	}
	if update.Nickname != nil {
		account.Nickname = *update.Nickname
	}
	if update.PasswordHash != nil {
		account.PasswordHash = *update.PasswordHash
	}
	if update.BirthDate != nil {
		account.BirthDate = update.BirthDate
	}
	cp := *account
	return &cp, nil
}

func (m *memAccounts) Delete(ctx context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.byID, id)
	return nil
}

func (m *memAccounts) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	account, ok := m.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *account
	return &cp, nil
}

func (m *memAccounts) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	for _, account := range m.byID {
		if account.Email == email {
			cp := *account
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memAccounts) Search(ctx context.Context, keyword string, limit int) ([]domain.Account, error) {
	var out []domain.Account
	kw := strings.ToLower(keyword)
	for _, a := range m.byID {
		if strings.Contains(strings.ToLower(a.Username), kw) || strings.Contains(strings.ToLower(a.Nickname), kw) {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

type memTweets struct {
	ids    idSeq
	byID   map[string]*domain.Tweet
	order  []string
	offset time.Duration
}

func newMemTweets() *memTweets {
	return &memTweets{byID: map[string]*domain.Tweet{}}
}

func (m *memTweets) Create(ctx context.Context, tweet *domain.Tweet) error {
	if tweet.ID == "" {
		tweet.ID = m.ids.next("tw")
	}
	m.offset += time.Second
	tweet.CreatedAt = fixedNow.Add(m.offset)
	tweet.UpdatedAt = tweet.CreatedAt
	cp := *tweet
	m.byID[tweet.ID] = &cp
	m.order = append(m.order, tweet.ID)
	return nil
}

func (m *memTweets) Update(ctx context.Context, tweet *domain.Tweet) error {
	existing, ok := m.byID[tweet.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	existing.Content = tweet.Content
	existing.Hashtags = tweet.Hashtags
	tweet.LikeCount = existing.LikeCount
	return nil
}

func (m *memTweets) Delete(ctx context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.byID, id)
	return nil
}

func (m *memTweets) GetByID(ctx context.Context, id string) (*domain.Tweet, error) {
	tweet, ok := m.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *tweet
	return &cp, nil
}

func (m *memTweets) newestFirst(keep func(domain.Tweet) bool) []domain.Tweet {
	var out []domain.Tweet
	for i := len(m.order) - 1; i >= 0; i-- {
		tweet, ok := m.byID[m.order[i]]
		if ok && keep(*tweet) {
			out = append(out, *tweet)
		}
	}
	return out
}

func (m *memTweets) ListByAuthors(ctx context.Context, authorEmails []string, limit int) ([]domain.Tweet, error) {
	set := map[string]bool{}
	for _, e := range authorEmails {
		set[e] = true
	}
	return m.newestFirst(func(t domain.Tweet) bool { return set[t.AuthorEmail] }), nil
}

func (m *memTweets) Search(ctx context.Context, keyword string, limit int) ([]domain.Tweet, error) {
	kw := strings.ToLower(keyword)
	return m.newestFirst(func(t domain.Tweet) bool { return strings.Contains(strings.ToLower(t.Content), kw) }), nil
}

type memFollows struct {
	ids  idSeq
	byID map[string]*domain.Follow
}

func newMemFollows() *memFollows {
	return &memFollows{byID: map[string]*domain.Follow{}}
}

func (m *memFollows) Create(ctx context.Context, follow *domain.Follow) error {
	for _, f := range m.byID {
		if f.FollowerEmail == follow.FollowerEmail && f.FollowingEmail == follow.FollowingEmail {
			return repository.ErrDuplicateFollow
		}
	}
	follow.ID = m.ids.next("fol")
	follow.CreatedAt = fixedNow
	cp := *follow
	m.byID[follow.ID] = &cp
	return nil
}

func (m *memFollows) Delete(ctx context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.byID, id)
	return nil
}

func (m *memFollows) GetByID(ctx context.Context, id string) (*domain.Follow, error) {
	f, ok := m.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *f
	return &cp, nil
}

func (m *memFollows) ListFollowing(ctx context.Context, followerEmail string) ([]string, error) {
	var out []string
	for _, f := range m.byID {
		if f.FollowerEmail == followerEmail {
			out = append(out, f.FollowingEmail)
		}
	}
	sort.Strings(out)
	return out, nil
}

type memFavorites struct {
	ids    idSeq
	byID   map[string]*domain.Favorite
	tweets *memTweets
}

func newMemFavorites(tweets *memTweets) *memFavorites {
	return &memFavorites{byID: map[string]*domain.Favorite{}, tweets: tweets}
}

func (m *memFavorites) Like(ctx context.Context, favorite *domain.Favorite) (int, error) {
	tweet, ok := m.tweets.byID[favorite.TweetID]
	if !ok {
		return 0, repository.ErrMissingReference
	}
	for _, f := range m.byID {
		if f.TweetID == favorite.TweetID && f.AccountEmail == favorite.AccountEmail {
			return 0, repository.ErrDuplicateFavorite
		}
	}
	favorite.ID = m.ids.next("fav")
	favorite.CreatedAt = fixedNow
	cp := *favorite
	m.byID[favorite.ID] = &cp
	tweet.LikeCount++
	return tweet.LikeCount, nil
}

func (m *memFavorites) Unlike(ctx context.Context, id string) (int, error) {
	f, ok := m.byID[id]
	if !ok {
		return 0, pgx.ErrNoRows
	}
	delete(m.byID, id)
	tweet := m.tweets.byID[f.TweetID]
	if tweet.LikeCount > 0 {
		tweet.LikeCount--
	}
	return tweet.LikeCount, nil
}

func (m *memFavorites) GetByID(ctx context.Context, id string) (*domain.Favorite, error) {
	f, ok := m.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *f
	return &cp, nil
}

func (m *memFavorites) ListByTweet(ctx context.Context, tweetID string) ([]domain.Favorite, error) {
	var out []domain.Favorite
	for _, f := range m.byID {
		if f.TweetID == tweetID {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memComments struct {
	ids  idSeq
	byID map[string]*domain.Comment
}

func newMemComments() *memComments {
	return &memComments{byID: map[string]*domain.Comment{}}
}

func (m *memComments) Create(ctx context.Context, comment *domain.Comment) error {
	comment.ID = m.ids.next("cmt")
	comment.CreatedAt, comment.UpdatedAt = fixedNow, fixedNow
	cp := *comment
	m.byID[comment.ID] = &cp
	return nil
}

func (m *memComments) UpdateContent(ctx context.Context, comment *domain.Comment) error {
	existing, ok := m.byID[comment.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	existing.Content = comment.Content
	return nil
}

func (m *memComments) Delete(ctx context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.byID, id)
	return nil
}

func (m *memComments) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *c
	return &cp, nil
}

func (m *memComments) ListByTweet(ctx context.Context, tweetID string) ([]domain.Comment, error) {
	var out []domain.Comment
	for _, c := range m.byID {
		if c.TweetID == tweetID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memExplores struct {
	ids  idSeq
	byID map[string]*domain.Explore
}

func newMemExplores() *memExplores {
	return &memExplores{byID: map[string]*domain.Explore{}}
}

func (m *memExplores) Create(ctx context.Context, explore *domain.Explore) error {
	explore.ID = m.ids.next("exp")
	explore.SearchedAt = fixedNow
	cp := *explore
	m.byID[explore.ID] = &cp
	return nil
}

func (m *memExplores) GetByID(ctx context.Context, id string) (*domain.Explore, error) {
	e, ok := m.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *e
	return &cp, nil
}

func (m *memExplores) ListSaved(ctx context.Context, accountEmail string) ([]domain.Explore, error) {
	var out []domain.Explore
	for _, e := range m.byID {
		if e.AccountEmail == accountEmail && e.Saved {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Keyword < out[j].Keyword })
	return out, nil
}

func (m *memExplores) DeleteByKeyword(ctx context.Context, accountEmail, keyword string) (int64, error) {
	var n int64
	for id, e := range m.byID {
		if e.AccountEmail == accountEmail && e.Keyword == keyword {
			delete(m.byID, id)
			n++
		}
	}
	return n, nil
}

type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(ctx context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	out := make([]events.EventType, 0, len(d.published))
	for _, e := range d.published {
		out = append(out, e.Type)
	}
	return out
}
