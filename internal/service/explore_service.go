package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/dblab/twitterclone/internal/auth"
	"github.com/dblab/twitterclone/internal/domain"
	"github.com/dblab/twitterclone/internal/repository"
	apperrors "github.com/dblab/twitterclone/pkg/util/errorutil"
)

const (
	maxKeywordLength  = 100
	searchResultLimit = 50
)

// SearchCache stores serialized search results.
type SearchCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}

// CacheRecorder counts cache hits and misses.
type CacheRecorder interface {
	RecordCacheLookup(hit bool)
}

// ExploreService searches accounts and tweets and keeps saved keywords.
type ExploreService struct {
	explores repository.ExploreRepository
	accounts repository.AccountRepository
	tweets   repository.TweetRepository
	lookup   accountLookup
	cache    SearchCache
	cacheTTL time.Duration
	recorder CacheRecorder
	logger   *zap.Logger
}

// ExploreDependencies bundles collaborators for the explore service.
type ExploreDependencies struct {
	ExploreRepo repository.ExploreRepository
	AccountRepo repository.AccountRepository
	TweetRepo   repository.TweetRepository
	Cache       SearchCache
	CacheTTL    time.Duration
	Recorder    CacheRecorder
	Logger      *zap.Logger
}

// NewExploreService constructs the service. A nil cache disables caching.
func NewExploreService(deps ExploreDependencies) *ExploreService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExploreService{
		explores: deps.ExploreRepo,
		accounts: deps.AccountRepo,
		tweets:   deps.TweetRepo,
		lookup:   accountLookup{accounts: deps.AccountRepo},
		cache:    deps.Cache,
		cacheTTL: deps.CacheTTL,
		recorder: deps.Recorder,
		logger:   logger,
	}
}

// Saved lists the keywords principal saved, ordered by keyword.
func (s *ExploreService) Saved(ctx context.Context, principal auth.Principal) ([]domain.Explore, error) {
	actor, err := s.lookup.actor(ctx, principal)
	if err != nil {
		return nil, err
	}
	explores, err := s.explores.ListSaved(ctx, actor.Email)
	if err != nil {
		return nil, err
	}
	if explores == nil {
		explores = []domain.Explore{}
	}
	return explores, nil
}

// Search records the keyword in principal's history and returns matching accounts and tweets.
func (s *ExploreService) Search(ctx context.Context, principal auth.Principal, keyword string) (*domain.SearchResult, error) {
	keyword, err := normalizeKeyword(keyword)
	if err != nil {
		return nil, err
	}
	actor, err := s.lookup.actor(ctx, principal)
	if err != nil {
		return nil, err
	}

	if err := s.explores.Create(ctx, &domain.Explore{
		AccountEmail: actor.Email,
		Keyword:      keyword,
	}); err != nil {
		return nil, err
	}

	cacheKey := strings.ToLower(keyword)
	if result, ok := s.cached(ctx, cacheKey); ok {
		result.Keyword = keyword
		return result, nil
	}

	accounts, err := s.accounts.Search(ctx, keyword, searchResultLimit)
	if err != nil {
		return nil, err
	}
	tweets, err := s.tweets.Search(ctx, keyword, searchResultLimit)
	if err != nil {
		return nil, err
	}
	result := &domain.SearchResult{Keyword: keyword, Accounts: accounts, Tweets: tweets}
	if result.Accounts == nil {
		result.Accounts = []domain.Account{}
	}
	if result.Tweets == nil {
		result.Tweets = []domain.Tweet{}
	}

	s.store(ctx, cacheKey, result)
	return result, nil
}

// Save stores keyword as a saved search of principal.
func (s *ExploreService) Save(ctx context.Context, principal auth.Principal, keyword string) (*domain.Explore, error) {
	keyword, err := normalizeKeyword(keyword)
	if err != nil {
		return nil, err
	}
	actor, err := s.lookup.actor(ctx, principal)
	if err != nil {
		return nil, err
	}
	explore := &domain.Explore{
		AccountEmail: actor.Email,
		Keyword:      keyword,
		Saved:        true,
	}
	if err := s.explores.Create(ctx, explore); err != nil {
		return nil, err
	}
	return explore, nil
}

// Delete removes every entry of principal that shares the keyword of exploreID.
func (s *ExploreService) Delete(ctx context.Context, principal auth.Principal, exploreID string) (int64, error) {
	actor, err := s.lookup.actor(ctx, principal)
	if err != nil {
		return 0, err
	}
	explore, err := s.explores.GetByID(ctx, exploreID)
	if err != nil {
		return 0, notFound(err, "explore")
	}
	if !isOwner(actor, explore.AccountEmail) {
		return 0, apperrors.NewForbidden("only the owner may delete a saved search")
	}
	return s.explores.DeleteByKeyword(ctx, actor.Email, explore.Keyword)
}

func (s *ExploreService) cached(ctx context.Context, key string) (*domain.SearchResult, bool) {
	if s.cache == nil {
		return nil, false
	}
	payload, found, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("search cache read failed", zap.Error(err))
		return nil, false
	}
	if s.recorder != nil {
		s.recorder.RecordCacheLookup(found)
	}
	if !found {
		return nil, false
	}
	var result domain.SearchResult
	if err := json.Unmarshal(payload, &result); err != nil {
		s.logger.Warn("search cache entry unreadable", zap.Error(err))
		return nil, false
	}
	return &result, true
}

func (s *ExploreService) store(ctx context.Context, key string, result *domain.SearchResult) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		s.logger.Warn("search result not cacheable", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.cacheTTL); err != nil {
		s.logger.Warn("search cache write failed", zap.Error(err))
	}
}

func normalizeKeyword(keyword string) (string, error) {
	keyword = strings.TrimSpace(keyword)
	n := utf8.RuneCountInString(keyword)
	if n < 1 || n > maxKeywordLength {
		return "", apperrors.NewValidationError("keyword must be between 1 and 100 characters", map[string]any{
			"keyword": "length",
		})
	}
	return keyword, nil
}
