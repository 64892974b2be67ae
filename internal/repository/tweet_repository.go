package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dblab/twitterclone/internal/domain"
)

// TweetRepository encapsulates tweet persistence.
type TweetRepository interface {
	Create(ctx context.Context, tweet *domain.Tweet) error
	Update(ctx context.Context, tweet *domain.Tweet) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Tweet, error)
	ListByAuthors(ctx context.Context, authorEmails []string, limit int) ([]domain.Tweet, error)
	Search(ctx context.Context, keyword string, limit int) ([]domain.Tweet, error)
}

type tweetRepository struct {
	pool *pgxpool.Pool
}

// NewTweetRepository instantiates repository.
func NewTweetRepository(pool *pgxpool.Pool) TweetRepository {
	return &tweetRepository{pool: pool}
}

const tweetColumns = `id, author_email, content, hashtags, like_count, created_at, updated_at`

func (r *tweetRepository) Create(ctx context.Context, tweet *domain.Tweet) error {
	const query = `
        INSERT INTO tweets (id, author_email, content, hashtags)
        VALUES ($1, $2, $3, $4)
        RETURNING like_count, created_at, updated_at`

	if tweet.ID == "" {
		tweet.ID = uuid.NewString()
	}
	if tweet.Hashtags == nil {
		tweet.Hashtags = []string{}
	}
	err := r.pool.QueryRow(ctx, query,
		tweet.ID,
		tweet.AuthorEmail,
		tweet.Content,
		tweet.Hashtags,
	).Scan(&tweet.LikeCount, &tweet.CreatedAt, &tweet.UpdatedAt)
	return translate(err)
}

func (r *tweetRepository) Update(ctx context.Context, tweet *domain.Tweet) error {
	const query = `
        UPDATE tweets SET content = $1, hashtags = $2, updated_at = NOW()
        WHERE id = $3
        RETURNING like_count, updated_at`

	if tweet.Hashtags == nil {
		tweet.Hashtags = []string{}
	}
	return r.pool.QueryRow(ctx, query, tweet.Content, tweet.Hashtags, tweet.ID).
		Scan(&tweet.LikeCount, &tweet.UpdatedAt)
}

func (r *tweetRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tweets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *tweetRepository) GetByID(ctx context.Context, id string) (*domain.Tweet, error) {
	var tweet domain.Tweet
	if err := scanTweet(r.pool.QueryRow(ctx, `SELECT `+tweetColumns+` FROM tweets WHERE id = $1`, id), &tweet); err != nil {
		return nil, err
	}
	return &tweet, nil
}

func (r *tweetRepository) ListByAuthors(ctx context.Context, authorEmails []string, limit int) ([]domain.Tweet, error) {
	if len(authorEmails) == 0 {
		return nil, nil
	}
	const query = `
        SELECT ` + tweetColumns + `
        FROM tweets
        WHERE author_email = ANY($1)
        ORDER BY created_at DESC, id
        LIMIT $2`
	return r.list(ctx, query, authorEmails, clampLimit(limit))
}

func (r *tweetRepository) Search(ctx context.Context, keyword string, limit int) ([]domain.Tweet, error) {
	const query = `
        SELECT ` + tweetColumns + `
        FROM tweets
        WHERE content ILIKE $1
        ORDER BY created_at DESC, id
        LIMIT $2`
	return r.list(ctx, query, containsPattern(keyword), clampLimit(limit))
}

func (r *tweetRepository) list(ctx context.Context, query string, args ...any) ([]domain.Tweet, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Tweet
	for rows.Next() {
		var tweet domain.Tweet
		if err := scanTweet(rows, &tweet); err != nil {
			return nil, err
		}
		result = append(result, tweet)
	}
	return result, rows.Err()
}

func scanTweet(row pgx.Row, tweet *domain.Tweet) error {
	return row.Scan(
		&tweet.ID,
		&tweet.AuthorEmail,
		&tweet.Content,
		&tweet.Hashtags,
		&tweet.LikeCount,
		&tweet.CreatedAt,
		&tweet.UpdatedAt,
	)
}
