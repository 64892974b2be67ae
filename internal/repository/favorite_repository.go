package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dblab/twitterclone/internal/domain"
)

// FavoriteRepository stores likes and keeps tweets.like_count in step.
type FavoriteRepository interface {
	// Like inserts favorite and increments the tweet's like count atomically.
	Like(ctx context.Context, favorite *domain.Favorite) (int, error)
	// Unlike removes the favorite and decrements the like count atomically.
	Unlike(ctx context.Context, id string) (int, error)
	GetByID(ctx context.Context, id string) (*domain.Favorite, error)
	ListByTweet(ctx context.Context, tweetID string) ([]domain.Favorite, error)
}

type favoriteRepository struct {
	pool *pgxpool.Pool
}

// NewFavoriteRepository instantiates repository.
func NewFavoriteRepository(pool *pgxpool.Pool) FavoriteRepository {
	return &favoriteRepository{pool: pool}
}

func (r *favoriteRepository) Like(ctx context.Context, favorite *domain.Favorite) (int, error) {
	if favorite.ID == "" {
		favorite.ID = uuid.NewString()
	}

	var likeCount int
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `
            INSERT INTO favorites (id, tweet_id, account_email)
            VALUES ($1, $2, $3)
            RETURNING created_at`,
			favorite.ID, favorite.TweetID, favorite.AccountEmail,
		).Scan(&favorite.CreatedAt); err != nil {
			return translate(err)
		}
		return tx.QueryRow(ctx,
			`UPDATE tweets SET like_count = like_count + 1 WHERE id = $1 RETURNING like_count`,
			favorite.TweetID,
		).Scan(&likeCount)
	})
	return likeCount, err
}

func (r *favoriteRepository) Unlike(ctx context.Context, id string) (int, error) {
	var likeCount int
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var tweetID string
		if err := tx.QueryRow(ctx,
			`DELETE FROM favorites WHERE id = $1 RETURNING tweet_id`, id,
		).Scan(&tweetID); err != nil {
			return err
		}
		return tx.QueryRow(ctx,
			`UPDATE tweets SET like_count = GREATEST(like_count - 1, 0) WHERE id = $1 RETURNING like_count`,
			tweetID,
		).Scan(&likeCount)
	})
	return likeCount, err
}

func (r *favoriteRepository) GetByID(ctx context.Context, id string) (*domain.Favorite, error) {
	const query = `SELECT id, tweet_id, account_email, created_at FROM favorites WHERE id = $1`

	var favorite domain.Favorite
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&favorite.ID,
		&favorite.TweetID,
		&favorite.AccountEmail,
		&favorite.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &favorite, nil
}

func (r *favoriteRepository) ListByTweet(ctx context.Context, tweetID string) ([]domain.Favorite, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, tweet_id, account_email, created_at
        FROM favorites WHERE tweet_id = $1
        ORDER BY created_at`, tweetID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Favorite, error) {
		var f domain.Favorite
		err := row.Scan(&f.ID, &f.TweetID, &f.AccountEmail, &f.CreatedAt)
		return f, err
	})
}
