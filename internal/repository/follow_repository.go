package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dblab/twitterclone/internal/domain"
)

// FollowRepository stores follower relationships.
type FollowRepository interface {
	Create(ctx context.Context, follow *domain.Follow) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Follow, error)
	ListFollowing(ctx context.Context, followerEmail string) ([]string, error)
}

type followRepository struct {
	pool *pgxpool.Pool
}

// NewFollowRepository instantiates repository.
func NewFollowRepository(pool *pgxpool.Pool) FollowRepository {
	return &followRepository{pool: pool}
}

func (r *followRepository) Create(ctx context.Context, follow *domain.Follow) error {
	const query = `
        INSERT INTO follows (id, follower_email, following_email)
        VALUES ($1, $2, $3)
        RETURNING created_at`

	if follow.ID == "" {
		follow.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx, query, follow.ID, follow.FollowerEmail, follow.FollowingEmail).
		Scan(&follow.CreatedAt)
	return translate(err)
}

func (r *followRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM follows WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *followRepository) GetByID(ctx context.Context, id string) (*domain.Follow, error) {
	const query = `SELECT id, follower_email, following_email, created_at FROM follows WHERE id = $1`

	var follow domain.Follow
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&follow.ID,
		&follow.FollowerEmail,
		&follow.FollowingEmail,
		&follow.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &follow, nil
}

func (r *followRepository) ListFollowing(ctx context.Context, followerEmail string) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT following_email FROM follows WHERE follower_email = $1 ORDER BY following_email`,
		followerEmail)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}
