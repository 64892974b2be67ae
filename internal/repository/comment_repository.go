package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dblab/twitterclone/internal/domain"
)

// CommentRepository persists tweet comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	UpdateContent(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Comment, error)
	ListByTweet(ctx context.Context, tweetID string) ([]domain.Comment, error)
}

type commentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository instantiates repository.
func NewCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &commentRepository{pool: pool}
}

const commentColumns = `id, tweet_id, author_email, content, created_at, updated_at`

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	const query = `
        INSERT INTO comments (id, tweet_id, author_email, content)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at, updated_at`

	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx, query, comment.ID, comment.TweetID, comment.AuthorEmail, comment.Content).
		Scan(&comment.CreatedAt, &comment.UpdatedAt)
	return translate(err)
}

func (r *commentRepository) UpdateContent(ctx context.Context, comment *domain.Comment) error {
	return r.pool.QueryRow(ctx,
		`UPDATE comments SET content = $1, updated_at = NOW() WHERE id = $2 RETURNING updated_at`,
		comment.Content, comment.ID,
	).Scan(&comment.UpdatedAt)
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	var comment domain.Comment
	if err := scanComment(r.pool.QueryRow(ctx, `SELECT `+commentColumns+` FROM comments WHERE id = $1`, id), &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByTweet(ctx context.Context, tweetID string) ([]domain.Comment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE tweet_id = $1 ORDER BY created_at, id`, tweetID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Comment, error) {
		var c domain.Comment
		err := scanComment(row, &c)
		return c, err
	})
}

func scanComment(row pgx.Row, c *domain.Comment) error {
	return row.Scan(&c.ID, &c.TweetID, &c.AuthorEmail, &c.Content, &c.CreatedAt, &c.UpdatedAt)
}
