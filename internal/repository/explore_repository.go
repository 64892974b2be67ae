package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dblab/twitterclone/internal/domain"
)

// ExploreRepository records searched and saved keywords.
type ExploreRepository interface {
	Create(ctx context.Context, explore *domain.Explore) error
	GetByID(ctx context.Context, id string) (*domain.Explore, error)
	ListSaved(ctx context.Context, accountEmail string) ([]domain.Explore, error)
	DeleteByKeyword(ctx context.Context, accountEmail, keyword string) (int64, error)
}

type exploreRepository struct {
	pool *pgxpool.Pool
}

// NewExploreRepository instantiates repository.
func NewExploreRepository(pool *pgxpool.Pool) ExploreRepository {
	return &exploreRepository{pool: pool}
}

const exploreColumns = `id, account_email, keyword, saved, searched_at`

func (r *exploreRepository) Create(ctx context.Context, explore *domain.Explore) error {
	const query = `
        INSERT INTO explores (id, account_email, keyword, saved)
        VALUES ($1, $2, $3, $4)
        RETURNING searched_at`

	if explore.ID == "" {
		explore.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx, query, explore.ID, explore.AccountEmail, explore.Keyword, explore.Saved).
		Scan(&explore.SearchedAt)
	return translate(err)
}

func (r *exploreRepository) GetByID(ctx context.Context, id string) (*domain.Explore, error) {
	var explore domain.Explore
	if err := scanExplore(r.pool.QueryRow(ctx, `SELECT `+exploreColumns+` FROM explores WHERE id = $1`, id), &explore); err != nil {
		return nil, err
	}
	return &explore, nil
}

func (r *exploreRepository) ListSaved(ctx context.Context, accountEmail string) ([]domain.Explore, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT `+exploreColumns+`
        FROM explores
        WHERE account_email = $1 AND saved
        ORDER BY keyword, searched_at DESC`, accountEmail)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Explore, error) {
		var e domain.Explore
		err := scanExplore(row, &e)
		return e, err
	})
}

func (r *exploreRepository) DeleteByKeyword(ctx context.Context, accountEmail, keyword string) (int64, error) {
	cmd, err := r.pool.Exec(ctx,
		`DELETE FROM explores WHERE account_email = $1 AND keyword = $2`, accountEmail, keyword)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func scanExplore(row pgx.Row, e *domain.Explore) error {
	return row.Scan(&e.ID, &e.AccountEmail, &e.Keyword, &e.Saved, &e.SearchedAt)
}
