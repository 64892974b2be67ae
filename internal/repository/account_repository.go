package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dblab/twitterclone/internal/domain"
)

// AccountRepository defines persistence access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	Update(ctx context.Context, id string, update domain.AccountUpdate) (*domain.Account, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	Search(ctx context.Context, keyword string, limit int) ([]domain.Account, error)
}

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

const accountColumns = `id, username, nickname, email, password_hash, roles, birth_date, created_at, updated_at`

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	const query = `
        INSERT INTO accounts (id, username, nickname, email, password_hash, roles, birth_date)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at, updated_at`

	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx, query,
		account.ID,
		account.Username,
		account.Nickname,
		account.Email,
		account.PasswordHash,
		account.Roles,
		account.BirthDate,
	).Scan(&account.CreatedAt, &account.UpdatedAt)
	return translate(err)
}

func (r *accountRepository) Update(ctx context.Context, id string, update domain.AccountUpdate) (*domain.Account, error) {
	const query = `
        UPDATE accounts SET
            username = COALESCE($1, username),
            nickname = COALESCE($2, nickname),
            email = COALESCE($3, email),
            password_hash = COALESCE($4, password_hash),
            birth_date = COALESCE($5, birth_date),
            updated_at = NOW()
        WHERE id = $6
        RETURNING ` + accountColumns

	account, err := scanAccount(r.pool.QueryRow(ctx, query,
		update.Username,
		update.Nickname,
		update.Email,
		update.PasswordHash,
		update.BirthDate,
		id,
	))
	if err != nil {
		return nil, translate(err)
	}
	return account, nil
}

func (r *accountRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return scanAccount(r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id))
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return scanAccount(r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email))
}

func (r *accountRepository) Search(ctx context.Context, keyword string, limit int) ([]domain.Account, error) {
	const query = `
        SELECT ` + accountColumns + `
        FROM accounts
        WHERE username ILIKE $1 OR nickname ILIKE $1
        ORDER BY username
        LIMIT $2`

	rows, err := r.pool.Query(ctx, query, containsPattern(keyword), clampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *account)
	}
	return result, rows.Err()
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	if err := row.Scan(
		&account.ID,
		&account.Username,
		&account.Nickname,
		&account.Email,
		&account.PasswordHash,
		&account.Roles,
		&account.BirthDate,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &account, nil
}
