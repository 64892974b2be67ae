package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateFollow   = errors.New("already following")
	ErrDuplicateFavorite = errors.New("tweet already favorited")
	ErrMissingReference  = errors.New("referenced record does not exist")
)

var uniqueConstraints = map[string]error{
	"accounts_email_key":    ErrDuplicateEmail,
	"accounts_username_key": ErrDuplicateUsername,
	"follows_pair_unique":   ErrDuplicateFollow,
	"favorites_pair_unique": ErrDuplicateFavorite,
}

// translate maps constraint violations onto repository sentinels.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		if mapped, ok := uniqueConstraints[pgErr.ConstraintName]; ok {
			return mapped
		}
		det := strings.ToLower(pgErr.Detail)
		if strings.Contains(det, "(email)") {
			return ErrDuplicateEmail
		}
		if strings.Contains(det, "(username)") {
			return ErrDuplicateUsername
		}
	case pgerrcode.ForeignKeyViolation:
		return ErrMissingReference
	}
	return err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching keyword anywhere.
func containsPattern(keyword string) string {
	return "%" + likeEscaper.Replace(keyword) + "%"
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 50
	}
	return limit
}
