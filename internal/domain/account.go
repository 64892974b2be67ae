package domain

import "time"

// Account is a registered member of the network. Email is the login identifier
// and the subject of issued tokens.
type Account struct {
	ID           string
	Username     string
	Nickname     string
	Email        string
	PasswordHash string `json:"-"`
	Roles        []string
	BirthDate    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AccountUpdate carries the mutable fields of an account. Nil fields are left unchanged.
type AccountUpdate struct {
	Username     *string
	Nickname     *string
	Email        *string
	PasswordHash *string
	BirthDate    *time.Time
}
