package model

import (
	"time"
)

// Session is one active bearer token. Tokens live in their own table so
// login and logout on the same account never race over a shared row.
type Session struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Token     string    `db:"token"`
	CreatedAt time.Time `db:"created_at"`
}
