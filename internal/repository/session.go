package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/camrado/pritok/internal/model"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository stores one row per active bearer token. Keeping
// sessions out of the user row means concurrent logins and logouts touch
// independent rows instead of racing over a shared token list.
type SessionRepository interface {
	Create(session *model.Session) error
	ByToken(token string) (*model.Session, error)
	Delete(userID, token string) error
	DeleteAllForUser(userID string) error
}

type sessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(session *model.Session) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	query := `INSERT INTO sessions (id, user_id, token, created_at) VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(query, session.ID, session.UserID, session.Token, session.CreatedAt)
	return err
}

func (r *sessionRepository) ByToken(token string) (*model.Session, error) {
	session := &model.Session{}
	query := `SELECT * FROM sessions WHERE token = $1`

	err := r.db.Get(session, query, token)
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}

	return session, err
}

// Delete removes a single token. Deleting an absent token is not an error
// so logout stays idempotent.
func (r *sessionRepository) Delete(userID, token string) error {
	query := `DELETE FROM sessions WHERE user_id = $1 AND token = $2`

	_, err := r.db.Exec(query, userID, token)
	return err
}

func (r *sessionRepository) DeleteAllForUser(userID string) error {
	query := `DELETE FROM sessions WHERE user_id = $1`

	_, err := r.db.Exec(query, userID)
	return err
}
