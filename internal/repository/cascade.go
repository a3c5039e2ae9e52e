package repository

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// CascadeRepository removes an account together with everything it owns.
type CascadeRepository interface {
	DeleteAccount(userID string) error
}

type cascadeRepository struct {
	db *sqlx.DB
}

func NewCascadeRepository(db *sqlx.DB) CascadeRepository {
	return &cascadeRepository{db: db}
}

// DeleteAccount deletes the user's purchases, categories, sessions and
// finally the user row in a single transaction. Either everything goes or
// nothing does; a half-deleted account is never committed.
func (r *cascadeRepository) DeleteAccount(userID string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`DELETE FROM purchases WHERE author_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete purchases: %w", err)
	}

	_, err = tx.Exec(`DELETE FROM categories WHERE author_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete categories: %w", err)
	}

	_, err = tx.Exec(`DELETE FROM sessions WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}

	result, err := tx.Exec(`DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	return tx.Commit()
}
