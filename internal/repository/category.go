package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/camrado/pritok/internal/model"
)

var (
	ErrCategoryNotFound      = errors.New("category not found")
	ErrDuplicateCategoryName = errors.New("category name already exists")
)

type CategoryRepository interface {
	Create(category *model.Category) error
	ByID(authorID, categoryID string) (*model.Category, error)
	ByAuthor(authorID string) ([]*model.Category, error)
	Update(category *model.Category) error
	Delete(authorID, categoryID string) error
}

type categoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *model.Category) error {
	if category.Seq == 0 {
		category.Seq = time.Now().UnixNano()
	}

	query := `INSERT INTO categories (id, name, description, author_id, seq)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(query,
		category.ID,
		category.Name,
		category.Description,
		category.AuthorID,
		category.Seq,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateCategoryName
		}
		return err
	}

	return nil
}

// ByID scopes the lookup to the author so a category belonging to someone
// else is indistinguishable from one that does not exist.
func (r *categoryRepository) ByID(authorID, categoryID string) (*model.Category, error) {
	category := &model.Category{}
	query := `SELECT * FROM categories WHERE id = $1 AND author_id = $2`

	err := r.db.Get(category, query, categoryID, authorID)
	if err == sql.ErrNoRows {
		return nil, ErrCategoryNotFound
	}

	return category, err
}

// ByAuthor returns the author's categories sorted by name ascending,
// insertion order breaking ties.
func (r *categoryRepository) ByAuthor(authorID string) ([]*model.Category, error) {
	var categories []*model.Category
	query := `SELECT * FROM categories WHERE author_id = $1 ORDER BY LOWER(name) ASC, seq ASC`

	err := r.db.Select(&categories, query, authorID)
	if err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *categoryRepository) Update(category *model.Category) error {
	query := `UPDATE categories SET name = $1, description = $2 WHERE id = $3 AND author_id = $4`

	result, err := r.db.Exec(query,
		category.Name,
		category.Description,
		category.ID,
		category.AuthorID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateCategoryName
		}
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

func (r *categoryRepository) Delete(authorID, categoryID string) error {
	query := `DELETE FROM categories WHERE id = $1 AND author_id = $2`

	result, err := r.db.Exec(query, categoryID, authorID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrCategoryNotFound
	}

	return nil
}
