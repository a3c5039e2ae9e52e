package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/camrado/pritok/internal/model"
)

var ErrPurchaseNotFound = errors.New("purchase not found")

type PurchaseRepository interface {
	Create(purchase *model.Purchase) error
	ByID(authorID, purchaseID string) (*model.Purchase, error)
	ByAuthor(authorID string, fromDate, toDate string) ([]*model.Purchase, error)
	Update(purchase *model.Purchase) error
	Delete(authorID, purchaseID string) error
}

type purchaseRepository struct {
	db *sqlx.DB
}

func NewPurchaseRepository(db *sqlx.DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) Create(purchase *model.Purchase) error {
	if purchase.Seq == 0 {
		purchase.Seq = time.Now().UnixNano()
	}

	query := `INSERT INTO purchases (id, date, category, item, price, quantity, total_price, author_id, seq)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(query,
		purchase.ID,
		purchase.Date,
		purchase.Category,
		purchase.Item,
		purchase.Price,
		purchase.Quantity,
		purchase.TotalPrice,
		purchase.AuthorID,
		purchase.Seq,
	)

	return err
}

// ByID scopes the lookup to the author so a purchase belonging to someone
// else is indistinguishable from one that does not exist.
func (r *purchaseRepository) ByID(authorID, purchaseID string) (*model.Purchase, error) {
	purchase := &model.Purchase{}
	query := `SELECT * FROM purchases WHERE id = $1 AND author_id = $2`

	err := r.db.Get(purchase, query, purchaseID, authorID)
	if err == sql.ErrNoRows {
		return nil, ErrPurchaseNotFound
	}

	return purchase, err
}

// ByAuthor returns the author's purchases sorted by date ascending,
// insertion order breaking ties. When both fromDate and toDate are given
// (ISO YYYY-MM-DD) only purchases inside the closed interval are returned;
// dates in that format compare correctly as strings.
func (r *purchaseRepository) ByAuthor(authorID string, fromDate, toDate string) ([]*model.Purchase, error) {
	var purchases []*model.Purchase
	var err error

	if fromDate != "" && toDate != "" {
		query := `SELECT * FROM purchases WHERE author_id = $1 AND date >= $2 AND date <= $3
		          ORDER BY date ASC, seq ASC`
		err = r.db.Select(&purchases, query, authorID, fromDate, toDate)
	} else {
		query := `SELECT * FROM purchases WHERE author_id = $1 ORDER BY date ASC, seq ASC`
		err = r.db.Select(&purchases, query, authorID)
	}

	if err != nil {
		return nil, err
	}

	return purchases, nil
}

func (r *purchaseRepository) Update(purchase *model.Purchase) error {
	query := `UPDATE purchases SET date = $1, category = $2, item = $3, price = $4, quantity = $5, total_price = $6
	          WHERE id = $7 AND author_id = $8`

	result, err := r.db.Exec(query,
		purchase.Date,
		purchase.Category,
		purchase.Item,
		purchase.Price,
		purchase.Quantity,
		purchase.TotalPrice,
		purchase.ID,
		purchase.AuthorID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrPurchaseNotFound
	}

	return nil
}

func (r *purchaseRepository) Delete(authorID, purchaseID string) error {
	query := `DELETE FROM purchases WHERE id = $1 AND author_id = $2`

	result, err := r.db.Exec(query, purchaseID, authorID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrPurchaseNotFound
	}

	return nil
}
