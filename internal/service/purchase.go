package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/camrado/pritok/internal/apperror"
	"github.com/camrado/pritok/internal/model"
	"github.com/camrado/pritok/internal/query"
	"github.com/camrado/pritok/internal/repository"
)

// PurchaseFields is the payload for creating a purchase.
type PurchaseFields struct {
	Date     string  `json:"date"`
	Category string  `json:"category"`
	Item     string  `json:"item"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// PurchasePatch is the allow-list of updatable purchase fields. A
// supplied total_price is accepted for compatibility but always
// recomputed from price and quantity. Unknown JSON keys are rejected at
// decode time, before anything is applied.
type PurchasePatch struct {
	Date       *string  `json:"date"`
	Category   *string  `json:"category"`
	Item       *string  `json:"item"`
	Price      *float64 `json:"price"`
	Quantity   *int     `json:"quantity"`
	TotalPrice *float64 `json:"total_price"`
}

// DateRange is an inclusive calendar-day interval. Both bounds must be
// present for the range to apply.
type DateRange struct {
	From string
	To   string
}

type PurchaseService struct {
	purchaseRepository repository.PurchaseRepository
}

func NewPurchaseService(purchaseRepository repository.PurchaseRepository) *PurchaseService {
	return &PurchaseService{purchaseRepository: purchaseRepository}
}

func (s *PurchaseService) Create(authorID string, fields PurchaseFields) (*model.Purchase, error) {
	date, err := normalizeDate(fields.Date)
	if err != nil {
		return nil, err
	}

	category := strings.TrimSpace(fields.Category)
	item := strings.TrimSpace(fields.Item)

	if category == "" {
		return nil, apperror.InvalidFields("category is required")
	}
	if item == "" {
		return nil, apperror.InvalidFields("item is required")
	}
	if fields.Price <= 0 {
		return nil, apperror.InvalidFields("price must be greater than zero")
	}
	if fields.Quantity < 1 {
		return nil, apperror.InvalidFields("quantity must be a positive integer")
	}

	purchase := &model.Purchase{
		ID:       uuid.New().String(),
		Date:     date,
		Category: category,
		Item:     item,
		Price:    fields.Price,
		Quantity: fields.Quantity,
		AuthorID: authorID,
	}
	purchase.RecomputeTotal()

	err = s.purchaseRepository.Create(purchase)
	if err != nil {
		return nil, fmt.Errorf("failed to create purchase: %w", err)
	}

	return purchase, nil
}

func (s *PurchaseService) ByID(authorID, purchaseID string) (*model.Purchase, error) {
	purchase, err := s.purchaseRepository.ByID(authorID, purchaseID)
	if err != nil {
		if errors.Is(err, repository.ErrPurchaseNotFound) {
			return nil, apperror.NotFound("purchase not found")
		}
		return nil, fmt.Errorf("failed to get purchase: %w", err)
	}
	return purchase, nil
}

// List returns the author's purchases sorted by date, restricted to the
// optional inclusive date range, filtered by the optional search term and
// paginated.
func (s *PurchaseService) List(authorID string, dateRange DateRange, params query.Params) ([]*model.Purchase, error) {
	purchases, err := s.inRange(authorID, dateRange)
	if err != nil {
		return nil, err
	}

	return query.Apply(purchases, params), nil
}

// PageCount reports how many pages of size limit the filtered set fills.
func (s *PurchaseService) PageCount(authorID string, dateRange DateRange, search string, limit int) (int, error) {
	if limit < 1 {
		return 0, apperror.InvalidFields("limit must be a positive integer")
	}

	purchases, err := s.inRange(authorID, dateRange)
	if err != nil {
		return 0, err
	}

	return query.PageCount(purchases, search, limit), nil
}

func (s *PurchaseService) inRange(authorID string, dateRange DateRange) ([]*model.Purchase, error) {
	from, to := "", ""

	// The range only applies when both bounds are supplied
	if dateRange.From != "" && dateRange.To != "" {
		var err error
		from, err = normalizeDate(dateRange.From)
		if err != nil {
			return nil, err
		}
		to, err = normalizeDate(dateRange.To)
		if err != nil {
			return nil, err
		}
	}

	purchases, err := s.purchaseRepository.ByAuthor(authorID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}

	return purchases, nil
}

func (s *PurchaseService) Update(authorID, purchaseID string, patch PurchasePatch) (*model.Purchase, error) {
	purchase, err := s.ByID(authorID, purchaseID)
	if err != nil {
		return nil, err
	}

	if patch.Date != nil {
		date, err := normalizeDate(*patch.Date)
		if err != nil {
			return nil, err
		}
		purchase.Date = date
	}
	if patch.Category != nil {
		category := strings.TrimSpace(*patch.Category)
		if category == "" {
			return nil, apperror.InvalidFields("category is required")
		}
		purchase.Category = category
	}
	if patch.Item != nil {
		item := strings.TrimSpace(*patch.Item)
		if item == "" {
			return nil, apperror.InvalidFields("item is required")
		}
		purchase.Item = item
	}
	if patch.Price != nil {
		if *patch.Price <= 0 {
			return nil, apperror.InvalidFields("price must be greater than zero")
		}
		purchase.Price = *patch.Price
	}
	if patch.Quantity != nil {
		if *patch.Quantity < 1 {
			return nil, apperror.InvalidFields("quantity must be a positive integer")
		}
		purchase.Quantity = *patch.Quantity
	}

	// total_price is derived; recompute no matter what the patch said
	purchase.RecomputeTotal()

	err = s.purchaseRepository.Update(purchase)
	if err != nil {
		if errors.Is(err, repository.ErrPurchaseNotFound) {
			return nil, apperror.NotFound("purchase not found")
		}
		return nil, fmt.Errorf("failed to update purchase: %w", err)
	}

	return purchase, nil
}

func (s *PurchaseService) Delete(authorID, purchaseID string) error {
	err := s.purchaseRepository.Delete(authorID, purchaseID)
	if err != nil {
		if errors.Is(err, repository.ErrPurchaseNotFound) {
			return apperror.NotFound("purchase not found")
		}
		return fmt.Errorf("failed to delete purchase: %w", err)
	}
	return nil
}

// normalizeDate validates a calendar date and returns it in canonical
// YYYY-MM-DD form.
func normalizeDate(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", apperror.InvalidFields("date is required")
	}

	parsed, err := time.Parse(model.DateFormat, value)
	if err != nil {
		return "", apperror.InvalidFields("date must use the YYYY-MM-DD format")
	}

	return parsed.Format(model.DateFormat), nil
}
