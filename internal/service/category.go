package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/camrado/pritok/internal/apperror"
	"github.com/camrado/pritok/internal/model"
	"github.com/camrado/pritok/internal/query"
	"github.com/camrado/pritok/internal/repository"
)

// CategoryPatch is the allow-list of updatable category fields. Unknown
// JSON keys are rejected at decode time, before anything is applied.
type CategoryPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type CategoryService struct {
	categoryRepository repository.CategoryRepository
}

func NewCategoryService(categoryRepository repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepository: categoryRepository}
}

func (s *CategoryService) Create(authorID, name, description string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)

	if name == "" {
		return nil, apperror.InvalidFields("name is required")
	}
	if description == "" {
		return nil, apperror.InvalidFields("description is required")
	}

	category := &model.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		AuthorID:    authorID,
	}

	err := s.categoryRepository.Create(category)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateCategoryName) {
			return nil, apperror.DuplicateKey("this category name is already taken")
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

func (s *CategoryService) ByID(authorID, categoryID string) (*model.Category, error) {
	category, err := s.categoryRepository.ByID(authorID, categoryID)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, apperror.NotFound("category not found")
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

// List returns the author's categories sorted by name, filtered by the
// optional search term and paginated.
func (s *CategoryService) List(authorID string, params query.Params) ([]*model.Category, error) {
	categories, err := s.categoryRepository.ByAuthor(authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return query.Apply(categories, params), nil
}

// PageCount reports how many pages of size limit the filtered set fills.
func (s *CategoryService) PageCount(authorID, search string, limit int) (int, error) {
	if limit < 1 {
		return 0, apperror.InvalidFields("limit must be a positive integer")
	}

	categories, err := s.categoryRepository.ByAuthor(authorID)
	if err != nil {
		return 0, fmt.Errorf("failed to list categories: %w", err)
	}

	return query.PageCount(categories, search, limit), nil
}

func (s *CategoryService) Update(authorID, categoryID string, patch CategoryPatch) (*model.Category, error) {
	category, err := s.ByID(authorID, categoryID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, apperror.InvalidFields("name is required")
		}
		category.Name = name
	}
	if patch.Description != nil {
		description := strings.TrimSpace(*patch.Description)
		if description == "" {
			return nil, apperror.InvalidFields("description is required")
		}
		category.Description = description
	}

	err = s.categoryRepository.Update(category)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateCategoryName) {
			return nil, apperror.DuplicateKey("this category name is already taken")
		}
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, apperror.NotFound("category not found")
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return category, nil
}

func (s *CategoryService) Delete(authorID, categoryID string) error {
	err := s.categoryRepository.Delete(authorID, categoryID)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return apperror.NotFound("category not found")
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}
