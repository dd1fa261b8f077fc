package service

import (
	"context"
	"errors"
	"strings"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

type CategoryService interface {
	CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error)
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req *models.UpdateCategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	repo      repository.CategoryRepository
	sanitizer *bluemonday.Policy
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo, sanitizer: bluemonday.StrictPolicy()}
}

func (s *categoryService) clean(text string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(text))
}

func (s *categoryService) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {

	category := &models.Category{
		ID:          uuid.New(),
		Name:        s.clean(req.Name),
		Description: s.clean(req.Description),
	}

	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, appErrors.DatabaseError("Failed to create category").WithError(err)
	}

	return category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {

	category, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "Category not found", "Failed to fetch category")
	}

	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context) ([]*models.Category, error) {

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch categories").WithError(err)
	}

	return categories, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id uuid.UUID, req *models.UpdateCategoryRequest) (*models.Category, error) {

	category, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "Category not found", "Failed to fetch category")
	}

	if req.Name != nil {
		category.Name = s.clean(*req.Name)
	}
	if req.Description != nil {
		category.Description = s.clean(*req.Description)
	}

	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		return nil, repoError(err, "Category not found", "Failed to update category")
	}

	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {

	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, repository.ErrReferenceViolation) {
			return appErrors.ConflictError("Category still has products").WithError(err)
		}
		return repoError(err, "Category not found", "Failed to delete category")
	}

	return nil
}
