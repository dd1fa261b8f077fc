package service_test

import (
	"errors"
	"testing"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/aaravmahajanofficial/storefront/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCategoryService(t *testing.T) {
	ctx := t.Context()
	id := uuid.New()

	setup := func(t *testing.T) (service.CategoryService, *mocks.CategoryRepository) {
		repo := mocks.NewCategoryRepository(t)
		return service.NewCategoryService(repo), repo
	}

	t.Run("Success - Create Strips Markup", func(t *testing.T) {
		svc, repo := setup(t)
		repo.On("CreateCategory", ctx, mock.MatchedBy(func(c *models.Category) bool {
			return c.Name == "Kitchen" && c.Description == "Pots"
		})).Return(nil).Once()

		category, err := svc.CreateCategory(ctx, &models.CreateCategoryRequest{Name: " <i>Kitchen</i> ", Description: "<b>Pots</b>"})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, category.ID)
	})

	t.Run("Failure - Create Database Error", func(t *testing.T) {
		svc, repo := setup(t)
		repo.On("CreateCategory", ctx, mock.Anything).Return(errors.New("boom")).Once()

		_, err := svc.CreateCategory(ctx, &models.CreateCategoryRequest{Name: "Kitchen"})

		assertAppError(t, err, appErrors.ErrCodeDatabaseError, 500)
	})

	t.Run("Success - Get", func(t *testing.T) {
		svc, repo := setup(t)
		repo.On("GetCategoryByID", ctx, id).Return(&models.Category{ID: id, Name: "Kitchen"}, nil).Once()

		category, err := svc.GetCategoryByID(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, "Kitchen", category.Name)
	})

	t.Run("Failure - Get Not Found", func(t *testing.T) {
		svc, repo := setup(t)
		repo.On("GetCategoryByID", ctx, id).Return(nil, repository.ErrNotFound).Once()

		_, err := svc.GetCategoryByID(ctx, id)

		assertAppError(t, err, appErrors.ErrCodeNotFound, 404)
	})

	t.Run("Success - List", func(t *testing.T) {
		svc, repo := setup(t)
		repo.On("ListCategories", ctx).Return([]*models.Category{{ID: id, ProductCount: 3}}, nil).Once()

		categories, err := svc.ListCategories(ctx)

		require.NoError(t, err)
		require.Len(t, categories, 1)
		assert.Equal(t, 3, categories[0].ProductCount)
	})

	t.Run("Success - Update Only Given Fields", func(t *testing.T) {
		svc, repo := setup(t)
		name := "Garden"
		repo.On("GetCategoryByID", ctx, id).Return(&models.Category{ID: id, Name: "Kitchen", Description: "Pots"}, nil).Once()
		repo.On("UpdateCategory", ctx, mock.MatchedBy(func(c *models.Category) bool {
			return c.Name == "Garden" && c.Description == "Pots"
		})).Return(nil).Once()

		category, err := svc.UpdateCategory(ctx, id, &models.UpdateCategoryRequest{Name: &name})

		require.NoError(t, err)
		assert.Equal(t, "Garden", category.Name)
	})

	t.Run("Success - Delete", func(t *testing.T) {
		svc, repo := setup(t)
		repo.On("DeleteCategory", ctx, id).Return(nil).Once()

		assert.NoError(t, svc.DeleteCategory(ctx, id))
	})

	t.Run("Failure - Delete With Products", func(t *testing.T) {
		svc, repo := setup(t)
		repo.On("DeleteCategory", ctx, id).Return(repository.ErrReferenceViolation).Once()

		err := svc.DeleteCategory(ctx, id)

		assertAppError(t, err, appErrors.ErrCodeConflict, 409)
	})

	t.Run("Failure - Delete Not Found", func(t *testing.T) {
		svc, repo := setup(t)
		repo.On("DeleteCategory", ctx, id).Return(repository.ErrNotFound).Once()

		err := svc.DeleteCategory(ctx, id)

		assertAppError(t, err, appErrors.ErrCodeNotFound, 404)
	})
}
