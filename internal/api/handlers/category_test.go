package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/services/mocks"
	"github.com/aaravmahajanofficial/storefront/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCategoryHandler(t *testing.T) {
	staffID := uuid.New()
	categoryID := uuid.New()
	params := map[string]string{"id": categoryID.String()}

	t.Run("Success - Create", func(t *testing.T) {
		svc := mocks.NewCategoryService(t)
		h := handlers.NewCategoryHandler(svc)
		svc.On("CreateCategory", mock.Anything, &models.CreateCategoryRequest{Name: "Kitchen"}).
			Return(&models.Category{ID: categoryID, Name: "Kitchen"}, nil).Once()

		req := testutils.CreateStaffTestRequest(http.MethodPost, "/api/v1/categories", bytes.NewReader([]byte(`{"name":"Kitchen"}`)), staffID, nil)
		rr := httptest.NewRecorder()

		h.CreateCategory().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("Failure - Create Without Name", func(t *testing.T) {
		svc := mocks.NewCategoryService(t)
		h := handlers.NewCategoryHandler(svc)

		req := testutils.CreateStaffTestRequest(http.MethodPost, "/api/v1/categories", bytes.NewReader([]byte(`{"description":"x"}`)), staffID, nil)
		rr := httptest.NewRecorder()

		h.CreateCategory().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Success - List", func(t *testing.T) {
		svc := mocks.NewCategoryService(t)
		h := handlers.NewCategoryHandler(svc)
		svc.On("ListCategories", mock.Anything).Return([]*models.Category{{ID: categoryID, Name: "Kitchen", ProductCount: 2}}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/categories", nil, nil)
		rr := httptest.NewRecorder()

		h.ListCategories().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var got []models.Category
		decodeData(t, rr, &got)
		assert.Equal(t, 2, got[0].ProductCount)
	})

	t.Run("Failure - Get Not Found", func(t *testing.T) {
		svc := mocks.NewCategoryService(t)
		h := handlers.NewCategoryHandler(svc)
		svc.On("GetCategoryByID", mock.Anything, categoryID).Return(nil, appErrors.NotFoundError("Category not found")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/categories/"+categoryID.String(), nil, params)
		rr := httptest.NewRecorder()

		h.GetCategory().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Success - Update", func(t *testing.T) {
		svc := mocks.NewCategoryService(t)
		h := handlers.NewCategoryHandler(svc)
		svc.On("UpdateCategory", mock.Anything, categoryID, mock.AnythingOfType("*models.UpdateCategoryRequest")).
			Return(&models.Category{ID: categoryID, Name: "Garden"}, nil).Once()

		req := testutils.CreateStaffTestRequest(http.MethodPut, "/api/v1/categories/"+categoryID.String(), bytes.NewReader([]byte(`{"name":"Garden"}`)), staffID, params)
		rr := httptest.NewRecorder()

		h.UpdateCategory().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Delete Category With Products", func(t *testing.T) {
		svc := mocks.NewCategoryService(t)
		h := handlers.NewCategoryHandler(svc)
		svc.On("DeleteCategory", mock.Anything, categoryID).Return(appErrors.ConflictError("Category still has products")).Once()

		req := testutils.CreateStaffTestRequest(http.MethodDelete, "/api/v1/categories/"+categoryID.String(), nil, staffID, params)
		rr := httptest.NewRecorder()

		h.DeleteCategory().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}
