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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProductHandler(t *testing.T) {
	staffID := uuid.New()
	productID := uuid.New()
	categoryID := uuid.New()
	params := map[string]string{"id": productID.String()}

	t.Run("Success - Create Product", func(t *testing.T) {
		// Arrange
		svc := mocks.NewProductService(t)
		h := handlers.NewProductHandler(svc)
		svc.On("CreateProduct", mock.Anything, mock.MatchedBy(func(r *models.CreateProductRequest) bool {
			return r.Name == "Teapot" && r.Price.Equal(decimal.RequireFromString("19.99"))
		})).Return(&models.Product{ID: productID, CategoryID: categoryID, Name: "Teapot", Price: decimal.RequireFromString("19.99")}, nil).Once()

		body := []byte(`{"category_id":"` + categoryID.String() + `","name":"Teapot","price":"19.99","stock":3}`)
		req := testutils.CreateStaffTestRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(body), staffID, nil)
		rr := httptest.NewRecorder()

		// Act
		h.CreateProduct().ServeHTTP(rr, req)

		// Assert
		require.Equal(t, http.StatusCreated, rr.Code)
		var got models.Product
		decodeData(t, rr, &got)
		assert.Equal(t, productID, got.ID)
		assert.Equal(t, "19.99", got.Price.StringFixed(2))
	})

	t.Run("Failure - Create Product Short Name", func(t *testing.T) {
		// Arrange
		svc := mocks.NewProductService(t)
		h := handlers.NewProductHandler(svc)
		body := []byte(`{"category_id":"` + categoryID.String() + `","name":"Te","price":"1.00"}`)
		req := testutils.CreateStaffTestRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(body), staffID, nil)
		rr := httptest.NewRecorder()

		// Act
		h.CreateProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Failure - Create Product Malformed JSON", func(t *testing.T) {
		// Arrange
		svc := mocks.NewProductService(t)
		h := handlers.NewProductHandler(svc)
		req := testutils.CreateStaffTestRequest(http.MethodPost, "/api/v1/products", bytes.NewReader([]byte(`{"name":`)), staffID, nil)
		rr := httptest.NewRecorder()

		// Act
		h.CreateProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		resp := decodeResponse(t, rr)
		assert.Equal(t, "Invalid request body", resp.Error.Message)
	})

	t.Run("Success - Get Product", func(t *testing.T) {
		// Arrange
		svc := mocks.NewProductService(t)
		h := handlers.NewProductHandler(svc)
		svc.On("GetProductByID", mock.Anything, productID).Return(&models.Product{ID: productID, Name: "Teapot"}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products/"+productID.String(), nil, params)
		rr := httptest.NewRecorder()

		// Act
		h.GetProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Get Product Not Found", func(t *testing.T) {
		// Arrange
		svc := mocks.NewProductService(t)
		h := handlers.NewProductHandler(svc)
		svc.On("GetProductByID", mock.Anything, productID).Return(nil, appErrors.NotFoundError("Product not found")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products/"+productID.String(), nil, params)
		rr := httptest.NewRecorder()

		// Act
		h.GetProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Success - Update Product", func(t *testing.T) {
		// Arrange
		svc := mocks.NewProductService(t)
		h := handlers.NewProductHandler(svc)
		svc.On("UpdateProduct", mock.Anything, productID, mock.MatchedBy(func(r *models.UpdateProductRequest) bool {
			return r.Stock != nil && *r.Stock == 7 && r.Name == nil
		})).Return(&models.Product{ID: productID, Stock: 7}, nil).Once()

		req := testutils.CreateStaffTestRequest(http.MethodPut, "/api/v1/products/"+productID.String(), bytes.NewReader([]byte(`{"stock":7}`)), staffID, params)
		rr := httptest.NewRecorder()

		// Act
		h.UpdateProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Delete Product With Stock", func(t *testing.T) {
		// Arrange
		svc := mocks.NewProductService(t)
		h := handlers.NewProductHandler(svc)
		svc.On("DeleteProduct", mock.Anything, productID).
			Return(appErrors.ConflictError("Product cannot be deleted while more than 10 units are in stock")).Once()

		req := testutils.CreateStaffTestRequest(http.MethodDelete, "/api/v1/products/"+productID.String(), nil, staffID, params)
		rr := httptest.NewRecorder()

		// Act
		h.DeleteProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Success - Delete Product", func(t *testing.T) {
		// Arrange
		svc := mocks.NewProductService(t)
		h := handlers.NewProductHandler(svc)
		svc.On("DeleteProduct", mock.Anything, productID).Return(nil).Once()

		req := testutils.CreateStaffTestRequest(http.MethodDelete, "/api/v1/products/"+productID.String(), nil, staffID, params)
		rr := httptest.NewRecorder()

		// Act
		h.DeleteProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("Success - List Products", func(t *testing.T) {
		// Arrange
		svc := mocks.NewProductService(t)
		h := handlers.NewProductHandler(svc)
		svc.On("ListProducts", mock.Anything, 1, 10).Return([]*models.Product{{ID: productID}}, 1, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products", nil, nil)
		rr := httptest.NewRecorder()

		// Act
		h.ListProducts().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}
