package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   validator.New(),
	}
}

// CreateCart godoc
//	@Summary	Create an empty cart for the caller
//	@Tags		Carts
//	@Produce	json
//	@Success	201	{object}	models.CartResponse
//	@Failure	401	{object}	response.ErrorResponse
//	@Failure	500	{object}	response.ErrorResponse
//	@Security	BearerAuth
//	@Router		/carts [post]
func (h *CartHandler) CreateCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized cart creation attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		cart, err := h.cartService.CreateCart(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to create cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Cart created successfully", slog.String("cartId", cart.ID.String()))
		response.Success(w, http.StatusCreated, cart)
	}
}

// GetCart godoc
//	@Summary	Get one of the caller's carts with current prices
//	@Tags		Carts
//	@Produce	json
//	@Param		id	path		string	true	"Cart ID (UUID)"	Format(uuid)
//	@Success	200	{object}	models.CartResponse
//	@Failure	400	{object}	response.ErrorResponse
//	@Failure	404	{object}	response.ErrorResponse
//	@Security	BearerAuth
//	@Router		/carts/{id} [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		cartID, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid cart id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), claims.UserID, cartID)
		if err != nil {
			logger.Warn("Failed to get cart", slog.String("cartId", cartID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// AddItem godoc
//	@Summary	Add a product to a cart, or raise its quantity if already present
//	@Tags		Carts
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Cart ID (UUID)"	Format(uuid)
//	@Param		item	body		models.AddItemRequest	true	"Product and quantity"
//	@Success	200		{object}	models.CartResponse
//	@Failure	400		{object}	response.ErrorResponse
//	@Failure	404		{object}	response.ErrorResponse	"Cart or product not found"
//	@Security	BearerAuth
//	@Router		/carts/{id}/items [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		cartID, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid cart id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		logger = logger.With(slog.String("cartId", cartID.String()), slog.String("productId", req.ProductID.String()))

		cart, err := h.cartService.AddItem(r.Context(), claims.UserID, cartID, &req)
		if err != nil {
			logger.Warn("Failed to add item to cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Item added to cart", slog.Int("quantity", req.Quantity))
		response.Success(w, http.StatusOK, cart)
	}
}

// UpdateQuantity godoc
//	@Summary	Set the quantity of a cart item, zero removes it
//	@Tags		Carts
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string							true	"Cart ID (UUID)"	Format(uuid)
//	@Param		item	body		models.UpdateQuantityRequest	true	"Product and new quantity"
//	@Success	200		{object}	models.CartResponse
//	@Failure	400		{object}	response.ErrorResponse
//	@Failure	404		{object}	response.ErrorResponse	"Cart or item not found"
//	@Security	BearerAuth
//	@Router		/carts/{id}/items [put]
func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		cartID, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid cart id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.UpdateQuantity(r.Context(), claims.UserID, cartID, &req)
		if err != nil {
			logger.Warn("Failed to update cart item", slog.String("cartId", cartID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// DeleteCart godoc
//	@Summary	Delete one of the caller's carts
//	@Tags		Carts
//	@Param		id	path	string	true	"Cart ID (UUID)"	Format(uuid)
//	@Success	204
//	@Failure	404	{object}	response.ErrorResponse
//	@Security	BearerAuth
//	@Router		/carts/{id} [delete]
func (h *CartHandler) DeleteCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		cartID, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.cartService.DeleteCart(r.Context(), claims.UserID, cartID); err != nil {
			logger.Warn("Failed to delete cart", slog.String("cartId", cartID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Cart deleted", slog.String("cartId", cartID.String()))
		w.WriteHeader(http.StatusNoContent)
	}
}
