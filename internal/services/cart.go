package service

import (
	"context"
	"errors"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/google/uuid"
)

type CartService interface {
	CreateCart(ctx context.Context, userID uuid.UUID) (*models.CartResponse, error)
	GetCart(ctx context.Context, userID, cartID uuid.UUID) (*models.CartResponse, error)
	AddItem(ctx context.Context, userID, cartID uuid.UUID, req *models.AddItemRequest) (*models.CartResponse, error)
	UpdateQuantity(ctx context.Context, userID, cartID uuid.UUID, req *models.UpdateQuantityRequest) (*models.CartResponse, error)
	DeleteCart(ctx context.Context, userID, cartID uuid.UUID) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{cartRepo: cartRepo, productRepo: productRepo}
}

func newCartResponse(cart *models.Cart) *models.CartResponse {
	return &models.CartResponse{Cart: cart, TotalPrice: cart.Total()}
}

func (s *cartService) CreateCart(ctx context.Context, userID uuid.UUID) (*models.CartResponse, error) {

	cart := &models.Cart{
		ID:     uuid.New(),
		UserID: userID,
		Items:  []models.CartItem{},
	}

	if err := s.cartRepo.CreateCart(ctx, cart); err != nil {
		return nil, appErrors.DatabaseError("Failed to create cart").WithError(err)
	}

	return newCartResponse(cart), nil
}

// ownedCart loads the cart and hides carts of other users behind NotFound.
func (s *cartService) ownedCart(ctx context.Context, userID, cartID uuid.UUID) (*models.Cart, error) {

	cart, err := s.cartRepo.GetCart(ctx, cartID)
	if err != nil {
		return nil, repoError(err, "Cart not found", "Failed to fetch cart")
	}

	if cart.UserID != userID {
		return nil, appErrors.NotFoundError("Cart not found")
	}

	return cart, nil
}

func (s *cartService) GetCart(ctx context.Context, userID, cartID uuid.UUID) (*models.CartResponse, error) {

	cart, err := s.ownedCart(ctx, userID, cartID)
	if err != nil {
		return nil, err
	}

	return newCartResponse(cart), nil
}

func (s *cartService) AddItem(ctx context.Context, userID, cartID uuid.UUID, req *models.AddItemRequest) (*models.CartResponse, error) {

	if _, err := s.ownedCart(ctx, userID, cartID); err != nil {
		return nil, err
	}

	if _, err := s.productRepo.GetProductByID(ctx, req.ProductID); err != nil {
		return nil, repoError(err, "Product not found", "Failed to fetch product")
	}

	if err := s.cartRepo.AddItem(ctx, cartID, req.ProductID, req.Quantity); err != nil {
		// The product can disappear between the lookup and the insert.
		if errors.Is(err, repository.ErrReferenceViolation) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to add item to cart").WithError(err)
	}

	return s.GetCart(ctx, userID, cartID)
}

// UpdateQuantity sets the quantity of a product already in the cart. Zero removes it.
func (s *cartService) UpdateQuantity(ctx context.Context, userID, cartID uuid.UUID, req *models.UpdateQuantityRequest) (*models.CartResponse, error) {

	if _, err := s.ownedCart(ctx, userID, cartID); err != nil {
		return nil, err
	}

	var err error
	if req.Quantity == 0 {
		err = s.cartRepo.RemoveItem(ctx, cartID, req.ProductID)
	} else {
		err = s.cartRepo.SetItemQuantity(ctx, cartID, req.ProductID, req.Quantity)
	}

	if err != nil {
		return nil, repoError(err, "Item not found in cart", "Failed to update cart")
	}

	return s.GetCart(ctx, userID, cartID)
}

func (s *cartService) DeleteCart(ctx context.Context, userID, cartID uuid.UUID) error {

	if _, err := s.ownedCart(ctx, userID, cartID); err != nil {
		return err
	}

	if err := s.cartRepo.DeleteCart(ctx, cartID); err != nil {
		return repoError(err, "Cart not found", "Failed to delete cart")
	}

	return nil
}
