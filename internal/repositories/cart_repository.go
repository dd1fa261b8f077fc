package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/google/uuid"
)

type CartRepository interface {
	CreateCart(ctx context.Context, cart *models.Cart) error
	GetCart(ctx context.Context, id uuid.UUID) (*models.Cart, error)
	GetCartForUpdate(ctx context.Context, id uuid.UUID) (*models.Cart, error)
	AddItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) error
	SetItemQuantity(ctx context.Context, cartID, productID uuid.UUID, quantity int) error
	RemoveItem(ctx context.Context, cartID, productID uuid.UUID) error
	DeleteCart(ctx context.Context, id uuid.UUID) error
}

type cartRepository struct {
	DB DBTX
}

func NewCartRepo(db DBTX) CartRepository {
	return &cartRepository{DB: db}
}

func (r *cartRepository) CreateCart(ctx context.Context, cart *models.Cart) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO carts (id, user_id, created_at, updated_at)
		VALUES($1, $2, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, cart.ID, cart.UserID).Scan(&cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert cart: %w", translatePgError(err))
	}

	return nil
}

func (r *cartRepository) GetCart(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	return r.getCart(ctx, id, false)
}

// GetCartForUpdate locks the cart row, serialising concurrent checkouts of the same cart.
func (r *cartRepository) GetCartForUpdate(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	return r.getCart(ctx, id, true)
}

func (r *cartRepository) getCart(ctx context.Context, id uuid.UUID, lock bool) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, created_at, updated_at
		FROM carts
		WHERE id = $1
	`
	if lock {
		query += ` FOR UPDATE`
	}

	cart := &models.Cart{}

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying cart: %w", err)
	}

	// Prices come from the products table at read time.
	itemsQuery := `
		SELECT ci.id, ci.product_id, p.name, ci.quantity, p.price
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.created_at, ci.id
	`

	rows, err := r.DB.QueryContext(dbCtx, itemsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("querying cart items: %w", err)
	}
	defer rows.Close()

	cart.Items = []models.CartItem{}

	for rows.Next() {
		item := models.CartItem{CartID: cart.ID}

		if err := rows.Scan(&item.ID, &item.ProductID, &item.ProductName, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}

		cart.Items = append(cart.Items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cart items: %w", err)
	}

	return cart, nil
}

// AddItem inserts the product or increases the quantity already in the cart.
func (r *cartRepository) AddItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO cart_items (id, cart_id, product_id, quantity, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
	`

	if _, err := r.DB.ExecContext(dbCtx, query, uuid.New(), cartID, productID, quantity); err != nil {
		return fmt.Errorf("failed to add cart item: %w", translatePgError(err))
	}

	return r.touch(dbCtx, cartID)
}

func (r *cartRepository) SetItemQuantity(ctx context.Context, cartID, productID uuid.UUID, quantity int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE cart_items SET quantity = $1 WHERE cart_id = $2 AND product_id = $3`

	if err := r.execAffectingOne(dbCtx, query, quantity, cartID, productID); err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}

	return r.touch(dbCtx, cartID)
}

func (r *cartRepository) RemoveItem(ctx context.Context, cartID, productID uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2`

	if err := r.execAffectingOne(dbCtx, query, cartID, productID); err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	return r.touch(dbCtx, cartID)
}

// DeleteCart removes the cart; cart_items rows go with it (ON DELETE CASCADE).
func (r *cartRepository) DeleteCart(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if err := r.execAffectingOne(dbCtx, `DELETE FROM carts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete the cart: %w", err)
	}

	return nil
}

func (r *cartRepository) touch(ctx context.Context, cartID uuid.UUID) error {
	if _, err := r.DB.ExecContext(ctx, `UPDATE carts SET updated_at = NOW() WHERE id = $1`, cartID); err != nil {
		return fmt.Errorf("failed to touch cart: %w", err)
	}

	return nil
}

func (r *cartRepository) execAffectingOne(ctx context.Context, query string, args ...any) error {
	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
