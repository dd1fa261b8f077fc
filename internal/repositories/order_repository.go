package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	CreateOrderItems(ctx context.Context, items []models.OrderItem) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetOrderForUpdate(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]models.Order, int, error)
	UpdateOrderStatus(ctx context.Context, order *models.Order) error
}

type orderRepository struct {
	DB DBTX
}

func NewOrderRepository(db DBTX) OrderRepository {
	return &orderRepository{DB: db}
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO orders (id, user_id, total_price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, order.ID, order.UserID, order.TotalPrice, order.Status).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", translatePgError(err))
	}

	return nil
}

// CreateOrderItems writes every item with a single multi-row INSERT.
func (r *orderRepository) CreateOrderItems(ctx context.Context, items []models.OrderItem) error {

	if len(items) == 0 {
		return nil
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	const columns = 6

	placeholders := make([]string, 0, len(items))
	args := make([]any, 0, len(items)*columns)

	for i, item := range items {
		base := i * columns
		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, NOW())",
			base+1, base+2, base+3, base+4, base+5, base+6))
		args = append(args, item.ID, item.OrderID, item.ProductID, item.Price, item.Quantity, item.TotalPrice)
	}

	query := `INSERT INTO order_items (id, order_id, product_id, price, quantity, total_price, created_at) VALUES ` +
		strings.Join(placeholders, ", ")

	result, err := r.DB.ExecContext(dbCtx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to insert order items: %w", translatePgError(err))
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get inserted rows: %w", err)
	}

	if inserted != int64(len(items)) {
		return fmt.Errorf("inserted %d order items, expected %d", inserted, len(items))
	}

	return nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return r.getOrder(ctx, id, false)
}

// GetOrderForUpdate locks the order row until the surrounding transaction ends.
func (r *orderRepository) GetOrderForUpdate(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return r.getOrder(ctx, id, true)
}

func (r *orderRepository) getOrder(ctx context.Context, id uuid.UUID, lock bool) (*models.Order, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, total_price, status, created_at, updated_at
		FROM orders
		WHERE id = $1
	`
	if lock {
		query += ` FOR UPDATE`
	}

	order := &models.Order{}

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&order.ID, &order.UserID, &order.TotalPrice, &order.Status, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get the order: %w", err)
	}

	itemsByOrder, err := r.loadItems(dbCtx, []uuid.UUID{order.ID})
	if err != nil {
		return nil, err
	}

	order.Items = itemsByOrder[order.ID]
	if order.Items == nil {
		order.Items = []models.OrderItem{}
	}

	return order, nil
}

// List the orders of the user, newest first, along with the total count
func (r *orderRepository) ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]models.Order, int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int
	countQuery := `SELECT COUNT(*) FROM orders WHERE user_id = $1`
	if err := r.DB.QueryRowContext(dbCtx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	offset := (page - 1) * size

	query := `
		SELECT id, user_id, total_price, status, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.DB.QueryContext(dbCtx, query, userID, size, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	ids := []uuid.UUID{}

	for rows.Next() {
		var order models.Order

		if err := rows.Scan(&order.ID, &order.UserID, &order.TotalPrice, &order.Status, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan the orders: %w", err)
		}

		orders = append(orders, order)
		ids = append(ids, order.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate orders: %w", err)
	}

	if len(ids) == 0 {
		return orders, total, nil
	}

	itemsByOrder, err := r.loadItems(dbCtx, ids)
	if err != nil {
		return nil, 0, err
	}

	for i := range orders {
		orders[i].Items = itemsByOrder[orders[i].ID]
		if orders[i].Items == nil {
			orders[i].Items = []models.OrderItem{}
		}
	}

	return orders, total, nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]models.OrderItem, error) {

	ids := make([]string, len(orderIDs))
	for i, id := range orderIDs {
		ids[i] = id.String()
	}

	query := `
		SELECT id, order_id, product_id, price, quantity, total_price, created_at
		FROM order_items
		WHERE order_id = ANY($1::uuid[])
		ORDER BY created_at, id
	`

	rows, err := r.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get the order items: %w", err)
	}
	defer rows.Close()

	itemsByOrder := make(map[uuid.UUID][]models.OrderItem, len(orderIDs))

	for rows.Next() {
		var item models.OrderItem

		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Price, &item.Quantity, &item.TotalPrice, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order items: %w", err)
	}

	return itemsByOrder, nil
}

// UpdateOrderStatus persists order.Status and refreshes order.UpdatedAt.
func (r *orderRepository) UpdateOrderStatus(ctx context.Context, order *models.Order) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2
		RETURNING updated_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, order.Status, order.ID).Scan(&order.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update order status: %w", err)
	}

	return nil
}
