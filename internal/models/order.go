package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCanceled  OrderStatus = "canceled"
)

// LineSnapshot is the price and quantity of a product fixed at checkout time.
// It is always copied by value so later catalog price changes never reach an order.
type LineSnapshot struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

func (s LineSnapshot) Subtotal() decimal.Decimal {
	return s.UnitPrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

type OrderItem struct {
	ID         uuid.UUID       `json:"id"`
	OrderID    uuid.UUID       `json:"order_id"`
	ProductID  uuid.UUID       `json:"product_id"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
}

func NewOrderItem(orderID, productID uuid.UUID, snapshot LineSnapshot) OrderItem {
	return OrderItem{
		ID:         uuid.New(),
		OrderID:    orderID,
		ProductID:  productID,
		Price:      snapshot.UnitPrice,
		Quantity:   snapshot.Quantity,
		TotalPrice: snapshot.Subtotal(),
	}
}

type Order struct {
	ID         uuid.UUID       `json:"id"`
	UserID     uuid.UUID       `json:"user_id"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Status     OrderStatus     `json:"status"`
	Items      []OrderItem     `json:"items"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Actor is whoever is acting on an order.
type Actor struct {
	UserID  uuid.UUID
	IsStaff bool
}

type CreateOrderRequest struct {
	CartID uuid.UUID `json:"cart_id" validate:"required"`
}

// Staff-only administrative channel, cancellation has its own endpoint.
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=shipped delivered"`
}
