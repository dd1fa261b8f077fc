package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type OrderService interface {
	CreateOrder(ctx context.Context, actor models.Actor, req *models.CreateOrderRequest) (*models.Order, error)
	GetOrderByID(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, actor models.Actor, page, size int) ([]models.Order, int, error)
	CancelOrder(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, actor models.Actor, id uuid.UUID, req *models.UpdateOrderStatusRequest) (*models.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	tx        repository.Transactor
}

func NewOrderService(orderRepo repository.OrderRepository, tx repository.Transactor) OrderService {
	return &orderService{orderRepo: orderRepo, tx: tx}
}

// CreateOrder turns the cart into an order and deletes the cart, all in one transaction.
// The cart row stays locked from the first read until commit, so a second checkout of
// the same cart blocks and then finds nothing to convert.
func (s *orderService) CreateOrder(ctx context.Context, actor models.Actor, req *models.CreateOrderRequest) (*models.Order, error) {

	ctx, span := tracer.Start(ctx, "OrderService.CreateOrder", trace.WithAttributes(
		attribute.String("cart.id", req.CartID.String()),
		attribute.String("user.id", actor.UserID.String()),
	))
	defer span.End()

	logger := middleware.LoggerFromContext(ctx)

	var order *models.Order

	err := s.tx.WithinTx(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {

		cart, err := uow.Carts().GetCartForUpdate(ctx, req.CartID)
		if err != nil {
			return repoError(err, "Cart not found", "Failed to load cart")
		}

		// Someone else's cart is reported exactly like a missing one.
		if cart.UserID != actor.UserID {
			return appErrors.NotFoundError("Cart not found")
		}

		order = buildOrder(actor.UserID, cart)

		if err := uow.Orders().CreateOrder(ctx, order); err != nil {
			return appErrors.DatabaseError("Failed to create order").WithError(err)
		}

		if err := uow.Orders().CreateOrderItems(ctx, order.Items); err != nil {
			return appErrors.DatabaseError("Failed to create order items").WithError(err)
		}

		if err := uow.Carts().DeleteCart(ctx, cart.ID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return appErrors.ConflictError("Cart has already been checked out").WithError(err)
			}
			return appErrors.DatabaseError("Failed to delete cart").WithError(err)
		}

		return nil
	})
	if err != nil {
		logger.Error("Order creation rolled back", slog.String("cartId", req.CartID.String()), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "order creation failed")
		return nil, txError(err, "Failed to create order")
	}

	metrics.RecordOrderCreated(len(order.Items))
	span.SetAttributes(attribute.String("order.id", order.ID.String()), attribute.Int("order.items", len(order.Items)))
	logger.Info("Order created", slog.String("orderId", order.ID.String()), slog.String("total", order.TotalPrice.StringFixed(2)))

	return order, nil
}

// buildOrder snapshots every cart line by value. An empty cart yields an order with no items and a zero total.
func buildOrder(userID uuid.UUID, cart *models.Cart) *models.Order {

	order := &models.Order{
		ID:         uuid.New(),
		UserID:     userID,
		TotalPrice: cart.Total(),
		Status:     models.OrderStatusPending,
		Items:      make([]models.OrderItem, 0, len(cart.Items)),
	}

	for _, item := range cart.Items {
		order.Items = append(order.Items, models.NewOrderItem(order.ID, item.ProductID, item.Snapshot()))
	}

	return order
}

func (s *orderService) GetOrderByID(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Order, error) {

	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "Order not found", "Failed to fetch order")
	}

	if !actor.IsStaff && order.UserID != actor.UserID {
		return nil, appErrors.ForbiddenError("You may only view your own orders")
	}

	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, actor models.Actor, page, size int) ([]models.Order, int, error) {

	orders, total, err := s.orderRepo.ListOrdersByUser(ctx, actor.UserID, page, size)
	if err != nil {
		return nil, 0, appErrors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	return orders, total, nil
}

// CancelOrder decides against the order as read under a row lock, so the
// ownership and status checks see the same row that gets updated.
func (s *orderService) CancelOrder(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Order, error) {

	ctx, span := tracer.Start(ctx, "OrderService.CancelOrder", trace.WithAttributes(
		attribute.String("order.id", id.String()),
		attribute.Bool("actor.staff", actor.IsStaff),
	))
	defer span.End()

	logger := middleware.LoggerFromContext(ctx)

	var (
		order *models.Order
		rule  string
	)

	err := s.tx.WithinTx(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {

		current, err := uow.Orders().GetOrderForUpdate(ctx, id)
		if err != nil {
			return repoError(err, "Order not found", "Failed to fetch order")
		}

		rule, err = evaluateCancel(current, actor)
		if err != nil {
			return err
		}

		current.Status = models.OrderStatusCanceled

		if err := uow.Orders().UpdateOrderStatus(ctx, current); err != nil {
			return repoError(err, "Order not found", "Failed to cancel order")
		}

		order = current

		return nil
	})
	if err != nil {
		appErr := txError(err, "Failed to cancel order")
		switch {
		case appErr.StatusCode >= http.StatusInternalServerError:
			logger.Error("Order cancellation failed", slog.String("orderId", id.String()), slog.Any("error", err))
		case rule != "":
			logger.Warn("Order cancellation refused", slog.String("orderId", id.String()), slog.String("rule", rule), slog.Any("error", err))
		default:
			logger.Warn("Order cancellation failed", slog.String("orderId", id.String()), slog.Any("error", err))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "order cancellation failed")
		return nil, appErr
	}

	metrics.RecordOrderCanceled(rule)
	logger.Info("Order canceled", slog.String("orderId", id.String()), slog.String("rule", rule))

	return order, nil
}

// fulfilmentStage orders the statuses staff can move an order through.
var fulfilmentStage = map[models.OrderStatus]int{
	models.OrderStatusPending:   0,
	models.OrderStatusShipped:   1,
	models.OrderStatusDelivered: 2,
}

// UpdateOrderStatus is the staff channel for moving orders to shipped or delivered.
func (s *orderService) UpdateOrderStatus(ctx context.Context, actor models.Actor, id uuid.UUID, req *models.UpdateOrderStatusRequest) (*models.Order, error) {

	if !actor.IsStaff {
		return nil, appErrors.ForbiddenError("Only staff can change the status of an order")
	}

	var order *models.Order

	err := s.tx.WithinTx(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {

		current, err := uow.Orders().GetOrderForUpdate(ctx, id)
		if err != nil {
			return repoError(err, "Order not found", "Failed to fetch order")
		}

		if current.Status == models.OrderStatusCanceled {
			return appErrors.ValidationError("Cannot change the status of a canceled order")
		}

		if fulfilmentStage[req.Status] < fulfilmentStage[current.Status] {
			return appErrors.ValidationError("Cannot move a " + string(current.Status) + " order back to " + string(req.Status))
		}

		current.Status = req.Status

		if err := uow.Orders().UpdateOrderStatus(ctx, current); err != nil {
			return repoError(err, "Order not found", "Failed to update order status")
		}

		order = current

		return nil
	})
	if err != nil {
		return nil, txError(err, "Failed to update order status")
	}

	return order, nil
}
