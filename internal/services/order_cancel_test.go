package service

import (
	"testing"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateCancel(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	tests := []struct {
		name     string
		status   models.OrderStatus
		actor    models.Actor
		wantRule string
		wantCode string
	}{
		{"staff on delivered order of another user", models.OrderStatusDelivered, models.Actor{UserID: stranger, IsStaff: true}, "staff", ""},
		{"staff on own pending order", models.OrderStatusPending, models.Actor{UserID: owner, IsStaff: true}, "staff", ""},
		{"stranger on pending order", models.OrderStatusPending, models.Actor{UserID: stranger}, "not_owner", appErrors.ErrCodeForbidden},
		{"stranger on delivered order", models.OrderStatusDelivered, models.Actor{UserID: stranger}, "not_owner", appErrors.ErrCodeForbidden},
		{"owner on delivered order", models.OrderStatusDelivered, models.Actor{UserID: owner}, "delivered", appErrors.ErrCodeValidation},
		{"owner on pending order", models.OrderStatusPending, models.Actor{UserID: owner}, "owner", ""},
		{"owner on shipped order", models.OrderStatusShipped, models.Actor{UserID: owner}, "owner", ""},
		{"owner on canceled order", models.OrderStatusCanceled, models.Actor{UserID: owner}, "owner", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := &models.Order{ID: uuid.New(), UserID: owner, Status: tt.status}

			rule, err := evaluateCancel(order, tt.actor)

			assert.Equal(t, tt.wantRule, rule)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}

			appErr, ok := appErrors.IsAppError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, appErr.Code)
		})
	}
}

func TestBuildOrder(t *testing.T) {
	userID := uuid.New()
	cart := &models.Cart{
		ID:     uuid.New(),
		UserID: userID,
		Items: []models.CartItem{
			{ProductID: uuid.New(), Quantity: 3, UnitPrice: decimal.RequireFromString("1.10")},
			{ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.RequireFromString("0.20")},
		},
	}

	order := buildOrder(userID, cart)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "3.50", order.TotalPrice.StringFixed(2))
	require.Len(t, order.Items, 2)
	assert.Equal(t, "3.30", order.Items[0].TotalPrice.StringFixed(2))
	assert.Equal(t, order.ID, order.Items[1].OrderID)
}
