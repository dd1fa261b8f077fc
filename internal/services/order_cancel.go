package service

import (
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
)

// cancelRule is one row of the cancellation table.
// A nil verdict cancels the order, anything else is returned to the caller.
type cancelRule struct {
	name    string
	matches func(order *models.Order, actor models.Actor) bool
	verdict func() error
}

// Evaluated top to bottom, first match wins. Staff comes first and
// therefore overrides both ownership and the delivered check.
var cancelRules = []cancelRule{
	{
		name:    "staff",
		matches: func(_ *models.Order, actor models.Actor) bool { return actor.IsStaff },
		verdict: allowCancel,
	},
	{
		name:    "not_owner",
		matches: func(order *models.Order, actor models.Actor) bool { return order.UserID != actor.UserID },
		verdict: func() error { return appErrors.ForbiddenError("You may only cancel your own order") },
	},
	{
		name:    "delivered",
		matches: func(order *models.Order, _ models.Actor) bool { return order.Status == models.OrderStatusDelivered },
		verdict: func() error { return appErrors.ValidationError("Cannot cancel a delivered order") },
	},
	{
		name:    "owner",
		matches: func(*models.Order, models.Actor) bool { return true },
		verdict: allowCancel,
	},
}

func allowCancel() error { return nil }

// evaluateCancel returns the name of the deciding rule and its verdict.
func evaluateCancel(order *models.Order, actor models.Actor) (string, error) {
	for _, rule := range cancelRules {
		if rule.matches(order, actor) {
			return rule.name, rule.verdict()
		}
	}

	return "", appErrors.InternalError("No cancellation rule matched")
}
