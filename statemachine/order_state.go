package statemachine

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/foodcartapp/foodcart-api/models"
)

// validTransitions is the authoritative lifecycle definition. Orders
// only move forward: unprocessed, then processed, then delivered.
var validTransitions = map[models.OrderStatus]models.OrderStatus{
	models.StatusUnprocessed: models.StatusProcessed,
	models.StatusProcessed:   models.StatusDelivered,
}

// CanTransition checks whether an order may move from one status to
// another. Backward and skipping transitions are rejected.
func CanTransition(from, to models.OrderStatus) error {
	if next, ok := validTransitions[from]; ok && next == to {
		return nil
	}
	if _, ok := validTransitions[from]; !ok {
		return errors.New("invalid transition: '" + from.Display() + "' is a terminal status")
	}
	return errors.New(
		"invalid transition: '" + from.Display() + "' can only move to '" +
			validTransitions[from].Display() + "', not '" + to.Display() + "'",
	)
}

// Advance moves the order to the requested status and stamps the
// matching lifecycle timestamp: CalledAt when processed, DeliveredAt
// when delivered.
func Advance(db *gorm.DB, order *models.Order, to models.OrderStatus) error {
	if err := CanTransition(order.Status, to); err != nil {
		return err
	}

	now := time.Now()
	updates := map[string]any{"status": to}
	switch to {
	case models.StatusProcessed:
		updates["called_at"] = &now
	case models.StatusDelivered:
		updates["delivered_at"] = &now
	}

	if err := db.Model(order).Updates(updates).Error; err != nil {
		return err
	}

	order.Status = to
	switch to {
	case models.StatusProcessed:
		order.CalledAt = &now
	case models.StatusDelivered:
		order.DeliveredAt = &now
	}
	return nil
}
