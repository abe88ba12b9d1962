package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jefin3273/connect-crave/entity"
	"github.com/jefin3273/connect-crave/repository"

	"gorm.io/gorm"
)

// ----- Fulfillment actions -----

var transitions = map[entity.OrderStatus][]entity.OrderStatus{
	entity.OrderStatusPending:   {entity.OrderStatusConfirmed, entity.OrderStatusCancelled},
	entity.OrderStatusConfirmed: {entity.OrderStatusPreparing, entity.OrderStatusCancelled},
	entity.OrderStatusPreparing: {entity.OrderStatusReady},
	entity.OrderStatusReady:     {entity.OrderStatusDelivered},
}

func CanTransition(from, to entity.OrderStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// UpdateStatus moves an order forward. Only the status column is touched.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, to entity.OrderStatus) (*entity.Order, error) {
	if !to.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, to)
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		from, err := s.Repo.GetStatus(tx, orderID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		if err != nil {
			return err
		}
		if !CanTransition(from, to) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
		}

		affected, err := s.Repo.UpdateStatusGuard(tx, orderID, from, to)
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("%w: status changed concurrently", ErrInvalidTransition)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) || errors.Is(err, ErrInvalidTransition) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return s.Repo.GetOrder(ctx, orderID, repository.OrderFilter{})
}
