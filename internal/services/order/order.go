// Package services содержит бизнес-логику заказов и их жизненного цикла.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/coderr/internal/lib/sl"
	"github.com/magabrotheeeer/coderr/internal/models"
	events "github.com/magabrotheeeer/coderr/internal/services/events"
	"github.com/magabrotheeeer/coderr/internal/storage"
)

const (
	msgDetailNotFound   = "Offer detail not found."
	msgBusinessNotFound = "Business user not found."
)

// OrderRepository описывает хранилище заказов.
type OrderRepository interface {
	CreateOrder(ctx context.Context, customerID, offerDetailID int64) (*models.Order, error)
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
	ListOrdersForUser(ctx context.Context, userID int64) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, from, to models.OrderStatus) (*models.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
	CountOrders(ctx context.Context, businessUserID int64, status *models.OrderStatus) (int, error)
	IsBusinessProfile(ctx context.Context, userID int64) (bool, error)
}

// Events публикует события заказов.
type Events interface {
	OrderEvent(ctx context.Context, eventType string, order models.Order) error
}

// OrderService реализует создание заказов и смену их статуса.
type OrderService struct {
	repo   OrderRepository
	events Events
	log    *slog.Logger
}

// NewOrderService создаёт OrderService.
func NewOrderService(repo OrderRepository, events Events, log *slog.Logger) *OrderService {
	return &OrderService{
		repo:   repo,
		events: events,
		log:    log,
	}
}

// Create размещает заказ покупателя на уровень предложения.
// Продавцом заказа становится владелец предложения.
func (s *OrderService) Create(ctx context.Context, who models.Identity, offerDetailID int64) (*models.Order, error) {
	const op = "services.order.Create"
	if !who.IsCustomer() {
		return nil, models.Forbidden(models.MsgPermissionDenied)
	}

	order, err := s.repo.CreateOrder(ctx, who.UserID, offerDetailID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, models.NotFound(msgDetailNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.publish(ctx, events.OrderCreated, *order)
	return order, nil
}

// List возвращает заказы, где участник покупатель или продавец.
func (s *OrderService) List(ctx context.Context, who models.Identity) ([]models.Order, error) {
	const op = "services.order.List"
	orders, err := s.repo.ListOrdersForUser(ctx, who.UserID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}

// Get возвращает заказ по ID.
func (s *OrderService) Get(ctx context.Context, id int64) (*models.Order, error) {
	const op = "services.order.Get"
	order, err := s.repo.GetOrder(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, models.NotFound(models.MsgNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}

// UpdateStatus переводит заказ в новый статус. Менять статус может только продавец заказа,
// переход должен быть разрешён конечным автоматом.
func (s *OrderService) UpdateStatus(ctx context.Context, who models.Identity, id int64, status models.OrderStatus) (*models.Order, error) {
	const op = "services.order.UpdateStatus"
	if !who.IsBusiness() {
		return nil, models.Forbidden(models.MsgPermissionDenied)
	}

	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.BusinessUser != who.UserID {
		return nil, models.Forbidden(models.MsgPermissionDenied)
	}
	if !status.Valid() {
		return nil, models.FieldError("status", fmt.Sprintf("\"%s\" is not a valid choice.", status))
	}
	if !order.Status.CanTransitionTo(status) {
		return nil, models.FieldError("status",
			fmt.Sprintf("Cannot change status from %s to %s.", order.Status, status))
	}

	updated, err := s.repo.UpdateOrderStatus(ctx, id, order.Status, status)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, models.FieldError("status", "Order status was changed by another request.")
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.publish(ctx, events.OrderStatusChanged, *updated)
	return updated, nil
}

// Delete удаляет заказ. Доступно только сотрудникам платформы.
func (s *OrderService) Delete(ctx context.Context, who models.Identity, id int64) error {
	const op = "services.order.Delete"
	if !who.IsStaff {
		return models.Forbidden(models.MsgPermissionDenied)
	}
	err := s.repo.DeleteOrder(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return models.NotFound(models.MsgNotFound)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CountTotal считает все заказы продавца независимо от статуса.
func (s *OrderService) CountTotal(ctx context.Context, businessUserID int64) (int, error) {
	return s.count(ctx, businessUserID, nil)
}

// CountCompleted считает выполненные заказы продавца.
func (s *OrderService) CountCompleted(ctx context.Context, businessUserID int64) (int, error) {
	completed := models.OrderCompleted
	return s.count(ctx, businessUserID, &completed)
}

func (s *OrderService) count(ctx context.Context, businessUserID int64, status *models.OrderStatus) (int, error) {
	const op = "services.order.count"
	ok, err := s.repo.IsBusinessProfile(ctx, businessUserID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return 0, &models.NotFoundError{Key: "error", Message: msgBusinessNotFound}
	}
	n, err := s.repo.CountOrders(ctx, businessUserID, status)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// publish не прерывает запрос: заказ уже сохранён, сбой брокера только логируется.
func (s *OrderService) publish(ctx context.Context, eventType string, order models.Order) {
	if s.events == nil {
		return
	}
	if err := s.events.OrderEvent(ctx, eventType, order); err != nil {
		s.log.Error("failed to publish order event",
			slog.String("type", eventType),
			slog.Int64("order_id", order.ID),
			sl.Err(err),
		)
	}
}
