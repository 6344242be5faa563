package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus: состояние заказа.
type OrderStatus string

const (
	OrderInProgress OrderStatus = "in_progress"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

// orderTransitions: допустимые переходы конечного автомата заказа.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderInProgress: {OrderCompleted, OrderCancelled},
	OrderCompleted:  nil,
	OrderCancelled:  nil,
}

// Valid сообщает, является ли значение известным состоянием.
func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransitionTo сообщает, разрешён ли переход s -> next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order: заказ покупателя на конкретный уровень предложения.
// Поля уровня копируются в ответ для отображения.
type Order struct {
	ID                 int64           `json:"id"`
	CustomerUser       int64           `json:"customer_user"`
	BusinessUser       int64           `json:"business_user"`
	OfferDetailID      int64           `json:"-"`
	Title              string          `json:"title"`
	Revisions          int             `json:"revisions"`
	DeliveryTimeInDays int             `json:"delivery_time_in_days"`
	Price              decimal.Decimal `json:"price"`
	Features           []string        `json:"features"`
	OfferType          OfferType       `json:"offer_type"`
	Status             OrderStatus     `json:"status"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// OrderEvent публикуется в брокер при создании заказа и смене статуса.
type OrderEvent struct {
	EventID      string      `json:"event_id"`
	Type         string      `json:"type"`
	OrderID      int64       `json:"order_id"`
	CustomerUser int64       `json:"customer_user"`
	BusinessUser int64       `json:"business_user"`
	Status       OrderStatus `json:"status"`
	OccurredAt   time.Time   `json:"occurred_at"`
}
