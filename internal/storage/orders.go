package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/magabrotheeeer/coderr/internal/models"
)

const orderSelect = `SELECT o.id, o.customer_user_id, o.business_user_id, o.offer_detail_id,
		d.title, d.revisions, d.delivery_time_in_days, d.price, d.features, d.offer_type,
		o.status, o.created_at, o.updated_at
	FROM orders o
	JOIN offer_details d ON d.id = o.offer_detail_id`

func scanOrder(row rowScanner) (*models.Order, error) {
	var (
		o        models.Order
		features []byte
	)
	if err := row.Scan(&o.ID, &o.CustomerUser, &o.BusinessUser, &o.OfferDetailID,
		&o.Title, &o.Revisions, &o.DeliveryTimeInDays, &o.Price, &features, &o.OfferType,
		&o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(features, &o.Features); err != nil {
		return nil, err
	}
	o.Features = nonNilFeatures(o.Features)
	return &o, nil
}

// CreateOrder создаёт заказ на уровень предложения. Продавец берётся из владельца
// предложения на момент размещения.
func (s *Storage) CreateOrder(ctx context.Context, customerID, offerDetailID int64) (*models.Order, error) {
	const op = "storage.CreateOrder"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	var id int64
	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO orders (customer_user_id, business_user_id, offer_detail_id)
		 SELECT $1, o.user_id, d.id
		 FROM offer_details d
		 JOIN offers o ON o.id = d.offer_id
		 WHERE d.id = $2
		 RETURNING id`,
		customerID, offerDetailID).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}
	return s.GetOrder(ctx, id)
}

// GetOrder возвращает заказ по ID.
func (s *Storage) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	const op = "storage.GetOrder"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}
	o, err := scanOrder(s.DB.QueryRowContext(ctx, orderSelect+` WHERE o.id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}
	return o, nil
}

// ListOrdersForUser возвращает заказы, где пользователь покупатель или продавец.
func (s *Storage) ListOrdersForUser(ctx context.Context, userID int64) ([]models.Order, error) {
	const op = "storage.ListOrdersForUser"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}
	rows, err := s.DB.QueryContext(ctx,
		orderSelect+` WHERE o.customer_user_id = $1 OR o.business_user_id = $1
		ORDER BY o.created_at DESC, o.id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}

// UpdateOrderStatus меняет статус, только если текущий статус равен from.
func (s *Storage) UpdateOrderStatus(ctx context.Context, id int64, from, to models.OrderStatus) (*models.Order, error) {
	const op = "storage.UpdateOrderStatus"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}
	res, err := s.DB.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`,
		to, id, from)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := checkAffected(res); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.GetOrder(ctx, id)
}

// DeleteOrder удаляет заказ.
func (s *Storage) DeleteOrder(ctx context.Context, id int64) error {
	const op = "storage.DeleteOrder"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}
	res, err := s.DB.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := checkAffected(res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CountOrders считает заказы продавца. status == nil означает заказы в любом статусе.
func (s *Storage) CountOrders(ctx context.Context, businessUserID int64, status *models.OrderStatus) (int, error) {
	const op = "storage.CountOrders"
	if err := ctxDone(ctx, op); err != nil {
		return 0, err
	}

	ds := s.builder.From("orders").Prepared(true).
		Select(goqu.COUNT("*")).
		Where(goqu.C("business_user_id").Eq(businessUserID))
	if status != nil {
		ds = ds.Where(goqu.C("status").Eq(string(*status)))
	}
	query, args, err := ds.ToSQL()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var n int
	if err := s.DB.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}
