package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/magabrotheeeer/coderr/internal/models"
)

// CreateOffer сохраняет предложение вместе со всеми уровнями: либо всё, либо ничего.
func (s *Storage) CreateOffer(ctx context.Context, userID int64, in models.OfferInput) (*models.Offer, error) {
	const op = "storage.CreateOffer"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	offer := models.Offer{User: userID, Title: in.Title, Image: in.Image, Description: in.Description}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`INSERT INTO offers (user_id, title, image, description)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id, created_at, updated_at`,
			userID, in.Title, in.Image, in.Description).
			Scan(&offer.ID, &offer.CreatedAt, &offer.UpdatedAt)
		if err != nil {
			return err
		}
		for _, d := range in.Details {
			detail := models.OfferDetail{
				OfferID:            offer.ID,
				Title:              d.Title,
				Revisions:          d.Revisions,
				DeliveryTimeInDays: d.DeliveryTimeInDays,
				Price:              d.Price,
				Features:           nonNilFeatures(d.Features),
				OfferType:          d.OfferType,
			}
			features, err := json.Marshal(detail.Features)
			if err != nil {
				return err
			}
			err = tx.QueryRowContext(ctx,
				`INSERT INTO offer_details
				   (offer_id, title, revisions, delivery_time_in_days, price, features, offer_type)
				 VALUES ($1, $2, $3, $4, $5, $6, $7)
				 RETURNING id`,
				offer.ID, d.Title, d.Revisions, d.DeliveryTimeInDays, d.Price, string(features), d.OfferType).
				Scan(&detail.ID)
			if err != nil {
				if name, ok := constraintViolation(err); ok && name == "offer_details_offer_id_offer_type_key" {
					return ErrOfferTypeExists
				}
				return err
			}
			offer.Details = append(offer.Details, detail)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	offer.Aggregate()
	return &offer, nil
}

// offersDataset: выборка предложений с агрегатами по уровням и данными владельца.
func (s *Storage) offersDataset() *goqu.SelectDataset {
	agg := s.builder.From("offer_details").
		Select(
			goqu.C("offer_id"),
			goqu.MIN("price").As("min_price"),
			goqu.MIN("delivery_time_in_days").As("min_delivery_time"),
		).
		GroupBy("offer_id")

	return s.builder.From(goqu.T("offers").As("o")).Prepared(true).
		LeftJoin(agg.As("a"), goqu.On(goqu.I("a.offer_id").Eq(goqu.I("o.id")))).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("o.user_id"))))
}

var offerColumns = []any{
	goqu.I("o.id"), goqu.I("o.user_id"), goqu.I("o.title"), goqu.I("o.image"),
	goqu.I("o.description"), goqu.I("o.created_at"), goqu.I("o.updated_at"),
	goqu.COALESCE(goqu.I("a.min_price"), 0), goqu.COALESCE(goqu.I("a.min_delivery_time"), 0),
	goqu.I("u.first_name"), goqu.I("u.last_name"), goqu.I("u.username"),
}

func scanOffer(row rowScanner) (*models.Offer, error) {
	var o models.Offer
	if err := row.Scan(&o.ID, &o.User, &o.Title, &o.Image, &o.Description, &o.CreatedAt, &o.UpdatedAt,
		&o.MinPrice, &o.MinDeliveryTime,
		&o.UserDetails.FirstName, &o.UserDetails.LastName, &o.UserDetails.Username); err != nil {
		return nil, err
	}
	return &o, nil
}

// likeEscaper экранирует метасимволы LIKE (escape-символ по умолчанию: \).
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func offerFilters(f models.OfferFilter) []exp.Expression {
	var where []exp.Expression
	if f.Search != "" {
		pattern := "%" + likeEscaper.Replace(f.Search) + "%"
		where = append(where, goqu.Or(
			goqu.I("o.title").ILike(pattern),
			goqu.I("o.description").ILike(pattern),
		))
	}
	if f.MinPrice != nil {
		where = append(where, goqu.I("a.min_price").Gte(f.MinPrice.String()))
	}
	if f.MaxDeliveryTime != nil {
		where = append(where, goqu.I("a.min_delivery_time").Lte(*f.MaxDeliveryTime))
	}
	if f.CreatorID != nil {
		where = append(where, goqu.I("o.user_id").Eq(*f.CreatorID))
	}
	if f.OwnerID != nil {
		where = append(where, goqu.I("o.user_id").Eq(*f.OwnerID))
	}
	return where
}

func offerOrder(f models.OfferFilter) []exp.OrderedExpression {
	var col exp.IdentifierExpression
	switch f.Ordering {
	case models.OrderByMinPrice:
		col = goqu.I("a.min_price")
	case models.OrderByMinDeliveryTime:
		col = goqu.I("a.min_delivery_time")
	default:
		col = goqu.I("o.updated_at")
	}
	if f.Desc {
		return []exp.OrderedExpression{col.Desc(), goqu.I("o.id").Desc()}
	}
	return []exp.OrderedExpression{col.Asc(), goqu.I("o.id").Asc()}
}

// ListOffers возвращает страницу каталога с общим числом совпадений.
func (s *Storage) ListOffers(ctx context.Context, f models.OfferFilter) (*models.OfferPage, error) {
	const op = "storage.ListOffers"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	base := s.offersDataset().Where(offerFilters(f)...)

	countQuery, countArgs, err := base.Select(goqu.COUNT("*")).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	page := &models.OfferPage{Items: []models.Offer{}}
	if err := s.DB.QueryRowContext(ctx, countQuery, countArgs...).Scan(&page.Count); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	offset, ok := models.PageOffset(f.Page, f.PageSize)
	if page.Count == 0 || !ok || offset >= page.Count {
		return page, nil
	}

	query, args, err := base.Select(offerColumns...).
		Order(offerOrder(f)...).
		Limit(uint(f.PageSize)).
		Offset(uint(offset)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		page.Items = append(page.Items, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.attachDetails(ctx, s.DB, page.Items); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return page, nil
}

// GetOffer возвращает предложение со всеми уровнями.
func (s *Storage) GetOffer(ctx context.Context, id int64) (*models.Offer, error) {
	const op = "storage.GetOffer"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}
	o, err := s.getOffer(ctx, s.DB, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return o, nil
}

func (s *Storage) getOffer(ctx context.Context, q queryer, id int64) (*models.Offer, error) {
	query, args, err := s.offersDataset().Select(offerColumns...).
		Where(goqu.I("o.id").Eq(id)).ToSQL()
	if err != nil {
		return nil, err
	}
	o, err := scanOffer(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, notFound(err)
	}
	items := []models.Offer{*o}
	if err := s.attachDetails(ctx, q, items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

const detailColumns = `id, offer_id, title, revisions, delivery_time_in_days, price, features, offer_type`

func scanDetail(row rowScanner) (*models.OfferDetail, error) {
	var (
		d        models.OfferDetail
		features []byte
	)
	if err := row.Scan(&d.ID, &d.OfferID, &d.Title, &d.Revisions, &d.DeliveryTimeInDays,
		&d.Price, &features, &d.OfferType); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(features, &d.Features); err != nil {
		return nil, err
	}
	d.Features = nonNilFeatures(d.Features)
	return &d, nil
}

// attachDetails загружает уровни для набора предложений одним запросом.
func (s *Storage) attachDetails(ctx context.Context, q queryer, offers []models.Offer) error {
	if len(offers) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(offers))
	index := make(map[int64]int, len(offers))
	for i, o := range offers {
		ids = append(ids, o.ID)
		index[o.ID] = i
	}
	query, args, err := s.builder.From("offer_details").Prepared(true).
		Select(goqu.L(detailColumns)).
		Where(goqu.C("offer_id").In(ids)).
		Order(goqu.C("price").Asc(), goqu.C("id").Asc()).
		ToSQL()
	if err != nil {
		return err
	}
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return err
		}
		i := index[d.OfferID]
		offers[i].Details = append(offers[i].Details, *d)
	}
	return rows.Err()
}

// UpdateOffer применяет частичное обновление предложения и его уровней в одной транзакции.
// Уровни сопоставляются по offer_type.
func (s *Storage) UpdateOffer(ctx context.Context, id int64, patch models.OfferPatch) (*models.Offer, error) {
	const op = "storage.UpdateOffer"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	rec := goqu.Record{"updated_at": goqu.L("NOW()")}
	setIf(rec, "title", patch.Title)
	setIf(rec, "image", patch.Image)
	setIf(rec, "description", patch.Description)

	var offer *models.Offer
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		query, args, err := s.builder.Update("offers").Prepared(true).
			Set(rec).Where(goqu.C("id").Eq(id)).ToSQL()
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		if err := checkAffected(res); err != nil {
			return err
		}

		for _, d := range patch.Details {
			detailRec := goqu.Record{}
			setIf(detailRec, "title", d.Title)
			setIf(detailRec, "revisions", d.Revisions)
			setIf(detailRec, "delivery_time_in_days", d.DeliveryTimeInDays)
			if d.Price != nil {
				detailRec["price"] = d.Price.String()
			}
			if d.Features != nil {
				features, err := json.Marshal(d.Features)
				if err != nil {
					return err
				}
				detailRec["features"] = string(features)
			}
			if len(detailRec) == 0 {
				continue
			}
			query, args, err := s.builder.Update("offer_details").Prepared(true).
				Set(detailRec).
				Where(goqu.C("offer_id").Eq(id), goqu.C("offer_type").Eq(string(d.OfferType))).
				ToSQL()
			if err != nil {
				return err
			}
			res, err := tx.ExecContext(ctx, query, args...)
			if err != nil {
				return err
			}
			if err := checkAffected(res); err != nil {
				return fmt.Errorf("offer type %s: %w", d.OfferType, err)
			}
		}

		offer, err = s.getOffer(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return offer, nil
}

// DeleteOffer удаляет предложение; уровни и заказы на них удаляются каскадно.
func (s *Storage) DeleteOffer(ctx context.Context, id int64) error {
	const op = "storage.DeleteOffer"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}
	res, err := s.DB.ExecContext(ctx, `DELETE FROM offers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := checkAffected(res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SetOfferImage сохраняет ссылку на изображение предложения.
func (s *Storage) SetOfferImage(ctx context.Context, id int64, url string) error {
	const op = "storage.SetOfferImage"
	res, err := s.DB.ExecContext(ctx,
		`UPDATE offers SET image = $1, updated_at = NOW() WHERE id = $2`, url, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := checkAffected(res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetOfferDetail возвращает уровень по ID.
func (s *Storage) GetOfferDetail(ctx context.Context, id int64) (*models.OfferDetail, error) {
	const op = "storage.GetOfferDetail"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}
	d, err := scanDetail(s.DB.QueryRowContext(ctx,
		`SELECT `+detailColumns+` FROM offer_details WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}
	return d, nil
}

// ListOfferDetails возвращает все уровни.
func (s *Storage) ListOfferDetails(ctx context.Context) ([]models.OfferDetail, error) {
	const op = "storage.ListOfferDetails"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}
	rows, err := s.DB.QueryContext(ctx, `SELECT `+detailColumns+` FROM offer_details ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	details := []models.OfferDetail{}
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		details = append(details, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return details, nil
}

func nonNilFeatures(f []string) []string {
	if f == nil {
		return []string{}
	}
	return f
}
