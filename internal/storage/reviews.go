package storage

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/magabrotheeeer/coderr/internal/models"
)

var reviewColumns = []any{"id", "business_user_id", "reviewer_id", "rating", "description", "created_at", "updated_at"}

func scanReview(row rowScanner) (*models.Review, error) {
	var r models.Review
	if err := row.Scan(&r.ID, &r.BusinessUser, &r.Reviewer, &r.Rating, &r.Description,
		&r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateReview сохраняет отзыв. Повторный отзыв той же паре возвращает ErrReviewExists.
func (s *Storage) CreateReview(ctx context.Context, reviewerID int64, in models.ReviewInput) (*models.Review, error) {
	const op = "storage.CreateReview"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}
	r, err := scanReview(s.DB.QueryRowContext(ctx,
		`INSERT INTO reviews (business_user_id, reviewer_id, rating, description)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, business_user_id, reviewer_id, rating, description, created_at, updated_at`,
		in.BusinessUser, reviewerID, in.Rating, in.Description))
	if err != nil {
		if name, ok := constraintViolation(err); ok && name == "reviews_business_reviewer_key" {
			return nil, fmt.Errorf("%s: %w", op, ErrReviewExists)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return r, nil
}

// ReviewExists проверяет, оставлял ли автор отзыв продавцу.
func (s *Storage) ReviewExists(ctx context.Context, businessUserID, reviewerID int64) (bool, error) {
	const op = "storage.ReviewExists"
	var exists bool
	err := s.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM reviews WHERE business_user_id = $1 AND reviewer_id = $2)`,
		businessUserID, reviewerID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// GetReview возвращает отзыв по ID.
func (s *Storage) GetReview(ctx context.Context, id int64) (*models.Review, error) {
	const op = "storage.GetReview"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}
	query, args, err := s.builder.From("reviews").Prepared(true).
		Select(reviewColumns...).Where(goqu.C("id").Eq(id)).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	r, err := scanReview(s.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}
	return r, nil
}

// ListReviews возвращает страницу отзывов по фильтру.
func (s *Storage) ListReviews(ctx context.Context, f models.ReviewFilter) ([]models.Review, error) {
	const op = "storage.ListReviews"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	ds := s.builder.From("reviews").Prepared(true).Select(reviewColumns...)
	if f.BusinessUserID != nil {
		ds = ds.Where(goqu.C("business_user_id").Eq(*f.BusinessUserID))
	}
	if f.ReviewerID != nil {
		ds = ds.Where(goqu.C("reviewer_id").Eq(*f.ReviewerID))
	}

	col := goqu.C("updated_at")
	if f.Ordering == "rating" {
		col = goqu.C("rating")
	}
	order := []exp.OrderedExpression{col.Asc(), goqu.C("id").Asc()}
	if f.Desc {
		order = []exp.OrderedExpression{col.Desc(), goqu.C("id").Desc()}
	}
	ds = ds.Order(order...)
	if f.PageSize > 0 {
		offset, ok := models.PageOffset(f.Page, f.PageSize)
		if !ok {
			return []models.Review{}, nil
		}
		ds = ds.Limit(uint(f.PageSize)).Offset(uint(offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		reviews = append(reviews, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return reviews, nil
}

// UpdateReview меняет оценку и/или текст отзыва.
func (s *Storage) UpdateReview(ctx context.Context, id int64, patch models.ReviewPatch) (*models.Review, error) {
	const op = "storage.UpdateReview"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}
	rec := goqu.Record{"updated_at": goqu.L("NOW()")}
	setIf(rec, "rating", patch.Rating)
	setIf(rec, "description", patch.Description)

	query, args, err := s.builder.Update("reviews").Prepared(true).
		Set(rec).Where(goqu.C("id").Eq(id)).Returning(reviewColumns...).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	r, err := scanReview(s.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}
	return r, nil
}

// DeleteReview удаляет отзыв.
func (s *Storage) DeleteReview(ctx context.Context, id int64) error {
	const op = "storage.DeleteReview"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}
	res, err := s.DB.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := checkAffected(res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
