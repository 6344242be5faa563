package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/magabrotheeeer/coderr/internal/models"
)

// BaseInfo считает сводные показатели платформы одним запросом.
// Средняя оценка возвращается без округления.
func (s *Storage) BaseInfo(ctx context.Context) (*models.BaseInfo, error) {
	const op = "storage.BaseInfo"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	query, args, err := s.builder.Select(
		s.builder.From("reviews").Select(goqu.COUNT("*")).As("review_count"),
		s.builder.From("reviews").Select(goqu.AVG("rating")).As("average_rating"),
		s.builder.From("profiles").Select(goqu.COUNT("*")).
			Where(goqu.C("type").Eq(string(models.ProfileBusiness))).As("business_profile_count"),
		s.builder.From("offers").Select(goqu.COUNT("*")).As("offer_count"),
	).Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var (
		info models.BaseInfo
		avg  sql.NullFloat64
	)
	if err := s.DB.QueryRowContext(ctx, query, args...).
		Scan(&info.ReviewCount, &avg, &info.BusinessProfileCount, &info.OfferCount); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	info.AverageRating = avg.Float64
	return &info, nil
}
