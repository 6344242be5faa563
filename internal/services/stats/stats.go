// Package services считает сводные показатели платформы.
package services

import (
	"context"
	"fmt"
	"math"

	"github.com/magabrotheeeer/coderr/internal/models"
)

// StatsRepository возвращает сырые показатели из хранилища.
type StatsRepository interface {
	BaseInfo(ctx context.Context) (*models.BaseInfo, error)
}

// StatsService считает показатели на каждый запрос, без кэширования.
type StatsService struct {
	repo StatsRepository
}

// NewStatsService создаёт StatsService.
func NewStatsService(repo StatsRepository) *StatsService {
	return &StatsService{repo: repo}
}

// BaseInfo возвращает показатели со средней оценкой, округлённой до одного знака.
func (s *StatsService) BaseInfo(ctx context.Context) (*models.BaseInfo, error) {
	const op = "services.stats.BaseInfo"
	info, err := s.repo.BaseInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if info.ReviewCount == 0 {
		info.AverageRating = 0
	}
	info.AverageRating = math.Round(info.AverageRating*10) / 10
	return info, nil
}
