// Package services содержит бизнес-логику отзывов покупателей о продавцах.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/coderr/internal/models"
	"github.com/magabrotheeeer/coderr/internal/storage"
)

// Размеры страницы отзывов.
const (
	DefaultPageSize = 6
	MaxPageSize     = 100
)

const (
	msgNotBusiness     = "Business user not found."
	msgAlreadyReviewed = "You have already reviewed this business user."
	msgNotAuthor       = "You can only change your own reviews."
)

// ReviewRepository описывает хранилище отзывов.
type ReviewRepository interface {
	CreateReview(ctx context.Context, reviewerID int64, in models.ReviewInput) (*models.Review, error)
	ReviewExists(ctx context.Context, businessUserID, reviewerID int64) (bool, error)
	GetReview(ctx context.Context, id int64) (*models.Review, error)
	ListReviews(ctx context.Context, f models.ReviewFilter) ([]models.Review, error)
	UpdateReview(ctx context.Context, id int64, patch models.ReviewPatch) (*models.Review, error)
	DeleteReview(ctx context.Context, id int64) error
	IsBusinessProfile(ctx context.Context, userID int64) (bool, error)
}

// ReviewService реализует работу с отзывами. Все операции доступны только покупателям.
type ReviewService struct {
	repo ReviewRepository
	log  *slog.Logger
}

// NewReviewService создаёт ReviewService.
func NewReviewService(repo ReviewRepository, log *slog.Logger) *ReviewService {
	return &ReviewService{repo: repo, log: log}
}

// List возвращает страницу отзывов по фильтру.
func (s *ReviewService) List(ctx context.Context, who models.Identity, f models.ReviewFilter) ([]models.Review, error) {
	const op = "services.review.List"
	if !who.IsCustomer() {
		return nil, models.Forbidden(models.MsgPermissionDenied)
	}
	if f.PageSize <= 0 {
		f.PageSize = DefaultPageSize
	}
	f.PageSize = min(f.PageSize, MaxPageSize)
	f.Page = max(f.Page, 1)

	reviews, err := s.repo.ListReviews(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return reviews, nil
}

// Get возвращает отзыв по ID.
func (s *ReviewService) Get(ctx context.Context, who models.Identity, id int64) (*models.Review, error) {
	const op = "services.review.Get"
	if !who.IsCustomer() {
		return nil, models.Forbidden(models.MsgPermissionDenied)
	}
	r, err := s.repo.GetReview(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, models.NotFound(models.MsgNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return r, nil
}

// Create сохраняет отзыв от имени участника. Один покупатель может оставить
// продавцу только один отзыв.
func (s *ReviewService) Create(ctx context.Context, who models.Identity, in models.ReviewInput) (*models.Review, error) {
	const op = "services.review.Create"
	if !who.IsCustomer() {
		return nil, models.Forbidden(models.MsgPermissionDenied)
	}

	ok, err := s.repo.IsBusinessProfile(ctx, in.BusinessUser)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return nil, models.FieldError("business_user", msgNotBusiness)
	}
	exists, err := s.repo.ReviewExists(ctx, in.BusinessUser, who.UserID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		return nil, models.FieldError("business_user", msgAlreadyReviewed)
	}

	r, err := s.repo.CreateReview(ctx, who.UserID, in)
	if errors.Is(err, storage.ErrReviewExists) {
		return nil, models.FieldError("business_user", msgAlreadyReviewed)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return r, nil
}

// Update меняет оценку и текст отзыва. Доступно только автору.
func (s *ReviewService) Update(ctx context.Context, who models.Identity, id int64, patch models.ReviewPatch) (*models.Review, error) {
	const op = "services.review.Update"
	if _, err := s.authored(ctx, who, id); err != nil {
		return nil, err
	}
	r, err := s.repo.UpdateReview(ctx, id, patch)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, models.NotFound(models.MsgNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return r, nil
}

// Delete удаляет отзыв. Доступно только автору.
func (s *ReviewService) Delete(ctx context.Context, who models.Identity, id int64) error {
	const op = "services.review.Delete"
	if _, err := s.authored(ctx, who, id); err != nil {
		return err
	}
	err := s.repo.DeleteReview(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return models.NotFound(models.MsgNotFound)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *ReviewService) authored(ctx context.Context, who models.Identity, id int64) (*models.Review, error) {
	r, err := s.Get(ctx, who, id)
	if err != nil {
		return nil, err
	}
	if r.Reviewer != who.UserID {
		return nil, models.Forbidden(msgNotAuthor)
	}
	return r, nil
}
