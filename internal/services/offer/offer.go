// Package services содержит бизнес-логику каталога предложений.
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/magabrotheeeer/coderr/internal/models"
	"github.com/magabrotheeeer/coderr/internal/objectstore"
	"github.com/magabrotheeeer/coderr/internal/storage"
)

// Размеры страницы каталога.
const (
	DefaultPageSize = 6
	MaxPageSize     = 100
)

const (
	msgPatchForbidden  = "You do not have permission to patch this offer."
	msgDeleteForbidden = "You do not have permission to delete this offer."
	msgInvalidPage     = "Invalid page."
)

// OfferRepository описывает хранилище предложений.
type OfferRepository interface {
	CreateOffer(ctx context.Context, userID int64, in models.OfferInput) (*models.Offer, error)
	ListOffers(ctx context.Context, f models.OfferFilter) (*models.OfferPage, error)
	GetOffer(ctx context.Context, id int64) (*models.Offer, error)
	UpdateOffer(ctx context.Context, id int64, patch models.OfferPatch) (*models.Offer, error)
	DeleteOffer(ctx context.Context, id int64) error
	SetOfferImage(ctx context.Context, id int64, url string) error
	GetOfferDetail(ctx context.Context, id int64) (*models.OfferDetail, error)
	ListOfferDetails(ctx context.Context) ([]models.OfferDetail, error)
}

// Uploader загружает файл в объектное хранилище и возвращает его адрес.
type Uploader interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

// OfferService реализует операции каталога.
type OfferService struct {
	repo  OfferRepository
	files Uploader
	log   *slog.Logger
}

// NewOfferService создаёт OfferService. files может быть nil.
func NewOfferService(repo OfferRepository, files Uploader, log *slog.Logger) *OfferService {
	return &OfferService{
		repo:  repo,
		files: files,
		log:   log,
	}
}

// List возвращает страницу каталога. Продавец видит только свои предложения,
// покупатели и анонимные пользователи видят все. who может быть nil.
func (s *OfferService) List(ctx context.Context, who *models.Identity, f models.OfferFilter) (*models.OfferPage, error) {
	const op = "services.offer.List"

	if who != nil && who.IsBusiness() {
		owner := who.UserID
		f.OwnerID = &owner
	}
	if f.PageSize <= 0 {
		f.PageSize = DefaultPageSize
	}
	f.PageSize = min(f.PageSize, MaxPageSize)
	if _, ok := models.PageOffset(f.Page, f.PageSize); f.Page < 1 || !ok {
		return nil, models.NotFound(msgInvalidPage)
	}

	page, err := s.repo.ListOffers(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if offset, _ := models.PageOffset(f.Page, f.PageSize); f.Page > 1 && offset >= page.Count {
		return nil, models.NotFound(msgInvalidPage)
	}
	return page, nil
}

// Create сохраняет предложение продавца вместе с уровнями.
func (s *OfferService) Create(ctx context.Context, who models.Identity, in models.OfferInput) (*models.Offer, error) {
	const op = "services.offer.Create"
	if !who.IsBusiness() {
		return nil, models.Forbidden(models.MsgPermissionDenied)
	}

	types := make([]models.OfferType, 0, len(in.Details))
	errs := models.ValidationErrors{}
	for _, d := range in.Details {
		types = append(types, d.OfferType)
		if d.Price.IsNegative() {
			errs.Add("details", "Price must not be negative.")
		}
	}
	checkTypes(errs, types)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	offer, err := s.repo.CreateOffer(ctx, who.UserID, in)
	if errors.Is(err, storage.ErrOfferTypeExists) {
		return nil, models.FieldError("details", "Each offer type may appear only once.")
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return offer, nil
}

// Get возвращает предложение со всеми уровнями.
func (s *OfferService) Get(ctx context.Context, id int64) (*models.Offer, error) {
	const op = "services.offer.Get"
	offer, err := s.repo.GetOffer(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, models.NotFound(models.MsgNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return offer, nil
}

// Update частично обновляет предложение владельца. Уровни сопоставляются по offer_type
// и должны уже существовать.
func (s *OfferService) Update(ctx context.Context, who models.Identity, id int64, patch models.OfferPatch) (*models.Offer, error) {
	const op = "services.offer.Update"

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.User != who.UserID {
		return nil, models.Forbidden(msgPatchForbidden)
	}

	existing := make(map[models.OfferType]bool, len(current.Details))
	for _, d := range current.Details {
		existing[d.OfferType] = true
	}
	types := make([]models.OfferType, 0, len(patch.Details))
	errs := models.ValidationErrors{}
	for _, d := range patch.Details {
		types = append(types, d.OfferType)
		if d.Price != nil && d.Price.IsNegative() {
			errs.Add("details", "Price must not be negative.")
		}
		if d.OfferType.Valid() && !existing[d.OfferType] {
			errs.Add("details", fmt.Sprintf("Offer has no %s detail.", d.OfferType))
		}
	}
	checkTypes(errs, types)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	offer, err := s.repo.UpdateOffer(ctx, id, patch)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, models.NotFound(models.MsgNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return offer, nil
}

// Delete удаляет предложение владельца вместе с уровнями и заказами на них.
func (s *OfferService) Delete(ctx context.Context, who models.Identity, id int64) error {
	const op = "services.offer.Delete"

	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.User != who.UserID {
		return models.Forbidden(msgDeleteForbidden)
	}
	err = s.repo.DeleteOffer(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return models.NotFound(models.MsgNotFound)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UploadImage загружает изображение предложения и сохраняет ссылку на него.
func (s *OfferService) UploadImage(ctx context.Context, who models.Identity, id int64, file models.FileUpload) (*models.Offer, error) {
	const op = "services.offer.UploadImage"
	if s.files == nil {
		return nil, models.ErrUnavailable
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.User != who.UserID {
		return nil, models.Forbidden(msgPatchForbidden)
	}

	key := objectstore.ObjectKey(fmt.Sprintf("offers/%d", id), file.Filename)
	url, err := s.files.Put(ctx, key, file.Body, file.Size, file.ContentType)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.SetOfferImage(ctx, id, url); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.Get(ctx, id)
}

// GetDetail возвращает уровень предложения.
func (s *OfferService) GetDetail(ctx context.Context, id int64) (*models.OfferDetail, error) {
	const op = "services.offer.GetDetail"
	d, err := s.repo.GetOfferDetail(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, models.NotFound(models.MsgNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return d, nil
}

// ListDetails возвращает все уровни всех предложений.
func (s *OfferService) ListDetails(ctx context.Context) ([]models.OfferDetail, error) {
	const op = "services.offer.ListDetails"
	details, err := s.repo.ListOfferDetails(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return details, nil
}

func checkTypes(errs models.ValidationErrors, types []models.OfferType) {
	seen := make(map[models.OfferType]bool, len(types))
	for _, t := range types {
		if !t.Valid() {
			errs.Add("details", fmt.Sprintf("\"%s\" is not a valid offer type.", t))
			continue
		}
		if seen[t] {
			errs.Add("details", "Each offer type may appear only once.")
		}
		seen[t] = true
	}
}
