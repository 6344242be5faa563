// Package services содержит бизнес-логику профилей пользователей.
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/magabrotheeeer/coderr/internal/lib/sl"
	"github.com/magabrotheeeer/coderr/internal/models"
	"github.com/magabrotheeeer/coderr/internal/objectstore"
	"github.com/magabrotheeeer/coderr/internal/storage"
)

const (
	msgEditForbidden = "Forbidden: You do not have permission to edit this profile."
	msgTypeImmutable = "Profile type cannot be changed."
	msgEmailTaken    = "A user with this email already exists."
)

// ProfileRepository описывает хранилище профилей.
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID int64) (*models.Profile, error)
	ListProfiles(ctx context.Context, profileType models.ProfileType) ([]models.Profile, error)
	UpdateProfile(ctx context.Context, userID int64, patch models.ProfilePatch) error
	SetProfileFile(ctx context.Context, userID int64, url string) error
	EmailExists(ctx context.Context, email string, exceptID int64) (bool, error)
}

// Uploader загружает файл в объектное хранилище и возвращает его адрес.
type Uploader interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

// IdentityInvalidator сбрасывает закэшированную идентичность пользователя.
type IdentityInvalidator interface {
	InvalidateUser(ctx context.Context, userID int64) error
}

// ProfileService реализует чтение и изменение профилей.
type ProfileService struct {
	repo       ProfileRepository
	files      Uploader
	identities IdentityInvalidator
	log        *slog.Logger
}

// NewProfileService создаёт ProfileService. files и identities могут быть nil.
func NewProfileService(repo ProfileRepository, files Uploader, identities IdentityInvalidator, log *slog.Logger) *ProfileService {
	return &ProfileService{
		repo:       repo,
		files:      files,
		identities: identities,
		log:        log,
	}
}

// Get возвращает профиль по ID пользователя.
func (s *ProfileService) Get(ctx context.Context, id int64) (*models.Profile, error) {
	const op = "services.profile.Get"
	p, err := s.repo.GetProfile(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, models.NotFound(models.MsgNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// List возвращает все профили.
func (s *ProfileService) List(ctx context.Context) ([]models.Profile, error) {
	const op = "services.profile.List"
	profiles, err := s.repo.ListProfiles(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return profiles, nil
}

// ListBusiness возвращает профили продавцов. Пустой список считается отсутствием ресурса.
func (s *ProfileService) ListBusiness(ctx context.Context) ([]models.BusinessProfile, error) {
	const op = "services.profile.ListBusiness"
	profiles, err := s.repo.ListProfiles(ctx, models.ProfileBusiness)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(profiles) == 0 {
		return nil, &models.NotFoundError{Key: "message", Message: "No business profiles found."}
	}
	out := make([]models.BusinessProfile, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, p.AsBusiness())
	}
	return out, nil
}

// ListCustomer возвращает профили покупателей.
func (s *ProfileService) ListCustomer(ctx context.Context) ([]models.CustomerProfile, error) {
	const op = "services.profile.ListCustomer"
	profiles, err := s.repo.ListProfiles(ctx, models.ProfileCustomer)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(profiles) == 0 {
		return nil, &models.NotFoundError{Key: "message", Message: "No customer profiles found."}
	}
	out := make([]models.CustomerProfile, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, p.AsCustomer())
	}
	return out, nil
}

// Update применяет частичное обновление. Менять профиль может только его владелец,
// тип профиля неизменяем.
func (s *ProfileService) Update(ctx context.Context, who models.Identity, id int64, patch models.ProfilePatch) (*models.Profile, error) {
	const op = "services.profile.Update"

	current, err := s.owned(ctx, who, id)
	if err != nil {
		return nil, err
	}
	if patch.Type != nil && *patch.Type != current.Type {
		return nil, models.FieldError("type", msgTypeImmutable)
	}
	if patch.Email != nil {
		taken, err := s.repo.EmailExists(ctx, *patch.Email, id)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if taken {
			return nil, models.FieldError("email", msgEmailTaken)
		}
	}

	err = s.repo.UpdateProfile(ctx, id, patch)
	switch {
	case errors.Is(err, storage.ErrEmailExists):
		return nil, models.FieldError("email", msgEmailTaken)
	case errors.Is(err, storage.ErrNotFound):
		return nil, models.NotFound(models.MsgNotFound)
	case err != nil:
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if patch.Email != nil {
		s.invalidate(ctx, id)
	}
	return s.Get(ctx, id)
}

// UploadFile загружает файл профиля в объектное хранилище и сохраняет ссылку на него.
func (s *ProfileService) UploadFile(ctx context.Context, who models.Identity, id int64, file models.FileUpload) (*models.Profile, error) {
	const op = "services.profile.UploadFile"
	if s.files == nil {
		return nil, models.ErrUnavailable
	}
	if _, err := s.owned(ctx, who, id); err != nil {
		return nil, err
	}

	key := objectstore.ObjectKey(fmt.Sprintf("profiles/%d", id), file.Filename)
	url, err := s.files.Put(ctx, key, file.Body, file.Size, file.ContentType)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.SetProfileFile(ctx, id, url); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.Get(ctx, id)
}

func (s *ProfileService) owned(ctx context.Context, who models.Identity, id int64) (*models.Profile, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.User != who.UserID {
		return nil, models.Forbidden(msgEditForbidden)
	}
	return p, nil
}

func (s *ProfileService) invalidate(ctx context.Context, id int64) {
	if s.identities == nil {
		return
	}
	if err := s.identities.InvalidateUser(ctx, id); err != nil {
		s.log.Warn("failed to invalidate cached identity", slog.Int64("user_id", id), sl.Err(err))
	}
}
