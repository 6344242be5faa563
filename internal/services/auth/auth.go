// Package services содержит логику регистрации, входа и проверки токенов доступа.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/coderr/internal/lib/jwt"
	"github.com/magabrotheeeer/coderr/internal/lib/password"
	"github.com/magabrotheeeer/coderr/internal/lib/sl"
	"github.com/magabrotheeeer/coderr/internal/models"
	"github.com/magabrotheeeer/coderr/internal/storage"
)

// ErrInvalidToken: токен не прошёл проверку подписи или не найден.
var ErrInvalidToken = errors.New("invalid token")

// Сообщения ошибок, совместимые с фронтендом.
const (
	msgPasswordMismatch   = "Passwords do not match."
	msgUsernameTaken      = "A user with this username already exists."
	msgEmailTaken         = "A user with this email already exists."
	msgInvalidCredentials = "Invalid username or password."
)

// UserRepository описывает хранилище пользователей и токенов.
type UserRepository interface {
	RegisterUser(ctx context.Context, reg models.Registration, issue storage.TokenIssuer) (*models.User, string, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string, exceptID int64) (bool, error)
	GetToken(ctx context.Context, userID int64) (string, error)
	SaveToken(ctx context.Context, userID int64, key string) error
	IdentityByToken(ctx context.Context, key string) (*models.Identity, error)
}

// Cache описывает кэш разрешённых токенов.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
}

// AuthService отвечает за регистрацию, вход и аутентификацию запросов.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	cache    Cache
	cacheTTL time.Duration
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService. cache может быть nil.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, cache Cache, cacheTTL time.Duration, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

func tokenCacheKey(token string) string {
	return "token:" + token
}

// Register создаёт пользователя, профиль и токен одной транзакцией.
// Конфликты имени и почты возвращаются как models.ValidationErrors.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResult, error) {
	const op = "services.auth.Register"

	errs := models.ValidationErrors{}
	if req.Password != req.RepeatedPassword {
		errs.Add("password", msgPasswordMismatch)
	}
	if !req.Type.Valid() {
		errs.Add("type", fmt.Sprintf("\"%s\" is not a valid choice.", req.Type))
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	taken, err := s.users.UsernameExists(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if taken {
		return nil, models.FieldError("username", msgUsernameTaken)
	}
	taken, err = s.users.EmailExists(ctx, req.Email, 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if taken {
		return nil, models.FieldError("email", msgEmailTaken)
	}

	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user, key, err := s.users.RegisterUser(ctx, models.Registration{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashed,
		Type:         req.Type,
	}, func(u models.User) (string, error) {
		return s.jwtMaker.GenerateToken(u.ID, u.Username)
	})
	switch {
	case errors.Is(err, storage.ErrUsernameExists):
		return nil, models.FieldError("username", msgUsernameTaken)
	case errors.Is(err, storage.ErrEmailExists):
		return nil, models.FieldError("email", msgEmailTaken)
	case err != nil:
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.AuthResult{Token: key, UserID: user.ID, Username: user.Username, Email: user.Email}, nil
}

// Login проверяет пароль и возвращает действующий токен пользователя,
// выпуская новый, если сохранённого нет или он больше не проходит проверку.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (*models.AuthResult, error) {
	const op = "services.auth.Login"

	user, err := s.users.GetUserByUsername(ctx, username)
	if errors.Is(err, storage.ErrNotFound) {
		_ = password.CompareDummy(rawPassword)
		return nil, models.FieldError(models.NonFieldErrors, msgInvalidCredentials)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return nil, models.FieldError(models.NonFieldErrors, msgInvalidCredentials)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	key, err := s.users.GetToken(ctx, user.ID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if key != "" {
		if _, perr := s.jwtMaker.ParseToken(key); perr == nil {
			return &models.AuthResult{Token: key, UserID: user.ID, Username: user.Username, Email: user.Email}, nil
		}
		s.invalidate(ctx, key)
	}

	key, err = s.jwtMaker.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.users.SaveToken(ctx, user.ID, key); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &models.AuthResult{Token: key, UserID: user.ID, Username: user.Username, Email: user.Email}, nil
}

// Authenticate проверяет токен и возвращает участника запроса.
// Токен принимается, только если подпись верна и он совпадает с сохранённым ключом.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.Identity, error) {
	const op = "services.auth.Authenticate"

	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if s.cache != nil {
		var cached models.Identity
		found, err := s.cache.Get(ctx, tokenCacheKey(token), &cached)
		if err != nil {
			s.log.Warn("token cache read failed", sl.Err(err))
		} else if found && cached.UserID == claims.UserID {
			return &cached, nil
		}
	}

	identity, err := s.users.IdentityByToken(ctx, token)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if identity.UserID != claims.UserID {
		return nil, ErrInvalidToken
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, tokenCacheKey(token), identity, s.cacheTTL); err != nil {
			s.log.Warn("token cache write failed", sl.Err(err))
		}
	}
	return identity, nil
}

// InvalidateUser сбрасывает закэшированную идентичность пользователя,
// например после изменения его профиля.
func (s *AuthService) InvalidateUser(ctx context.Context, userID int64) error {
	const op = "services.auth.InvalidateUser"
	if s.cache == nil {
		return nil
	}
	key, err := s.users.GetToken(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Invalidate(ctx, tokenCacheKey(key)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *AuthService) invalidate(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, tokenCacheKey(key)); err != nil {
		s.log.Warn("token cache invalidate failed", sl.Err(err))
	}
}
