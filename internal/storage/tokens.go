package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/coderr/internal/models"
)

// GetToken возвращает сохранённый ключ токена пользователя.
func (s *Storage) GetToken(ctx context.Context, userID int64) (string, error) {
	const op = "storage.GetToken"
	if err := ctxDone(ctx, op); err != nil {
		return "", err
	}
	var key string
	err := s.DB.QueryRowContext(ctx, `SELECT key FROM auth_tokens WHERE user_id = $1`, userID).Scan(&key)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, notFound(err))
	}
	return key, nil
}

// SaveToken сохраняет ключ токена пользователя, заменяя предыдущий.
func (s *Storage) SaveToken(ctx context.Context, userID int64, key string) error {
	const op = "storage.SaveToken"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO auth_tokens (key, user_id) VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET key = EXCLUDED.key, created_at = NOW()`,
		key, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// IdentityByToken находит владельца ключа вместе с типом его профиля.
func (s *Storage) IdentityByToken(ctx context.Context, key string) (*models.Identity, error) {
	const op = "storage.IdentityByToken"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}
	var (
		id          models.Identity
		profileType sql.NullString
	)
	err := s.DB.QueryRowContext(ctx,
		`SELECT u.id, u.username, u.email, u.is_staff OR u.is_superuser, p.type
		 FROM auth_tokens t
		 JOIN users u ON u.id = t.user_id
		 LEFT JOIN profiles p ON p.user_id = u.id
		 WHERE t.key = $1`, key).
		Scan(&id.UserID, &id.Username, &id.Email, &id.IsStaff, &profileType)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}
	id.Type = models.ProfileType(profileType.String)
	return &id, nil
}
