package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/coderr/internal/models"
)

// TokenIssuer выпускает ключ токена для только что созданного пользователя.
type TokenIssuer func(user models.User) (string, error)

// RegisterUser в одной транзакции создаёт пользователя, его профиль и токен доступа.
// Возвращает созданного пользователя и ключ токена.
func (s *Storage) RegisterUser(ctx context.Context, reg models.Registration, issue TokenIssuer) (*models.User, string, error) {
	const op = "storage.RegisterUser"
	if err := ctxDone(ctx, op); err != nil {
		return nil, "", err
	}

	user := models.User{Username: reg.Username, Email: reg.Email, PasswordHash: reg.PasswordHash}
	var key string
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`INSERT INTO users (username, email, password_hash)
			 VALUES ($1, $2, $3)
			 RETURNING id, date_joined`,
			reg.Username, reg.Email, reg.PasswordHash).Scan(&user.ID, &user.DateJoined)
		if err != nil {
			return userConflict(err)
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO profiles (user_id, type) VALUES ($1, $2)`, user.ID, reg.Type); err != nil {
			return err
		}
		if key, err = issue(user); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO auth_tokens (key, user_id) VALUES ($1, $2)`, key, user.ID)
		return err
	})
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return &user, key, nil
}

// GetUserByUsername возвращает пользователя по его username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}
	u, err := scanUser(s.DB.QueryRowContext(ctx, userSelect+` WHERE username = $1`, username))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}
	return u, nil
}

// GetUser возвращает пользователя по ID.
func (s *Storage) GetUser(ctx context.Context, id int64) (*models.User, error) {
	const op = "storage.GetUser"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}
	u, err := scanUser(s.DB.QueryRowContext(ctx, userSelect+` WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}
	return u, nil
}

// UsernameExists проверяет, занято ли имя пользователя.
func (s *Storage) UsernameExists(ctx context.Context, username string) (bool, error) {
	const op = "storage.UsernameExists"
	var exists bool
	err := s.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// EmailExists проверяет, занят ли адрес другим пользователем. exceptID = 0 проверяет всех.
func (s *Storage) EmailExists(ctx context.Context, email string, exceptID int64) (bool, error) {
	const op = "storage.EmailExists"
	var exists bool
	err := s.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = lower($1) AND id <> $2)`,
		email, exceptID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

const userSelect = `SELECT id, username, email, password_hash, first_name, last_name,
		is_staff, is_superuser, date_joined
	FROM users`

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName,
		&u.LastName, &u.IsStaff, &u.IsSuperuser, &u.DateJoined); err != nil {
		return nil, err
	}
	return &u, nil
}

func userConflict(err error) error {
	switch name, ok := constraintViolation(err); {
	case ok && name == "users_username_key":
		return ErrUsernameExists
	case ok && name == "users_email_key":
		return ErrEmailExists
	default:
		return err
	}
}
