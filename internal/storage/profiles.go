package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/magabrotheeeer/coderr/internal/models"
)

const profileSelect = `SELECT u.id, u.username, u.first_name, u.last_name, u.email,
		p.file, p.location, p.tel, p.description, p.working_hours, p.type, p.created_at
	FROM profiles p
	JOIN users u ON u.id = p.user_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*models.Profile, error) {
	var p models.Profile
	if err := row.Scan(&p.User, &p.Username, &p.FirstName, &p.LastName, &p.Email,
		&p.File, &p.Location, &p.Tel, &p.Description, &p.WorkingHours, &p.Type, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProfile возвращает профиль пользователя.
func (s *Storage) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	const op = "storage.GetProfile"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}
	p, err := scanProfile(s.DB.QueryRowContext(ctx, profileSelect+` WHERE p.user_id = $1`, userID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}
	return p, nil
}

// ListProfiles возвращает профили, при непустом типе: только этого типа.
func (s *Storage) ListProfiles(ctx context.Context, profileType models.ProfileType) ([]models.Profile, error) {
	const op = "storage.ListProfiles"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}
	var (
		rows *sql.Rows
		err  error
	)
	if profileType == "" {
		rows, err = s.DB.QueryContext(ctx, profileSelect+` ORDER BY p.user_id`)
	} else {
		rows, err = s.DB.QueryContext(ctx, profileSelect+` WHERE p.type = $1 ORDER BY p.user_id`, profileType)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	profiles := []models.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return profiles, nil
}

// IsBusinessProfile сообщает, есть ли профиль продавца с таким ID.
func (s *Storage) IsBusinessProfile(ctx context.Context, userID int64) (bool, error) {
	const op = "storage.IsBusinessProfile"
	var exists bool
	err := s.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM profiles WHERE user_id = $1 AND type = 'business')`,
		userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// UpdateProfile применяет частичное обновление к пользователю и профилю в одной транзакции.
func (s *Storage) UpdateProfile(ctx context.Context, userID int64, patch models.ProfilePatch) error {
	const op = "storage.UpdateProfile"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}

	userRec := goqu.Record{}
	setIf(userRec, "first_name", patch.FirstName)
	setIf(userRec, "last_name", patch.LastName)
	setIf(userRec, "email", patch.Email)

	profileRec := goqu.Record{}
	setIf(profileRec, "file", patch.File)
	setIf(profileRec, "location", patch.Location)
	setIf(profileRec, "tel", patch.Tel)
	setIf(profileRec, "description", patch.Description)
	setIf(profileRec, "working_hours", patch.WorkingHours)

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if len(userRec) > 0 {
			query, args, err := s.builder.Update("users").Prepared(true).
				Set(userRec).Where(goqu.C("id").Eq(userID)).ToSQL()
			if err != nil {
				return err
			}
			res, err := tx.ExecContext(ctx, query, args...)
			if err != nil {
				return userConflict(err)
			}
			if err := checkAffected(res); err != nil {
				return err
			}
		}
		if len(profileRec) > 0 {
			query, args, err := s.builder.Update("profiles").Prepared(true).
				Set(profileRec).Where(goqu.C("user_id").Eq(userID)).ToSQL()
			if err != nil {
				return err
			}
			res, err := tx.ExecContext(ctx, query, args...)
			if err != nil {
				return err
			}
			return checkAffected(res)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SetProfileFile сохраняет ссылку на загруженный файл профиля.
func (s *Storage) SetProfileFile(ctx context.Context, userID int64, url string) error {
	const op = "storage.SetProfileFile"
	res, err := s.DB.ExecContext(ctx, `UPDATE profiles SET file = $1 WHERE user_id = $2`, url, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := checkAffected(res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func setIf[T any](rec goqu.Record, column string, v *T) {
	if v != nil {
		rec[column] = *v
	}
}
