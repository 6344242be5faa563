package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/coderr/internal/migrations"
	"github.com/magabrotheeeer/coderr/internal/models"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает пользователя с профилем указанного типа
func (f *TestDataFactory) CreateUser(t *testing.T, username string, profileType models.ProfileType) int64 {
	var id int64
	err := f.storage.DB.QueryRow(`INSERT INTO users (username, email, password_hash, first_name, last_name)
		VALUES ($1, $2, 'hash', 'First', 'Last') RETURNING id`,
		username, username+"@example.com").Scan(&id)
	require.NoError(t, err)
	_, err = f.storage.DB.Exec(`INSERT INTO profiles (user_id, type) VALUES ($1, $2)`, id, profileType)
	require.NoError(t, err)
	return id
}

// CreateOffer создает предложение с уровнями вида (цена, срок)
func (f *TestDataFactory) CreateOffer(t *testing.T, userID int64, title string, tiers ...models.OfferDetailInput) *models.Offer {
	offer, err := f.storage.CreateOffer(context.Background(), userID, models.OfferInput{
		Title:       title,
		Description: title + " description",
		Details:     tiers,
	})
	require.NoError(t, err)
	return offer
}

// CountRows возвращает количество строк в таблице
func (f *TestDataFactory) CountRows(t *testing.T, table string) int {
	var n int
	require.NoError(t, f.storage.DB.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

// setupTestDatabase создает тестовую БД в контейнере PostgreSQL и накатывает миграции
func setupTestDatabase(t *testing.T) (*Storage, *TestDataFactory) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	storage, err := New(connStr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })

	migrationsPath, err := filepath.Abs("../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, migrationsPath))

	return storage, NewTestDataFactory(storage)
}
