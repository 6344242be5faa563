// Package objectstore загружает пользовательские файлы (изображения предложений,
// файлы профилей) в S3-совместимое хранилище MinIO.
package objectstore

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/magabrotheeeer/coderr/internal/config"
)

// MinioStore хранит объекты в одном бакете MinIO.
type MinioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinioStore подключается к MinIO и создаёт бакет, если его нет.
func NewMinioStore(ctx context.Context, cfg config.ObjectStorage) (*MinioStore, error) {
	const op = "objectstore.NewMinioStore"
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: init minio client: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("%s: check bucket: %w", op, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("%s: create bucket: %w", op, err)
		}
	}
	return newStore(client, cfg), nil
}

func newStore(client *minio.Client, cfg config.ObjectStorage) *MinioStore {
	public := cfg.PublicURL
	if public == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		public = scheme + "://" + cfg.Endpoint
	}
	return &MinioStore{client: client, bucket: cfg.Bucket, publicURL: strings.TrimRight(public, "/")}
}

// Put загружает объект и возвращает его публичный адрес.
func (m *MinioStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	const op = "objectstore.Put"
	_, err := m.client.PutObject(ctx, m.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return m.URL(key), nil
}

// PresignGet выдаёт временную ссылку на скачивание.
func (m *MinioStore) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	const op = "objectstore.PresignGet"
	u, err := m.client.PresignedGetObject(ctx, m.bucket, key, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return u.String(), nil
}

// Delete удаляет объект.
func (m *MinioStore) Delete(ctx context.Context, key string) error {
	const op = "objectstore.Delete"
	if err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// URL возвращает публичный адрес объекта.
func (m *MinioStore) URL(key string) string {
	return m.publicURL + "/" + m.bucket + "/" + key
}

// ObjectKey строит уникальный ключ вида prefix/<uuid><ext>.
func ObjectKey(prefix, filename string) string {
	return path.Join(prefix, uuid.NewString()+strings.ToLower(path.Ext(filename)))
}
