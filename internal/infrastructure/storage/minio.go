package storage

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/tu-usuario/tienda-movil/internal/application/ports"
	"github.com/tu-usuario/tienda-movil/pkg/config"
)

var _ ports.ImageStore = (*MinioImageStore)(nil)

// MinioImageStore implementa el puerto ImageStore sobre un bucket MinIO/S3.
type MinioImageStore struct {
	client *minio.Client
	bucket string
}

// NewMinioImageStore conecta con MinIO y asegura que el bucket exista.
func NewMinioImageStore(ctx context.Context, cfg config.StorageConfig) (*MinioImageStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("crear cliente minio: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("verificar bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("crear bucket: %w", err)
		}
	}

	return &MinioImageStore{client: client, bucket: cfg.Bucket}, nil
}

// Save sube la imagen con un nombre único y devuelve la clave del objeto.
func (s *MinioImageStore) Save(ctx context.Context, data []byte, originalFilename string) (string, error) {
	ext := filepath.Ext(originalFilename)
	key := fmt.Sprintf("product_%s_%d%s", uuid.New().String()[:8], time.Now().Unix(), ext)

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentTypeFor(ext),
	})
	if err != nil {
		return "", fmt.Errorf("subir imagen: %w", err)
	}
	return key, nil
}

// Delete elimina el objeto del bucket.
func (s *MinioImageStore) Delete(ctx context.Context, path string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, path, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("eliminar imagen: %w", err)
	}
	return nil
}

// URL devuelve una URL firmada de lectura válida por una hora.
func (s *MinioImageStore) URL(ctx context.Context, path string) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, path, time.Hour, nil)
	if err != nil {
		return "", fmt.Errorf("generar URL firmada: %w", err)
	}
	return u.String(), nil
}

func contentTypeFor(ext string) string {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
