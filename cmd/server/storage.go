package main

import (
	"ListKeeper/internal/config"
	"ListKeeper/internal/repo"
	"ListKeeper/internal/storage"
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// newImageStorage выбирает S3, если задан бакет, иначе картинки лежат в БД.
func newImageStorage(ctx context.Context, cfg *config.Config, db *gorm.DB, logger *zap.SugaredLogger) (storage.Storage, error) {
	if cfg.S3Bucket == "" {
		logger.Infow("image storage: database")
		return storage.NewDBStorage(repo.NewImageRepository(db)), nil
	}
	logger.Infow("image storage: s3", "bucket", cfg.S3Bucket, "endpoint", cfg.S3Endpoint)
	s3, err := storage.NewS3Storage(ctx, storage.S3Config{
		Bucket:    cfg.S3Bucket,
		Region:    cfg.S3Region,
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	})
	if err != nil {
		return nil, err
	}
	return s3, nil
}
