package main

import (
	"ListKeeper/internal/config"
	"ListKeeper/internal/repo"
	"ListKeeper/internal/storage"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewImageStorage(t *testing.T) {
	db, err := repo.InitDB("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	logger := zap.NewNop().Sugar()

	st, err := newImageStorage(context.Background(), &config.Config{}, db, logger)
	require.NoError(t, err)
	assert.IsType(t, &storage.DBStorage{}, st)

	st, err = newImageStorage(context.Background(), &config.Config{
		S3Bucket:    "lists",
		S3Region:    "us-east-1",
		S3Endpoint:  "http://127.0.0.1:9000",
		S3AccessKey: "minio",
		S3SecretKey: "minio123",
	}, db, logger)
	require.NoError(t, err)
	assert.IsType(t, &storage.S3Storage{}, st)
}
