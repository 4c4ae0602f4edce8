package storage

import (
	"ListKeeper/internal/model"
	"ListKeeper/internal/repo"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// DBStorage хранит картинки в таблице images.
type DBStorage struct {
	repo repo.ImageRepository
}

var _ Storage = (*DBStorage)(nil)

// NewDBStorage создаёт хранилище поверх репозитория картинок.
func NewDBStorage(r repo.ImageRepository) *DBStorage {
	return &DBStorage{repo: r}
}

func (s *DBStorage) Put(ctx context.Context, owner string, obj Object) error {
	created, err := s.repo.CreateIfAbsent(ctx, &model.Image{
		Key:         obj.Key,
		UserID:      owner,
		ContentType: obj.ContentType,
		Data:        obj.Data,
	})
	if err != nil {
		return fmt.Errorf("store image %q: %w", obj.Key, err)
	}
	if !created {
		return ErrObjectExists
	}
	return nil
}

func (s *DBStorage) Get(ctx context.Context, key string) (*Object, error) {
	img, err := s.repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("load image %q: %w", key, err)
	}
	return &Object{Key: img.Key, ContentType: img.ContentType, Data: img.Data}, nil
}
