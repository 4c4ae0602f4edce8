// Package storage хранит бинарное содержимое картинок записей.
//
// Реализации: DBStorage (таблица images через gorm, по умолчанию)
// и S3Storage (S3-совместимый бакет, например MinIO).
package storage

import (
	"context"
	"errors"
)

var (
	// ErrObjectExists — объект с таким ключом уже есть; перезапись запрещена.
	ErrObjectExists = errors.New("object already exists")
	// ErrObjectNotFound — объекта с таким ключом нет.
	ErrObjectNotFound = errors.New("object not found")
)

// Object — содержимое и метаданные картинки.
type Object struct {
	Key         string
	ContentType string
	Data        []byte
}

// Storage — хранилище объектов без перезаписи.
type Storage interface {
	// Put сохраняет объект владельца owner. Если ключ занят — ErrObjectExists.
	Put(ctx context.Context, owner string, obj Object) error
	// Get возвращает объект или ErrObjectNotFound.
	Get(ctx context.Context, key string) (*Object, error)
}
