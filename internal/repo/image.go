package repo

import (
	"ListKeeper/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ImageRepository минимальный контракт доступа к картинкам в БД.
type ImageRepository interface {
	// CreateIfAbsent пытается создать запись. Если ключ уже занят — ничего не делает.
	// Возвращает created=true если запись была создана в этой операции.
	CreateIfAbsent(ctx context.Context, img *model.Image) (created bool, err error)

	// Get возвращает картинку по ключу или gorm.ErrRecordNotFound.
	Get(ctx context.Context, key string) (*model.Image, error)
}

type imageRepo struct {
	db *gorm.DB
}

// NewImageRepository создаёт реализацию репозитория для Image.
func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepo{db: db}
}

func (r *imageRepo) CreateIfAbsent(ctx context.Context, img *model.Image) (bool, error) {
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "object_key"}},
		DoNothing: true,
	}).Create(img)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *imageRepo) Get(ctx context.Context, key string) (*model.Image, error) {
	var img model.Image
	if err := r.db.WithContext(ctx).Where("object_key = ?", key).First(&img).Error; err != nil {
		return nil, err
	}
	return &img, nil
}
