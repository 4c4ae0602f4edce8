package model

import "time"

// Image — бинарное содержимое загруженной картинки (хранилище по умолчанию).
type Image struct {
	Key         string `gorm:"primaryKey;column:object_key"`
	UserID      string `gorm:"index"`
	ContentType string `gorm:"not null"`
	Data        []byte `gorm:"not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}
