package model

import "time"

// User — учётная запись и строка профиля пользователя.
type User struct {
	ID       string `gorm:"primaryKey;type:uuid"`
	Email    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"` // bcrypt-хеш
	Name     string

	CreatedAt time.Time `gorm:"autoCreateTime"`
}
