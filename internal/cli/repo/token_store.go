package repo

import (
	"errors"

	"ListKeeper/internal/cli/model"
)

// ErrNoToken — на клиенте нет сохранённого токена (пользователь не входил).
var ErrNoToken = errors.New("no stored auth token")

// TokenStore описывает абстракцию хранилища auth-токена на клиенте.
type TokenStore interface {
	Save(token string) error
	Load() (string, error)
	Clear() error
}

// ProfileStore хранит профиль последнего вошедшего пользователя.
type ProfileStore interface {
	SaveProfile(p *model.Profile) error
	LoadProfile() (*model.Profile, error)
	ClearProfile() error
}
