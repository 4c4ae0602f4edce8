package fs

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"ListKeeper/internal/cli/model"
	"ListKeeper/internal/cli/repo"
)

const (
	tokenFile   = "auth_token"
	profileFile = "profile.json"
)

// AuthFSStore — файловое хранилище токена и профиля пользователя для CLI.
type AuthFSStore struct {
	Dir string
}

var (
	_ repo.TokenStore   = AuthFSStore{}
	_ repo.ProfileStore = AuthFSStore{}
)

func (s AuthFSStore) path(name string) (string, error) {
	if s.Dir == "" {
		return "", errors.New("client dir is not configured")
	}
	if err := os.MkdirAll(s.Dir, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(s.Dir, name), nil
}

// Save сохраняет auth‑токен в файл.
func (s AuthFSStore) Save(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("empty token")
	}
	p, err := s.path(tokenFile)
	if err != nil {
		return err
	}
	return os.WriteFile(p, []byte(token), 0o600)
}

// Load читает auth‑токен из файла. Нет файла или он пуст — repo.ErrNoToken.
func (s AuthFSStore) Load() (string, error) {
	p, err := s.path(tokenFile)
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return "", repo.ErrNoToken
	}
	if err != nil {
		return "", err
	}
	// обрезаем завершающие переводы строки/пробелы
	tok := strings.TrimSpace(string(b))
	if tok == "" {
		return "", repo.ErrNoToken
	}
	return tok, nil
}

// Clear удаляет токен, отсутствие файла не ошибка.
func (s AuthFSStore) Clear() error {
	return s.remove(tokenFile)
}

func (s AuthFSStore) SaveProfile(p *model.Profile) error {
	if p == nil {
		return errors.New("nil profile")
	}
	path, err := s.path(profileFile)
	if err != nil {
		return err
	}
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

// LoadProfile возвращает (nil, nil), если профиль ещё не сохранялся.
func (s AuthFSStore) LoadProfile() (*model.Profile, error) {
	path, err := s.path(profileFile)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var p model.Profile
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s AuthFSStore) ClearProfile() error {
	return s.remove(profileFile)
}

func (s AuthFSStore) remove(name string) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
