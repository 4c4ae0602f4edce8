// Package session — явная сессия пользователя CLI: токен, профиль и подписчики
// на смену состояния авторизации.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"ListKeeper/internal/cli/api"
	"ListKeeper/internal/cli/model"
	"ListKeeper/internal/cli/repo"

	"go.uber.org/zap"
)

var (
	ErrNotSignedIn = errors.New("not signed in: run login or register first")
	ErrClosed      = errors.New("session closed")
)

// Event смена состояния авторизации.
type Event int

const (
	EventSignedIn Event = iota
	EventSignedOut
	EventProfileUpdated
)

func (e Event) String() string {
	switch e {
	case EventSignedIn:
		return "signed in"
	case EventSignedOut:
		return "signed out"
	case EventProfileUpdated:
		return "profile updated"
	}
	return "unknown"
}

// Listener получает событие и текущий профиль (nil после выхода).
type Listener func(Event, *model.Profile)

// AuthAPI — серверные операции, которые использует сессия.
type AuthAPI interface {
	Register(ctx context.Context, email, password, name string) (string, *model.Profile, error)
	Login(ctx context.Context, email, password string) (string, *model.Profile, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*model.Profile, error)
	SetToken(token string)
}

// Session создаётся при старте CLI, обновляется при входе/выходе и закрывается при завершении.
type Session struct {
	api      AuthAPI
	tokens   repo.TokenStore
	profiles repo.ProfileStore
	logger   *zap.SugaredLogger

	mu        sync.RWMutex
	profile   *model.Profile
	offline   bool
	listeners map[int]Listener
	nextID    int
	closed    bool
}

func New(a AuthAPI, tokens repo.TokenStore, profiles repo.ProfileStore, logger *zap.SugaredLogger) *Session {
	return &Session{
		api:       a,
		tokens:    tokens,
		profiles:  profiles,
		logger:    logger,
		listeners: make(map[int]Listener),
	}
}

// Start восстанавливает сессию из сохранённого токена и сверяет профиль с сервером.
// Отозванный или просроченный токен удаляется, это не ошибка.
func (s *Session) Start(ctx context.Context) error {
	token, err := s.tokens.Load()
	if errors.Is(err, repo.ErrNoToken) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load token: %w", err)
	}
	s.api.SetToken(token)

	p, err := s.api.Me(ctx)
	if errors.Is(err, api.ErrUnauthorized) {
		s.logger.Infow("stored token rejected, signing out")
		s.forget()
		return nil
	}
	if err != nil {
		// сервер недоступен: работаем с последним известным профилем, не подтверждённым сервером
		if cached, cerr := s.profiles.LoadProfile(); cerr == nil && cached != nil {
			s.setProfile(cached)
			s.setOffline(true)
			s.logger.Warnw("session offline, using cached profile", "email", cached.Email, "error", err)
		}
		return fmt.Errorf("refresh profile: %w", err)
	}
	s.apply(EventSignedIn, p)
	return nil
}

// SignIn вход по email и паролю.
func (s *Session) SignIn(ctx context.Context, email, password string) (*model.Profile, error) {
	if s.isClosed() {
		return nil, ErrClosed
	}
	token, p, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Save(token); err != nil {
		return nil, fmt.Errorf("saving auth: %w", err)
	}
	s.apply(EventSignedIn, p)
	return p, nil
}

// SignUp регистрирует пользователя с профилем и сразу входит.
func (s *Session) SignUp(ctx context.Context, email, password, name string) (*model.Profile, error) {
	if s.isClosed() {
		return nil, ErrClosed
	}
	token, p, err := s.api.Register(ctx, email, password, name)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Save(token); err != nil {
		return nil, fmt.Errorf("saving auth: %w", err)
	}
	s.apply(EventSignedIn, p)
	return p, nil
}

// SignOut выходит на сервере и очищает локальное состояние даже при ошибке сервера.
func (s *Session) SignOut(ctx context.Context) error {
	if err := s.api.Logout(ctx); err != nil {
		s.logger.Warnw("server logout failed", "error", err)
	}
	s.forget()
	return nil
}

// Refresh перечитывает профиль с сервера.
func (s *Session) Refresh(ctx context.Context) (*model.Profile, error) {
	if !s.SignedIn() {
		return nil, ErrNotSignedIn
	}
	p, err := s.api.Me(ctx)
	if errors.Is(err, api.ErrUnauthorized) {
		s.forget()
		return nil, ErrNotSignedIn
	}
	if err != nil {
		return nil, err
	}
	s.apply(EventProfileUpdated, p)
	return p, nil
}

// Profile текущий профиль или nil.
func (s *Session) Profile() *model.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

// Offline — профиль восстановлен из кэша и ещё не подтверждён сервером.
func (s *Session) Offline() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.offline
}

func (s *Session) SignedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile != nil
}

// Subscribe регистрирует слушателя. Возвращает функцию отписки.
func (s *Session) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return func() {}
	}
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Close снимает всех слушателей. Токен остаётся для следующего запуска.
func (s *Session) Close() error {
	s.mu.Lock()
	s.closed = true
	s.listeners = make(map[int]Listener)
	s.mu.Unlock()
	return nil
}

func (s *Session) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

func (s *Session) setOffline(v bool) {
	s.mu.Lock()
	s.offline = v
	s.mu.Unlock()
}

func (s *Session) setProfile(p *model.Profile) {
	s.mu.Lock()
	s.profile = p
	s.mu.Unlock()
}

// apply сохраняет профиль и уведомляет слушателей.
func (s *Session) apply(ev Event, p *model.Profile) {
	if err := s.profiles.SaveProfile(p); err != nil {
		s.logger.Warnw("failed to cache profile", "error", err)
	}
	s.setProfile(p)
	s.setOffline(false)
	s.emit(ev, p)
}

// forget сбрасывает токен и профиль и сообщает о выходе.
func (s *Session) forget() {
	s.api.SetToken("")
	if err := s.tokens.Clear(); err != nil {
		s.logger.Warnw("failed to clear token", "error", err)
	}
	if err := s.profiles.ClearProfile(); err != nil {
		s.logger.Warnw("failed to clear profile", "error", err)
	}
	s.setProfile(nil)
	s.setOffline(false)
	s.emit(EventSignedOut, nil)
}

func (s *Session) emit(ev Event, p *model.Profile) {
	s.mu.RLock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.RUnlock()

	s.logger.Debugw("session event", "event", ev.String())
	for _, l := range listeners {
		l(ev, p)
	}
}
