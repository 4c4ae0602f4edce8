package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"ListKeeper/internal/cli/api"
	"ListKeeper/internal/cli/model"
	fsrepo "ListKeeper/internal/cli/repo/fs"
	"ListKeeper/internal/cli/search"
	"ListKeeper/internal/cli/service"
	"ListKeeper/internal/cli/session"
	"ListKeeper/internal/config"

	"go.uber.org/zap"
)

// App — зависимости CLI, собранные из конфига.
type App struct {
	Config  *config.Config
	Client  *api.Client
	Store   fsrepo.AuthFSStore
	Session *session.Session
	Lists   *service.ListService
	Search  *search.Session
	Logger  *zap.SugaredLogger

	unsubscribe func()
}

// NewLogger в обычном режиме CLI молчит, с --debug пишет development-лог.
func NewLogger(debug bool) (*zap.SugaredLogger, error) {
	if !debug {
		return zap.NewNop().Sugar(), nil
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}

// Open собирает приложение и восстанавливает сессию из сохранённого токена.
// Недоступность сервера при старте не ошибка: команды сообщат о ней сами.
// Close необходимо вызвать после окончания работы.
func Open(ctx context.Context, cfg *config.Config) (*App, error) {
	if cfg.ClientDir == "" {
		return nil, errors.New("client dir is not configured")
	}
	logger, err := NewLogger(cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	client := api.NewClient(cfg.ServerURL, cfg.HTTPTimeout)
	store := fsrepo.AuthFSStore{Dir: cfg.ClientDir}
	sess := session.New(client, store, store, logger)
	if err := sess.Start(ctx); err != nil {
		logger.Warnw("session restore failed", "error", err)
	}

	app := &App{
		Config:  cfg,
		Client:  client,
		Store:   store,
		Session: sess,
		Lists:   service.NewListService(client, logger),
		Search:  search.NewSession(client, cfg.SearchTimeout, logger),
		Logger:  logger,
	}
	app.unsubscribe = sess.Subscribe(app.onSessionEvent)
	return app, nil
}

// onSessionEvent сбрасывает результаты поиска при выходе:
// записи прежнего пользователя не должны пережить его сессию.
func (a *App) onSessionEvent(ev session.Event, p *model.Profile) {
	switch ev {
	case session.EventSignedOut:
		a.Search.Reset()
		a.Logger.Infow("signed out, search results cleared")
	case session.EventSignedIn, session.EventProfileUpdated:
		a.Logger.Infow("session profile", "event", ev.String(), "email", p.Email, "name", p.Name)
	}
}

// RequireSession возвращает ошибку, если пользователь не вошёл.
func (a *App) RequireSession() error {
	if !a.Session.SignedIn() {
		return session.ErrNotSignedIn
	}
	return nil
}

func (a *App) Close() error {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	a.Search.Wait()
	_ = a.Logger.Sync()
	return a.Session.Close()
}
