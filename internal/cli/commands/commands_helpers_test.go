package commands

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"ListKeeper/internal/config"
	"ListKeeper/internal/handlers"
	"ListKeeper/internal/repo"
	"ListKeeper/internal/service"
	"ListKeeper/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestBackend поднимает полный сервер ListKeeper поверх in-memory SQLite
// и возвращает клиентский конфиг с временным каталогом токена.
func newTestBackend(t *testing.T) *config.Config {
	t.Helper()
	logger := zap.NewNop().Sugar()
	db, err := repo.InitDB("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	srvCfg := &config.Config{AuthSecret: "test-secret", ImageMaxSizeMB: 1}
	ts := httptest.NewUnstartedServer(nil)
	srvCfg.PublicURL = "http://" + ts.Listener.Addr().String()

	h := handlers.NewHandler(
		service.NewUserService(repo.NewUserRepository(db)),
		service.NewListService(repo.NewListRepository(db), logger),
		service.NewImageService(storage.NewDBStorage(repo.NewImageRepository(db)), srvCfg.PublicURL, logger),
		logger,
		srvCfg,
	)
	ts.Config.Handler = h.Router
	ts.Start()
	t.Cleanup(ts.Close)

	return &config.Config{
		ServerURL:     ts.URL,
		ClientDir:     t.TempDir(),
		HTTPTimeout:   5 * time.Second,
		SearchTimeout: 5 * time.Second,
	}
}

// run выполняет команду, перехватывая вывод; input подаётся в In.
func run(t *testing.T, cmd Command, cfg *config.Config, input string, args ...string) (string, error) {
	t.Helper()
	oldOut, oldIn := Out, In
	var buf bytes.Buffer
	Out = &buf
	In = strings.NewReader(input)
	defer func() { Out, In = oldOut, oldIn }()

	err := cmd.Run(context.Background(), cfg, args)
	return buf.String(), err
}

// signedUp регистрирует пользователя через команду register.
func signedUp(t *testing.T, cfg *config.Config, email string) {
	t.Helper()
	_, err := run(t, registerCmd{}, cfg, "", email, "Tester", "secret")
	require.NoError(t, err)
}

func writeImage(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte("image:"+name), 0o600))
	return p
}

var createdRe = regexp.MustCompile(`Created list (\S+)`)

// addList создаёт запись командой add и возвращает её ID.
func addList(t *testing.T, cfg *config.Config, image string, args ...string) string {
	t.Helper()
	out, err := run(t, addCmd{}, cfg, "", append(args, writeImage(t, image))...)
	require.NoError(t, err)
	m := createdRe.FindStringSubmatch(out)
	require.Len(t, m, 2, out)
	return m[1]
}
