package handlers_test

import (
	"ListKeeper/internal/config"
	"ListKeeper/internal/handlers"
	"ListKeeper/internal/repo"
	"ListKeeper/internal/service"
	"ListKeeper/internal/storage"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newDBRouter собирает полный роутер поверх отдельной in-memory SQLite.
func newDBRouter(t *testing.T) (http.Handler, *config.Config) {
	t.Helper()
	cfg := &config.Config{AuthSecret: "test-secret", ImageMaxSizeMB: 1, PublicURL: "http://lists.test"}
	logger := zap.NewNop().Sugar()

	db, err := repo.InitDB("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	userSvc := service.NewUserService(repo.NewUserRepository(db))
	listSvc := service.NewListService(repo.NewListRepository(db), logger)
	imageSvc := service.NewImageService(storage.NewDBStorage(repo.NewImageRepository(db)), cfg.PublicURL, logger)

	h := handlers.NewHandler(userSvc, listSvc, imageSvc, logger, cfg)
	return h.Router, cfg
}

// doJSON выполняет запрос с JSON-телом (body == nil — без тела).
func doJSON(t *testing.T, router http.Handler, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// signUp регистрирует пользователя и возвращает cookie авторизации.
func signUp(t *testing.T, router http.Handler, email string) []*http.Cookie {
	t.Helper()
	rr := doJSON(t, router, http.MethodPost, "/api/user/register",
		map[string]string{"email": email, "password": "secret", "name": "Tester"}, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	cookies := rr.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}
