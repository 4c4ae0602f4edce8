package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"ListKeeper/internal/cli/model"
)

// CookieName имя cookie с токеном авторизации.
const CookieName = "auth_token"

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrNoAuthCookie = errors.New("no auth cookie in response")
)

// StatusError неожиданный ответ сервера.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("server status %d", e.Code)
	}
	return fmt.Sprintf("server status %d: %s", e.Code, e.Body)
}

// Client — HTTP-клиент API ListKeeper. Токен передаётся в cookie auth_token.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SetToken задаёт токен для последующих запросов, пустая строка сбрасывает его.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if tok := c.Token(); tok != "" {
		req.Header.Set("Cookie", CookieName+"="+tok)
	}
	return req, nil
}

// send выполняет запрос и возвращает ответ с прочитанным телом.
// Статусы вне 2xx превращаются в ошибки.
func (c *Client) send(req *http.Request) (*http.Response, []byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return resp, body, nil
	case resp.StatusCode == http.StatusUnauthorized:
		return resp, body, ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return resp, body, ErrNotFound
	case resp.StatusCode == http.StatusConflict:
		return resp, body, ErrConflict
	default:
		return resp, body, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
}

// doJSON отправляет payload (если не nil) как JSON и декодирует ответ в out (если не nil).
func (c *Client) doJSON(ctx context.Context, method, path string, payload, out any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, respBody, err := c.send(req)
	if err != nil {
		return resp, err
	}
	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return resp, fmt.Errorf("decode: %w", err)
		}
	}
	return resp, nil
}

// tokenFromResponse извлекает auth cookie из ответа.
func tokenFromResponse(resp *http.Response) (string, error) {
	for _, ck := range resp.Cookies() {
		if ck.Name == CookieName && ck.Value != "" {
			return ck.Value, nil
		}
	}
	return "", ErrNoAuthCookie
}

func (c *Client) authenticate(ctx context.Context, path string, payload any) (string, *model.Profile, error) {
	var p model.Profile
	resp, err := c.doJSON(ctx, http.MethodPost, path, payload, &p)
	if err != nil {
		return "", nil, err
	}
	token, err := tokenFromResponse(resp)
	if err != nil {
		return "", nil, err
	}
	c.SetToken(token)
	return token, &p, nil
}

// Register создаёт пользователя с профилем и возвращает выданный токен.
func (c *Client) Register(ctx context.Context, email, password, name string) (string, *model.Profile, error) {
	return c.authenticate(ctx, "/api/user/register", map[string]string{
		"email":    email,
		"password": password,
		"name":     name,
	})
}

// Login вход по email и паролю.
func (c *Client) Login(ctx context.Context, email, password string) (string, *model.Profile, error) {
	return c.authenticate(ctx, "/api/user/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

func (c *Client) Logout(ctx context.Context) error {
	_, err := c.doJSON(ctx, http.MethodPost, "/api/user/logout", nil, nil)
	c.SetToken("")
	return err
}

// Me профиль текущего пользователя.
func (c *Client) Me(ctx context.Context) (*model.Profile, error) {
	var p model.Profile
	if _, err := c.doJSON(ctx, http.MethodGet, "/api/user/me", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Lists записи пользователя, новые первыми. state == nil — все записи.
func (c *Client) Lists(ctx context.Context, state *model.ListState) ([]model.List, error) {
	path := "/api/lists"
	if state != nil && *state != model.StateUnset {
		path += "?state=" + url.QueryEscape(string(*state))
	}
	var res []model.List
	if _, err := c.doJSON(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) CreateList(ctx context.Context, in model.NewList) (*model.List, error) {
	var l model.List
	if _, err := c.doJSON(ctx, http.MethodPost, "/api/lists", in, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (c *Client) GetList(ctx context.Context, id string) (*model.List, error) {
	var l model.List
	if _, err := c.doJSON(ctx, http.MethodGet, "/api/lists/"+url.PathEscape(id), nil, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (c *Client) UpdateList(ctx context.Context, id string, in model.ListUpdate) (*model.List, error) {
	var l model.List
	if _, err := c.doJSON(ctx, http.MethodPut, "/api/lists/"+url.PathEscape(id), in, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (c *Client) RemoveList(ctx context.Context, id string) error {
	_, err := c.doJSON(ctx, http.MethodDelete, "/api/lists/"+url.PathEscape(id), nil, nil)
	return err
}

// QueryByExactDate записи с date == date.
func (c *Client) QueryByExactDate(ctx context.Context, date string) ([]model.List, error) {
	q := url.Values{"date": {date}}
	var res []model.List
	if _, err := c.doJSON(ctx, http.MethodGet, "/api/lists/search?"+q.Encode(), nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// QueryByDateRange записи с start <= date <= end.
func (c *Client) QueryByDateRange(ctx context.Context, start, end string) ([]model.List, error) {
	q := url.Values{"from": {start}, "to": {end}}
	var res []model.List
	if _, err := c.doJSON(ctx, http.MethodGet, "/api/lists/search?"+q.Encode(), nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// UploadImage загружает картинку multipart-запросом в поле file.
func (c *Client) UploadImage(ctx context.Context, fileName string, r io.Reader) (*model.UploadedImage, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(fw, r); err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/images", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	_, body, err := c.send(req)
	if err != nil {
		return nil, err
	}
	var up model.UploadedImage
	if err := json.Unmarshal(body, &up); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &up, nil
}

// Health проверка доступности сервера.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.doJSON(ctx, http.MethodGet, "/api/health", nil, nil)
	return err
}
