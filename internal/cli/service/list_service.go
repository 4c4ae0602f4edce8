package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ListKeeper/internal/cli/model"

	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

var ErrImageRequired = errors.New("image is required")

// ListAPI — серверные операции над записями и картинками.
type ListAPI interface {
	Lists(ctx context.Context, state *model.ListState) ([]model.List, error)
	CreateList(ctx context.Context, in model.NewList) (*model.List, error)
	GetList(ctx context.Context, id string) (*model.List, error)
	UpdateList(ctx context.Context, id string, in model.ListUpdate) (*model.List, error)
	RemoveList(ctx context.Context, id string) error
	UploadImage(ctx context.Context, fileName string, r io.Reader) (*model.UploadedImage, error)
}

// ListService — сценарии работы с записями: сначала загрузка картинки, затем запись.
type ListService struct {
	api    ListAPI
	logger *zap.SugaredLogger
	now    func() time.Time
	open   func(name string) (io.ReadCloser, error)
}

func NewListService(a ListAPI, logger *zap.SugaredLogger) *ListService {
	return &ListService{
		api:    a,
		logger: logger,
		now:    time.Now,
		open:   func(name string) (io.ReadCloser, error) { return os.Open(name) },
	}
}

// CreateInput параметры новой записи. ImagePath — локальный файл картинки.
type CreateInput struct {
	Date      string
	Text      string
	ImagePath string
	State     model.ListState
}

// UpdateInput пустые Date/Image оставляют текущие значения.
// Image может быть URL уже загруженной картинки или локальным файлом.
type UpdateInput struct {
	Date  string
	Image string
	Text  *string
	State *model.ListState
}

// Create загружает картинку и создаёт запись. Дата по умолчанию — сегодня.
func (s *ListService) Create(ctx context.Context, in CreateInput) (*model.List, error) {
	if strings.TrimSpace(in.ImagePath) == "" {
		return nil, ErrImageRequired
	}
	date := in.Date
	if date == "" {
		date = s.now().Format(dateLayout)
	}

	up, err := s.upload(ctx, in.ImagePath)
	if err != nil {
		return nil, err
	}

	l, err := s.api.CreateList(ctx, model.NewList{
		Date:  date,
		Text:  in.Text,
		Image: up.URL,
		State: in.State,
	})
	if err != nil {
		return nil, fmt.Errorf("create list: %w", err)
	}
	s.logger.Infow("list created", "list_id", l.ID, "date", l.Date)
	return l, nil
}

// Update полное обновление date/image. Локальная картинка сначала загружается.
func (s *ListService) Update(ctx context.Context, id string, in UpdateInput) (*model.List, error) {
	cur, err := s.api.GetList(ctx, id)
	if err != nil {
		return nil, err
	}

	date := cur.Date
	if in.Date != "" {
		date = in.Date
	}
	image := cur.Image
	if in.Image != "" {
		image = in.Image
		if !isRemote(image) {
			up, err := s.upload(ctx, image)
			if err != nil {
				return nil, err
			}
			image = up.URL
		}
	}

	l, err := s.api.UpdateList(ctx, id, model.ListUpdate{
		Date:  date,
		Image: image,
		Text:  in.Text,
		State: in.State,
	})
	if err != nil {
		return nil, fmt.Errorf("update list: %w", err)
	}
	s.logger.Infow("list updated", "list_id", id)
	return l, nil
}

func (s *ListService) Get(ctx context.Context, id string) (*model.List, error) {
	return s.api.GetList(ctx, id)
}

// List записи пользователя, новые первыми.
func (s *ListService) List(ctx context.Context, state *model.ListState) ([]model.List, error) {
	return s.api.Lists(ctx, state)
}

func (s *ListService) Remove(ctx context.Context, id string) error {
	if err := s.api.RemoveList(ctx, id); err != nil {
		return err
	}
	s.logger.Infow("list removed", "list_id", id)
	return nil
}

// upload читает локальный файл (путь или file://) и загружает его на сервер.
func (s *ListService) upload(ctx context.Context, ref string) (*model.UploadedImage, error) {
	path := localPath(ref)
	f, err := s.open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	up, err := s.api.UploadImage(ctx, filepath.Base(path), f)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	s.logger.Debugw("image uploaded", "path", up.Path)
	return up, nil
}

func isRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

func localPath(ref string) string {
	if strings.HasPrefix(ref, "file://") {
		if u, err := url.Parse(ref); err == nil {
			return u.Path
		}
		return strings.TrimPrefix(ref, "file://")
	}
	return ref
}
