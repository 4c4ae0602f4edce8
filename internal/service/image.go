package service

import (
	"ListKeeper/internal/storage"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"
)

var ErrEmptyImage = errors.New("empty image")

var mimeTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
}

var extensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/bmp":  "bmp",
}

// MimeType определяет тип картинки по расширению имени файла; по умолчанию image/jpeg.
func MimeType(fileName string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(fileName), "."))
	if mt, ok := mimeTypes[ext]; ok {
		return mt
	}
	return "image/jpeg"
}

// FileName строит ключ объекта: list_<userID>_<unix ms>.<ext>.
func FileName(userID, mimeType string, at time.Time) string {
	ext, ok := extensions[mimeType]
	if !ok {
		ext = "jpg"
	}
	return fmt.Sprintf("list_%s_%d.%s", userID, at.UnixMilli(), ext)
}

// PublicURL — адрес, по которому картинка доступна без авторизации.
func PublicURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/api/images/" + key
}

// UploadedImage — результат загрузки.
type UploadedImage struct {
	Path string
	URL  string
}

// ImageService загружает и отдаёт картинки записей.
type ImageService struct {
	store     storage.Storage
	publicURL string
	logger    *zap.SugaredLogger
	now       func() time.Time
}

func NewImageService(store storage.Storage, publicURL string, logger *zap.SugaredLogger) *ImageService {
	return &ImageService{store: store, publicURL: publicURL, logger: logger, now: time.Now}
}

// Upload сохраняет картинку пользователя и возвращает её публичный URL.
// sourceName используется только для определения типа.
func (s *ImageService) Upload(ctx context.Context, userID, sourceName string, data []byte) (*UploadedImage, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	mt := MimeType(sourceName)
	key := FileName(userID, mt, s.now())
	if err := s.store.Put(ctx, userID, storage.Object{Key: key, ContentType: mt, Data: data}); err != nil {
		return nil, err
	}
	s.logger.Infow("image uploaded", "user_id", userID, "key", key, "size", len(data))
	return &UploadedImage{Path: key, URL: PublicURL(s.publicURL, key)}, nil
}

// Get возвращает картинку по ключу.
func (s *ImageService) Get(ctx context.Context, key string) (*storage.Object, error) {
	return s.store.Get(ctx, key)
}
