package handlers

import (
	"ListKeeper/internal/config"
	"ListKeeper/internal/middleware"
	"ListKeeper/internal/service"
	"ListKeeper/internal/storage"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ImageHandler загрузка и выдача картинок записей.
type ImageHandler struct {
	ImageService *service.ImageService
	Logger       *zap.SugaredLogger
	Config       *config.Config
}

func NewImageHandler(imageService *service.ImageService, logger *zap.SugaredLogger, cfg *config.Config) *ImageHandler {
	return &ImageHandler{ImageService: imageService, Logger: logger, Config: cfg}
}

// Upload принимает multipart/form-data с полем file
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	// Лимит общего тела запроса
	maxImage := int64(h.Config.ImageMaxSizeMB) * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, maxImage+1*1024*1024)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		h.Logger.Warnw("Upload: invalid multipart form", "error", err)
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.Logger.Warnw("Upload: missing file", "error", err)
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.Logger.Warnw("Upload: failed to read file", "error", err)
		http.Error(w, "failed to read file", http.StatusBadRequest)
		return
	}
	if int64(len(data)) > maxImage {
		h.Logger.Warnw("Upload: payload too large", "size", len(data), "limit", maxImage)
		http.Error(w, "payload too large", http.StatusRequestEntityTooLarge)
		return
	}

	up, err := h.ImageService.Upload(r.Context(), userID, header.Filename, data)
	switch {
	case errors.Is(err, service.ErrEmptyImage):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, storage.ErrObjectExists):
		http.Error(w, "image already exists", http.StatusConflict)
		return
	case err != nil:
		h.Logger.Errorw("Upload: service error", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"path": up.Path,
		"url":  up.URL,
		"size": len(data),
	})
}

// Download отдаёт картинку по ключу
func (h *ImageHandler) Download(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	obj, err := h.ImageService.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		h.Logger.Errorw("Download: service error", "key", key, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", obj.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(obj.Data)))
	w.Header().Set("Cache-Control", "max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(obj.Data)
}
