package handlers

import (
	"ListKeeper/internal/middleware"
	"ListKeeper/internal/model"
	"ListKeeper/internal/service"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ListHandler — CRUD и поиск записей.
type ListHandler struct {
	ListService *service.ListService
	Logger      *zap.SugaredLogger
}

func NewListHandler(listService *service.ListService, logger *zap.SugaredLogger) *ListHandler {
	return &ListHandler{ListService: listService, Logger: logger}
}

type createListRequest struct {
	Date  string          `json:"date"`
	Text  string          `json:"text"`
	Image string          `json:"image"`
	State model.ListState `json:"state,omitempty"`
}

type updateListRequest struct {
	Date  string           `json:"date"`
	Image string           `json:"image"`
	Text  *string          `json:"text,omitempty"`
	State *model.ListState `json:"state,omitempty"`
}

// writeServiceError маппит ошибки сервиса на HTTP-статусы.
func (h *ListHandler) writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidRange),
		errors.Is(err, service.ErrInvalidState),
		errors.Is(err, service.ErrMissingImage):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.Logger.Errorw(op+": service error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// List записи пользователя, новые первыми; ?state= фильтрует по состоянию
func (h *ListHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var state *model.ListState
	if v := r.URL.Query().Get("state"); v != "" {
		st := model.ListState(v)
		state = &st
	}

	lists, err := h.ListService.List(r.Context(), userID, state)
	if err != nil {
		h.writeServiceError(w, "List", err)
		return
	}
	writeJSON(w, http.StatusOK, lists)
}

// Create добавляет запись; картинка должна быть загружена заранее
func (h *ListHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req createListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Create: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	l, err := h.ListService.Create(r.Context(), userID, service.CreateListInput{
		Date:  req.Date,
		Text:  req.Text,
		Image: req.Image,
		State: req.State,
	})
	if err != nil {
		h.writeServiceError(w, "Create", err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

// Get детали записи
func (h *ListHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	l, err := h.ListService.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, "Get", err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// Update полное обновление date/image записи
func (h *ListHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req updateListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Update: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	l, err := h.ListService.Update(r.Context(), userID, chi.URLParam(r, "id"), service.UpdateListInput{
		Date:  req.Date,
		Image: req.Image,
		Text:  req.Text,
		State: req.State,
	})
	if err != nil {
		h.writeServiceError(w, "Update", err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// Remove удаляет запись
func (h *ListHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	if err := h.ListService.Remove(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, "Remove", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Search поиск по дате: ?date=YYYY-MM-DD или ?from=...&to=... (включительно)
func (h *ListHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	q := r.URL.Query()

	var (
		lists []model.List
		err   error
	)
	switch {
	case q.Get("date") != "":
		lists, err = h.ListService.ByDate(r.Context(), userID, q.Get("date"))
	case q.Get("from") != "" || q.Get("to") != "":
		lists, err = h.ListService.ByDateRange(r.Context(), userID, q.Get("from"), q.Get("to"))
	default:
		http.Error(w, "date or from/to required", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.writeServiceError(w, "Search", err)
		return
	}
	writeJSON(w, http.StatusOK, lists)
}
