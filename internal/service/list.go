package service

import (
	"ListKeeper/internal/model"
	"ListKeeper/internal/repo"
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidDate  = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidRange = errors.New("invalid date range")
	ErrInvalidState = errors.New("invalid state")
	ErrMissingImage = errors.New("image is required")
)

// Границы диапазона поиска могут быть "календарно невалидными" (2023-02-31),
// поэтому проверяется только форма YYYY-MM-DD.
var boundRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ListService инкапсулирует бизнес-логику работы с записями.
type ListService struct {
	repo   repo.ListRepository
	logger *zap.SugaredLogger
}

func NewListService(r repo.ListRepository, logger *zap.SugaredLogger) *ListService {
	return &ListService{repo: r, logger: logger}
}

// CreateListInput — поля новой записи.
type CreateListInput struct {
	Date  string
	Text  string
	Image string
	State model.ListState
}

// UpdateListInput — полное обновление date/image, text и state опциональны.
type UpdateListInput struct {
	Date  string
	Image string
	Text  *string
	State *model.ListState
}

func validateDate(date string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return nil
}

func validateState(state model.ListState) error {
	if !state.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidState, state)
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Create добавляет запись пользователя. Картинка к этому моменту уже загружена.
func (s *ListService) Create(ctx context.Context, userID string, in CreateListInput) (*model.List, error) {
	if err := validateDate(in.Date); err != nil {
		return nil, err
	}
	if err := validateState(in.State); err != nil {
		return nil, err
	}
	if in.Image == "" {
		return nil, ErrMissingImage
	}
	l := &model.List{
		ID:     uuid.NewString(),
		UserID: userID,
		Date:   in.Date,
		Text:   in.Text,
		Image:  in.Image,
		State:  in.State,
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("create list: %w", err)
	}
	s.logger.Infow("list created", "user_id", userID, "list_id", l.ID, "date", l.Date)
	return l, nil
}

// Get возвращает запись владельца.
func (s *ListService) Get(ctx context.Context, userID, id string) (*model.List, error) {
	l, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, notFound(err)
	}
	return l, nil
}

// List возвращает записи пользователя (новые первыми), опционально по состоянию.
func (s *ListService) List(ctx context.Context, userID string, state *model.ListState) ([]model.List, error) {
	if state != nil {
		if err := validateState(*state); err != nil {
			return nil, err
		}
	}
	return s.repo.ListByUser(ctx, userID, state)
}

// Update меняет date и image записи владельца (и text/state, если заданы).
func (s *ListService) Update(ctx context.Context, userID, id string, in UpdateListInput) (*model.List, error) {
	if err := validateDate(in.Date); err != nil {
		return nil, err
	}
	if in.Image == "" {
		return nil, ErrMissingImage
	}
	updates := map[string]any{
		"date":  in.Date,
		"image": in.Image,
	}
	if in.Text != nil {
		updates["text"] = *in.Text
	}
	if in.State != nil {
		if err := validateState(*in.State); err != nil {
			return nil, err
		}
		updates["state"] = *in.State
	}
	l, err := s.repo.Update(ctx, userID, id, updates)
	if err != nil {
		return nil, notFound(err)
	}
	s.logger.Infow("list updated", "user_id", userID, "list_id", id)
	return l, nil
}

// Remove удаляет запись владельца безвозвратно.
func (s *ListService) Remove(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return notFound(err)
	}
	s.logger.Infow("list removed", "user_id", userID, "list_id", id)
	return nil
}

// ByDate — записи пользователя с точной датой.
func (s *ListService) ByDate(ctx context.Context, userID, date string) ([]model.List, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	return s.repo.FindByDate(ctx, userID, date)
}

// ByDateRange — записи пользователя с start <= date <= end.
func (s *ListService) ByDateRange(ctx context.Context, userID, start, end string) ([]model.List, error) {
	if !boundRe.MatchString(start) || !boundRe.MatchString(end) || start > end {
		return nil, fmt.Errorf("%w: [%q, %q]", ErrInvalidRange, start, end)
	}
	return s.repo.FindByDateRange(ctx, userID, start, end)
}
