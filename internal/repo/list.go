package repo

import (
	"ListKeeper/internal/model"
	"context"

	"gorm.io/gorm"
)

// ListRepository определяет контракт доступа к записям lists.
// Все методы ограничены владельцем: userID всегда входит в условие выборки.
type ListRepository interface {
	Create(ctx context.Context, l *model.List) error

	// GetByID ищет запись по id у владельца, иначе gorm.ErrRecordNotFound.
	GetByID(ctx context.Context, userID, id string) (*model.List, error)

	// ListByUser возвращает записи пользователя по убыванию created_at.
	// state == nil — без фильтра по состоянию.
	ListByUser(ctx context.Context, userID string, state *model.ListState) ([]model.List, error)

	// Update применяет updates к записи владельца и возвращает её новое состояние.
	Update(ctx context.Context, userID, id string, updates map[string]any) (*model.List, error)

	Delete(ctx context.Context, userID, id string) error

	// FindByDate — точное совпадение по date.
	FindByDate(ctx context.Context, userID, date string) ([]model.List, error)

	// FindByDateRange — start <= date <= end (строковое сравнение YYYY-MM-DD).
	FindByDateRange(ctx context.Context, userID, start, end string) ([]model.List, error)
}

type listRepo struct {
	db *gorm.DB
}

// NewListRepository создаёт реализацию репозитория для List.
func NewListRepository(db *gorm.DB) ListRepository {
	return &listRepo{db: db}
}

func (r *listRepo) Create(ctx context.Context, l *model.List) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *listRepo) GetByID(ctx context.Context, userID, id string) (*model.List, error) {
	var l model.List
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *listRepo) ListByUser(ctx context.Context, userID string, state *model.ListState) ([]model.List, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if state != nil {
		q = q.Where("state = ?", *state)
	}
	res := []model.List{}
	if err := q.Order("created_at DESC").Find(&res).Error; err != nil {
		return nil, err
	}
	return res, nil
}

func (r *listRepo) Update(ctx context.Context, userID, id string, updates map[string]any) (*model.List, error) {
	if len(updates) > 0 {
		tx := r.db.WithContext(ctx).
			Model(&model.List{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(updates)
		if tx.Error != nil {
			return nil, tx.Error
		}
		if tx.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.GetByID(ctx, userID, id)
}

func (r *listRepo) Delete(ctx context.Context, userID, id string) error {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.List{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *listRepo) FindByDate(ctx context.Context, userID, date string) ([]model.List, error) {
	res := []model.List{}
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Order("created_at DESC").
		Find(&res).Error
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *listRepo) FindByDateRange(ctx context.Context, userID, start, end string) ([]model.List, error) {
	res := []model.List{}
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date ASC, created_at DESC").
		Find(&res).Error
	if err != nil {
		return nil, err
	}
	return res, nil
}
