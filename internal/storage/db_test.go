package storage

import (
	"ListKeeper/internal/model"
	"ListKeeper/internal/repo"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockImageRepo struct{ mock.Mock }

func (m *mockImageRepo) CreateIfAbsent(ctx context.Context, img *model.Image) (bool, error) {
	args := m.Called(ctx, img)
	return args.Bool(0), args.Error(1)
}

func (m *mockImageRepo) Get(ctx context.Context, key string) (*model.Image, error) {
	args := m.Called(ctx, key)
	if v, ok := args.Get(0).(*model.Image); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.ImageRepository = (*mockImageRepo)(nil)

func TestDBStorage_Put(t *testing.T) {
	ctx := context.Background()
	obj := Object{Key: "k.png", ContentType: "image/png", Data: []byte{1}}

	t.Run("created", func(t *testing.T) {
		m := new(mockImageRepo)
		m.On("CreateIfAbsent", mock.Anything, mock.MatchedBy(func(img *model.Image) bool {
			return img.Key == "k.png" && img.UserID == "u1" && img.ContentType == "image/png"
		})).Return(true, nil).Once()

		assert.NoError(t, NewDBStorage(m).Put(ctx, "u1", obj))
		m.AssertExpectations(t)
	})

	t.Run("exists", func(t *testing.T) {
		m := new(mockImageRepo)
		m.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(false, nil).Once()

		assert.ErrorIs(t, NewDBStorage(m).Put(ctx, "u1", obj), ErrObjectExists)
	})

	t.Run("db error wrapped", func(t *testing.T) {
		m := new(mockImageRepo)
		boom := errors.New("boom")
		m.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(false, boom).Once()

		err := NewDBStorage(m).Put(ctx, "u1", obj)
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, ErrObjectExists)
	})
}

func TestDBStorage_Get(t *testing.T) {
	ctx := context.Background()

	m := new(mockImageRepo)
	m.On("Get", mock.Anything, "k.png").Return(&model.Image{Key: "k.png", ContentType: "image/png", Data: []byte{7}}, nil).Once()
	m.On("Get", mock.Anything, "missing").Return(nil, gorm.ErrRecordNotFound).Once()
	s := NewDBStorage(m)

	obj, err := s.Get(ctx, "k.png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", obj.ContentType)
	assert.Equal(t, []byte{7}, obj.Data)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}
