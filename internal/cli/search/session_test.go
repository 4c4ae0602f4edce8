package search

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ListKeeper/internal/cli/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// gatedQuerier отвечает на запрос только после release(key); контекст игнорирует,
// чтобы смоделировать поздний ответ сервера.
type gatedQuerier struct {
	mu    sync.Mutex
	gates map[string]chan struct{}
	data  map[string][]model.List
	calls []string
}

func newGatedQuerier() *gatedQuerier {
	return &gatedQuerier{gates: map[string]chan struct{}{}, data: map[string][]model.List{}}
}

func (g *gatedQuerier) gate(key string) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.gates[key]
	if !ok {
		ch = make(chan struct{})
		g.gates[key] = ch
	}
	return ch
}

func (g *gatedQuerier) release(key string) { close(g.gate(key)) }

func (g *gatedQuerier) answer(key string) []model.List {
	g.mu.Lock()
	g.calls = append(g.calls, key)
	g.mu.Unlock()
	<-g.gate(key)
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.data[key]
}

func (g *gatedQuerier) QueryByExactDate(_ context.Context, date string) ([]model.List, error) {
	return g.answer(date), nil
}

func (g *gatedQuerier) QueryByDateRange(_ context.Context, start, end string) ([]model.List, error) {
	return g.answer(start + ".." + end), nil
}

func newTestSession(q Querier) *Session {
	return NewSession(q, time.Second, zap.NewNop().Sugar())
}

func TestSession_LatestQueryWins(t *testing.T) {
	q := newGatedQuerier()
	keyA := "2024-01-01..2024-12-31"
	keyB := "2024-01-01..2024-01-31"
	q.data[keyA] = []model.List{{ID: "year-1"}, {ID: "year-2"}}
	q.data[keyB] = []model.List{{ID: "jan-1"}}

	s := newTestSession(q)
	committed := make(chan State, 4)
	s.OnChange(func(st State) { committed <- st })

	genA := s.SearchAsync(context.Background(), "2024")
	genB := s.SearchAsync(context.Background(), "2024-01")
	require.Greater(t, genB, genA)

	// B отвечает первым, A позже
	q.release(keyB)
	select {
	case st := <-committed:
		assert.Equal(t, genB, st.Generation)
	case <-time.After(2 * time.Second):
		t.Fatal("response B was not committed")
	}
	q.release(keyA)
	s.Wait()

	st := s.State()
	assert.Equal(t, StatusResults, st.Status)
	assert.Equal(t, genB, st.Generation)
	assert.Equal(t, []model.List{{ID: "jan-1"}}, st.Lists)
	assert.Len(t, committed, 0, "stale response must not reach subscribers")
}

func TestSession_StaleResponseBeforeNewerOneIsAlsoDropped(t *testing.T) {
	q := newGatedQuerier()
	keyA := "2024-01-01..2024-12-31"
	keyB := "2024-01-01..2024-01-31"
	q.data[keyA] = []model.List{{ID: "year"}}
	q.data[keyB] = []model.List{{ID: "jan"}}

	s := newTestSession(q)
	s.SearchAsync(context.Background(), "2024")
	genB := s.SearchAsync(context.Background(), "2024-01")

	q.release(keyA)
	q.release(keyB)
	s.Wait()

	st := s.State()
	assert.Equal(t, genB, st.Generation)
	assert.Equal(t, []model.List{{ID: "jan"}}, st.Lists)
}

func TestSession_InputWithoutQuerySupersedesInFlight(t *testing.T) {
	q := newGatedQuerier()
	key := "2023-01-01..2023-12-31"
	q.data[key] = []model.List{{ID: "x"}}

	s := newTestSession(q)
	s.SearchAsync(context.Background(), "2023")
	st := s.Search(context.Background(), "")
	assert.Equal(t, StatusEmpty, st.Status)

	q.release(key)
	s.Wait()
	assert.Equal(t, StatusEmpty, s.State().Status)
	assert.Empty(t, s.State().Lists)
}

func TestSession_StatusesAndNoQuery(t *testing.T) {
	ctx := context.Background()
	q := &mockQuerier{}
	q.On("QueryByExactDate", mock.Anything, "2023-06-15").Return([]model.List{{ID: "1"}}, nil)
	q.On("QueryByExactDate", mock.Anything, "2023-06-16").Return([]model.List{}, nil)
	q.On("QueryByExactDate", mock.Anything, "2023-06-17").Return(nil, errors.New("backend down"))

	s := newTestSession(q)

	st := s.Search(ctx, "")
	assert.Equal(t, StatusEmpty, st.Status)
	assert.Empty(t, st.Lists)

	st = s.Search(ctx, "abc")
	assert.Equal(t, StatusInvalid, st.Status)
	assert.ErrorIs(t, st.Err, ErrInvalidInputShape)
	assert.Empty(t, st.Lists)

	q.AssertNotCalled(t, "QueryByExactDate", mock.Anything, mock.Anything)
	q.AssertNotCalled(t, "QueryByDateRange", mock.Anything, mock.Anything, mock.Anything)

	st = s.Search(ctx, "2023-06-15")
	assert.Equal(t, StatusResults, st.Status)
	assert.Len(t, st.Lists, 1)

	st = s.Search(ctx, "2023-06-16")
	assert.Equal(t, StatusNoMatches, st.Status)
	assert.NoError(t, st.Err)

	st = s.Search(ctx, "2023-06-17")
	assert.Equal(t, StatusError, st.Status)
	assert.EqualError(t, st.Err, "backend down")
	assert.Empty(t, st.Lists)
	assert.Equal(t, StatusError, s.State().Status)
}

type slowQuerier struct{}

func (slowQuerier) QueryByExactDate(ctx context.Context, _ string) ([]model.List, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (slowQuerier) QueryByDateRange(ctx context.Context, _, _ string) ([]model.List, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestSession_TimeoutIsQueryFailure(t *testing.T) {
	s := NewSession(slowQuerier{}, 20*time.Millisecond, zap.NewNop().Sugar())
	st := s.Search(context.Background(), "2023")
	assert.Equal(t, StatusError, st.Status)
	assert.ErrorIs(t, st.Err, context.DeadlineExceeded)
}

func TestSession_SupersededQueryIsCancelled(t *testing.T) {
	s := NewSession(slowQuerier{}, time.Minute, zap.NewNop().Sugar())
	s.SearchAsync(context.Background(), "2023")
	s.Search(context.Background(), "")

	done := make(chan struct{})
	go func() {
		s.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("superseded query was not cancelled")
	}
	assert.Equal(t, StatusEmpty, s.State().Status)
}

func TestSession_Unsubscribe(t *testing.T) {
	s := newTestSession(&mockQuerier{})
	calls := 0
	unsubscribe := s.OnChange(func(State) { calls++ })
	s.Search(context.Background(), "")
	unsubscribe()
	s.Search(context.Background(), "abc")
	assert.Equal(t, 1, calls)
}

func TestSession_SameInputTwiceSameFilter(t *testing.T) {
	q := &mockQuerier{}
	q.On("QueryByDateRange", mock.Anything, "2023-06-01", "2023-06-31").Return([]model.List{{ID: "1"}}, nil).Twice()

	s := newTestSession(q)
	a := s.Search(context.Background(), "2023-06")
	b := s.Search(context.Background(), "2023-06")
	assert.Equal(t, a.Filter, b.Filter)
	assert.Equal(t, a.Lists, b.Lists)
	assert.Greater(t, b.Generation, a.Generation)
	q.AssertExpectations(t)
}

func TestSession_SubscribersNeverEndOnSupersededState(t *testing.T) {
	q := &mockQuerier{}
	q.On("QueryByDateRange", mock.Anything, "2024-01-01", "2024-12-31").Return([]model.List{{ID: "year"}}, nil)
	s := newTestSession(q)

	entered := make(chan struct{})
	release := make(chan struct{})
	var (
		mu            sync.Mutex
		first, second []uint64
		blocked       bool
	)
	s.OnChange(func(st State) {
		mu.Lock()
		first = append(first, st.Generation)
		block := !blocked
		blocked = true
		mu.Unlock()
		if block {
			close(entered)
			<-release
		}
	})
	s.OnChange(func(st State) {
		mu.Lock()
		second = append(second, st.Generation)
		mu.Unlock()
	})

	genA := s.SearchAsync(context.Background(), "2024")
	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("first subscriber was not notified")
	}

	// пока первый подписчик занят, выдаётся более новый запрос
	done := make(chan State)
	go func() { done <- s.Search(context.Background(), "") }()
	require.Eventually(t, func() bool { return !s.isCurrent(genA) }, 2*time.Second, time.Millisecond)
	close(release)

	stB := <-done
	s.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []uint64{genA, stB.Generation}, first)
	assert.Equal(t, []uint64{stB.Generation}, second)
	assert.Equal(t, StatusEmpty, s.State().Status)
}

func TestSession_Reset(t *testing.T) {
	q := &mockQuerier{}
	q.On("QueryByExactDate", mock.Anything, "2023-06-15").Return([]model.List{{ID: "1"}}, nil)
	s := newTestSession(q)

	before := s.Search(context.Background(), "2023-06-15")
	require.Equal(t, StatusResults, before.Status)

	s.Reset()
	st := s.State()
	assert.Equal(t, StatusEmpty, st.Status)
	assert.Empty(t, st.Lists)
	assert.Greater(t, st.Generation, before.Generation)
}

func TestSession_UnsubscribeKeepsOthersInOrder(t *testing.T) {
	s := newTestSession(&mockQuerier{})
	var calls []string
	s.OnChange(func(State) { calls = append(calls, "a") })
	unsubscribe := s.OnChange(func(State) { calls = append(calls, "b") })
	s.OnChange(func(State) { calls = append(calls, "c") })

	s.Search(context.Background(), "")
	unsubscribe()
	s.Search(context.Background(), "")
	assert.Equal(t, []string{"a", "b", "c", "a", "c"}, calls)
}
