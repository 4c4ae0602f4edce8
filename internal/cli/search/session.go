package search

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"ListKeeper/internal/cli/model"

	"go.uber.org/zap"
)

// Status видимое состояние поиска.
type Status int

const (
	StatusEmpty Status = iota
	StatusInvalid
	StatusNoMatches
	StatusResults
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusInvalid:
		return "invalid"
	case StatusNoMatches:
		return "no matches"
	case StatusResults:
		return "results"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// State — содержимое слота результатов.
type State struct {
	Input      string
	Filter     Filter
	Status     Status
	Lists      []model.List
	Err        error
	Generation uint64
}

// Session владеет одним слотом результатов. Каждый вызов Search получает
// новое поколение; ответ фиксируется, только если поколение всё ещё последнее.
type Session struct {
	q       Querier
	timeout time.Duration
	logger  *zap.SugaredLogger

	mu        sync.Mutex
	gen       uint64
	cancel    context.CancelFunc
	state     State
	listeners []listener
	nextID    int

	// notifyMu упорядочивает доставку: подписчик не увидит старое поколение после нового
	notifyMu sync.Mutex

	wg sync.WaitGroup
}

type listener struct {
	id int
	fn func(State)
}

func NewSession(q Querier, timeout time.Duration, logger *zap.SugaredLogger) *Session {
	return &Session{
		q:       q,
		timeout: timeout,
		logger:  logger,
	}
}

// pending — выданный, но ещё не зафиксированный запрос.
type pending struct {
	gen    uint64
	input  string
	filter Filter
	ctx    context.Context
	cancel context.CancelFunc
}

// begin выдаёт новое поколение и отменяет контекст предыдущего запроса.
// Для ввода без запроса состояние фиксируется сразу, и возвращается nil.
func (s *Session) begin(ctx context.Context, input string) (*pending, State) {
	filter, err := Resolve(input)

	s.mu.Lock()
	s.gen++
	gen := s.gen
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	if !filter.Queries() {
		st := State{Input: input, Filter: filter, Status: StatusEmpty, Generation: gen}
		if err != nil {
			st.Status = StatusInvalid
			st.Err = err
		}
		s.mu.Unlock()
		s.commit(st)
		return nil, st
	}

	var (
		qctx   context.Context
		cancel context.CancelFunc
	)
	if s.timeout > 0 {
		qctx, cancel = context.WithTimeout(ctx, s.timeout)
	} else {
		qctx, cancel = context.WithCancel(ctx)
	}
	s.cancel = cancel
	s.mu.Unlock()

	return &pending{gen: gen, input: input, filter: filter, ctx: qctx, cancel: cancel}, State{}
}

// run выполняет запрос и пытается зафиксировать ответ.
func (s *Session) run(p *pending) State {
	defer p.cancel()

	lists, err := p.filter.Apply(p.ctx, s.q)
	st := State{Input: p.input, Filter: p.filter, Generation: p.gen}
	switch {
	case err != nil:
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("search timed out: %w", err)
		}
		st.Status = StatusError
		st.Err = err
	case len(lists) == 0:
		st.Status = StatusNoMatches
	default:
		st.Status = StatusResults
		st.Lists = lists
	}
	s.commit(st)
	return st
}

// commit применяет состояние, если его поколение последнее, и уведомляет подписчиков.
// Перед каждым подписчиком поколение проверяется снова: пока доставка шла,
// мог быть выдан более новый запрос.
func (s *Session) commit(st State) bool {
	s.mu.Lock()
	if st.Generation != s.gen {
		s.mu.Unlock()
		s.logger.Debugw("stale search response dropped", "input", st.Input, "generation", st.Generation)
		return false
	}
	if st.Status == StatusError {
		s.logger.Warnw("search query failed", "input", st.Input, "error", st.Err)
	}
	s.state = st
	s.mu.Unlock()

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	for _, l := range s.snapshotListeners() {
		if !s.isCurrent(st.Generation) {
			s.logger.Debugw("superseded search state not delivered", "generation", st.Generation)
			return true
		}
		l.fn(st)
	}
	return true
}

func (s *Session) snapshotListeners() []listener {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]listener(nil), s.listeners...)
}

func (s *Session) isCurrent(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen == s.gen
}

// Search выполняет поиск синхронно и возвращает состояние этого запроса.
// Если за время запроса был выдан более новый, слот не меняется.
func (s *Session) Search(ctx context.Context, input string) State {
	p, st := s.begin(ctx, input)
	if p == nil {
		return st
	}
	return s.run(p)
}

// SearchAsync выдаёт запрос и возвращает его поколение, не дожидаясь ответа.
func (s *Session) SearchAsync(ctx context.Context, input string) uint64 {
	p, st := s.begin(ctx, input)
	if p == nil {
		return st.Generation
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(p)
	}()
	return p.gen
}

// Wait ждёт завершения всех запросов, выданных через SearchAsync.
func (s *Session) Wait() {
	s.wg.Wait()
}

// State текущее видимое состояние.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Reset очищает слот: новое поколение без запроса, выданные запросы отменяются.
func (s *Session) Reset() {
	s.Search(context.Background(), "")
}

// OnChange подписывает fn на каждое зафиксированное состояние в порядке подписки.
// Подписчики вызываются последовательно и не должны сами вызывать Search.
// Возвращает отписку.
func (s *Session) OnChange(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, listener{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}
