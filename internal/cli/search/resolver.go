// Package search превращает строку поиска в фильтр по дате и применяет
// к видимому результату только ответ на последний выданный запрос.
package search

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"ListKeeper/internal/cli/model"
)

// ErrInvalidInputShape — длина ввода не 0, 4, 7 или 10 символов.
var ErrInvalidInputShape = errors.New("search: expected YYYY, YYYY-MM or YYYY-MM-DD")

// Kind вид фильтра.
type Kind int

const (
	KindNone Kind = iota
	KindInvalid
	KindExact
	KindRange
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInvalid:
		return "invalid"
	case KindExact:
		return "exact"
	case KindRange:
		return "range"
	}
	return "unknown"
}

// Filter предикат по полю date. Date задан для KindExact, Start/End (включительно) для KindRange.
type Filter struct {
	Kind  Kind
	Date  string
	Start string
	End   string
}

// Querier — удалённые запросы, в которые разворачивается фильтр.
type Querier interface {
	QueryByExactDate(ctx context.Context, date string) ([]model.List, error)
	QueryByDateRange(ctx context.Context, start, end string) ([]model.List, error)
}

// Resolve классифицирует ввод по длине после trim.
// Для YYYY-MM верхняя граница "-31": строки дат одной длины с нулями
// сравниваются лексикографически, а дня больше 31 не бывает.
func Resolve(input string) (Filter, error) {
	in := strings.TrimSpace(input)
	switch utf8.RuneCountInString(in) {
	case 0:
		return Filter{Kind: KindNone}, nil
	case 10:
		return Filter{Kind: KindExact, Date: in}, nil
	case 7:
		return Filter{Kind: KindRange, Start: in + "-01", End: in + "-31"}, nil
	case 4:
		return Filter{Kind: KindRange, Start: in + "-01-01", End: in + "-12-31"}, nil
	default:
		return Filter{Kind: KindInvalid}, ErrInvalidInputShape
	}
}

// Queries сообщает, нужен ли для фильтра запрос к серверу.
func (f Filter) Queries() bool {
	return f.Kind == KindExact || f.Kind == KindRange
}

// Apply выполняет фильтр. Для KindNone и KindInvalid запрос не выдаётся.
func (f Filter) Apply(ctx context.Context, q Querier) ([]model.List, error) {
	switch f.Kind {
	case KindExact:
		return q.QueryByExactDate(ctx, f.Date)
	case KindRange:
		return q.QueryByDateRange(ctx, f.Start, f.End)
	default:
		return nil, nil
	}
}
