package model

import "time"

// ListState — состояние записи, пустая строка означает "не задано".
type ListState string

const (
	StateUnset     ListState = ""
	StateOnHold    ListState = "onHold"
	StateExecution ListState = "execution"
	StateExecuted  ListState = "executed"
)

// ParseState разбирает состояние из аргументов CLI.
func ParseState(s string) (ListState, bool) {
	switch st := ListState(s); st {
	case StateUnset, StateOnHold, StateExecution, StateExecuted:
		return st, true
	}
	return StateUnset, false
}

// List - запись пользователя в представлении клиента.
type List struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Date      string    `json:"date"`
	Text      string    `json:"text"`
	Image     string    `json:"image"`
	State     ListState `json:"state"`
	CreatedAt time.Time `json:"created_at"`
}

// NewList - тело запроса на создание записи.
type NewList struct {
	Date  string    `json:"date"`
	Text  string    `json:"text"`
	Image string    `json:"image"`
	State ListState `json:"state,omitempty"`
}

// ListUpdate - полное обновление date/image, text и state по желанию.
type ListUpdate struct {
	Date  string     `json:"date"`
	Image string     `json:"image"`
	Text  *string    `json:"text,omitempty"`
	State *ListState `json:"state,omitempty"`
}
