package model

import "time"

// ListState — метка состояния записи.
type ListState string

const (
	StateUnset     ListState = ""
	StateOnHold    ListState = "onHold"
	StateExecution ListState = "execution"
	StateExecuted  ListState = "executed"
)

// Valid сообщает, является ли значение одной из известных меток.
func (s ListState) Valid() bool {
	switch s {
	case StateUnset, StateOnHold, StateExecution, StateExecuted:
		return true
	}
	return false
}

// List — серверная модель записи пользователя: дата, заметка и фото.
type List struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID string `gorm:"not null;index" json:"userId"` // ссылка на users.id

	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	Date  string    `gorm:"not null;index" json:"date"` // YYYY-MM-DD
	Text  string    `json:"text"`
	Image string    `json:"image"`
	State ListState `gorm:"not null" json:"state"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
