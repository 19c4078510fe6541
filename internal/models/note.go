package models

import "time"

// Note is a personal text note. UserID is fixed at creation and never
// reassigned.
type Note struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID      string    `json:"user_id" gorm:"index;type:varchar(36)" validate:"required"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description" validate:"required"`
	Tag         string    `json:"tag"` // empty means "General", filled in by the service
	CreatedAt   time.Time `json:"created_at"`
}
