package domain

import "time"

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:150"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:254"`
	PasswordHash string    `json:"-"`
	IsStaff      bool      `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
