package domain

import "time"

// Review links a reviewer to a business user. The composite unique index
// backs the one-review-per-pair rule even under concurrent creates.
type Review struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	BusinessUserID int64     `json:"business_user" gorm:"uniqueIndex:idx_reviewer_business"`
	ReviewerID     int64     `json:"reviewer" gorm:"uniqueIndex:idx_reviewer_business"`
	Rating         int       `json:"rating"`
	Description    string    `json:"description" gorm:"size:255"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
