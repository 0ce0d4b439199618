package domain

import (
	"fmt"
	"time"
)

type ProfileType string

const (
	ProfileTypeCustomer ProfileType = "customer"
	ProfileTypeBusiness ProfileType = "business"
)

func ParseProfileType(s string) (ProfileType, error) {
	switch ProfileType(s) {
	case ProfileTypeCustomer, ProfileTypeBusiness:
		return ProfileType(s), nil
	}
	return "", fmt.Errorf("invalid profile type: %q", s)
}

// Profile is the role-bearing half of an account. Type is fixed at
// registration and never changes afterwards.
type Profile struct {
	ID           int64       `json:"-" gorm:"primaryKey"`
	UserID       int64       `json:"user" gorm:"uniqueIndex"`
	Type         ProfileType `json:"type" gorm:"size:9"`
	FirstName    string      `json:"first_name"`
	LastName     string      `json:"last_name"`
	File         string      `json:"file"`
	Location     string      `json:"location"`
	Tel          string      `json:"tel"`
	Description  string      `json:"description"`
	WorkingHours string      `json:"working_hours"`
	CreatedAt    time.Time   `json:"created_at"`
}
