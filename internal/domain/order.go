package domain

import (
	"fmt"
	"time"
)

type OrderStatus string

const (
	OrderInProgress OrderStatus = "in_progress"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderInProgress, OrderCompleted, OrderCancelled:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("invalid order status: %q", s)
}

// Order freezes the chosen package at creation time. Title, revisions,
// delivery time, price, features and tier are copies, not references, so
// later offer edits never leak into existing orders.
type Order struct {
	ID                 int64       `json:"id" gorm:"primaryKey"`
	CustomerUserID     int64       `json:"customer_user" gorm:"index"`
	BusinessUserID     int64       `json:"business_user" gorm:"index"`
	Title              string      `json:"title" gorm:"size:255"`
	Revisions          int         `json:"revisions"`
	DeliveryTimeInDays int         `json:"delivery_time_in_days"`
	Price              float64     `json:"price"`
	Features           []string    `json:"features" gorm:"serializer:json"`
	OfferType          OfferType   `json:"offer_type" gorm:"size:8"`
	Status             OrderStatus `json:"status" gorm:"size:12;default:in_progress"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}
