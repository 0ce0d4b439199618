package domain

import (
	"fmt"
	"time"
)

type OfferType string

const (
	OfferTypeBasic    OfferType = "basic"
	OfferTypeStandard OfferType = "standard"
	OfferTypePremium  OfferType = "premium"
)

// OfferTypes lists the three package tiers every offer must carry.
var OfferTypes = []OfferType{OfferTypeBasic, OfferTypeStandard, OfferTypePremium}

func ParseOfferType(s string) (OfferType, error) {
	switch OfferType(s) {
	case OfferTypeBasic, OfferTypeStandard, OfferTypePremium:
		return OfferType(s), nil
	}
	return "", fmt.Errorf("invalid offer type: %q", s)
}

type Offer struct {
	ID          int64         `json:"id" gorm:"primaryKey"`
	UserID      int64         `json:"user" gorm:"index"`
	Title       string        `json:"title" gorm:"size:255"`
	Image       string        `json:"image"`
	Description string        `json:"description" gorm:"size:255"`
	Details     []OfferDetail `json:"details" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// MinPrice is the cheapest package of the offer. Zero details never occur
// for a fully created offer but the guard keeps readers honest.
func (o *Offer) MinPrice() float64 {
	if len(o.Details) == 0 {
		return 0
	}
	min := o.Details[0].Price
	for _, d := range o.Details[1:] {
		if d.Price < min {
			min = d.Price
		}
	}
	return min
}

func (o *Offer) MinDeliveryTime() int {
	if len(o.Details) == 0 {
		return 0
	}
	min := o.Details[0].DeliveryTimeInDays
	for _, d := range o.Details[1:] {
		if d.DeliveryTimeInDays < min {
			min = d.DeliveryTimeInDays
		}
	}
	return min
}

// UnlimitedRevisions is the sentinel meaning "no revision cap".
const UnlimitedRevisions = -1

type OfferDetail struct {
	ID                 int64     `json:"id" gorm:"primaryKey"`
	OfferID            int64     `json:"-" gorm:"uniqueIndex:idx_offer_tier"`
	Title              string    `json:"title" gorm:"size:255"`
	Revisions          int       `json:"revisions"`
	DeliveryTimeInDays int       `json:"delivery_time_in_days"`
	Price              float64   `json:"price"`
	Features           []string  `json:"features" gorm:"serializer:json"`
	OfferType          OfferType `json:"offer_type" gorm:"size:8;uniqueIndex:idx_offer_tier"`
}
