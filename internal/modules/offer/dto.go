package offer

import (
	"fmt"
	"time"

	"coderr/internal/domain"
)

// ListQuery carries the raw query parameters; the service parses and
// validates them so malformed values surface as field-scoped errors.
type ListQuery struct {
	CreatorID       string
	Search          string
	MaxDeliveryTime string
	MinPrice        string
	Ordering        string
	Page            string
	PageSize        string
}

type DetailRequest struct {
	Title              *string  `json:"title"`
	Revisions          *int     `json:"revisions"`
	DeliveryTimeInDays *int     `json:"delivery_time_in_days"`
	Price              *float64 `json:"price"`
	Features           []string `json:"features"`
	OfferType          string   `json:"offer_type"`
}

type CreateOfferRequest struct {
	Title       string          `json:"title" binding:"required"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Details     []DetailRequest `json:"details"`
}

type UpdateOfferRequest struct {
	Title       *string         `json:"title"`
	Image       *string         `json:"image"`
	Description *string         `json:"description"`
	Details     []DetailRequest `json:"details"`
}

type DetailSummary struct {
	ID                 int64            `json:"id"`
	Title              string           `json:"title"`
	Revisions          int              `json:"revisions"`
	DeliveryTimeInDays int              `json:"delivery_time_in_days"`
	Price              float64          `json:"price"`
	Features           []string         `json:"features"`
	OfferType          domain.OfferType `json:"offer_type"`
	URL                string           `json:"url"`
}

type OfferResponse struct {
	ID              int64           `json:"id"`
	User            int64           `json:"user"`
	Title           string          `json:"title"`
	Image           string          `json:"image"`
	Description     string          `json:"description"`
	Details         []DetailSummary `json:"details"`
	MinPrice        float64         `json:"min_price"`
	MinDeliveryTime int             `json:"min_delivery_time"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func toResponse(o *domain.Offer) OfferResponse {
	details := make([]DetailSummary, 0, len(o.Details))
	for _, d := range o.Details {
		details = append(details, toDetailSummary(&d))
	}
	return OfferResponse{
		ID:              o.ID,
		User:            o.UserID,
		Title:           o.Title,
		Image:           o.Image,
		Description:     o.Description,
		Details:         details,
		MinPrice:        o.MinPrice(),
		MinDeliveryTime: o.MinDeliveryTime(),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func toDetailSummary(d *domain.OfferDetail) DetailSummary {
	features := d.Features
	if features == nil {
		features = []string{}
	}
	return DetailSummary{
		ID:                 d.ID,
		Title:              d.Title,
		Revisions:          d.Revisions,
		DeliveryTimeInDays: d.DeliveryTimeInDays,
		Price:              d.Price,
		Features:           features,
		OfferType:          d.OfferType,
		URL:                fmt.Sprintf("/offerdetails/%d", d.ID),
	}
}
