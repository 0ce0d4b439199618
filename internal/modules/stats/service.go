package stats

import (
	"context"
	"math"

	"coderr/internal/domain"
	"coderr/internal/repository"
)

// BaseInfo is the public platform summary.
type BaseInfo struct {
	ReviewCount          int64   `json:"review_count"`
	AverageRating        float64 `json:"average_rating"`
	BusinessProfileCount int64   `json:"business_profile_count"`
	OfferCount           int64   `json:"offer_count"`
}

type Service struct {
	reviews  *repository.ReviewRepository
	profiles *repository.ProfileRepository
	offers   *repository.OfferRepository
}

func NewService(reviews *repository.ReviewRepository, profiles *repository.ProfileRepository, offers *repository.OfferRepository) *Service {
	return &Service{reviews: reviews, profiles: profiles, offers: offers}
}

func (s *Service) BaseInfo(ctx context.Context) (*BaseInfo, error) {
	reviewCount, err := s.reviews.Count(ctx)
	if err != nil {
		return nil, err
	}

	avg, err := s.reviews.AverageRating(ctx)
	if err != nil {
		return nil, err
	}

	businessCount, err := s.profiles.CountByType(ctx, domain.ProfileTypeBusiness)
	if err != nil {
		return nil, err
	}

	offerCount, err := s.offers.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &BaseInfo{
		ReviewCount:          reviewCount,
		AverageRating:        math.Round(avg*10) / 10,
		BusinessProfileCount: businessCount,
		OfferCount:           offerCount,
	}, nil
}
