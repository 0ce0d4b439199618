package repository

import (
	"context"
	"strings"

	"coderr/internal/domain"

	"gorm.io/gorm"
)

// Aggregates are computed as correlated subqueries so filtering and ordering
// by the cheapest package happen in SQL, before pagination.
const (
	minPriceExpr    = "(SELECT MIN(price) FROM offer_details WHERE offer_details.offer_id = offers.id)"
	minDeliveryExpr = "(SELECT MIN(delivery_time_in_days) FROM offer_details WHERE offer_details.offer_id = offers.id)"
)

var offerOrderings = map[string]string{
	"updated_at":  "offers.updated_at ASC",
	"-updated_at": "offers.updated_at DESC",
	"min_price":   minPriceExpr + " ASC",
	"-min_price":  minPriceExpr + " DESC",
}

type OfferFilters struct {
	CreatorID       *int64
	Search          string
	MaxDeliveryTime *int
	MinPrice        *float64
	Ordering        string
	Limit           int
	Offset          int
}

type OfferRepository struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

func (r *OfferRepository) List(ctx context.Context, f OfferFilters) ([]domain.Offer, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Offer{})

	if f.CreatorID != nil {
		q = q.Where("offers.user_id = ?", *f.CreatorID)
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(offers.title) LIKE ? OR LOWER(offers.description) LIKE ?", pattern, pattern)
	}
	if f.MaxDeliveryTime != nil {
		q = q.Where(
			"EXISTS (SELECT 1 FROM offer_details WHERE offer_details.offer_id = offers.id AND offer_details.delivery_time_in_days <= ?)",
			*f.MaxDeliveryTime,
		)
	}
	if f.MinPrice != nil {
		q = q.Where(minPriceExpr+" >= ?", *f.MinPrice)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	ordering, ok := offerOrderings[f.Ordering]
	if !ok {
		ordering = "offers.created_at DESC"
	}

	var offers []domain.Offer
	err := q.
		Order(ordering).
		Limit(f.Limit).
		Offset(f.Offset).
		Preload("Details").
		Find(&offers).Error

	return offers, total, err
}

func (r *OfferRepository) GetByID(ctx context.Context, id int64) (*domain.Offer, error) {
	var offer domain.Offer
	err := r.db.WithContext(ctx).
		Preload("Details").
		First(&offer, id).Error
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

// Create persists the offer and its three details all-or-nothing.
func (r *OfferRepository) Create(ctx context.Context, offer *domain.Offer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		details := offer.Details
		offer.Details = nil
		if err := tx.Create(offer).Error; err != nil {
			return err
		}
		for i := range details {
			details[i].OfferID = offer.ID
		}
		if err := tx.Create(&details).Error; err != nil {
			return err
		}
		offer.Details = details
		return nil
	})
}

// Update saves offer fields and the reconciled detail set in one transaction.
// Details with a zero ID are inserted, the rest overwritten in place.
func (r *OfferRepository) Update(ctx context.Context, offer *domain.Offer, details []domain.OfferDetail) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Details").Save(offer).Error; err != nil {
			return err
		}
		for i := range details {
			details[i].OfferID = offer.ID
			if err := tx.Save(&details[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *OfferRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("offer_id = ?", id).Delete(&domain.OfferDetail{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Offer{}, id).Error
	})
}

func (r *OfferRepository) GetDetailByID(ctx context.Context, id int64) (*domain.OfferDetail, error) {
	var detail domain.OfferDetail
	if err := r.db.WithContext(ctx).First(&detail, id).Error; err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *OfferRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Offer{}).Count(&count).Error
	return count, err
}
