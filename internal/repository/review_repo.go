package repository

import (
	"context"

	"coderr/internal/domain"

	"gorm.io/gorm"
)

var reviewOrderings = map[string]string{
	"updated_at":  "updated_at ASC",
	"-updated_at": "updated_at DESC",
	"rating":      "rating ASC",
	"-rating":     "rating DESC",
}

type ReviewFilters struct {
	BusinessUserID *int64
	ReviewerID     *int64
	Ordering       string
}

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	var rv domain.Review
	if err := r.db.WithContext(ctx).First(&rv, id).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewRepository) List(ctx context.Context, f ReviewFilters) ([]domain.Review, error) {
	q := r.db.WithContext(ctx).Model(&domain.Review{})

	if f.BusinessUserID != nil {
		q = q.Where("business_user_id = ?", *f.BusinessUserID)
	}
	if f.ReviewerID != nil {
		q = q.Where("reviewer_id = ?", *f.ReviewerID)
	}

	ordering, ok := reviewOrderings[f.Ordering]
	if !ok {
		ordering = "updated_at DESC"
	}

	var reviews []domain.Review
	err := q.Order(ordering).Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepository) Update(ctx context.Context, rv *domain.Review) error {
	return r.db.WithContext(ctx).Save(rv).Error
}

func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Review{}, id).Error
}

func (r *ReviewRepository) ExistsForPair(ctx context.Context, reviewerID, businessUserID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Review{}).
		Where("reviewer_id = ? AND business_user_id = ?", reviewerID, businessUserID).
		Count(&count).Error
	return count > 0, err
}

func (r *ReviewRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Review{}).Count(&count).Error
	return count, err
}

// AverageRating returns 0 when no reviews exist.
func (r *ReviewRepository) AverageRating(ctx context.Context) (float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).Model(&domain.Review{}).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}
