package review

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"coderr/internal/domain"
	"coderr/internal/pkg/apierror"
	"coderr/internal/pkg/validator"
	"coderr/internal/policy"
	"coderr/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// OrderGate answers whether the reviewer ever completed an order with the
// business user being reviewed.
type OrderGate interface {
	HasCompletedOrder(ctx context.Context, customerUserID, businessUserID int64) (bool, error)
}

type ProfileReader interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error)
}

type Service struct {
	reviews  *repository.ReviewRepository
	orders   OrderGate
	profiles ProfileReader
}

func NewService(reviews *repository.ReviewRepository, orders OrderGate, profiles ProfileReader) *Service {
	return &Service{reviews: reviews, orders: orders, profiles: profiles}
}

func (s *Service) List(ctx context.Context, q ListQuery) ([]domain.Review, error) {
	f := repository.ReviewFilters{Ordering: q.Ordering}
	ve := apierror.ValidationError{}

	if q.BusinessUserID != "" {
		id, err := strconv.ParseInt(q.BusinessUserID, 10, 64)
		if err != nil {
			ve.Add("business_user_id", "Must be an integer.")
		} else {
			f.BusinessUserID = &id
		}
	}
	if q.ReviewerID != "" {
		id, err := strconv.ParseInt(q.ReviewerID, 10, 64)
		if err != nil {
			ve.Add("reviewer_id", "Must be an integer.")
		} else {
			f.ReviewerID = &id
		}
	}
	if len(ve) > 0 {
		return nil, ve
	}

	return s.reviews.List(ctx, f)
}

// Create enforces the ledger gates: customer profile, a completed order
// with the business, no prior review for the pair, no impersonation. The
// unique index closes the race left by the existence pre-check.
func (s *Service) Create(ctx context.Context, callerID int64, req CreateReviewRequest) (*domain.Review, error) {
	caller, err := s.callerFor(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !policy.Allow(policy.ReviewCreate, caller, 0) {
		return nil, ErrForbidden
	}

	if req.BusinessUser == 0 {
		return nil, ErrNoBusinessUser
	}

	if fields := validator.Validate(req); fields != nil {
		ve := apierror.ValidationError{}
		for field, tag := range fields {
			ve.Add(strings.ToLower(field), "Failed validation: "+tag+".")
		}
		return nil, ve
	}

	if req.Reviewer != nil && *req.Reviewer != callerID {
		return nil, apierror.New("reviewer", "You cannot create a review on behalf of another user.")
	}

	completed, err := s.orders.HasCompletedOrder(ctx, callerID, req.BusinessUser)
	if err != nil {
		return nil, err
	}
	if !completed {
		return nil, ErrReviewNotAllowed
	}

	exists, err := s.reviews.ExistsForPair(ctx, callerID, req.BusinessUser)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apierror.New("detail", "You can only give one review per business profile.")
	}

	rv := &domain.Review{
		BusinessUserID: req.BusinessUser,
		ReviewerID:     callerID,
		Rating:         req.Rating,
		Description:    req.Description,
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		if isUniqueViolation(err) {
			return nil, apierror.New("detail", "You can only give one review per business profile.")
		}
		return nil, err
	}
	return rv, nil
}

func (s *Service) Update(ctx context.Context, callerID int64, isStaff bool, reviewID int64, req UpdateReviewRequest) (*domain.Review, error) {
	rv, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	caller := policy.Caller{UserID: callerID, IsStaff: isStaff}
	if !policy.Allow(policy.ReviewModify, caller, rv.ReviewerID) {
		return nil, ErrForbidden
	}

	if fields := validator.Validate(req); fields != nil {
		ve := apierror.ValidationError{}
		for field, tag := range fields {
			ve.Add(strings.ToLower(field), "Failed validation: "+tag+".")
		}
		return nil, ve
	}

	if req.Rating != nil {
		rv.Rating = *req.Rating
	}
	if req.Description != nil {
		rv.Description = *req.Description
	}

	if err := s.reviews.Update(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *Service) Delete(ctx context.Context, callerID int64, isStaff bool, reviewID int64) error {
	rv, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	caller := policy.Caller{UserID: callerID, IsStaff: isStaff}
	if !policy.Allow(policy.ReviewModify, caller, rv.ReviewerID) {
		return ErrForbidden
	}

	return s.reviews.Delete(ctx, reviewID)
}

func (s *Service) callerFor(ctx context.Context, userID int64) (policy.Caller, error) {
	caller := policy.Caller{UserID: userID}
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return caller, nil
		}
		return caller, err
	}
	caller.HasProfile = true
	caller.ProfileType = p.Type
	return caller, nil
}

// isUniqueViolation matches the pair constraint on both backends: SQLSTATE
// 23505 from postgres, the UNIQUE message from sqlite.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	s := err.Error()
	return strings.Contains(s, "UNIQUE constraint failed") ||
		strings.Contains(s, "23505")
}
