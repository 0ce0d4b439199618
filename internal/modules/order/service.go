package order

import (
	"context"
	"errors"
	"sort"
	"strings"

	"coderr/internal/domain"
	"coderr/internal/pkg/apierror"
	"coderr/internal/policy"
	"coderr/internal/repository"

	"gorm.io/gorm"
)

// OfferReader is the slice of the catalog the order engine needs to freeze
// a package into an order.
type OfferReader interface {
	GetDetailByID(ctx context.Context, id int64) (*domain.OfferDetail, error)
	GetByID(ctx context.Context, id int64) (*domain.Offer, error)
}

type ProfileReader interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error)
}

type Service struct {
	orders   *repository.OrderRepository
	offers   OfferReader
	profiles ProfileReader
}

func NewService(orders *repository.OrderRepository, offers OfferReader, profiles ProfileReader) *Service {
	return &Service{orders: orders, offers: offers, profiles: profiles}
}

func (s *Service) List(ctx context.Context, callerID int64) ([]domain.Order, error) {
	return s.orders.ListForUser(ctx, callerID)
}

// Create snapshots the chosen package into a new order. The copied fields
// stay frozen no matter how the offer is edited afterwards.
func (s *Service) Create(ctx context.Context, callerID int64, req CreateOrderRequest) (*domain.Order, error) {
	caller, err := s.callerFor(ctx, callerID, false)
	if err != nil {
		return nil, err
	}
	if !policy.Allow(policy.OrderCreate, caller, 0) {
		return nil, ErrForbidden
	}

	detail, err := s.offers.GetDetailByID(ctx, req.OfferDetailID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDetailNotFound
		}
		return nil, err
	}

	if detail.Revisions != domain.UnlimitedRevisions && detail.Revisions < 1 {
		return nil, apierror.New("revisions", "Revisions can't be lower than 1.")
	}

	parent, err := s.offers.GetByID(ctx, detail.OfferID)
	if err != nil {
		return nil, err
	}

	o := &domain.Order{
		CustomerUserID:     callerID,
		BusinessUserID:     parent.UserID,
		Title:              parent.Title,
		Revisions:          detail.Revisions,
		DeliveryTimeInDays: detail.DeliveryTimeInDays,
		Price:              detail.Price,
		Features:           append([]string(nil), detail.Features...),
		OfferType:          detail.OfferType,
		Status:             domain.OrderInProgress,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// UpdateStatus accepts the raw PATCH payload so fields outside "status" can
// be rejected by name.
func (s *Service) UpdateStatus(ctx context.Context, callerID int64, isStaff bool, orderID int64, payload map[string]any) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	caller, err := s.callerFor(ctx, callerID, isStaff)
	if err != nil {
		return nil, err
	}
	if !policy.Allow(policy.OrderUpdateStatus, caller, o.BusinessUserID) {
		return nil, ErrForbidden
	}

	var invalid []string
	for field := range payload {
		if field != "status" {
			invalid = append(invalid, field)
		}
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		ve := apierror.ValidationError{}
		for _, field := range invalid {
			ve.Add(field, "Only 'status' can be updated.")
		}
		return nil, ve
	}

	raw, ok := payload["status"].(string)
	if !ok {
		return nil, apierror.New("status", "This field is required.")
	}
	status, err := domain.ParseOrderStatus(strings.TrimSpace(raw))
	if err != nil {
		return nil, apierror.New("status", "Must be one of in_progress, completed, cancelled.")
	}

	return s.orders.UpdateStatus(ctx, orderID, status)
}

func (s *Service) Delete(ctx context.Context, callerID int64, isStaff bool, orderID int64) error {
	if _, err := s.orders.GetByID(ctx, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	caller := policy.Caller{UserID: callerID, IsStaff: isStaff}
	if !policy.Allow(policy.OrderDelete, caller, 0) {
		return ErrForbidden
	}

	return s.orders.Delete(ctx, orderID)
}

// CountForBusiness counts a business user's orders in the given status.
// Unknown or non-business ids surface as not-found.
func (s *Service) CountForBusiness(ctx context.Context, businessUserID int64, status domain.OrderStatus) (int64, error) {
	p, err := s.profiles.GetByUserID(ctx, businessUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrBusinessNotFound
		}
		return 0, err
	}
	if p.Type != domain.ProfileTypeBusiness {
		return 0, ErrBusinessNotFound
	}

	return s.orders.CountByBusinessAndStatus(ctx, businessUserID, status)
}

func (s *Service) callerFor(ctx context.Context, userID int64, isStaff bool) (policy.Caller, error) {
	caller := policy.Caller{UserID: userID, IsStaff: isStaff}
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
