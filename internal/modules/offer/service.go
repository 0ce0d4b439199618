package offer

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"coderr/internal/domain"
	"coderr/internal/pkg/apierror"
	"coderr/internal/policy"
	"coderr/internal/repository"

	"gorm.io/gorm"
)

const (
	defaultPageSize = 6
	maxPageSize     = 100
)

type ProfileReader interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error)
}

type Service struct {
	offers   *repository.OfferRepository
	profiles ProfileReader
}

func NewService(offers *repository.OfferRepository, profiles ProfileReader) *Service {
	return &Service{offers: offers, profiles: profiles}
}

// List applies the catalog filters and annotates each offer with its
// cheapest price and fastest delivery across the current details.
func (s *Service) List(ctx context.Context, q ListQuery) ([]OfferResponse, int64, error) {
	filters, err := parseFilters(q)
	if err != nil {
		return nil, 0, err
	}

	offers, total, err := s.offers.List(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	out := make([]OfferResponse, 0, len(offers))
	for i := range offers {
		out = append(out, toResponse(&offers[i]))
	}
	return out, total, nil
}

func parseFilters(q ListQuery) (repository.OfferFilters, error) {
	f := repository.OfferFilters{
		Search:   q.Search,
		Ordering: q.Ordering,
	}
	ve := apierror.ValidationError{}

	if q.CreatorID != "" {
		id, err := strconv.ParseInt(q.CreatorID, 10, 64)
		if err != nil {
			ve.Add("creator_id", "Must be an integer.")
		} else {
			f.CreatorID = &id
		}
	}
	if q.MaxDeliveryTime != "" {
		v, err := strconv.Atoi(q.MaxDeliveryTime)
		if err != nil {
			ve.Add("max_delivery_time", "Must be an integer.")
		} else {
			f.MaxDeliveryTime = &v
		}
	}
	if q.MinPrice != "" {
		v, err := strconv.ParseFloat(q.MinPrice, 64)
		if err != nil {
			ve.Add("min_price", "Must be a number.")
		} else {
			f.MinPrice = &v
		}
	}

	page := 1
	if q.Page != "" {
		v, err := strconv.Atoi(q.Page)
		if err != nil || v < 1 {
			ve.Add("page", "Must be a positive integer.")
		} else {
			page = v
		}
	}
	pageSize := defaultPageSize
	if q.PageSize != "" {
		v, err := strconv.Atoi(q.PageSize)
		if err != nil || v < 1 {
			ve.Add("page_size", "Must be a positive integer.")
		} else {
			if v > maxPageSize {
				v = maxPageSize
			}
			pageSize = v
		}
	}

	if len(ve) > 0 {
		return repository.OfferFilters{}, ve
	}

	f.Limit = pageSize
	f.Offset = (page - 1) * pageSize
	return f, nil
}

func (s *Service) Create(ctx context.Context, callerID int64, req CreateOfferRequest) (*OfferResponse, error) {
	caller, err := s.callerFor(ctx, callerID, false)
	if err != nil {
		return nil, err
	}
	if !policy.Allow(policy.OfferCreate, caller, 0) {
		return nil, ErrForbidden
	}

	if err := validateDetailSet(req.Details); err != nil {
		return nil, err
	}

	ve := apierror.ValidationError{}
	details := make([]domain.OfferDetail, 0, len(req.Details))
	for _, d := range req.Details {
		details = append(details, buildDetail(d, ve))
	}
	if len(ve) > 0 {
		return nil, ve
	}

	offer := &domain.Offer{
		UserID:      callerID,
		Title:       req.Title,
		Image:       req.Image,
		Description: req.Description,
		Details:     details,
	}
	if err := s.offers.Create(ctx, offer); err != nil {
		return nil, err
	}

	resp := toResponse(offer)
	return &resp, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*OfferResponse, error) {
	offer, err := s.offers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	resp := toResponse(offer)
	return &resp, nil
}

// Update reconciles incoming details by tier: an entry matching an existing
// tier overwrites that detail in place, a new tier inserts a fresh detail.
func (s *Service) Update(ctx context.Context, callerID, id int64, req UpdateOfferRequest) (*OfferResponse, error) {
	offer, err := s.offers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	caller := policy.Caller{UserID: callerID}
	if !policy.Allow(policy.OfferModify, caller, offer.UserID) {
		return nil, ErrForbidden
	}

	if req.Title != nil {
		offer.Title = *req.Title
	}
	if req.Image != nil {
		offer.Image = *req.Image
	}
	if req.Description != nil {
		offer.Description = *req.Description
	}

	var changed []domain.OfferDetail
	if req.Details != nil {
		byTier := make(map[domain.OfferType]*domain.OfferDetail, len(offer.Details))
		for i := range offer.Details {
			byTier[offer.Details[i].OfferType] = &offer.Details[i]
		}

		ve := apierror.ValidationError{}
		for _, entry := range req.Details {
			if entry.OfferType == "" {
				ve.Add("details.offer_type", "This field is required.")
				continue
			}
			tier, err := domain.ParseOfferType(entry.OfferType)
			if err != nil {
				ve.Add("details.offer_type", "Must be one of basic, standard, premium.")
				continue
			}

			if existing, ok := byTier[tier]; ok {
				applyDetail(existing, entry)
				validateDetail(ve, existing)
				changed = append(changed, *existing)
			} else {
				fresh := buildDetail(entry, ve)
				changed = append(changed, fresh)
			}
		}
		if len(ve) > 0 {
			return nil, ve
		}
	}

	if err := s.offers.Update(ctx, offer, changed); err != nil {
		return nil, err
	}

	updated, err := s.offers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(updated)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, callerID, id int64) error {
	offer, err := s.offers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	caller := policy.Caller{UserID: callerID}
	if !policy.Allow(policy.OfferModify, caller, offer.UserID) {
		return ErrForbidden
	}

	return s.offers.Delete(ctx, id)
}

func (s *Service) GetDetail(ctx context.Context, id int64) (*DetailSummary, error) {
	detail, err := s.offers.GetDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDetailNotFound
		}
		return nil, err
	}
	resp := toDetailSummary(detail)
	return &resp, nil
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

// validateDetailSet enforces the create-time shape: exactly three details,
// one per tier, no repeats.
func validateDetailSet(details []DetailRequest) error {
	if len(details) != 3 {
		return apierror.New("details", "Exactly three details (basic, standard, premium) are required.")
	}

	seen := map[domain.OfferType]bool{}
	for _, d := range details {
		tier, err := domain.ParseOfferType(d.OfferType)
		if err != nil {
			return apierror.New("details", "Details must include exactly one of each: basic, standard, premium.")
		}
		if seen[tier] {
			return apierror.New("details", "Details must include exactly one of each: basic, standard, premium.")
		}
		seen[tier] = true
	}
	return nil
}

func buildDetail(req DetailRequest, ve apierror.ValidationError) domain.OfferDetail {
	d := domain.OfferDetail{
		OfferType: domain.OfferType(req.OfferType),
		Features:  req.Features,
	}
	if req.Title != nil {
		d.Title = *req.Title
	}
	if req.Revisions != nil {
		d.Revisions = *req.Revisions
	}
	if req.DeliveryTimeInDays != nil {
		d.DeliveryTimeInDays = *req.DeliveryTimeInDays
	}
	if req.Price != nil {
		d.Price = *req.Price
	}
	validateDetail(ve, &d)
	return d
}

func applyDetail(d *domain.OfferDetail, req DetailRequest) {
	if req.Title != nil {
		d.Title = *req.Title
	}
	if req.Revisions != nil {
		d.Revisions = *req.Revisions
	}
	if req.DeliveryTimeInDays != nil {
		d.DeliveryTimeInDays = *req.DeliveryTimeInDays
	}
	if req.Price != nil {
		d.Price = *req.Price
	}
	if req.Features != nil {
		d.Features = req.Features
	}
}

// validateDetail reports every failing field independently, keyed by tier so
// multi-detail payloads stay readable.
func validateDetail(ve apierror.ValidationError, d *domain.OfferDetail) {
	key := func(field string) string {
		return fmt.Sprintf("details.%s.%s", d.OfferType, field)
	}

	if d.Revisions < 0 && d.Revisions != domain.UnlimitedRevisions {
		ve.Add(key("revisions"), "Must be >= 0, or -1 for unlimited.")
	}
	if d.DeliveryTimeInDays < 1 {
		ve.Add(key("delivery_time_in_days"), "Must be at least 1 day.")
	}
	if d.Price <= 0 {
		ve.Add(key("price"), "Must be greater than 0.")
	}
	if len(d.Features) == 0 {
		ve.Add(key("features"), "At least one feature is required.")
	}
}
