package profile

import (
	"context"
	"errors"
	"strings"

	"coderr/internal/domain"
	"coderr/internal/policy"
	"coderr/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	profiles *repository.ProfileRepository
	users    *repository.UserRepository
}

func NewService(profiles *repository.ProfileRepository, users *repository.UserRepository) *Service {
	return &Service{profiles: profiles, users: users}
}

func (s *Service) Get(ctx context.Context, userID int64) (*ProfileResponse, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u, err := s.users.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	resp := toResponse(p, u)
	return &resp, nil
}

// Update applies contact and display fields. The profile type is never
// touched here.
func (s *Service) Update(ctx context.Context, callerID, userID int64, req UpdateProfileRequest) (*ProfileResponse, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	caller := policy.Caller{UserID: callerID, ProfileType: p.Type, HasProfile: true}
	if !policy.Allow(policy.ProfileEdit, caller, p.UserID) {
		return nil, ErrForbidden
	}

	if req.FirstName != nil {
		p.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		p.LastName = *req.LastName
	}
	if req.File != nil {
		p.File = *req.File
	}
	if req.Location != nil {
		p.Location = *req.Location
	}
	if req.Tel != nil {
		p.Tel = *req.Tel
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.WorkingHours != nil {
		p.WorkingHours = *req.WorkingHours
	}

	if err := s.profiles.Update(ctx, p); err != nil {
		return nil, err
	}

	u, err := s.users.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && !strings.EqualFold(*req.Email, u.Email) {
		u.Email = strings.ToLower(strings.TrimSpace(*req.Email))
		if err := s.users.DB().WithContext(ctx).Save(u).Error; err != nil {
			return nil, err
		}
	}

	resp := toResponse(p, u)
	return &resp, nil
}

func (s *Service) ListByType(ctx context.Context, t domain.ProfileType) ([]ProfileResponse, error) {
	profiles, err := s.profiles.ListByType(ctx, t)
	if err != nil {
		return nil, err
	}

	out := make([]ProfileResponse, 0, len(profiles))
	for i := range profiles {
		u, err := s.users.GetByID(ctx, profiles[i].UserID)
		if err != nil {
			return nil, err
		}
		out = append(out, toResponse(&profiles[i], u))
	}
	return out, nil
}
