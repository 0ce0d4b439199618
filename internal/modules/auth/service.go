package auth

import (
	"context"
	"errors"
	"strings"

	"coderr/internal/domain"
	"coderr/internal/pkg/apierror"
	"coderr/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type jwtService interface {
	GenerateToken(userID int64, isStaff bool) (string, error)
}

// Service contains all business logic for registration and login.
type Service struct {
	users    *repository.UserRepository
	profiles *repository.ProfileRepository
	jwt      jwtService
}

func NewService(users *repository.UserRepository, profiles *repository.ProfileRepository, jwt jwtService) *Service {
	return &Service{users: users, profiles: profiles, jwt: jwt}
}

// Register creates the user and its typed profile in one transaction and
// issues a token. The profile type is fixed here for the account's lifetime.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, string, error) {
	ve := apierror.ValidationError{}

	profileType, err := domain.ParseProfileType(req.Type)
	if err != nil {
		ve.Add("type", "Type must be either 'customer' or 'business'.")
	}
	if req.Password != req.RepeatedPassword {
		ve.Add("repeated_password", "Passwords don't match.")
	}

	if taken, err := s.users.ExistsByUsername(ctx, req.Username); err != nil {
		return nil, "", err
	} else if taken {
		ve.Add("username", "Username already exists.")
	}
	if taken, err := s.users.ExistsByEmail(ctx, req.Email); err != nil {
		return nil, "", err
	} else if taken {
		ve.Add("email", "Email already exists.")
	}

	if len(ve) > 0 {
		return nil, "", ve
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
	}

	err = s.users.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile := &domain.Profile{
			UserID: user.ID,
			Type:   profileType,
		}
		return tx.Create(profile).Error
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.jwt.GenerateToken(user.ID, user.IsStaff)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.User, string, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, user.IsStaff)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}
