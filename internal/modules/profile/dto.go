package profile

import "coderr/internal/domain"

type UpdateProfileRequest struct {
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	File         *string `json:"file"`
	Location     *string `json:"location"`
	Tel          *string `json:"tel"`
	Description  *string `json:"description"`
	WorkingHours *string `json:"working_hours"`
	Email        *string `json:"email" binding:"omitempty,email"`
}

// ProfileResponse flattens the profile and its owning user.
type ProfileResponse struct {
	User         int64              `json:"user"`
	Username     string             `json:"username"`
	FirstName    string             `json:"first_name"`
	LastName     string             `json:"last_name"`
	File         string             `json:"file"`
	Location     string             `json:"location"`
	Tel          string             `json:"tel"`
	Description  string             `json:"description"`
	WorkingHours string             `json:"working_hours"`
	Type         domain.ProfileType `json:"type"`
	Email        string             `json:"email"`
	CreatedAt    string             `json:"created_at"`
}

func toResponse(p *domain.Profile, u *domain.User) ProfileResponse {
	return ProfileResponse{
		User:         p.UserID,
		Username:     u.Username,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		File:         p.File,
		Location:     p.Location,
		Tel:          p.Tel,
		Description:  p.Description,
		WorkingHours: p.WorkingHours,
		Type:         p.Type,
		Email:        u.Email,
		CreatedAt:    p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
