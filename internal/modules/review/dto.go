package review

type CreateReviewRequest struct {
	BusinessUser int64  `json:"business_user"`
	Reviewer     *int64 `json:"reviewer"`
	Rating       int    `json:"rating" validate:"required,gte=1,lte=5"`
	Description  string `json:"description" validate:"required"`
}

type UpdateReviewRequest struct {
	Rating      *int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Description *string `json:"description"`
}

// ListQuery carries raw query parameters, parsed by the service.
type ListQuery struct {
	BusinessUserID string
	ReviewerID     string
	Ordering       string
}
