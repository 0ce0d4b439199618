package review

import "errors"

var (
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("review not found")
	ErrReviewNotAllowed = errors.New("review not allowed")
	ErrNoBusinessUser   = errors.New("no business user supplied")
)
