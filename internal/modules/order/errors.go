package order

import "errors"

var (
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("order not found")
	ErrDetailNotFound   = errors.New("offer detail not found")
	ErrBusinessNotFound = errors.New("business user not found")
)
