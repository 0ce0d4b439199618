package offer

import "errors"

var (
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("offer not found")
	ErrDetailNotFound = errors.New("offer detail not found")
)
