package services

import "errors"

// Precondition and authorization failures, checked before any backend write.
// Controllers map these to HTTP codes instead of string-matching.
var (
	ErrUnauthorized      = errors.New("not authenticated")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrEmptyPatch        = errors.New("empty patch")
)
