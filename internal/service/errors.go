package service

import "errors"

var (
	// ErrCouponNotFound is returned when no coupon matches the given id
	ErrCouponNotFound = errors.New("coupon not found")

	// ErrInvalidRequest is returned when request data is nil or incomplete
	ErrInvalidRequest = errors.New("invalid request")
)
