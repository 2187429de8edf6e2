package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrThrottled  = errors.New("refresh budget exhausted")
)
