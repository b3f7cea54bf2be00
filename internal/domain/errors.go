package domain

import "errors"

var (
	ErrProfileNotFound   = errors.New("profile not found")
	ErrMatchNotFound     = errors.New("match not found")
	ErrInvalidAction     = errors.New("action must be 'like' or 'pass'")
	ErrCannotSwipeSelf   = errors.New("cannot swipe your own profile")
	ErrEmptyMessage      = errors.New("message content must not be empty")
	ErrInvalidToken      = errors.New("invalid profile token")
	ErrMissingDeviceID   = errors.New("device id is required")
	ErrInvalidIdentity   = errors.New("identity token could not be verified")
	ErrInvalidAgeWindow  = errors.New("min age preference must not exceed max age preference")
	ErrNegativeAge       = errors.New("age must not be negative")
	ErrNegativeDistance  = errors.New("max distance must not be negative")
)
