package apperror

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNotFound        = errors.New("not found")
)
