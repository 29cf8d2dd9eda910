package domain

import "errors"

// Sentinel errors for the domain layer. The API edge maps these onto the
// 400/401/403/404/500 taxonomy.
var (
	ErrNotFound            = errors.New("domain: not found")
	ErrConflict            = errors.New("domain: conflict")
	ErrValidation          = errors.New("domain: validation failed")
	ErrUnauthorized        = errors.New("domain: unauthorized")
	ErrInsufficientCredits = errors.New("domain: insufficient audit credits")
	ErrLimitReached        = errors.New("domain: monthly audit limit reached")
)
