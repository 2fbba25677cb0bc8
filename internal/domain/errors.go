package domain

import "errors"

// Sentinel errors shared across services and mapped to HTTP status codes
// by the handlers (404 / 409 / 403).
var (
	ErrSellerNotRegistered = errors.New("seller not registered")
	ErrSellerNotFound      = errors.New("seller not found")
	ErrListingNotFound     = errors.New("listing not found")
	ErrInsufficientEnergy  = errors.New("insufficient energy available")
	ErrListingNotActive    = errors.New("listing is not active")
	ErrNotListingSeller    = errors.New("only the listing seller can cancel this listing")
)
