package auctionerrors

import (
	"errors"
	"fmt"
)

// Repository-level errors
var (
	ErrNotFound = errors.New("record not found")
	ErrNoBids   = errors.New("no bids placed on listing")
)

// Business logic errors
var (
	ErrInvalidBid    = errors.New("invalid bid")
	ErrForbidden     = errors.New("action restricted to the listing owner")
	ErrAlreadyClosed = errors.New("listing already closed")
	ErrListingOpen   = errors.New("listing is still open")
	ErrInvalidInput  = errors.New("invalid input")
)

// Account errors
var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ErrBidTooLow is the amount-specific case of ErrInvalidBid; errors.Is
// matches it against both sentinels.
var ErrBidTooLow = fmt.Errorf("%w: amount does not exceed current price", ErrInvalidBid)
