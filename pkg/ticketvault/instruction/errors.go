package instruction

import "errors"

// Every failure a caller can observe from the instruction surface. Handlers
// validate all preconditions before mutating anything, so any of these
// implies no partial effect was committed.
var (
	// ErrInvalidArgument indicates malformed instruction input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound indicates a referenced record does not exist when it's
	// required to.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyExists indicates record creation was attempted where one
	// already exists. This covers both double-initialize and double-enroll.
	ErrAlreadyExists = errors.New("record already exists")

	// ErrUnauthorized indicates the caller identity does not match the
	// required owner for the operation.
	ErrUnauthorized = errors.New("caller is not authorized")

	// ErrInsufficientFunds indicates the token transfer cannot be satisfied.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrAlreadyClaimed indicates a claim was attempted on a ticket that has
	// already been claimed.
	ErrAlreadyClaimed = errors.New("ticket already claimed")

	// ErrSoldOut indicates the event has no tickets remaining.
	ErrSoldOut = errors.New("event is sold out")

	// ErrAddressMismatch indicates a supplied account does not match the
	// address derived from its expected seeds.
	ErrAddressMismatch = errors.New("account does not match derived address")
)
