package token

import (
	"context"
	"errors"
)

var (
	ErrAccountNotFound   = errors.New("token account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Ledger is the external token ledger that holds the balances moved by
// enrollments. The engine trusts it to apply transfers atomically; it is
// the only collaborator that touches funds.
type Ledger interface {
	// CreateAccountIfAbsent returns the token account for the given owner,
	// creating an empty one if none exists yet. The mapping is stable, so
	// repeated calls for the same owner return the same account.
	CreateAccountIfAbsent(ctx context.Context, owner string) (string, error)

	// Transfer moves amount from the source to the destination token
	// account. ErrInsufficientFunds is returned without any movement if
	// the source balance is below amount.
	Transfer(ctx context.Context, source, destination string, amount uint64) error

	// GetBalance returns the balance of the given token account.
	//
	// ErrAccountNotFound is returned if the account doesn't exist.
	GetBalance(ctx context.Context, account string) (uint64, error)
}
