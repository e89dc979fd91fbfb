package memory

import (
	"context"
	"crypto/sha256"
	"sync"

	"github.com/mr-tron/base58"

	"github.com/ticketvault/ticketvault-server/pkg/ticketvault/token"
)

type ledger struct {
	mu       sync.Mutex
	accounts map[string]uint64 // token account -> balance
	byOwner  map[string]string // owner -> token account
}

// New returns a new in memory token.Ledger
func New() token.Ledger {
	return &ledger{
		accounts: make(map[string]uint64),
		byOwner:  make(map[string]string),
	}
}

// CreateAccountIfAbsent implements token.Ledger.CreateAccountIfAbsent
func (l *ledger) CreateAccountIfAbsent(_ context.Context, owner string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if account, ok := l.byOwner[owner]; ok {
		return account, nil
	}

	account := deriveTokenAccount(owner)
	l.byOwner[owner] = account
	l.accounts[account] = 0

	return account, nil
}

// Transfer implements token.Ledger.Transfer
func (l *ledger) Transfer(_ context.Context, source, destination string, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	sourceBalance, ok := l.accounts[source]
	if !ok {
		return token.ErrAccountNotFound
	}
	if _, ok := l.accounts[destination]; !ok {
		return token.ErrAccountNotFound
	}

	if sourceBalance < amount {
		return token.ErrInsufficientFunds
	}

	l.accounts[source] -= amount
	l.accounts[destination] += amount

	return nil
}

// GetBalance implements token.Ledger.GetBalance
func (l *ledger) GetBalance(_ context.Context, account string) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	balance, ok := l.accounts[account]
	if !ok {
		return 0, token.ErrAccountNotFound
	}

	return balance, nil
}

// Mint adds amount to the owner's token account, creating the account when
// needed. It exists so tests can fund accounts.
func Mint(l token.Ledger, owner string, amount uint64) string {
	typed := l.(*ledger)

	account, _ := typed.CreateAccountIfAbsent(context.Background(), owner)

	typed.mu.Lock()
	defer typed.mu.Unlock()

	typed.accounts[account] += amount

	return account
}

func deriveTokenAccount(owner string) string {
	h := sha256.Sum256(append([]byte("token-account"), []byte(owner)...))
	return base58.Encode(h[:])
}
