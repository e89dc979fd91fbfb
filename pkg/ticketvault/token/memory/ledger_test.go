package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketvault/ticketvault-server/pkg/ticketvault/token"
)

func TestCreateAccountIfAbsent(t *testing.T) {
	ctx := context.Background()
	l := New()

	account1, err := l.CreateAccountIfAbsent(ctx, "owner1")
	require.NoError(t, err)

	balance, err := l.GetBalance(ctx, account1)
	require.NoError(t, err)
	assert.EqualValues(t, 0, balance)

	// Stable mapping for the same owner
	account2, err := l.CreateAccountIfAbsent(ctx, "owner1")
	require.NoError(t, err)
	assert.Equal(t, account1, account2)

	account3, err := l.CreateAccountIfAbsent(ctx, "owner2")
	require.NoError(t, err)
	assert.NotEqual(t, account1, account3)
}

func TestTransfer(t *testing.T) {
	ctx := context.Background()
	l := New()

	source := Mint(l, "payer", 100)
	destination, err := l.CreateAccountIfAbsent(ctx, "payee")
	require.NoError(t, err)

	require.NoError(t, l.Transfer(ctx, source, destination, 40))

	balance, err := l.GetBalance(ctx, source)
	require.NoError(t, err)
	assert.EqualValues(t, 60, balance)

	balance, err = l.GetBalance(ctx, destination)
	require.NoError(t, err)
	assert.EqualValues(t, 40, balance)
}

func TestTransfer_InsufficientFunds(t *testing.T) {
	ctx := context.Background()
	l := New()

	source := Mint(l, "payer", 10)
	destination, err := l.CreateAccountIfAbsent(ctx, "payee")
	require.NoError(t, err)

	err = l.Transfer(ctx, source, destination, 11)
	assert.Equal(t, token.ErrInsufficientFunds, err)

	// No movement on failure
	balance, err := l.GetBalance(ctx, source)
	require.NoError(t, err)
	assert.EqualValues(t, 10, balance)

	balance, err = l.GetBalance(ctx, destination)
	require.NoError(t, err)
	assert.EqualValues(t, 0, balance)
}

func TestTransfer_AccountNotFound(t *testing.T) {
	ctx := context.Background()
	l := New()

	source := Mint(l, "payer", 10)

	assert.Equal(t, token.ErrAccountNotFound, l.Transfer(ctx, source, "unknown", 1))
	assert.Equal(t, token.ErrAccountNotFound, l.Transfer(ctx, "unknown", source, 1))

	_, err := l.GetBalance(ctx, "unknown")
	assert.Equal(t, token.ErrAccountNotFound, err)
}
