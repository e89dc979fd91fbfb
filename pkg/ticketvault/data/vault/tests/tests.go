package tests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketvault/ticketvault-server/pkg/ticketvault/data/vault"
)

func RunTests(t *testing.T, s vault.Store, teardown func()) {
	for _, tf := range []func(t *testing.T, s vault.Store){
		testRoundTrip,
		testPutIsCreateIffAbsent,
	} {
		tf(t, s)
		teardown()
	}
}

func testRoundTrip(t *testing.T, s vault.Store) {
	t.Run("testRoundTrip", func(t *testing.T) {
		ctx := context.Background()
		start := time.Now()

		record := &vault.Record{
			Address:      "vault_address",
			Bump:         252,
			Owner:        "user_address",
			TokenAccount: "vault_token_account",
		}
		cloned := record.Clone()

		_, err := s.Get(ctx, record.Address)
		assert.Equal(t, vault.ErrVaultNotFound, err)

		require.NoError(t, s.Put(ctx, record))
		assert.True(t, record.Id > 0)
		assert.True(t, record.CreatedAt.After(start))

		actual, err := s.Get(ctx, cloned.Address)
		require.NoError(t, err)
		assertEquivalentRecords(t, &cloned, actual)
	})
}

func testPutIsCreateIffAbsent(t *testing.T, s vault.Store) {
	t.Run("testPutIsCreateIffAbsent", func(t *testing.T) {
		ctx := context.Background()

		record := &vault.Record{
			Address:      "vault_address",
			Owner:        "user_address",
			TokenAccount: "vault_token_account",
		}
		require.NoError(t, s.Put(ctx, record))

		duplicate := record.Clone()
		duplicate.Id = 0
		assert.Equal(t, vault.ErrVaultAlreadyExists, s.Put(ctx, &duplicate))
	})
}

func assertEquivalentRecords(t *testing.T, obj1, obj2 *vault.Record) {
	assert.Equal(t, obj1.Address, obj2.Address)
	assert.Equal(t, obj1.Bump, obj2.Bump)
	assert.Equal(t, obj1.Owner, obj2.Owner)
	assert.Equal(t, obj1.TokenAccount, obj2.TokenAccount)
}
