package program

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketvault/ticketvault-server/pkg/solana"
)

func TestGetEventAddress(t *testing.T) {
	creator := generateKey(t)

	address, bump, err := GetEventAddress(&GetEventAddressArgs{
		Creator: creator,
	})
	require.NoError(t, err)
	require.NoError(t, solana.VerifyProgramAddress(address, PROGRAM_ID, bump, EventPrefix, creator))

	// Derivation is deterministic per creator.
	again, againBump, err := GetEventAddress(&GetEventAddressArgs{
		Creator: creator,
	})
	require.NoError(t, err)
	assert.EqualValues(t, address, again)
	assert.Equal(t, bump, againBump)

	other, _, err := GetEventAddress(&GetEventAddressArgs{
		Creator: generateKey(t),
	})
	require.NoError(t, err)
	assert.NotEqualValues(t, address, other)
}

func TestGetVaultAddress(t *testing.T) {
	owner := generateKey(t)

	address, bump, err := GetVaultAddress(&GetVaultAddressArgs{
		Owner: owner,
	})
	require.NoError(t, err)
	require.NoError(t, solana.VerifyProgramAddress(address, PROGRAM_ID, bump, VaultPrefix, owner))

	// The vault is keyed by owner only, so it's shared across events.
	again, _, err := GetVaultAddress(&GetVaultAddressArgs{
		Owner: owner,
	})
	require.NoError(t, err)
	assert.EqualValues(t, address, again)
}

func TestGetTicketAddress(t *testing.T) {
	event := generateKey(t)
	user := generateKey(t)

	address, bump, err := GetTicketAddress(&GetTicketAddressArgs{
		Event: event,
		User:  user,
	})
	require.NoError(t, err)
	require.NoError(t, solana.VerifyProgramAddress(address, PROGRAM_ID, bump, TicketPrefix, event, user))

	again, _, err := GetTicketAddress(&GetTicketAddressArgs{
		Event: event,
		User:  user,
	})
	require.NoError(t, err)
	assert.EqualValues(t, address, again)

	otherUser, _, err := GetTicketAddress(&GetTicketAddressArgs{
		Event: event,
		User:  generateKey(t),
	})
	require.NoError(t, err)
	assert.NotEqualValues(t, address, otherUser)

	otherEvent, _, err := GetTicketAddress(&GetTicketAddressArgs{
		Event: generateKey(t),
		User:  user,
	})
	require.NoError(t, err)
	assert.NotEqualValues(t, address, otherEvent)
}

func generateKey(t *testing.T) ed25519.PublicKey {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return pub
}
