package program

import (
	"crypto/ed25519"

	"github.com/ticketvault/ticketvault-server/pkg/solana"
)

var (
	EventPrefix  = []byte("event")
	VaultPrefix  = []byte("vault")
	TicketPrefix = []byte("ticket")
)

type GetEventAddressArgs struct {
	Creator ed25519.PublicKey
}

// GetEventAddress derives the address of the event account owned by a
// creator. There is exactly one event address per creator.
func GetEventAddress(args *GetEventAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		EventPrefix,
		args.Creator,
	)
}

type GetVaultAddressArgs struct {
	Owner ed25519.PublicKey
}

// GetVaultAddress derives the address of a user's escrow vault. The vault is
// keyed by user only, so a single vault custodies that user's deposits
// across all events.
func GetVaultAddress(args *GetVaultAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		VaultPrefix,
		args.Owner,
	)
}

type GetTicketAddressArgs struct {
	Event ed25519.PublicKey
	User  ed25519.PublicKey
}

// GetTicketAddress derives the address of the ticket account for an
// (event, user) pair. The derivation is the uniqueness guarantee for
// single enrollment.
func GetTicketAddress(args *GetTicketAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		TicketPrefix,
		args.Event,
		args.User,
	)
}
