package program

import (
	"crypto/ed25519"
	"errors"
)

var (
	ErrInvalidAccountData = errors.New("unexpected account data")
)

var (
	PROGRAM_ADDRESS = mustBase58Decode("6httayQ9toKM8tKjSg5p4AJG9Z4s7zWPELY2BVNizWkL")
	PROGRAM_ID      = ed25519.PublicKey(PROGRAM_ADDRESS)
)

type AccountType uint8

const (
	AccountTypeUnknown AccountType = iota
	AccountTypeEvent
	AccountTypeVault
	AccountTypeTicket
)

func (t AccountType) String() string {
	switch t {
	case AccountTypeEvent:
		return "event"
	case AccountTypeVault:
		return "vault"
	case AccountTypeTicket:
		return "ticket"
	}
	return "unknown"
}
