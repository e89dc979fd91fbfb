package vault

import (
	"context"
	"errors"
	"time"
)

var (
	ErrVaultNotFound      = errors.New("vault not found")
	ErrVaultAlreadyExists = errors.New("vault already exists")
)

type Record struct {
	Id uint64

	Address string
	Bump    uint8

	Owner string

	TokenAccount string

	CreatedAt time.Time
}

type Store interface {
	// Put creates a new vault record. ErrVaultAlreadyExists is returned if a
	// record is already stored at the address; the vault is created lazily
	// on a user's first enrollment and shared by every one after it.
	Put(ctx context.Context, record *Record) error

	// Get finds the vault record at the given address.
	//
	// ErrVaultNotFound is returned if no record exists.
	Get(ctx context.Context, address string) (*Record, error)
}

func (r *Record) Validate() error {
	if len(r.Address) == 0 {
		return errors.New("address is required")
	}

	if len(r.Owner) == 0 {
		return errors.New("owner is required")
	}

	if len(r.TokenAccount) == 0 {
		return errors.New("token account is required")
	}

	return nil
}

func (r *Record) Clone() Record {
	return Record{
		Id: r.Id,

		Address: r.Address,
		Bump:    r.Bump,

		Owner: r.Owner,

		TokenAccount: r.TokenAccount,

		CreatedAt: r.CreatedAt,
	}
}

func (r *Record) CopyTo(dst *Record) {
	dst.Id = r.Id

	dst.Address = r.Address
	dst.Bump = r.Bump

	dst.Owner = r.Owner

	dst.TokenAccount = r.TokenAccount

	dst.CreatedAt = r.CreatedAt
}
