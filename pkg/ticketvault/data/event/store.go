package event

import (
	"context"
	"errors"
	"time"

	"github.com/ticketvault/ticketvault-server/pkg/ticketvault/program"
)

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrEventAlreadyExists = errors.New("event already exists")
	ErrEventSoldOut       = errors.New("event is sold out")
)

type Record struct {
	Id uint64

	Address string
	Bump    uint8

	Creator string

	Capacity         uint32
	TicketsSold      uint32
	TicketsAvailable bool

	Description   string
	TicketFee     uint64
	DepositAmount uint64

	CreatedAt time.Time
}

type Store interface {
	// Put creates a new event record. The record's address acts as a
	// compare-and-swap: creation fails with ErrEventAlreadyExists when a
	// record is already stored at that address.
	Put(ctx context.Context, record *Record) error

	// Get finds the event record at the given address.
	//
	// ErrEventNotFound is returned if no record exists.
	Get(ctx context.Context, address string) (*Record, error)

	// MarkSold atomically increments the sold counter for the event at the
	// given address, flipping availability off once capacity is reached.
	//
	// ErrEventNotFound is returned if no record exists. ErrEventSoldOut is
	// returned if the event has no tickets remaining, in which case the
	// record is left unchanged.
	MarkSold(ctx context.Context, address string) (*Record, error)
}

func (r *Record) Validate() error {
	if len(r.Address) == 0 {
		return errors.New("address is required")
	}

	if len(r.Creator) == 0 {
		return errors.New("creator is required")
	}

	if r.Capacity == 0 {
		return errors.New("capacity must be positive")
	}

	if r.TicketsSold > r.Capacity {
		return errors.New("tickets sold exceeds capacity")
	}

	if len(r.Description) == 0 {
		return errors.New("description is required")
	}

	if len(r.Description) > program.MaxEventDescriptionLength {
		return errors.New("description is too long")
	}

	if r.TicketFee == 0 {
		return errors.New("ticket fee must be positive")
	}

	return nil
}

func (r *Record) Clone() Record {
	return Record{
		Id: r.Id,

		Address: r.Address,
		Bump:    r.Bump,

		Creator: r.Creator,

		Capacity:         r.Capacity,
		TicketsSold:      r.TicketsSold,
		TicketsAvailable: r.TicketsAvailable,

		Description:   r.Description,
		TicketFee:     r.TicketFee,
		DepositAmount: r.DepositAmount,

		CreatedAt: r.CreatedAt,
	}
}

func (r *Record) CopyTo(dst *Record) {
	dst.Id = r.Id

	dst.Address = r.Address
	dst.Bump = r.Bump

	dst.Creator = r.Creator

	dst.Capacity = r.Capacity
	dst.TicketsSold = r.TicketsSold
	dst.TicketsAvailable = r.TicketsAvailable

	dst.Description = r.Description
	dst.TicketFee = r.TicketFee
	dst.DepositAmount = r.DepositAmount

	dst.CreatedAt = r.CreatedAt
}
