package ticket

import (
	"context"
	"errors"
	"time"

	"github.com/ticketvault/ticketvault-server/pkg/database/query"
	"github.com/ticketvault/ticketvault-server/pkg/ticketvault/program"
)

var (
	ErrTicketNotFound       = errors.New("ticket not found")
	ErrTicketAlreadyExists  = errors.New("ticket already exists")
	ErrTicketAlreadyClaimed = errors.New("ticket already claimed")
)

type Record struct {
	Id uint64

	Address string
	Bump    uint8

	Event string
	User  string

	AmountDeposited uint64
	Claimed         bool

	Class    program.TicketClass
	TicketId string

	CreatedAt time.Time
}

type Store interface {
	// Put creates a new ticket record. The derived address acts as a
	// compare-and-swap: at most one record can ever be created per address,
	// so a second enrollment for the same (event, user) pair fails with
	// ErrTicketAlreadyExists.
	Put(ctx context.Context, record *Record) error

	// Get finds the ticket record at the given address.
	//
	// ErrTicketNotFound is returned if no record exists.
	Get(ctx context.Context, address string) (*Record, error)

	// GetAllByUser finds ticket records issued to a user, paged by record id.
	//
	// ErrTicketNotFound is returned if no records match.
	GetAllByUser(ctx context.Context, user string, cursor uint64, limit uint, ordering query.Ordering) ([]*Record, error)

	// MarkClaimed transitions the ticket at the given address from issued to
	// claimed. The transition happens exactly once: a second call fails with
	// ErrTicketAlreadyClaimed and leaves the record unchanged.
	MarkClaimed(ctx context.Context, address string) (*Record, error)
}

func (r *Record) Validate() error {
	if len(r.Address) == 0 {
		return errors.New("address is required")
	}

	if len(r.Event) == 0 {
		return errors.New("event is required")
	}

	if len(r.User) == 0 {
		return errors.New("user is required")
	}

	if r.AmountDeposited == 0 {
		return errors.New("amount deposited is required")
	}

	return nil
}

func (r *Record) Clone() Record {
	return Record{
		Id: r.Id,

		Address: r.Address,
		Bump:    r.Bump,

		Event: r.Event,
		User:  r.User,

		AmountDeposited: r.AmountDeposited,
		Claimed:         r.Claimed,

		Class:    r.Class,
		TicketId: r.TicketId,

		CreatedAt: r.CreatedAt,
	}
}

func (r *Record) CopyTo(dst *Record) {
	dst.Id = r.Id

	dst.Address = r.Address
	dst.Bump = r.Bump

	dst.Event = r.Event
	dst.User = r.User

	dst.AmountDeposited = r.AmountDeposited
	dst.Claimed = r.Claimed

	dst.Class = r.Class
	dst.TicketId = r.TicketId

	dst.CreatedAt = r.CreatedAt
}
