package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	pgutil "github.com/ticketvault/ticketvault-server/pkg/database/postgres"
	"github.com/ticketvault/ticketvault-server/pkg/ticketvault/data/event"
)

const (
	tableName = "ticketvault__core_event"
)

type model struct {
	Id sql.NullInt64 `db:"id"`

	Address string `db:"address"`
	Bump    uint8  `db:"bump"`

	Creator string `db:"creator"`

	Capacity         uint32 `db:"capacity"`
	TicketsSold      uint32 `db:"tickets_sold"`
	TicketsAvailable bool   `db:"tickets_available"`

	Description   string `db:"description"`
	TicketFee     uint64 `db:"ticket_fee"`
	DepositAmount uint64 `db:"deposit_amount"`

	CreatedAt time.Time `db:"created_at"`
}

func toModel(obj *event.Record) (*model, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	return &model{
		Address: obj.Address,
		Bump:    obj.Bump,

		Creator: obj.Creator,

		Capacity:         obj.Capacity,
		TicketsSold:      obj.TicketsSold,
		TicketsAvailable: obj.TicketsAvailable,

		Description:   obj.Description,
		TicketFee:     obj.TicketFee,
		DepositAmount: obj.DepositAmount,

		CreatedAt: obj.CreatedAt,
	}, nil
}

func fromModel(obj *model) *event.Record {
	return &event.Record{
		Id: uint64(obj.Id.Int64),

		Address: obj.Address,
		Bump:    obj.Bump,

		Creator: obj.Creator,

		Capacity:         obj.Capacity,
		TicketsSold:      obj.TicketsSold,
		TicketsAvailable: obj.TicketsAvailable,

		Description:   obj.Description,
		TicketFee:     obj.TicketFee,
		DepositAmount: obj.DepositAmount,

		CreatedAt: obj.CreatedAt,
	}
}

func (m *model) dbPut(ctx context.Context, db *sqlx.DB) error {
	query := `INSERT INTO ` + tableName + `
		(address, bump, creator, capacity, tickets_sold, tickets_available, description, ticket_fee, deposit_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)

		RETURNING id, address, bump, creator, capacity, tickets_sold, tickets_available, description, ticket_fee, deposit_amount, created_at`

	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}

	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(
			ctx,
			query,
			m.Address,
			m.Bump,
			m.Creator,
			m.Capacity,
			m.TicketsSold,
			m.TicketsAvailable,
			m.Description,
			m.TicketFee,
			m.DepositAmount,
			m.CreatedAt,
		).StructScan(m)

		return pgutil.CheckUniqueViolation(err, event.ErrEventAlreadyExists)
	})
}

func dbGet(ctx context.Context, db *sqlx.DB, address string) (*model, error) {
	var res model

	query := `SELECT id, address, bump, creator, capacity, tickets_sold, tickets_available, description, ticket_fee, deposit_amount, created_at FROM ` + tableName + `
		WHERE address = $1
	`

	err := db.GetContext(ctx, &res, query, address)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, event.ErrEventNotFound)
	}
	return &res, nil
}

func dbMarkSold(ctx context.Context, db *sqlx.DB, address string) (*model, error) {
	var res model

	query := `UPDATE ` + tableName + `
		SET tickets_sold = tickets_sold + 1, tickets_available = tickets_sold + 1 < capacity
		WHERE address = $1 AND tickets_available

		RETURNING id, address, bump, creator, capacity, tickets_sold, tickets_available, description, ticket_fee, deposit_amount, created_at`

	err := pgutil.ExecuteInTx(ctx, db, sql.LevelRepeatableRead, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx, query, address).StructScan(&res)
		if pgutil.IsNoRows(err) {
			// Distinguish a missing event from one with no tickets left.
			var existing model
			err = tx.GetContext(ctx, &existing, `SELECT id, address, bump, creator, capacity, tickets_sold, tickets_available, description, ticket_fee, deposit_amount, created_at FROM `+tableName+` WHERE address = $1`, address)
			if err != nil {
				return pgutil.CheckNoRows(err, event.ErrEventNotFound)
			}
			return event.ErrEventSoldOut
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}
