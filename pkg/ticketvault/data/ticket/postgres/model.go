package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	pgutil "github.com/ticketvault/ticketvault-server/pkg/database/postgres"
	q "github.com/ticketvault/ticketvault-server/pkg/database/query"
	"github.com/ticketvault/ticketvault-server/pkg/ticketvault/data/ticket"
	"github.com/ticketvault/ticketvault-server/pkg/ticketvault/program"
)

const (
	tableName = "ticketvault__core_ticket"
)

type model struct {
	Id sql.NullInt64 `db:"id"`

	Address string `db:"address"`
	Bump    uint8  `db:"bump"`

	Event string `db:"event"`
	User  string `db:"user_address"`

	AmountDeposited uint64 `db:"amount_deposited"`
	Claimed         bool   `db:"claimed"`

	Class    int    `db:"class"`
	TicketId string `db:"ticket_id"`

	CreatedAt time.Time `db:"created_at"`
}

func toModel(obj *ticket.Record) (*model, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	return &model{
		Address: obj.Address,
		Bump:    obj.Bump,

		Event: obj.Event,
		User:  obj.User,

		AmountDeposited: obj.AmountDeposited,
		Claimed:         obj.Claimed,

		Class:    int(obj.Class),
		TicketId: obj.TicketId,

		CreatedAt: obj.CreatedAt,
	}, nil
}

func fromModel(obj *model) *ticket.Record {
	return &ticket.Record{
		Id: uint64(obj.Id.Int64),

		Address: obj.Address,
		Bump:    obj.Bump,

		Event: obj.Event,
		User:  obj.User,

		AmountDeposited: obj.AmountDeposited,
		Claimed:         obj.Claimed,

		Class:    program.TicketClass(obj.Class),
		TicketId: obj.TicketId,

		CreatedAt: obj.CreatedAt,
	}
}

func (m *model) dbPut(ctx context.Context, db *sqlx.DB) error {
	query := `INSERT INTO ` + tableName + `
		(address, bump, event, user_address, amount_deposited, claimed, class, ticket_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)

		RETURNING id, address, bump, event, user_address, amount_deposited, claimed, class, ticket_id, created_at`

	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}

	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(
			ctx,
			query,
			m.Address,
			m.Bump,
			m.Event,
			m.User,
			m.AmountDeposited,
			m.Claimed,
			m.Class,
			m.TicketId,
			m.CreatedAt,
		).StructScan(m)

		return pgutil.CheckUniqueViolation(err, ticket.ErrTicketAlreadyExists)
	})
}

func dbGet(ctx context.Context, db *sqlx.DB, address string) (*model, error) {
	var res model

	query := `SELECT id, address, bump, event, user_address, amount_deposited, claimed, class, ticket_id, created_at FROM ` + tableName + `
		WHERE address = $1
	`

	err := db.GetContext(ctx, &res, query, address)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, ticket.ErrTicketNotFound)
	}
	return &res, nil
}

func dbGetAllByUser(ctx context.Context, db *sqlx.DB, user string, cursor uint64, limit uint, ordering q.Ordering) ([]*model, error) {
	var res []*model

	err := db.SelectContext(ctx, &res,
		makeGetAllQuery("user_address = $1", ordering, cursor > 0),
		user, limit, cursor,
	)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, ticket.ErrTicketNotFound)
	}

	if len(res) == 0 {
		return nil, ticket.ErrTicketNotFound
	}
	return res, nil
}

func makeGetAllQuery(condition string, ordering q.Ordering, withCursor bool) string {
	query := `SELECT id, address, bump, event, user_address, amount_deposited, claimed, class, ticket_id, created_at FROM ` + tableName + ` WHERE`

	if withCursor {
		if ordering == q.Ascending {
			query = query + " id > $3 AND"
		} else {
			query = query + " id < $3 AND"
		}
	} else {
		query = query + " (id < $3 OR id >= $3) AND"
	}

	query = query + " (" + condition + ")"
	query = query + " ORDER BY id " + q.FromOrderingWithFallback(ordering, "ASC")
	query = query + " LIMIT $2"

	return query
}

func dbMarkClaimed(ctx context.Context, db *sqlx.DB, address string) (*model, error) {
	var res model

	query := `UPDATE ` + tableName + `
		SET claimed = TRUE
		WHERE address = $1 AND NOT claimed

		RETURNING id, address, bump, event, user_address, amount_deposited, claimed, class, ticket_id, created_at`

	err := pgutil.ExecuteInTx(ctx, db, sql.LevelRepeatableRead, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx, query, address).StructScan(&res)
		if pgutil.IsNoRows(err) {
			// Distinguish a missing ticket from one that was already claimed.
			var existing model
			err = tx.GetContext(ctx, &existing, `SELECT id, address, bump, event, user_address, amount_deposited, claimed, class, ticket_id, created_at FROM `+tableName+` WHERE address = $1`, address)
			if err != nil {
				return pgutil.CheckNoRows(err, ticket.ErrTicketNotFound)
			}
			return ticket.ErrTicketAlreadyClaimed
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}
