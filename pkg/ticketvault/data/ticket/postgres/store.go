package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/ticketvault/ticketvault-server/pkg/database/query"
	"github.com/ticketvault/ticketvault-server/pkg/ticketvault/data/ticket"
)

type store struct {
	db *sqlx.DB
}

// New returns a new postgres ticket.Store
func New(db *sql.DB) ticket.Store {
	return &store{
		db: sqlx.NewDb(db, "pgx"),
	}
}

// Put implements ticket.Store.Put
func (s *store) Put(ctx context.Context, record *ticket.Record) error {
	model, err := toModel(record)
	if err != nil {
		return err
	}

	err = model.dbPut(ctx, s.db)
	if err != nil {
		return err
	}

	res := fromModel(model)
	res.CopyTo(record)

	return nil
}

// Get implements ticket.Store.Get
func (s *store) Get(ctx context.Context, address string) (*ticket.Record, error) {
	model, err := dbGet(ctx, s.db, address)
	if err != nil {
		return nil, err
	}
	return fromModel(model), nil
}

// GetAllByUser implements ticket.Store.GetAllByUser
func (s *store) GetAllByUser(ctx context.Context, user string, cursor uint64, limit uint, ordering query.Ordering) ([]*ticket.Record, error) {
	models, err := dbGetAllByUser(ctx, s.db, user, cursor, limit, ordering)
	if err != nil {
		return nil, err
	}

	res := make([]*ticket.Record, len(models))
	for i, model := range models {
		res[i] = fromModel(model)
	}
	return res, nil
}

// MarkClaimed implements ticket.Store.MarkClaimed
func (s *store) MarkClaimed(ctx context.Context, address string) (*ticket.Record, error) {
	model, err := dbMarkClaimed(ctx, s.db, address)
	if err != nil {
		return nil, err
	}
	return fromModel(model), nil
}
