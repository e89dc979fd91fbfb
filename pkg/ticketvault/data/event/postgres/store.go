package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/ticketvault/ticketvault-server/pkg/ticketvault/data/event"
)

type store struct {
	db *sqlx.DB
}

// New returns a new postgres event.Store
func New(db *sql.DB) event.Store {
	return &store{
		db: sqlx.NewDb(db, "pgx"),
	}
}

// Put implements event.Store.Put
func (s *store) Put(ctx context.Context, record *event.Record) error {
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

// Get implements event.Store.Get
func (s *store) Get(ctx context.Context, address string) (*event.Record, error) {
	model, err := dbGet(ctx, s.db, address)
	if err != nil {
		return nil, err
	}
	return fromModel(model), nil
}

// MarkSold implements event.Store.MarkSold
func (s *store) MarkSold(ctx context.Context, address string) (*event.Record, error) {
	model, err := dbMarkSold(ctx, s.db, address)
	if err != nil {
		return nil, err
	}
	return fromModel(model), nil
}
