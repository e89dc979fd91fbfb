package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	pgutil "github.com/ticketvault/ticketvault-server/pkg/database/postgres"
	"github.com/ticketvault/ticketvault-server/pkg/ticketvault/data/vault"
)

const (
	tableName = "ticketvault__core_vault"
)

type model struct {
	Id sql.NullInt64 `db:"id"`

	Address string `db:"address"`
	Bump    uint8  `db:"bump"`

	Owner string `db:"owner"`

	TokenAccount string `db:"token_account"`

	CreatedAt time.Time `db:"created_at"`
}

func toModel(obj *vault.Record) (*model, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	return &model{
		Address: obj.Address,
		Bump:    obj.Bump,

		Owner: obj.Owner,

		TokenAccount: obj.TokenAccount,

		CreatedAt: obj.CreatedAt,
	}, nil
}

func fromModel(obj *model) *vault.Record {
	return &vault.Record{
		Id: uint64(obj.Id.Int64),

		Address: obj.Address,
		Bump:    obj.Bump,

		Owner: obj.Owner,

		TokenAccount: obj.TokenAccount,

		CreatedAt: obj.CreatedAt,
	}
}

func (m *model) dbPut(ctx context.Context, db *sqlx.DB) error {
	query := `INSERT INTO ` + tableName + `
		(address, bump, owner, token_account, created_at)
		VALUES ($1, $2, $3, $4, $5)

		RETURNING id, address, bump, owner, token_account, created_at`

	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}

	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(
			ctx,
			query,
			m.Address,
			m.Bump,
			m.Owner,
			m.TokenAccount,
			m.CreatedAt,
		).StructScan(m)

		return pgutil.CheckUniqueViolation(err, vault.ErrVaultAlreadyExists)
	})
}

func dbGet(ctx context.Context, db *sqlx.DB, address string) (*model, error) {
	var res model

	query := `SELECT id, address, bump, owner, token_account, created_at FROM ` + tableName + `
		WHERE address = $1
	`

	err := db.GetContext(ctx, &res, query, address)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, vault.ErrVaultNotFound)
	}
	return &res, nil
}
