package data

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	pg "github.com/ticketvault/ticketvault-server/pkg/database/postgres"
	"github.com/ticketvault/ticketvault-server/pkg/database/query"

	"github.com/ticketvault/ticketvault-server/pkg/ticketvault/data/event"
	"github.com/ticketvault/ticketvault-server/pkg/ticketvault/data/ticket"
	"github.com/ticketvault/ticketvault-server/pkg/ticketvault/data/vault"

	event_memory_client "github.com/ticketvault/ticketvault-server/pkg/ticketvault/data/event/memory"
	ticket_memory_client "github.com/ticketvault/ticketvault-server/pkg/ticketvault/data/ticket/memory"
	vault_memory_client "github.com/ticketvault/ticketvault-server/pkg/ticketvault/data/vault/memory"

	event_postgres_client "github.com/ticketvault/ticketvault-server/pkg/ticketvault/data/event/postgres"
	ticket_postgres_client "github.com/ticketvault/ticketvault-server/pkg/ticketvault/data/ticket/postgres"
	vault_postgres_client "github.com/ticketvault/ticketvault-server/pkg/ticketvault/data/vault/postgres"
)

// Provider is the injected view of all persisted program state. Handlers
// only ever touch records through it, which keeps them independently
// testable against the in-memory stores.
type Provider interface {
	ExecuteInTx(ctx context.Context, isolation sql.IsolationLevel, fn func(ctx context.Context) error) error

	// Event
	// --------------------------------------------------------------------------------
	CreateEvent(ctx context.Context, record *event.Record) error
	GetEvent(ctx context.Context, address string) (*event.Record, error)
	MarkEventTicketSold(ctx context.Context, address string) (*event.Record, error)

	// Ticket
	// --------------------------------------------------------------------------------
	CreateTicket(ctx context.Context, record *ticket.Record) error
	GetTicket(ctx context.Context, address string) (*ticket.Record, error)
	GetAllTicketsByUser(ctx context.Context, user string, cursor uint64, limit uint, ordering query.Ordering) ([]*ticket.Record, error)
	MarkTicketClaimed(ctx context.Context, address string) (*ticket.Record, error)

	// Vault
	// --------------------------------------------------------------------------------
	CreateVault(ctx context.Context, record *vault.Record) error
	GetVault(ctx context.Context, address string) (*vault.Record, error)
}

type DatabaseProvider struct {
	events  event.Store
	tickets ticket.Store
	vaults  vault.Store

	db *sqlx.DB
}

func NewDatabaseProvider(dbConfig *pg.Config) (Provider, error) {
	db, err := pg.NewWithUsernameAndPassword(
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Host,
		fmt.Sprint(dbConfig.Port),
		dbConfig.DbName,
	)
	if err != nil {
		return nil, err
	}

	if dbConfig.MaxOpenConnections > 0 {
		db.SetMaxOpenConns(dbConfig.MaxOpenConnections)
	}
	if dbConfig.MaxIdleConnections > 0 {
		db.SetMaxIdleConns(dbConfig.MaxIdleConnections)
	}
	db.SetConnMaxIdleTime(time.Hour)
	db.SetConnMaxLifetime(time.Hour)

	return &DatabaseProvider{
		events:  event_postgres_client.New(db),
		tickets: ticket_postgres_client.New(db),
		vaults:  vault_postgres_client.New(db),

		db: sqlx.NewDb(db, "pgx"),
	}, nil
}

func NewTestDataProvider() Provider {
	return &DatabaseProvider{
		events:  event_memory_client.New(),
		tickets: ticket_memory_client.New(),
		vaults:  vault_memory_client.New(),
	}
}

func (dp *DatabaseProvider) ExecuteInTx(ctx context.Context, isolation sql.IsolationLevel, fn func(ctx context.Context) error) error {
	if dp.db == nil {
		return fn(ctx)
	}

	return pg.ExecuteTxWithinCtx(ctx, dp.db, isolation, fn)
}

// Event
// --------------------------------------------------------------------------------
func (dp *DatabaseProvider) CreateEvent(ctx context.Context, record *event.Record) error {
	return dp.events.Put(ctx, record)
}
func (dp *DatabaseProvider) GetEvent(ctx context.Context, address string) (*event.Record, error) {
	return dp.events.Get(ctx, address)
}
func (dp *DatabaseProvider) MarkEventTicketSold(ctx context.Context, address string) (*event.Record, error) {
	return dp.events.MarkSold(ctx, address)
}

// Ticket
// --------------------------------------------------------------------------------
func (dp *DatabaseProvider) CreateTicket(ctx context.Context, record *ticket.Record) error {
	return dp.tickets.Put(ctx, record)
}
func (dp *DatabaseProvider) GetTicket(ctx context.Context, address string) (*ticket.Record, error) {
	return dp.tickets.Get(ctx, address)
}
func (dp *DatabaseProvider) GetAllTicketsByUser(ctx context.Context, user string, cursor uint64, limit uint, ordering query.Ordering) ([]*ticket.Record, error) {
	return dp.tickets.GetAllByUser(ctx, user, cursor, limit, ordering)
}
func (dp *DatabaseProvider) MarkTicketClaimed(ctx context.Context, address string) (*ticket.Record, error) {
	return dp.tickets.MarkClaimed(ctx, address)
}

// Vault
// --------------------------------------------------------------------------------
func (dp *DatabaseProvider) CreateVault(ctx context.Context, record *vault.Record) error {
	return dp.vaults.Put(ctx, record)
}
func (dp *DatabaseProvider) GetVault(ctx context.Context, address string) (*vault.Record, error) {
	return dp.vaults.Get(ctx, address)
}
