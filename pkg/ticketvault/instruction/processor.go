package instruction

import (
	"bytes"
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ticketvault/ticketvault-server/pkg/database/query"
	"github.com/ticketvault/ticketvault-server/pkg/metrics"
	"github.com/ticketvault/ticketvault-server/pkg/solana"
	sync_util "github.com/ticketvault/ticketvault-server/pkg/sync"
	"github.com/ticketvault/ticketvault-server/pkg/ticketvault/common"
	"github.com/ticketvault/ticketvault-server/pkg/ticketvault/data"
	"github.com/ticketvault/ticketvault-server/pkg/ticketvault/data/event"
	"github.com/ticketvault/ticketvault-server/pkg/ticketvault/data/ticket"
	"github.com/ticketvault/ticketvault-server/pkg/ticketvault/data/vault"
	"github.com/ticketvault/ticketvault-server/pkg/ticketvault/program"
	"github.com/ticketvault/ticketvault-server/pkg/ticketvault/token"
)

const (
	accountLockStripes = 64
)

// Processor is the state-machine core. Each operation re-derives the
// expected address for every account it receives, rejects mismatches,
// checks all preconditions, and only then mutates records or moves funds.
// Address derivation doubles as the authorization mechanism: the seeds
// include the identity that must own the account.
type Processor struct {
	log  *logrus.Entry
	conf *conf

	data   data.Provider
	tokens token.Ledger

	accountLocks *sync_util.StripedLock
}

func NewProcessor(data data.Provider, tokens token.Ledger, configProvider ConfigProvider) *Processor {
	return &Processor{
		log:  logrus.StandardLogger().WithField("type", "ticketvault/instruction/processor"),
		conf: configProvider(),

		data:   data,
		tokens: tokens,

		accountLocks: sync_util.NewStripedLock(accountLockStripes),
	}
}

type InitializeEventArgs struct {
	Capacity      uint32
	Description   string
	TicketFee     uint64
	DepositAmount uint64
}

type InitializeEventAccounts struct {
	Event   *common.Account
	Creator *common.Account
}

// InitializeEvent creates the event record at the address derived from the
// creator. Re-initialization fails with ErrAlreadyExists; the record is
// immutable once created.
func (p *Processor) InitializeEvent(ctx context.Context, args *InitializeEventArgs, accounts *InitializeEventAccounts) (*program.EventAccount, error) {
	defer metrics.TraceMethodCall(ctx, metricsStructName, "InitializeEvent").End()

	log := p.log.WithField("method", "InitializeEvent")

	if args.Capacity == 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "capacity must be positive")
	}
	if args.TicketFee == 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "ticket fee must be positive")
	}
	if len(args.Description) == 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "description is required")
	}
	if len(args.Description) > program.MaxEventDescriptionLength {
		return nil, errors.Wrap(ErrInvalidArgument, "description is too long")
	}
	if err := validateAccounts(accounts.Event, accounts.Creator); err != nil {
		return nil, err
	}

	log = log.WithField("creator", accounts.Creator.PublicKey().ToBase58())

	derivedEvent, bump, err := program.GetEventAddress(&program.GetEventAddressArgs{
		Creator: accounts.Creator.PublicKey().ToBytes(),
	})
	if err != nil {
		log.WithError(err).Warn("failure deriving event address")
		return nil, err
	}
	if !bytes.Equal(derivedEvent, accounts.Event.PublicKey().ToBytes()) {
		return nil, errors.Wrap(ErrAddressMismatch, "event")
	}

	eventAddress := accounts.Event.PublicKey().ToBase58()
	log = log.WithField("event", eventAddress)

	record := &event.Record{
		Address: eventAddress,
		Bump:    bump,

		Creator: accounts.Creator.PublicKey().ToBase58(),

		Capacity:         args.Capacity,
		TicketsSold:      0,
		TicketsAvailable: true,

		Description:   args.Description,
		TicketFee:     args.TicketFee,
		DepositAmount: args.DepositAmount,
	}
	if err := p.data.CreateEvent(ctx, record); err == event.ErrEventAlreadyExists {
		return nil, errors.Wrap(ErrAlreadyExists, "event")
	} else if err != nil {
		log.WithError(err).Warn("failure creating event record")
		return nil, err
	}

	recordEventInitializedEvent(ctx, record)

	return toEventAccount(record)
}

type EnrollAccounts struct {
	Event  *common.Account
	Ticket *common.Account
	Vault  *common.Account

	VaultTokenAccount   string
	UserTokenAccount    string
	CreatorTokenAccount string

	Creator *common.Account
	User    *common.Account
}

// Enroll issues the ticket for an (event, user) pair, escrowing exactly the
// event's ticket fee from the user's token account into the user's vault.
// The operation is all-or-nothing: any failure leaves balances and records
// untouched.
func (p *Processor) Enroll(ctx context.Context, accounts *EnrollAccounts) (*program.TicketAccount, error) {
	defer metrics.TraceMethodCall(ctx, metricsStructName, "Enroll").End()

	log := p.log.WithField("method", "Enroll")

	if err := validateAccounts(accounts.Event, accounts.Ticket, accounts.Vault, accounts.Creator, accounts.User); err != nil {
		return nil, err
	}
	if len(accounts.UserTokenAccount) == 0 || len(accounts.VaultTokenAccount) == 0 || len(accounts.CreatorTokenAccount) == 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "token accounts are required")
	}

	log = log.WithFields(logrus.Fields{
		"event": accounts.Event.PublicKey().ToBase58(),
		"user":  accounts.User.PublicKey().ToBase58(),
	})

	derivedEvent, _, err := program.GetEventAddress(&program.GetEventAddressArgs{
		Creator: accounts.Creator.PublicKey().ToBytes(),
	})
	if err != nil {
		log.WithError(err).Warn("failure deriving event address")
		return nil, err
	}
	if !bytes.Equal(derivedEvent, accounts.Event.PublicKey().ToBytes()) {
		return nil, errors.Wrap(ErrAddressMismatch, "event")
	}

	derivedVault, vaultBump, err := program.GetVaultAddress(&program.GetVaultAddressArgs{
		Owner: accounts.User.PublicKey().ToBytes(),
	})
	if err != nil {
		log.WithError(err).Warn("failure deriving vault address")
		return nil, err
	}
	if !bytes.Equal(derivedVault, accounts.Vault.PublicKey().ToBytes()) {
		return nil, errors.Wrap(ErrAddressMismatch, "vault")
	}

	derivedTicket, ticketBump, err := program.GetTicketAddress(&program.GetTicketAddressArgs{
		Event: accounts.Event.PublicKey().ToBytes(),
		User:  accounts.User.PublicKey().ToBytes(),
	})
	if err != nil {
		log.WithError(err).Warn("failure deriving ticket address")
		return nil, err
	}
	if !bytes.Equal(derivedTicket, accounts.Ticket.PublicKey().ToBytes()) {
		return nil, errors.Wrap(ErrAddressMismatch, "ticket")
	}

	eventAddress := accounts.Event.PublicKey().ToBase58()
	ticketAddress := accounts.Ticket.PublicKey().ToBase58()
	vaultAddress := accounts.Vault.PublicKey().ToBase58()

	// Serialize enrollments per event in-process. The ticket derivation
	// includes the event, so this also serializes same-ticket attempts. The
	// stores' create-iff-absent remains the cross-process guarantee.
	lock := p.accountLocks.Get(derivedEvent)
	lock.Lock()
	defer lock.Unlock()

	eventRecord, err := p.data.GetEvent(ctx, eventAddress)
	if err == event.ErrEventNotFound {
		return nil, errors.Wrap(ErrNotFound, "event")
	} else if err != nil {
		log.WithError(err).Warn("failure getting event record")
		return nil, err
	}

	_, err = p.data.GetTicket(ctx, ticketAddress)
	if err == nil {
		return nil, errors.Wrap(ErrAlreadyExists, "ticket")
	} else if err != ticket.ErrTicketNotFound {
		log.WithError(err).Warn("failure getting ticket record")
		return nil, err
	}

	if !eventRecord.TicketsAvailable && !p.conf.disableCapacityChecks.Get(ctx) {
		return nil, errors.Wrap(ErrSoldOut, "event")
	}

	// The token accounts are verified against the ledger's stable
	// owner-to-account mapping before any funds move.
	userTokenAccount, err := p.tokens.CreateAccountIfAbsent(ctx, accounts.User.PublicKey().ToBase58())
	if err != nil {
		log.WithError(err).Warn("failure resolving user token account")
		return nil, err
	}
	if userTokenAccount != accounts.UserTokenAccount {
		return nil, errors.Wrap(ErrAddressMismatch, "user token account")
	}

	vaultTokenAccount, err := p.tokens.CreateAccountIfAbsent(ctx, vaultAddress)
	if err != nil {
		log.WithError(err).Warn("failure resolving vault token account")
		return nil, err
	}
	if vaultTokenAccount != accounts.VaultTokenAccount {
		return nil, errors.Wrap(ErrAddressMismatch, "vault token account")
	}

	balance, err := p.tokens.GetBalance(ctx, userTokenAccount)
	if err != nil {
		log.WithError(err).Warn("failure getting user token balance")
		return nil, err
	}
	if balance < eventRecord.TicketFee {
		return nil, errors.Wrap(ErrInsufficientFunds, "user token account")
	}

	if err := p.tokens.Transfer(ctx, userTokenAccount, vaultTokenAccount, eventRecord.TicketFee); err == token.ErrInsufficientFunds {
		return nil, errors.Wrap(ErrInsufficientFunds, "user token account")
	} else if err != nil {
		log.WithError(err).Warn("failure transferring ticket fee")
		return nil, err
	}

	ticketRecord := &ticket.Record{
		Address: ticketAddress,
		Bump:    ticketBump,

		Event: eventAddress,
		User:  accounts.User.PublicKey().ToBase58(),

		AmountDeposited: eventRecord.TicketFee,
		Claimed:         false,

		Class:    program.GetTicketClassFromFee(eventRecord.TicketFee),
		TicketId: program.GetTicketId(accounts.User.PublicKey().ToBytes(), time.Now().UnixNano()).String(),
	}

	// The sold-counter CAS is the only step here that demands repeatable
	// read, so the transaction opens at that level for the stores to share.
	err = p.data.ExecuteInTx(ctx, sql.LevelRepeatableRead, func(ctx context.Context) error {
		// The CAS also runs first: the in-memory provider commits writes
		// immediately, so every fallible step must precede record creation.
		if _, err := p.data.MarkEventTicketSold(ctx, eventAddress); err != nil {
			if err != event.ErrEventSoldOut || !p.conf.disableCapacityChecks.Get(ctx) {
				return err
			}
		}

		vaultRecord := &vault.Record{
			Address: vaultAddress,
			Bump:    vaultBump,

			Owner: accounts.User.PublicKey().ToBase58(),

			TokenAccount: vaultTokenAccount,
		}
		if err := p.data.CreateVault(ctx, vaultRecord); err != nil && err != vault.ErrVaultAlreadyExists {
			return err
		}

		return p.data.CreateTicket(ctx, ticketRecord)
	})
	if err != nil {
		// The fee already moved, so a lost race at commit is compensated by
		// moving it back. The per-event lock makes this unreachable within
		// a single process.
		if compensationErr := p.tokens.Transfer(ctx, vaultTokenAccount, userTokenAccount, eventRecord.TicketFee); compensationErr != nil {
			log.WithError(compensationErr).Error("failure returning ticket fee after aborted enrollment")
		}

		switch err {
		case ticket.ErrTicketAlreadyExists:
			return nil, errors.Wrap(ErrAlreadyExists, "ticket")
		case event.ErrEventSoldOut:
			return nil, errors.Wrap(ErrSoldOut, "event")
		case event.ErrEventNotFound:
			return nil, errors.Wrap(ErrNotFound, "event")
		default:
			log.WithError(err).Warn("failure committing enrollment")
			return nil, err
		}
	}

	recordEnrollmentEvent(ctx, ticketRecord)

	return toTicketAccount(ticketRecord)
}

type ClaimTicketAccounts struct {
	Event  *common.Account
	Ticket *common.Account
	User   *common.Account
}

// ClaimTicket transitions the ticket to its terminal claimed state. Only the
// enrolled user can claim, and a claim happens exactly once. No funds move.
func (p *Processor) ClaimTicket(ctx context.Context, accounts *ClaimTicketAccounts) (*program.TicketAccount, error) {
	defer metrics.TraceMethodCall(ctx, metricsStructName, "ClaimTicket").End()

	log := p.log.WithField("method", "ClaimTicket")

	if err := validateAccounts(accounts.Event, accounts.Ticket, accounts.User); err != nil {
		return nil, err
	}

	log = log.WithFields(logrus.Fields{
		"ticket": accounts.Ticket.PublicKey().ToBase58(),
		"user":   accounts.User.PublicKey().ToBase58(),
	})

	ticketAddress := accounts.Ticket.PublicKey().ToBase58()

	lock := p.accountLocks.Get(accounts.Ticket.PublicKey().ToBytes())
	lock.Lock()
	defer lock.Unlock()

	ticketRecord, err := p.data.GetTicket(ctx, ticketAddress)
	if err == ticket.ErrTicketNotFound {
		return nil, errors.Wrap(ErrNotFound, "ticket")
	} else if err != nil {
		log.WithError(err).Warn("failure getting ticket record")
		return nil, err
	}

	// The ticket's seeds are verified against the user recorded on it, so a
	// caller that isn't that user is rejected as unauthorized rather than
	// as a derivation mismatch.
	enrolledUser, err := common.NewAccountFromPublicKeyString(ticketRecord.User)
	if err != nil {
		log.WithError(err).Warn("failure loading enrolled user")
		return nil, err
	}
	err = solana.VerifyProgramAddress(
		accounts.Ticket.PublicKey().ToBytes(),
		program.PROGRAM_ID,
		ticketRecord.Bump,
		program.TicketPrefix,
		accounts.Event.PublicKey().ToBytes(),
		enrolledUser.PublicKey().ToBytes(),
	)
	if err == solana.ErrInvalidDerivedAddress {
		return nil, errors.Wrap(ErrAddressMismatch, "ticket")
	} else if err != nil {
		log.WithError(err).Warn("failure verifying ticket address")
		return nil, err
	}

	if !accounts.User.IsSame(enrolledUser) {
		return nil, errors.Wrap(ErrUnauthorized, "user")
	}

	updated, err := p.data.MarkTicketClaimed(ctx, ticketAddress)
	if err == ticket.ErrTicketAlreadyClaimed {
		return nil, errors.Wrap(ErrAlreadyClaimed, "ticket")
	} else if err == ticket.ErrTicketNotFound {
		return nil, errors.Wrap(ErrNotFound, "ticket")
	} else if err != nil {
		log.WithError(err).Warn("failure claiming ticket")
		return nil, err
	}

	recordTicketClaimedEvent(ctx, updated)

	return toTicketAccount(updated)
}

// GetEvent fetches and decodes the event record at the given derived
// address. Read-only, no side effects.
func (p *Processor) GetEvent(ctx context.Context, address string) (*program.EventAccount, error) {
	record, err := p.data.GetEvent(ctx, address)
	if err == event.ErrEventNotFound {
		return nil, errors.Wrap(ErrNotFound, "event")
	} else if err != nil {
		return nil, err
	}

	return toEventAccount(record)
}

// GetTicket fetches and decodes the ticket record at the given derived
// address. Read-only, no side effects.
func (p *Processor) GetTicket(ctx context.Context, address string) (*program.TicketAccount, error) {
	record, err := p.data.GetTicket(ctx, address)
	if err == ticket.ErrTicketNotFound {
		return nil, errors.Wrap(ErrNotFound, "ticket")
	} else if err != nil {
		return nil, err
	}

	return toTicketAccount(record)
}

// GetTicketsByUser lists the tickets issued to a user across all events,
// paged by record id. Read-only, no side effects.
func (p *Processor) GetTicketsByUser(ctx context.Context, user string, cursor uint64, limit uint, ordering query.Ordering) ([]*program.TicketAccount, error) {
	records, err := p.data.GetAllTicketsByUser(ctx, user, cursor, limit, ordering)
	if err == ticket.ErrTicketNotFound {
		return nil, errors.Wrap(ErrNotFound, "ticket")
	} else if err != nil {
		return nil, err
	}

	res := make([]*program.TicketAccount, len(records))
	for i, record := range records {
		res[i], err = toTicketAccount(record)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// GetAccountData returns the discriminator-prefixed binary encoding of the
// record at the given derived address, whichever kind it is. Readers decode
// it with the typed Unmarshal for the kind they expect, which rejects an
// account of the wrong kind instead of misinterpreting it.
func (p *Processor) GetAccountData(ctx context.Context, address string) ([]byte, error) {
	defer metrics.TraceMethodCall(ctx, metricsStructName, "GetAccountData").End()

	eventRecord, err := p.data.GetEvent(ctx, address)
	if err == nil {
		marshalled, err := toEventAccount(eventRecord)
		if err != nil {
			return nil, err
		}
		return marshalled.Marshal(), nil
	} else if err != event.ErrEventNotFound {
		return nil, err
	}

	ticketRecord, err := p.data.GetTicket(ctx, address)
	if err == nil {
		marshalled, err := toTicketAccount(ticketRecord)
		if err != nil {
			return nil, err
		}
		return marshalled.Marshal(), nil
	} else if err != ticket.ErrTicketNotFound {
		return nil, err
	}

	vaultRecord, err := p.data.GetVault(ctx, address)
	if err == nil {
		marshalled, err := toVaultAccount(vaultRecord)
		if err != nil {
			return nil, err
		}
		return marshalled.Marshal(), nil
	} else if err != vault.ErrVaultNotFound {
		return nil, err
	}

	return nil, errors.Wrap(ErrNotFound, "account")
}

func validateAccounts(accounts ...*common.Account) error {
	for _, account := range accounts {
		if account == nil {
			return errors.Wrap(ErrInvalidArgument, "account is required")
		}
		if err := account.Validate(); err != nil {
			return errors.Wrap(ErrInvalidArgument, err.Error())
		}
	}
	return nil
}

func toEventAccount(record *event.Record) (*program.EventAccount, error) {
	creator, err := common.NewAccountFromPublicKeyString(record.Creator)
	if err != nil {
		return nil, err
	}

	return &program.EventAccount{
		Creator: creator.PublicKey().ToBytes(),
		Bump:    record.Bump,

		Capacity:         record.Capacity,
		TicketsSold:      record.TicketsSold,
		TicketsAvailable: record.TicketsAvailable,

		Description:   record.Description,
		TicketFee:     record.TicketFee,
		DepositAmount: record.DepositAmount,
	}, nil
}

func toTicketAccount(record *ticket.Record) (*program.TicketAccount, error) {
	eventAccount, err := common.NewAccountFromPublicKeyString(record.Event)
	if err != nil {
		return nil, err
	}
	user, err := common.NewAccountFromPublicKeyString(record.User)
	if err != nil {
		return nil, err
	}
	id, err := program.NewTicketIdFromString(record.TicketId)
	if err != nil {
		return nil, err
	}

	return &program.TicketAccount{
		Event: eventAccount.PublicKey().ToBytes(),
		User:  user.PublicKey().ToBytes(),
		Bump:  record.Bump,

		AmountDeposited: record.AmountDeposited,
		Claimed:         record.Claimed,

		Class: record.Class,
		Id:    id,
	}, nil
}

func toVaultAccount(record *vault.Record) (*program.VaultAccount, error) {
	owner, err := common.NewAccountFromPublicKeyString(record.Owner)
	if err != nil {
		return nil, err
	}

	return &program.VaultAccount{
		Owner: owner.PublicKey().ToBytes(),
		Bump:  record.Bump,
	}, nil
}
