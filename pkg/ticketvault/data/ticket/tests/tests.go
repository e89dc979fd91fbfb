package tests

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketvault/ticketvault-server/pkg/database/query"
	"github.com/ticketvault/ticketvault-server/pkg/ticketvault/data/ticket"
	"github.com/ticketvault/ticketvault-server/pkg/ticketvault/program"
)

func RunTests(t *testing.T, s ticket.Store, teardown func()) {
	for _, tf := range []func(t *testing.T, s ticket.Store){
		testRoundTrip,
		testPutIsCreateIffAbsent,
		testGetAllByUser,
		testMarkClaimed,
	} {
		tf(t, s)
		teardown()
	}
}

func testRoundTrip(t *testing.T, s ticket.Store) {
	t.Run("testRoundTrip", func(t *testing.T) {
		ctx := context.Background()
		start := time.Now()

		record := &ticket.Record{
			Address:         "ticket_address",
			Bump:            253,
			Event:           "event_address",
			User:            "user_address",
			AmountDeposited: 1_000_000_000,
			Class:           program.TicketClassGeneral,
			TicketId:        "746573745f7469636b65745f69645f30",
		}
		cloned := record.Clone()

		_, err := s.Get(ctx, record.Address)
		assert.Equal(t, ticket.ErrTicketNotFound, err)

		require.NoError(t, s.Put(ctx, record))
		assert.True(t, record.Id > 0)
		assert.True(t, record.CreatedAt.After(start))

		actual, err := s.Get(ctx, cloned.Address)
		require.NoError(t, err)
		assertEquivalentRecords(t, &cloned, actual)
		assert.False(t, actual.Claimed)
	})
}

func testPutIsCreateIffAbsent(t *testing.T, s ticket.Store) {
	t.Run("testPutIsCreateIffAbsent", func(t *testing.T) {
		ctx := context.Background()

		record := &ticket.Record{
			Address:         "ticket_address",
			Event:           "event_address",
			User:            "user_address",
			AmountDeposited: 1_000_000_000,
		}
		require.NoError(t, s.Put(ctx, record))

		duplicate := record.Clone()
		duplicate.Id = 0
		duplicate.AmountDeposited = 2_000_000_000
		assert.Equal(t, ticket.ErrTicketAlreadyExists, s.Put(ctx, &duplicate))

		actual, err := s.Get(ctx, record.Address)
		require.NoError(t, err)
		assert.EqualValues(t, 1_000_000_000, actual.AmountDeposited)
	})
}

func testGetAllByUser(t *testing.T, s ticket.Store) {
	t.Run("testGetAllByUser", func(t *testing.T) {
		ctx := context.Background()

		_, err := s.GetAllByUser(ctx, "user_address", 0, 10, query.Ascending)
		assert.Equal(t, ticket.ErrTicketNotFound, err)

		for i := 0; i < 3; i++ {
			require.NoError(t, s.Put(ctx, &ticket.Record{
				Address:         fmt.Sprintf("ticket_address_%d", i),
				Event:           fmt.Sprintf("event_address_%d", i),
				User:            "user_address",
				AmountDeposited: 1_000_000_000,
			}))
		}
		require.NoError(t, s.Put(ctx, &ticket.Record{
			Address:         "other_ticket_address",
			Event:           "event_address_0",
			User:            "other_user_address",
			AmountDeposited: 1_000_000_000,
		}))

		actual, err := s.GetAllByUser(ctx, "user_address", 0, 10, query.Ascending)
		require.NoError(t, err)
		require.Len(t, actual, 3)
		for i, record := range actual {
			assert.Equal(t, "user_address", record.User)
			assert.Equal(t, fmt.Sprintf("ticket_address_%d", i), record.Address)
		}

		// Descending flips the order
		actual, err = s.GetAllByUser(ctx, "user_address", 0, 10, query.Descending)
		require.NoError(t, err)
		require.Len(t, actual, 3)
		assert.Equal(t, "ticket_address_2", actual[0].Address)

		// Page forward from a cursor
		actual, err = s.GetAllByUser(ctx, "user_address", actual[2].Id, 10, query.Ascending)
		require.NoError(t, err)
		require.Len(t, actual, 2)
		assert.Equal(t, "ticket_address_1", actual[0].Address)

		// Limit caps the page size
		actual, err = s.GetAllByUser(ctx, "user_address", 0, 2, query.Ascending)
		require.NoError(t, err)
		require.Len(t, actual, 2)
	})
}

func testMarkClaimed(t *testing.T, s ticket.Store) {
	t.Run("testMarkClaimed", func(t *testing.T) {
		ctx := context.Background()

		_, err := s.MarkClaimed(ctx, "missing_address")
		assert.Equal(t, ticket.ErrTicketNotFound, err)

		record := &ticket.Record{
			Address:         "ticket_address",
			Event:           "event_address",
			User:            "user_address",
			AmountDeposited: 1_000_000_000,
		}
		require.NoError(t, s.Put(ctx, record))

		updated, err := s.MarkClaimed(ctx, record.Address)
		require.NoError(t, err)
		assert.True(t, updated.Claimed)

		// The transition is one way and happens exactly once.
		_, err = s.MarkClaimed(ctx, record.Address)
		assert.Equal(t, ticket.ErrTicketAlreadyClaimed, err)

		actual, err := s.Get(ctx, record.Address)
		require.NoError(t, err)
		assert.True(t, actual.Claimed)
	})
}

func assertEquivalentRecords(t *testing.T, obj1, obj2 *ticket.Record) {
	assert.Equal(t, obj1.Address, obj2.Address)
	assert.Equal(t, obj1.Bump, obj2.Bump)
	assert.Equal(t, obj1.Event, obj2.Event)
	assert.Equal(t, obj1.User, obj2.User)
	assert.Equal(t, obj1.AmountDeposited, obj2.AmountDeposited)
	assert.Equal(t, obj1.Claimed, obj2.Claimed)
	assert.Equal(t, obj1.Class, obj2.Class)
	assert.Equal(t, obj1.TicketId, obj2.TicketId)
}
