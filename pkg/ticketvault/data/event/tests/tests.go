package tests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketvault/ticketvault-server/pkg/ticketvault/data/event"
)

func RunTests(t *testing.T, s event.Store, teardown func()) {
	for _, tf := range []func(t *testing.T, s event.Store){
		testRoundTrip,
		testPutIsCreateIffAbsent,
		testMarkSold,
	} {
		tf(t, s)
		teardown()
	}
}

func testRoundTrip(t *testing.T, s event.Store) {
	t.Run("testRoundTrip", func(t *testing.T) {
		ctx := context.Background()
		start := time.Now()

		record := &event.Record{
			Address:          "event_address",
			Bump:             254,
			Creator:          "creator_address",
			Capacity:         10,
			TicketsAvailable: true,
			Description:      "an event",
			TicketFee:        1_000_000_000,
			DepositAmount:    1_000_000_000,
		}
		cloned := record.Clone()

		_, err := s.Get(ctx, record.Address)
		assert.Equal(t, event.ErrEventNotFound, err)

		require.NoError(t, s.Put(ctx, record))
		assert.True(t, record.Id > 0)
		assert.True(t, record.CreatedAt.After(start))

		actual, err := s.Get(ctx, cloned.Address)
		require.NoError(t, err)
		assertEquivalentRecords(t, &cloned, actual)
	})
}

func testPutIsCreateIffAbsent(t *testing.T, s event.Store) {
	t.Run("testPutIsCreateIffAbsent", func(t *testing.T) {
		ctx := context.Background()

		record := &event.Record{
			Address:          "event_address",
			Creator:          "creator_address",
			Capacity:         10,
			TicketsAvailable: true,
			Description:      "an event",
			TicketFee:        1_000_000_000,
		}
		require.NoError(t, s.Put(ctx, record))

		// A second creation at the same address must collide, even with
		// different contents.
		duplicate := record.Clone()
		duplicate.Id = 0
		duplicate.Description = "a different event"
		assert.Equal(t, event.ErrEventAlreadyExists, s.Put(ctx, &duplicate))

		actual, err := s.Get(ctx, record.Address)
		require.NoError(t, err)
		assert.Equal(t, "an event", actual.Description)
	})
}

func testMarkSold(t *testing.T, s event.Store) {
	t.Run("testMarkSold", func(t *testing.T) {
		ctx := context.Background()

		_, err := s.MarkSold(ctx, "missing_address")
		assert.Equal(t, event.ErrEventNotFound, err)

		record := &event.Record{
			Address:          "event_address",
			Creator:          "creator_address",
			Capacity:         2,
			TicketsAvailable: true,
			Description:      "an event",
			TicketFee:        1_000_000_000,
		}
		require.NoError(t, s.Put(ctx, record))

		updated, err := s.MarkSold(ctx, record.Address)
		require.NoError(t, err)
		assert.EqualValues(t, 1, updated.TicketsSold)
		assert.True(t, updated.TicketsAvailable)

		updated, err = s.MarkSold(ctx, record.Address)
		require.NoError(t, err)
		assert.EqualValues(t, 2, updated.TicketsSold)
		assert.False(t, updated.TicketsAvailable)

		_, err = s.MarkSold(ctx, record.Address)
		assert.Equal(t, event.ErrEventSoldOut, err)

		actual, err := s.Get(ctx, record.Address)
		require.NoError(t, err)
		assert.EqualValues(t, 2, actual.TicketsSold)
		assert.False(t, actual.TicketsAvailable)
	})
}

func assertEquivalentRecords(t *testing.T, obj1, obj2 *event.Record) {
	assert.Equal(t, obj1.Address, obj2.Address)
	assert.Equal(t, obj1.Bump, obj2.Bump)
	assert.Equal(t, obj1.Creator, obj2.Creator)
	assert.Equal(t, obj1.Capacity, obj2.Capacity)
	assert.Equal(t, obj1.TicketsSold, obj2.TicketsSold)
	assert.Equal(t, obj1.TicketsAvailable, obj2.TicketsAvailable)
	assert.Equal(t, obj1.Description, obj2.Description)
	assert.Equal(t, obj1.TicketFee, obj2.TicketFee)
	assert.Equal(t, obj1.DepositAmount, obj2.DepositAmount)
}
