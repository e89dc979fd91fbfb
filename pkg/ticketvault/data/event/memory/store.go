package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ticketvault/ticketvault-server/pkg/ticketvault/data/event"
)

type store struct {
	mu      sync.Mutex
	last    uint64
	records []*event.Record
}

// New returns a new in memory event.Store
func New() event.Store {
	return &store{}
}

// Put implements event.Store.Put
func (s *store) Put(_ context.Context, data *event.Record) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if item := s.find(data.Address); item != nil {
		return event.ErrEventAlreadyExists
	}

	s.last++

	data.Id = s.last
	if data.CreatedAt.IsZero() {
		data.CreatedAt = time.Now()
	}

	cloned := data.Clone()
	s.records = append(s.records, &cloned)

	return nil
}

// Get implements event.Store.Get
func (s *store) Get(_ context.Context, address string) (*event.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.find(address)
	if item == nil {
		return nil, event.ErrEventNotFound
	}

	cloned := item.Clone()
	return &cloned, nil
}

// MarkSold implements event.Store.MarkSold
func (s *store) MarkSold(_ context.Context, address string) (*event.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.find(address)
	if item == nil {
		return nil, event.ErrEventNotFound
	}

	if !item.TicketsAvailable || item.TicketsSold >= item.Capacity {
		return nil, event.ErrEventSoldOut
	}

	item.TicketsSold++
	if item.TicketsSold >= item.Capacity {
		item.TicketsAvailable = false
	}

	cloned := item.Clone()
	return &cloned, nil
}

func (s *store) find(address string) *event.Record {
	for _, item := range s.records {
		if item.Address == address {
			return item
		}
	}
	return nil
}

func (s *store) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = 0
	s.records = nil
}
