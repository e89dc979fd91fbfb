package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ticketvault/ticketvault-server/pkg/database/query"
	"github.com/ticketvault/ticketvault-server/pkg/ticketvault/data/ticket"
)

type store struct {
	mu      sync.Mutex
	last    uint64
	records []*ticket.Record
}

// New returns a new in memory ticket.Store
func New() ticket.Store {
	return &store{}
}

// Put implements ticket.Store.Put
func (s *store) Put(_ context.Context, data *ticket.Record) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if item := s.find(data.Address); item != nil {
		return ticket.ErrTicketAlreadyExists
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

// Get implements ticket.Store.Get
func (s *store) Get(_ context.Context, address string) (*ticket.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.find(address)
	if item == nil {
		return nil, ticket.ErrTicketNotFound
	}

	cloned := item.Clone()
	return &cloned, nil
}

// GetAllByUser implements ticket.Store.GetAllByUser
func (s *store) GetAllByUser(_ context.Context, user string, cursor uint64, limit uint, ordering query.Ordering) ([]*ticket.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit == 0 {
		return nil, ticket.ErrTicketNotFound
	}

	var res []*ticket.Record
	for _, item := range s.records {
		if item.User != user {
			continue
		}

		if ordering == query.Ascending {
			if item.Id > cursor {
				cloned := item.Clone()
				res = append(res, &cloned)
			}
		} else {
			if cursor == 0 || item.Id < cursor {
				cloned := item.Clone()
				res = append(res, &cloned)
			}
		}
	}

	sort.Slice(res, func(i, j int) bool {
		if ordering == query.Ascending {
			return res[i].Id < res[j].Id
		}
		return res[i].Id > res[j].Id
	})

	if len(res) == 0 {
		return nil, ticket.ErrTicketNotFound
	}

	if len(res) > int(limit) {
		res = res[:limit]
	}
	return res, nil
}

// MarkClaimed implements ticket.Store.MarkClaimed
func (s *store) MarkClaimed(_ context.Context, address string) (*ticket.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.find(address)
	if item == nil {
		return nil, ticket.ErrTicketNotFound
	}

	if item.Claimed {
		return nil, ticket.ErrTicketAlreadyClaimed
	}

	item.Claimed = true

	cloned := item.Clone()
	return &cloned, nil
}

func (s *store) find(address string) *ticket.Record {
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
