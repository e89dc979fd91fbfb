package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ticketvault/ticketvault-server/pkg/ticketvault/data/vault"
)

type store struct {
	mu      sync.Mutex
	last    uint64
	records []*vault.Record
}

// New returns a new in memory vault.Store
func New() vault.Store {
	return &store{}
}

// Put implements vault.Store.Put
func (s *store) Put(_ context.Context, data *vault.Record) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if item := s.find(data.Address); item != nil {
		return vault.ErrVaultAlreadyExists
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

// Get implements vault.Store.Get
func (s *store) Get(_ context.Context, address string) (*vault.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.find(address)
	if item == nil {
		return nil, vault.ErrVaultNotFound
	}

	cloned := item.Clone()
	return &cloned, nil
}

func (s *store) find(address string) *vault.Record {
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
