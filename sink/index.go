package sink

import (
	"sync"

	"github.com/cqkv/propmigrate/index"
	"github.com/cqkv/propmigrate/model"
)

// Index publishes migrated records into an in memory index
type Index struct {
	idx     index.Index
	mu      sync.Mutex
	pending []*model.PropertyRecord
}

var _ Sink = (*Index)(nil)

func NewIndex(idx index.Index) *Index {
	return &Index{idx: idx}
}

func (s *Index) Put(record *model.PropertyRecord) error {
	s.mu.Lock()
	s.pending = append(s.pending, record)
	s.mu.Unlock()
	return nil
}

func (s *Index) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, record := range s.pending {
		s.idx.Put(record)
	}
	s.pending = nil
	return nil
}

func (s *Index) Discard() error {
	s.mu.Lock()
	s.pending = nil
	s.mu.Unlock()
	return nil
}

func (s *Index) Index() index.Index {
	return s.idx
}
