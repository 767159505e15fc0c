package store

import (
	"context"
	"sync"

	"energyadvice/internal/survey/models"
	"energyadvice/pkg/platform/sentinel"
)

// InMemoryStore keeps records in a map. Records are cloned on the way in and
// out so callers never share memory with the store.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string]*models.AnswerRecord
	opts    options
}

// NewInMemory constructs an empty in-memory store.
func NewInMemory(opts ...Option) *InMemoryStore {
	return &InMemoryStore{
		records: make(map[string]*models.AnswerRecord),
		opts:    buildOptions(opts),
	}
}

func (s *InMemoryStore) GenerateReference(ctx context.Context) (string, error) {
	return issue(ctx, s.opts.newReference, func(_ context.Context, reference string) (bool, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, taken := s.records[reference]; taken {
			return false, nil
		}
		s.records[reference] = models.NewAnswerRecord(reference, s.opts.clock())
		return true, nil
	})
}

func (s *InMemoryStore) IsReferenceValid(_ context.Context, reference string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.records[reference]
	return ok, nil
}

func (s *InMemoryStore) Load(_ context.Context, reference string) (*models.AnswerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[reference]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return record.Clone(), nil
}

func (s *InMemoryStore) Save(_ context.Context, record *models.AnswerRecord) error {
	if record == nil {
		return sentinel.ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[record.Reference]; !ok {
		return sentinel.ErrNotFound
	}
	s.records[record.Reference] = record.Clone()
	return nil
}
