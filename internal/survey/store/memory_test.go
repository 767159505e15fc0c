package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"energyadvice/internal/survey/models"
	"energyadvice/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	contractSuite
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) TestRecordsAreNotAliased() {
	ctx := context.Background()
	ref, err := s.store.GenerateReference(ctx)
	s.Require().NoError(err)

	loaded, err := s.store.Load(ctx, ref)
	s.Require().NoError(err)
	loaded.Country = models.CountryScotland

	again, err := s.store.Load(ctx, ref)
	s.Require().NoError(err)
	s.Empty(again.Country, "mutating a loaded record must not change the store")
}

func (s *InMemoryStoreSuite) TestReferenceCollisions() {
	ctx := context.Background()

	s.Run("retries a taken reference", func() {
		tokens := []string{"AAAAAAAA", "AAAAAAAA", "BBBBBBBB"}
		next := 0
		store := NewInMemory(WithReferenceGenerator(func() string {
			t := tokens[next]
			next++
			return t
		}))

		first, err := store.GenerateReference(ctx)
		s.Require().NoError(err)
		s.Equal("AAAAAAAA", first)

		second, err := store.GenerateReference(ctx)
		s.Require().NoError(err)
		s.Equal("BBBBBBBB", second)
	})

	s.Run("gives up after repeated collisions", func() {
		store := NewInMemory(WithReferenceGenerator(func() string { return "CCCCCCCC" }))

		_, err := store.GenerateReference(ctx)
		s.Require().NoError(err)

		_, err = store.GenerateReference(ctx)
		s.ErrorIs(err, sentinel.ErrConflict)
	})
}

func (s *InMemoryStoreSuite) TestConcurrentAccess() {
	ctx := context.Background()
	ref, err := s.store.GenerateReference(ctx)
	s.Require().NoError(err)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = s.store.GenerateReference(ctx)
		}()
		go func() {
			defer wg.Done()
			record, err := s.store.Load(ctx, ref)
			if err == nil {
				record.HeatingType = models.HeatingGasBoiler
				_ = s.store.Save(ctx, record)
			}
		}()
	}
	wg.Wait()

	record, err := s.store.Load(ctx, ref)
	s.Require().NoError(err)
	s.Equal(models.HeatingGasBoiler, record.HeatingType)
}
