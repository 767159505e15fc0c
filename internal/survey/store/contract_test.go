package store

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"energyadvice/internal/survey/models"
	"energyadvice/pkg/platform/sentinel"
)

// contractSuite holds the behaviour every backend must share. Backend suites
// embed it and set newStore in SetupTest.
type contractSuite struct {
	suite.Suite
	store Store
}

func (s *contractSuite) TestGenerateReference() {
	ctx := context.Background()

	s.Run("issues a short upper-case token backed by an empty record", func() {
		ref, err := s.store.GenerateReference(ctx)
		s.Require().NoError(err)
		s.Len(ref, ReferenceLength)
		s.Regexp(`^[0-9A-F]{8}$`, ref)

		record, err := s.store.Load(ctx, ref)
		s.Require().NoError(err)
		s.Equal(ref, record.Reference)
		s.Empty(record.OwnershipStatus)
		s.Nil(record.HomeAge)
		s.Empty(record.UserRecommendations)
	})

	s.Run("issues distinct tokens", func() {
		seen := map[string]bool{}
		for range 20 {
			ref, err := s.store.GenerateReference(ctx)
			s.Require().NoError(err)
			s.False(seen[ref])
			seen[ref] = true
		}
	})
}

func (s *contractSuite) TestIsReferenceValid() {
	ctx := context.Background()
	ref, err := s.store.GenerateReference(ctx)
	s.Require().NoError(err)

	ok, err := s.store.IsReferenceValid(ctx, ref)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.store.IsReferenceValid(ctx, "NOPE0000")
	s.Require().NoError(err)
	s.False(ok)
}

func (s *contractSuite) TestLoadAndSave() {
	ctx := context.Background()

	s.Run("round trips every field", func() {
		ref, err := s.store.GenerateReference(ctx)
		s.Require().NoError(err)

		record, err := s.store.Load(ctx, ref)
		s.Require().NoError(err)

		age := 1962
		temp := 19.5
		record.OwnershipStatus = models.OwnershipOwnerOccupancy
		record.Country = models.CountryWales
		record.PropertyType = models.PropertyFlat
		record.FlatType = models.FlatTopFloor
		record.HomeAge = &age
		record.WallType = models.WallDoNotKnow
		record.Temperature = &temp
		record.UserRecommendations = []models.UserRecommendation{
			{Key: models.KeyAddLoftInsulation, Title: "Add some loft insulation", MinInstallCost: 300, MaxInstallCost: 700, Saving: 45, Decision: models.DecisionSaveToActionPlan},
		}
		record.UpdatedAt = time.Now().UTC().Truncate(time.Second)
		s.Require().NoError(s.store.Save(ctx, record))

		loaded, err := s.store.Load(ctx, ref)
		s.Require().NoError(err)
		s.Equal(models.CountryWales, loaded.Country)
		s.Equal(models.FlatTopFloor, loaded.FlatType)
		s.Require().NotNil(loaded.HomeAge)
		s.Equal(1962, *loaded.HomeAge)
		s.Require().NotNil(loaded.Temperature)
		s.InDelta(19.5, *loaded.Temperature, 0.0001)
		s.Equal(record.UserRecommendations, loaded.UserRecommendations)
	})

	s.Run("later save wins", func() {
		ref, err := s.store.GenerateReference(ctx)
		s.Require().NoError(err)

		first, err := s.store.Load(ctx, ref)
		s.Require().NoError(err)
		second := first.Clone()

		first.GlazingType = models.GlazingSingle
		second.GlazingType = models.GlazingBoth
		s.Require().NoError(s.store.Save(ctx, first))
		s.Require().NoError(s.store.Save(ctx, second))

		loaded, err := s.store.Load(ctx, ref)
		s.Require().NoError(err)
		s.Equal(models.GlazingBoth, loaded.GlazingType)
	})

	s.Run("unknown reference is not found", func() {
		_, err := s.store.Load(ctx, "NOPE0000")
		s.ErrorIs(err, sentinel.ErrNotFound)

		err = s.store.Save(ctx, &models.AnswerRecord{Reference: "NOPE0000"})
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}
