package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "energyadvice/pkg/domain-errors"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestApplyStoresOptionAnswers(t *testing.T) {
	tests := []struct {
		question QuestionID
		raw      string
		check    func(t *testing.T, a *AnswerRecord)
	}{
		{QuestionOwnershipStatus, `"owner_occupancy"`, func(t *testing.T, a *AnswerRecord) {
			assert.Equal(t, OwnershipOwnerOccupancy, a.OwnershipStatus)
		}},
		{QuestionCountry, `"wales"`, func(t *testing.T, a *AnswerRecord) {
			assert.Equal(t, CountryWales, a.Country)
		}},
		{QuestionPropertyType, `"apartment_flat_or_maisonette"`, func(t *testing.T, a *AnswerRecord) {
			assert.Equal(t, PropertyFlat, a.PropertyType)
		}},
		{QuestionBungalowType, `"semi_detached"`, func(t *testing.T, a *AnswerRecord) {
			assert.Equal(t, HouseSemiDetached, a.BungalowType)
		}},
		{QuestionFlatType, `"ground_floor"`, func(t *testing.T, a *AnswerRecord) {
			assert.Equal(t, FlatGroundFloor, a.FlatType)
		}},
		{QuestionRoofInsulated, `"do_not_know"`, func(t *testing.T, a *AnswerRecord) {
			assert.Equal(t, AnswerDoNotKnow, a.RoofInsulated)
		}},
		{QuestionGlazingType, `"both"`, func(t *testing.T, a *AnswerRecord) {
			assert.Equal(t, GlazingBoth, a.GlazingType)
		}},
		{QuestionHeatingPattern, `"twice_a_day"`, func(t *testing.T, a *AnswerRecord) {
			assert.Equal(t, PatternTwiceADay, a.HeatingPattern)
		}},
		{QuestionHomeAge, `1960`, func(t *testing.T, a *AnswerRecord) {
			require.NotNil(t, a.HomeAge)
			assert.Equal(t, 1960, *a.HomeAge)
		}},
		{QuestionTemperature, `19.5`, func(t *testing.T, a *AnswerRecord) {
			require.NotNil(t, a.Temperature)
			assert.InDelta(t, 19.5, *a.Temperature, 0.001)
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.question), func(t *testing.T) {
			a := NewAnswerRecord("REF00001", now)
			require.NoError(t, a.Apply(tt.question, json.RawMessage(tt.raw), now))
			tt.check(t, a)
			assert.True(t, a.IsAnswered(tt.question))
		})
	}
}

func TestApplyRejectsInvalidAnswers(t *testing.T) {
	tests := []struct {
		name     string
		question QuestionID
		raw      string
	}{
		{"unknown option", QuestionWallType, `"straw"`},
		{"wrong json type", QuestionCountry, `42`},
		{"year too old", QuestionHomeAge, `999`},
		{"year in the future", QuestionHomeAge, `2025`},
		{"fractional year", QuestionHomeAge, `1960.5`},
		{"temperature too high", QuestionTemperature, `40`},
		{"terminal question", QuestionAnswerSummary, `"x"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAnswerRecord("REF00001", now)
			err := a.Apply(tt.question, json.RawMessage(tt.raw), now)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		})
	}
}

func TestApplyOverwritesAndKeepsAnswerOnFailure(t *testing.T) {
	a := NewAnswerRecord("REF00001", now)
	require.NoError(t, a.Apply(QuestionGlazingType, json.RawMessage(`"single_glazed"`), now))
	require.NoError(t, a.Apply(QuestionGlazingType, json.RawMessage(`"double_or_triple_glazed"`), now))
	assert.Equal(t, GlazingDoubleOrTriple, a.GlazingType)

	require.Error(t, a.Apply(QuestionGlazingType, json.RawMessage(`"stained"`), now))
	assert.Equal(t, GlazingDoubleOrTriple, a.GlazingType, "failed answer must not clear the previous one")
}

func TestFlatOnFloorIgnoresStaleFlatType(t *testing.T) {
	a := &AnswerRecord{PropertyType: PropertyFlat, FlatType: FlatGroundFloor}
	assert.True(t, a.FlatOnFloor(FlatGroundFloor, FlatMiddleFloor))

	a.PropertyType = PropertyHouse
	assert.False(t, a.FlatOnFloor(FlatGroundFloor, FlatMiddleFloor))

	unknown := &AnswerRecord{FlatType: FlatMiddleFloor}
	assert.True(t, unknown.FlatOnFloor(FlatMiddleFloor))
}

func TestCloneDoesNotAlias(t *testing.T) {
	year := 1950
	a := &AnswerRecord{
		HomeAge:             &year,
		UserRecommendations: []UserRecommendation{{Key: KeyFitNewWindows, Decision: DecisionUndecided}},
	}
	c := a.Clone()
	*c.HomeAge = 2000
	c.UserRecommendations[0].Decision = DecisionReject

	assert.Equal(t, 1950, *a.HomeAge)
	assert.Equal(t, DecisionUndecided, a.UserRecommendations[0].Decision)
}

func TestParseQuestionID(t *testing.T) {
	q, err := ParseQuestionID("roof_insulated")
	require.NoError(t, err)
	assert.Equal(t, QuestionRoofInsulated, q)

	_, err = ParseQuestionID("postcode")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}
