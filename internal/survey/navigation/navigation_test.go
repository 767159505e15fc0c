package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"energyadvice/internal/survey/models"
)

func TestNext(t *testing.T) {
	tests := []struct {
		name    string
		current models.QuestionID
		answers models.AnswerRecord
		want    models.QuestionID
	}{
		{"private tenant is turned away", models.QuestionOwnershipStatus, models.AnswerRecord{OwnershipStatus: models.OwnershipPrivateTenancy}, models.QuestionServiceUnsuitable},
		{"owner continues to country", models.QuestionOwnershipStatus, models.AnswerRecord{OwnershipStatus: models.OwnershipOwnerOccupancy}, models.QuestionCountry},
		{"landlord continues to country", models.QuestionOwnershipStatus, models.AnswerRecord{OwnershipStatus: models.OwnershipLandlord}, models.QuestionCountry},
		{"scotland is not served", models.QuestionCountry, models.AnswerRecord{Country: models.CountryScotland}, models.QuestionServiceUnsuitable},
		{"northern ireland is not served", models.QuestionCountry, models.AnswerRecord{Country: models.CountryNorthernIreland}, models.QuestionServiceUnsuitable},
		{"other country is not served", models.QuestionCountry, models.AnswerRecord{Country: models.CountryOther}, models.QuestionServiceUnsuitable},
		{"england continues", models.QuestionCountry, models.AnswerRecord{Country: models.CountryEngland}, models.QuestionPropertyType},
		{"wales continues", models.QuestionCountry, models.AnswerRecord{Country: models.CountryWales}, models.QuestionPropertyType},
		{"house", models.QuestionPropertyType, models.AnswerRecord{PropertyType: models.PropertyHouse}, models.QuestionHouseType},
		{"bungalow", models.QuestionPropertyType, models.AnswerRecord{PropertyType: models.PropertyBungalow}, models.QuestionBungalowType},
		{"flat", models.QuestionPropertyType, models.AnswerRecord{PropertyType: models.PropertyFlat}, models.QuestionFlatType},
		{"park home", models.QuestionPropertyType, models.AnswerRecord{PropertyType: models.PropertyParkHome}, models.QuestionParkHomeType},
		{"other property skips to home age", models.QuestionPropertyType, models.AnswerRecord{PropertyType: models.PropertyOther}, models.QuestionHomeAge},
		{"unanswered property skips to home age", models.QuestionPropertyType, models.AnswerRecord{}, models.QuestionHomeAge},
		{"house type converges", models.QuestionHouseType, models.AnswerRecord{}, models.QuestionHomeAge},
		{"bungalow type converges", models.QuestionBungalowType, models.AnswerRecord{}, models.QuestionHomeAge},
		{"flat type converges", models.QuestionFlatType, models.AnswerRecord{}, models.QuestionHomeAge},
		{"park home type converges", models.QuestionParkHomeType, models.AnswerRecord{}, models.QuestionHomeAge},
		{"temperature ends the survey", models.QuestionTemperature, models.AnswerRecord{}, models.QuestionAnswerSummary},
		{"summary is terminal", models.QuestionAnswerSummary, models.AnswerRecord{}, models.QuestionAnswerSummary},
		{"unsuitable is terminal", models.QuestionServiceUnsuitable, models.AnswerRecord{}, models.QuestionServiceUnsuitable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := tt.answers
			got, err := Next(tt.current, &a)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			again, err := Next(tt.current, &a)
			require.NoError(t, err)
			assert.Equal(t, got, again, "same inputs give the same answer")
		})
	}
}

func TestNextUnknownQuestion(t *testing.T) {
	_, err := Next("favourite_colour", &models.AnswerRecord{})
	assert.ErrorIs(t, err, ErrUnknownQuestion)
}

func TestNextNilRecord(t *testing.T) {
	got, err := Next(models.QuestionPropertyType, nil)
	require.NoError(t, err)
	assert.Equal(t, models.QuestionHomeAge, got)
}

func TestEveryVertexEndsUnguarded(t *testing.T) {
	for q, edges := range graph {
		require.NotEmpty(t, edges, q)
		assert.Nil(t, edges[len(edges)-1].when, "last edge of %s must be unguarded", q)
	}
	for _, q := range models.AnswerableQuestions() {
		assert.Contains(t, graph, q)
	}
}

var commonTail = []models.QuestionID{
	models.QuestionHomeAge,
	models.QuestionWallType,
	models.QuestionRoofConstruction,
	models.QuestionRoofInsulated,
	models.QuestionOutdoorSpace,
	models.QuestionGlazingType,
	models.QuestionHeatingType,
	models.QuestionHotWaterCylinder,
	models.QuestionHeatingPattern,
	models.QuestionTemperature,
	models.QuestionAnswerSummary,
}

func TestPath(t *testing.T) {
	head := []models.QuestionID{models.QuestionOwnershipStatus, models.QuestionCountry, models.QuestionPropertyType}

	tests := []struct {
		name    string
		answers models.AnswerRecord
		want    []models.QuestionID
	}{
		{
			name:    "private tenant",
			answers: models.AnswerRecord{OwnershipStatus: models.OwnershipPrivateTenancy},
			want:    []models.QuestionID{models.QuestionOwnershipStatus, models.QuestionServiceUnsuitable},
		},
		{
			name:    "outside england and wales",
			answers: models.AnswerRecord{OwnershipStatus: models.OwnershipLandlord, Country: models.CountryScotland},
			want:    []models.QuestionID{models.QuestionOwnershipStatus, models.QuestionCountry, models.QuestionServiceUnsuitable},
		},
		{
			name:    "house",
			answers: models.AnswerRecord{Country: models.CountryEngland, PropertyType: models.PropertyHouse},
			want:    concat(head, []models.QuestionID{models.QuestionHouseType}, commonTail),
		},
		{
			name:    "flat",
			answers: models.AnswerRecord{Country: models.CountryWales, PropertyType: models.PropertyFlat},
			want:    concat(head, []models.QuestionID{models.QuestionFlatType}, commonTail),
		},
		{
			name:    "other property",
			answers: models.AnswerRecord{PropertyType: models.PropertyOther},
			want:    concat(head, commonTail),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := tt.answers
			assert.Equal(t, tt.want, Path(&a))
		})
	}
}

func TestPathProperties(t *testing.T) {
	properties := []models.PropertyType{
		"", models.PropertyHouse, models.PropertyBungalow, models.PropertyFlat,
		models.PropertyParkHome, models.PropertyOther,
	}
	for _, p := range properties {
		a := &models.AnswerRecord{Country: models.CountryEngland, PropertyType: p}
		path := Path(a)

		require.NotEmpty(t, path)
		assert.Equal(t, First(), path[0])
		assert.True(t, IsTerminal(path[len(path)-1]), "path for %q must end in a terminal", p)

		seen := map[models.QuestionID]bool{}
		for _, q := range path {
			assert.False(t, seen[q], "%s asked twice for %q", q, p)
			seen[q] = true
		}

		assert.Equal(t, commonTail, path[len(path)-len(commonTail):], "every branch converges on home age")

		for i := 0; i+1 < len(path); i++ {
			prev, ok := Previous(path[i+1], a)
			require.True(t, ok)
			assert.Equal(t, path[i], prev)
		}
	}
}

func TestPrevious(t *testing.T) {
	a := &models.AnswerRecord{PropertyType: models.PropertyBungalow}

	_, ok := Previous(First(), a)
	assert.False(t, ok, "the first question has no back link")

	prev, ok := Previous(models.QuestionHomeAge, a)
	require.True(t, ok)
	assert.Equal(t, models.QuestionBungalowType, prev)

	_, ok = Previous(models.QuestionFlatType, a)
	assert.False(t, ok, "a bungalow does not route through flat type")

	assert.True(t, OnPath(models.QuestionBungalowType, a))
	assert.False(t, OnPath(models.QuestionHouseType, a))
}

func concat(parts ...[]models.QuestionID) []models.QuestionID {
	var out []models.QuestionID
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestResume(t *testing.T) {
	assert.Equal(t, models.QuestionOwnershipStatus, Resume(nil))
	assert.Equal(t, models.QuestionOwnershipStatus, Resume(&models.AnswerRecord{}))

	a := &models.AnswerRecord{
		OwnershipStatus: models.OwnershipOwnerOccupancy,
		Country:         models.CountryEngland,
		PropertyType:    models.PropertyHouse,
	}
	assert.Equal(t, models.QuestionHouseType, Resume(a))

	a.HouseType = models.HouseDetached
	assert.Equal(t, models.QuestionHomeAge, Resume(a))

	tenant := &models.AnswerRecord{OwnershipStatus: models.OwnershipPrivateTenancy}
	assert.Equal(t, models.QuestionServiceUnsuitable, Resume(tenant))
}
