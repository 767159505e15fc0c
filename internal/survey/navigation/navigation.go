// Package navigation decides which survey question follows another.
//
// The question flow is a directed graph held in one table: each vertex lists
// guarded edges and the first edge whose guard holds over the answer record
// wins. The machine keeps no state between calls, so a survey can be resumed
// at any question from its stored answers alone.
package navigation

import (
	"errors"

	"energyadvice/internal/survey/models"
)

// ErrUnknownQuestion is returned for identifiers that are not vertices of
// the graph.
var ErrUnknownQuestion = errors.New("unknown question")

type guard func(a *models.AnswerRecord) bool

type edge struct {
	when guard
	to   models.QuestionID
}

// to builds an unguarded edge. Every vertex ends with one.
func to(q models.QuestionID) edge { return edge{to: q} }

func when(g guard, q models.QuestionID) edge { return edge{when: g, to: q} }

var graph = map[models.QuestionID][]edge{
	models.QuestionOwnershipStatus: {
		when(privateTenant, models.QuestionServiceUnsuitable),
		to(models.QuestionCountry),
	},
	models.QuestionCountry: {
		when(outsideServedCountries, models.QuestionServiceUnsuitable),
		to(models.QuestionPropertyType),
	},
	models.QuestionPropertyType: {
		when(propertyIs(models.PropertyHouse), models.QuestionHouseType),
		when(propertyIs(models.PropertyBungalow), models.QuestionBungalowType),
		when(propertyIs(models.PropertyFlat), models.QuestionFlatType),
		when(propertyIs(models.PropertyParkHome), models.QuestionParkHomeType),
		to(models.QuestionHomeAge),
	},
	models.QuestionHouseType:        {to(models.QuestionHomeAge)},
	models.QuestionBungalowType:     {to(models.QuestionHomeAge)},
	models.QuestionFlatType:         {to(models.QuestionHomeAge)},
	models.QuestionParkHomeType:     {to(models.QuestionHomeAge)},
	models.QuestionHomeAge:          {to(models.QuestionWallType)},
	models.QuestionWallType:         {to(models.QuestionRoofConstruction)},
	models.QuestionRoofConstruction: {to(models.QuestionRoofInsulated)},
	models.QuestionRoofInsulated:    {to(models.QuestionOutdoorSpace)},
	models.QuestionOutdoorSpace:     {to(models.QuestionGlazingType)},
	models.QuestionGlazingType:      {to(models.QuestionHeatingType)},
	models.QuestionHeatingType:      {to(models.QuestionHotWaterCylinder)},
	models.QuestionHotWaterCylinder: {to(models.QuestionHeatingPattern)},
	models.QuestionHeatingPattern:   {to(models.QuestionTemperature)},
	models.QuestionTemperature:      {to(models.QuestionAnswerSummary)},

	models.QuestionAnswerSummary:     {to(models.QuestionAnswerSummary)},
	models.QuestionServiceUnsuitable: {to(models.QuestionServiceUnsuitable)},
}

func privateTenant(a *models.AnswerRecord) bool {
	return a.OwnershipStatus == models.OwnershipPrivateTenancy
}

// outsideServedCountries only fires on an answered country. An unanswered
// country does not end the survey.
func outsideServedCountries(a *models.AnswerRecord) bool {
	return a.Country != "" && !a.Country.IsServed()
}

func propertyIs(p models.PropertyType) guard {
	return func(a *models.AnswerRecord) bool { return a.PropertyType == p }
}

// First is the entry point of every survey.
func First() models.QuestionID {
	return models.QuestionOwnershipStatus
}

// IsTerminal reports whether q ends a traversal.
func IsTerminal(q models.QuestionID) bool {
	return q.IsTerminal()
}

// Next returns the question that follows current given the answers so far.
// Terminal questions map to themselves. A nil record is treated as entirely
// unanswered.
func Next(current models.QuestionID, a *models.AnswerRecord) (models.QuestionID, error) {
	edges, ok := graph[current]
	if !ok {
		return "", ErrUnknownQuestion
	}
	if a == nil {
		a = &models.AnswerRecord{}
	}
	for _, e := range edges {
		if e.when == nil || e.when(a) {
			return e.to, nil
		}
	}
	// unreachable while every vertex ends with an unguarded edge
	return "", ErrUnknownQuestion
}

// Path walks the graph from First to a terminal question under the given
// answers. The result starts with First and ends with the terminal.
func Path(a *models.AnswerRecord) []models.QuestionID {
	path := []models.QuestionID{First()}
	seen := map[models.QuestionID]bool{First(): true}
	current := First()
	for !IsTerminal(current) {
		next, err := Next(current, a)
		if err != nil || seen[next] {
			break
		}
		path = append(path, next)
		seen[next] = true
		current = next
	}
	return path
}

// Previous returns the question before current on the path implied by the
// answers. It reports false for the first question and for questions the
// citizen's answers do not route through.
func Previous(current models.QuestionID, a *models.AnswerRecord) (models.QuestionID, bool) {
	path := Path(a)
	for i := 1; i < len(path); i++ {
		if path[i] == current {
			return path[i-1], true
		}
	}
	return "", false
}

// OnPath reports whether the answers route the citizen through q.
func OnPath(q models.QuestionID, a *models.AnswerRecord) bool {
	for _, p := range Path(a) {
		if p == q {
			return true
		}
	}
	return false
}

// Resume returns the first question on the path that still lacks an answer,
// or the terminal question when every step has been answered.
func Resume(a *models.AnswerRecord) models.QuestionID {
	if a == nil {
		return First()
	}
	path := Path(a)
	for _, q := range path {
		if q.IsAnswerable() && !a.IsAnswered(q) {
			return q
		}
	}
	return path[len(path)-1]
}
