package models

import dErrors "energyadvice/pkg/domain-errors"

// QuestionID names a survey step. The same identifiers are used as route
// segments and as vertices of the navigation graph.
type QuestionID string

const (
	QuestionOwnershipStatus  QuestionID = "ownership_status"
	QuestionCountry          QuestionID = "country"
	QuestionPropertyType     QuestionID = "property_type"
	QuestionHouseType        QuestionID = "house_type"
	QuestionBungalowType     QuestionID = "bungalow_type"
	QuestionFlatType         QuestionID = "flat_type"
	QuestionParkHomeType     QuestionID = "park_home_type"
	QuestionHomeAge          QuestionID = "home_age"
	QuestionWallType         QuestionID = "wall_type"
	QuestionRoofConstruction QuestionID = "roof_construction"
	QuestionRoofInsulated    QuestionID = "roof_insulated"
	QuestionOutdoorSpace     QuestionID = "outdoor_space"
	QuestionGlazingType      QuestionID = "glazing_type"
	QuestionHeatingType      QuestionID = "heating_type"
	QuestionHotWaterCylinder QuestionID = "hot_water_cylinder"
	QuestionHeatingPattern   QuestionID = "heating_pattern"
	QuestionTemperature      QuestionID = "temperature"

	// Terminal steps. They carry no answer.
	QuestionAnswerSummary     QuestionID = "answer_summary"
	QuestionServiceUnsuitable QuestionID = "service_unsuitable"
)

var answerable = []QuestionID{
	QuestionOwnershipStatus,
	QuestionCountry,
	QuestionPropertyType,
	QuestionHouseType,
	QuestionBungalowType,
	QuestionFlatType,
	QuestionParkHomeType,
	QuestionHomeAge,
	QuestionWallType,
	QuestionRoofConstruction,
	QuestionRoofInsulated,
	QuestionOutdoorSpace,
	QuestionGlazingType,
	QuestionHeatingType,
	QuestionHotWaterCylinder,
	QuestionHeatingPattern,
	QuestionTemperature,
}

// AnswerableQuestions lists every question that stores an answer.
func AnswerableQuestions() []QuestionID {
	return append([]QuestionID(nil), answerable...)
}

// IsTerminal reports whether q ends a traversal.
func (q QuestionID) IsTerminal() bool {
	return q == QuestionAnswerSummary || q == QuestionServiceUnsuitable
}

// IsAnswerable reports whether q is a question that takes an answer.
func (q QuestionID) IsAnswerable() bool {
	return oneOf(q, answerable...)
}

// IsKnown reports whether q is any vertex of the survey.
func (q QuestionID) IsKnown() bool {
	return q.IsAnswerable() || q.IsTerminal()
}

// ParseQuestionID validates a raw question identifier.
func ParseQuestionID(raw string) (QuestionID, error) {
	q := QuestionID(raw)
	if !q.IsKnown() {
		return "", dErrors.New(dErrors.CodeNotFound, "unknown question: "+raw)
	}
	return q, nil
}
