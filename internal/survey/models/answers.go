package models

import (
	"encoding/json"
	"fmt"
	"time"

	dErrors "energyadvice/pkg/domain-errors"
)

const (
	MinHomeAge     = 1000
	MinTemperature = 5.0
	MaxTemperature = 35.0
)

// Apply decodes raw as the answer to q and stores it, overwriting any earlier
// answer. Only membership of the closed option set (or the numeric range) is
// checked. now bounds the year built.
func (a *AnswerRecord) Apply(q QuestionID, raw json.RawMessage, now time.Time) error {
	var err error
	switch q {
	case QuestionOwnershipStatus:
		err = setOption(&a.OwnershipStatus, q, raw)
	case QuestionCountry:
		err = setOption(&a.Country, q, raw)
	case QuestionPropertyType:
		err = setOption(&a.PropertyType, q, raw)
	case QuestionHouseType:
		err = setOption(&a.HouseType, q, raw)
	case QuestionBungalowType:
		err = setOption(&a.BungalowType, q, raw)
	case QuestionFlatType:
		err = setOption(&a.FlatType, q, raw)
	case QuestionParkHomeType:
		err = setOption(&a.ParkHomeType, q, raw)
	case QuestionWallType:
		err = setOption(&a.WallType, q, raw)
	case QuestionRoofConstruction:
		err = setOption(&a.RoofConstruction, q, raw)
	case QuestionRoofInsulated:
		err = setOption(&a.RoofInsulated, q, raw)
	case QuestionOutdoorSpace:
		err = setOption(&a.OutdoorSpace, q, raw)
	case QuestionGlazingType:
		err = setOption(&a.GlazingType, q, raw)
	case QuestionHeatingType:
		err = setOption(&a.HeatingType, q, raw)
	case QuestionHotWaterCylinder:
		err = setOption(&a.HotWaterCylinder, q, raw)
	case QuestionHeatingPattern:
		err = setOption(&a.HeatingPattern, q, raw)
	case QuestionHomeAge:
		var year int
		if err := json.Unmarshal(raw, &year); err != nil {
			return dErrors.New(dErrors.CodeValidation, "home_age must be a whole year")
		}
		if year < MinHomeAge || year > now.Year() {
			return dErrors.New(dErrors.CodeValidation,
				fmt.Sprintf("home_age must be between %d and %d", MinHomeAge, now.Year()))
		}
		a.HomeAge = &year
	case QuestionTemperature:
		var temp float64
		if err := json.Unmarshal(raw, &temp); err != nil {
			return dErrors.New(dErrors.CodeValidation, "temperature must be a number")
		}
		if temp < MinTemperature || temp > MaxTemperature {
			return dErrors.New(dErrors.CodeValidation,
				fmt.Sprintf("temperature must be between %g and %g", MinTemperature, MaxTemperature))
		}
		a.Temperature = &temp
	default:
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("question %q does not take an answer", q))
	}
	return err
}

// AnswerFor returns the stored answer to q, or nil when unanswered.
func (a *AnswerRecord) AnswerFor(q QuestionID) any {
	switch q {
	case QuestionOwnershipStatus:
		return optional(a.OwnershipStatus)
	case QuestionCountry:
		return optional(a.Country)
	case QuestionPropertyType:
		return optional(a.PropertyType)
	case QuestionHouseType:
		return optional(a.HouseType)
	case QuestionBungalowType:
		return optional(a.BungalowType)
	case QuestionFlatType:
		return optional(a.FlatType)
	case QuestionParkHomeType:
		return optional(a.ParkHomeType)
	case QuestionWallType:
		return optional(a.WallType)
	case QuestionRoofConstruction:
		return optional(a.RoofConstruction)
	case QuestionRoofInsulated:
		return optional(a.RoofInsulated)
	case QuestionOutdoorSpace:
		return optional(a.OutdoorSpace)
	case QuestionGlazingType:
		return optional(a.GlazingType)
	case QuestionHeatingType:
		return optional(a.HeatingType)
	case QuestionHotWaterCylinder:
		return optional(a.HotWaterCylinder)
	case QuestionHeatingPattern:
		return optional(a.HeatingPattern)
	case QuestionHomeAge:
		if a.HomeAge != nil {
			return *a.HomeAge
		}
	case QuestionTemperature:
		if a.Temperature != nil {
			return *a.Temperature
		}
	}
	return nil
}

// IsAnswered reports whether q has a stored answer.
func (a *AnswerRecord) IsAnswered(q QuestionID) bool {
	return a.AnswerFor(q) != nil
}

type option interface {
	~string
	IsValid() bool
}

// setOption decodes raw into dst only when it is a member of the option set,
// leaving an earlier answer untouched on failure.
func setOption[T option](dst *T, q QuestionID, raw json.RawMessage) error {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s must be a string option", q))
	}
	if !v.IsValid() {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%q is not a valid answer to %s", string(v), q))
	}
	*dst = v
	return nil
}

func optional[T ~string](v T) any {
	if v == "" {
		return nil
	}
	return v
}
