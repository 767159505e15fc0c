package recommendation

import (
	"energyadvice/internal/survey/models"
)

// CavityWallEraStart and CavityWallEraEnd bound the build years in which an
// unknown wall is assumed to be an unfilled cavity.
const (
	CavityWallEraStart = 1930
	CavityWallEraEnd   = 1995
)

// rule pairs a recommendation with the predicate that admits it. Predicates
// must be total over partially answered records: an unanswered field counts
// as unknown and unknown leans towards inclusion.
type rule struct {
	key      models.RecommendationKey
	eligible func(a *models.AnswerRecord) bool
}

var rules = []rule{
	{models.KeyAddLoftInsulation, loftInsulationApplies},
	{models.KeyGroundFloorInsulation, groundFloorInsulationApplies},
	{models.KeyUpgradeHeatingControls, always},
	{models.KeyFitNewWindows, newWindowsApply},
	{models.KeyInsulateCavityWalls, cavityWallInsulationApplies},
	{models.KeySolarElectricPanels, solarPanelsApply},
}

func always(*models.AnswerRecord) bool { return true }

func newWindowsApply(a *models.AnswerRecord) bool {
	return a.GlazingType == models.GlazingSingle || a.GlazingType == models.GlazingBoth
}

func cavityWallInsulationApplies(a *models.AnswerRecord) bool {
	if a.WallType == models.WallUninsulatedCavity {
		return true
	}
	return a.WallType.IsUnknown() && a.YearBuiltBetween(CavityWallEraStart, CavityWallEraEnd)
}

// loftInsulationApplies excludes only flats below the top floor whose roof is
// flat or already insulated. An unknown insulation state does not count as
// insulated.
func loftInsulationApplies(a *models.AnswerRecord) bool {
	roofRulesItOut := a.RoofConstruction == models.RoofFlat || a.RoofInsulated == models.AnswerYes
	return !(a.FlatOnFloor(models.FlatGroundFloor, models.FlatMiddleFloor) && roofRulesItOut)
}

func groundFloorInsulationApplies(a *models.AnswerRecord) bool {
	return !a.FlatOnFloor(models.FlatTopFloor, models.FlatGroundFloor)
}

func solarPanelsApply(a *models.AnswerRecord) bool {
	return !a.FlatOnFloor(models.FlatGroundFloor, models.FlatMiddleFloor)
}

// Eligible returns the keys of every recommendation that applies to the
// answers, in catalog order. It never fails; a nil record is treated as
// entirely unanswered.
func Eligible(a *models.AnswerRecord) []models.RecommendationKey {
	if a == nil {
		a = &models.AnswerRecord{}
	}
	keys := make([]models.RecommendationKey, 0, len(rules))
	for _, r := range rules {
		if r.eligible(a) {
			keys = append(keys, r.key)
		}
	}
	return keys
}

// Verdict records the outcome of one rule.
type Verdict struct {
	Key      models.RecommendationKey `json:"key"`
	Eligible bool                     `json:"eligible"`
}

// Explain evaluates every rule and reports each outcome in catalog order.
func Explain(a *models.AnswerRecord) []Verdict {
	if a == nil {
		a = &models.AnswerRecord{}
	}
	verdicts := make([]Verdict, 0, len(rules))
	for _, r := range rules {
		verdicts = append(verdicts, Verdict{Key: r.key, Eligible: r.eligible(a)})
	}
	return verdicts
}
