package models

// RecommendationKey identifies a catalog entry.
type RecommendationKey string

const (
	KeyAddLoftInsulation      RecommendationKey = "add_loft_insulation"
	KeyGroundFloorInsulation  RecommendationKey = "ground_floor_insulation"
	KeyUpgradeHeatingControls RecommendationKey = "upgrade_heating_controls"
	KeyFitNewWindows          RecommendationKey = "fit_new_windows"
	KeyInsulateCavityWalls    RecommendationKey = "insulate_cavity_walls"
	KeySolarElectricPanels    RecommendationKey = "solar_electric_panels"
)

// Decision is the citizen's filing of a recommendation.
type Decision string

const (
	DecisionUndecided        Decision = "undecided"
	DecisionSaveToActionPlan Decision = "save_to_action_plan"
	DecisionDecideLater      Decision = "decide_later"
	DecisionReject           Decision = "reject"
)

func (d Decision) IsValid() bool {
	return oneOf(d, DecisionUndecided, DecisionSaveToActionPlan, DecisionDecideLater, DecisionReject)
}

// UserRecommendation is one ledger row: a recommendation that was found
// eligible for the citizen, the figures copied from the catalog when it was
// first materialised, and the citizen's current decision.
type UserRecommendation struct {
	Key            RecommendationKey `json:"key"`
	Title          string            `json:"title"`
	MinInstallCost int               `json:"min_install_cost"`
	MaxInstallCost int               `json:"max_install_cost"`
	Saving         int               `json:"saving"`
	Decision       Decision          `json:"decision"`
}
