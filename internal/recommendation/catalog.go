// Package recommendation holds the fixed recommendation catalog, the
// eligibility rules that select entries for a citizen, and the decision
// ledger that files them.
//
// Everything here is pure: no I/O, no shared mutable state.
package recommendation

import (
	"energyadvice/internal/survey/models"
)

// Recommendation is an immutable catalog entry. Costs and savings are whole
// pounds.
type Recommendation struct {
	Key            models.RecommendationKey `json:"key"`
	Title          string                   `json:"title"`
	MinInstallCost int                      `json:"min_install_cost"`
	MaxInstallCost int                      `json:"max_install_cost"`
	Saving         int                      `json:"saving"`
	Summary        string                   `json:"summary"`
}

// catalog is the canonical order used for every listing.
var catalog = [...]Recommendation{
	{
		Key:            models.KeyAddLoftInsulation,
		Title:          "Add some loft insulation",
		MinInstallCost: 300,
		MaxInstallCost: 700,
		Saving:         45,
		Summary:        "Increase the level of insulation in your loft to the recommended level of 300mm",
	},
	{
		Key:            models.KeyGroundFloorInsulation,
		Title:          "Insulate the ground floor",
		MinInstallCost: 1200,
		MaxInstallCost: 1800,
		Saving:         75,
		Summary:        "Lift the floor boards up and fit insulation in the gap beneath them",
	},
	{
		Key:            models.KeyUpgradeHeatingControls,
		Title:          "Upgrade your heating controls",
		MinInstallCost: 150,
		MaxInstallCost: 400,
		Saving:         75,
		Summary:        "Fit a programmer, thermostat and thermostatic radiator valves",
	},
	{
		Key:            models.KeyFitNewWindows,
		Title:          "Fit new windows",
		MinInstallCost: 3000,
		MaxInstallCost: 5000,
		Saving:         175,
		Summary:        "Replace old single glazed windows with new double or triple glazing",
	},
	{
		Key:            models.KeyInsulateCavityWalls,
		Title:          "Insulate your cavity walls",
		MinInstallCost: 700,
		MaxInstallCost: 1200,
		Saving:         185,
		Summary:        "Inject insulation into the cavity in your external walls",
	},
	{
		Key:            models.KeySolarElectricPanels,
		Title:          "Fit solar electric panels",
		MinInstallCost: 3500,
		MaxInstallCost: 5500,
		Saving:         220,
		Summary:        "Install PV panels on your roof to generate electricity",
	},
}

// Catalog returns a copy of every recommendation in canonical order.
func Catalog() []Recommendation {
	return append([]Recommendation(nil), catalog[:]...)
}

// Lookup returns the catalog entry for key.
func Lookup(key models.RecommendationKey) (Recommendation, bool) {
	for _, r := range catalog {
		if r.Key == key {
			return r, true
		}
	}
	return Recommendation{}, false
}

// ParseKey validates a raw recommendation key against the catalog.
func ParseKey(raw string) (models.RecommendationKey, bool) {
	key := models.RecommendationKey(raw)
	_, ok := Lookup(key)
	return key, ok
}

// position returns the canonical index of key, or -1.
func position(key models.RecommendationKey) int {
	for i, r := range catalog {
		if r.Key == key {
			return i
		}
	}
	return -1
}
