package recommendation

import (
	"errors"
	"sort"

	"energyadvice/internal/survey/models"
)

var (
	// ErrNotMaterialised is returned when a decision targets a recommendation
	// the citizen has never been shown.
	ErrNotMaterialised = errors.New("recommendation not materialised for this survey")
	// ErrInvalidDecision is returned for decisions outside the closed set.
	ErrInvalidDecision = errors.New("invalid decision")
)

// Totals is the aggregate over the saved set.
type Totals struct {
	MinInstallCost int `json:"min_install_cost"`
	MaxInstallCost int `json:"max_install_cost"`
	Saving         int `json:"saving"`
}

// Materialise appends an undecided row for each key that has no row yet,
// copying the catalog figures. Existing rows, and their decisions, are left
// alone. The result is sorted in catalog order. It reports how many rows were
// added.
func Materialise(recs []models.UserRecommendation, keys []models.RecommendationKey) ([]models.UserRecommendation, int) {
	added := 0
	for _, key := range keys {
		if indexOf(recs, key) >= 0 {
			continue
		}
		entry, ok := Lookup(key)
		if !ok {
			continue
		}
		recs = append(recs, models.UserRecommendation{
			Key:            entry.Key,
			Title:          entry.Title,
			MinInstallCost: entry.MinInstallCost,
			MaxInstallCost: entry.MaxInstallCost,
			Saving:         entry.Saving,
			Decision:       models.DecisionUndecided,
		})
		added++
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return position(recs[i].Key) < position(recs[j].Key)
	})
	return recs, added
}

// RecordDecision sets or overwrites the decision on the row for key.
func RecordDecision(recs []models.UserRecommendation, key models.RecommendationKey, decision models.Decision) error {
	if !decision.IsValid() {
		return ErrInvalidDecision
	}
	i := indexOf(recs, key)
	if i < 0 {
		return ErrNotMaterialised
	}
	recs[i].Decision = decision
	return nil
}

// ForKeys returns the rows for keys, in the order of keys.
func ForKeys(recs []models.UserRecommendation, keys []models.RecommendationKey) []models.UserRecommendation {
	out := make([]models.UserRecommendation, 0, len(keys))
	for _, key := range keys {
		if i := indexOf(recs, key); i >= 0 {
			out = append(out, recs[i])
		}
	}
	return out
}

// Saved returns the rows filed to the action plan.
func Saved(recs []models.UserRecommendation) []models.UserRecommendation {
	return withDecision(recs, models.DecisionSaveToActionPlan)
}

// DecideLater returns the rows the citizen postponed.
func DecideLater(recs []models.UserRecommendation) []models.UserRecommendation {
	return withDecision(recs, models.DecisionDecideLater)
}

// ComputeTotals sums cost and saving over the saved rows. It is recomputed
// from the live rows on every call.
func ComputeTotals(recs []models.UserRecommendation) Totals {
	var t Totals
	for _, r := range Saved(recs) {
		t.MinInstallCost += r.MinInstallCost
		t.MaxInstallCost += r.MaxInstallCost
		t.Saving += r.Saving
	}
	return t
}

func withDecision(recs []models.UserRecommendation, d models.Decision) []models.UserRecommendation {
	out := []models.UserRecommendation{}
	for _, r := range recs {
		if r.Decision == d {
			out = append(out, r)
		}
	}
	return out
}

func indexOf(recs []models.UserRecommendation, key models.RecommendationKey) int {
	for i := range recs {
		if recs[i].Key == key {
			return i
		}
	}
	return -1
}
