package recommendation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"energyadvice/internal/survey/models"
)

func materialised(t *testing.T, keys ...models.RecommendationKey) []models.UserRecommendation {
	t.Helper()
	recs, added := Materialise(nil, keys)
	require.Equal(t, len(keys), added)
	return recs
}

func TestMaterialiseCopiesCatalogFigures(t *testing.T) {
	recs := materialised(t, models.KeySolarElectricPanels, models.KeyAddLoftInsulation)

	require.Len(t, recs, 2)
	assert.Equal(t, models.KeyAddLoftInsulation, recs[0].Key, "rows are kept in catalog order")
	assert.Equal(t, 300, recs[0].MinInstallCost)
	assert.Equal(t, 700, recs[0].MaxInstallCost)
	assert.Equal(t, 45, recs[0].Saving)
	assert.Equal(t, models.DecisionUndecided, recs[1].Decision)
}

func TestMaterialiseKeepsExistingDecisions(t *testing.T) {
	recs := materialised(t, models.KeyFitNewWindows)
	require.NoError(t, RecordDecision(recs, models.KeyFitNewWindows, models.DecisionReject))

	recs, added := Materialise(recs, []models.RecommendationKey{models.KeyFitNewWindows, models.KeyUpgradeHeatingControls})

	assert.Equal(t, 1, added)
	require.Len(t, recs, 2)
	assert.Equal(t, models.DecisionReject, ForKeys(recs, []models.RecommendationKey{models.KeyFitNewWindows})[0].Decision)
}

func TestTotalsOverSavedSet(t *testing.T) {
	recs := materialised(t, models.KeyAddLoftInsulation, models.KeyInsulateCavityWalls, models.KeyFitNewWindows)
	require.NoError(t, RecordDecision(recs, models.KeyAddLoftInsulation, models.DecisionSaveToActionPlan))
	require.NoError(t, RecordDecision(recs, models.KeyInsulateCavityWalls, models.DecisionSaveToActionPlan))
	require.NoError(t, RecordDecision(recs, models.KeyFitNewWindows, models.DecisionDecideLater))

	assert.Equal(t, Totals{MinInstallCost: 1000, MaxInstallCost: 1900, Saving: 230}, ComputeTotals(recs))
	assert.Len(t, Saved(recs), 2)
	assert.Len(t, DecideLater(recs), 1)
}

func TestRedecidingRemovesFromSaved(t *testing.T) {
	recs := materialised(t, models.KeyAddLoftInsulation, models.KeyInsulateCavityWalls)
	require.NoError(t, RecordDecision(recs, models.KeyAddLoftInsulation, models.DecisionSaveToActionPlan))
	require.NoError(t, RecordDecision(recs, models.KeyInsulateCavityWalls, models.DecisionSaveToActionPlan))

	require.NoError(t, RecordDecision(recs, models.KeyAddLoftInsulation, models.DecisionReject))

	saved := Saved(recs)
	require.Len(t, saved, 1)
	assert.Equal(t, models.KeyInsulateCavityWalls, saved[0].Key)
	assert.Equal(t, Totals{MinInstallCost: 700, MaxInstallCost: 1200, Saving: 185}, ComputeTotals(recs))
}

func TestRecordDecisionErrors(t *testing.T) {
	recs := materialised(t, models.KeyUpgradeHeatingControls)

	assert.ErrorIs(t, RecordDecision(recs, models.KeySolarElectricPanels, models.DecisionSaveToActionPlan), ErrNotMaterialised)
	assert.ErrorIs(t, RecordDecision(recs, models.KeyUpgradeHeatingControls, "maybe"), ErrInvalidDecision)
}

func TestEmptyLedger(t *testing.T) {
	assert.Empty(t, Saved(nil))
	assert.Empty(t, DecideLater(nil))
	assert.Equal(t, Totals{}, ComputeTotals(nil))
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "£1,000 - £1,900", FormatCostRange(1000, 1900))
	assert.Equal(t, "£230 a year", FormatAnnualSaving(230))
	assert.Equal(t, "£150", FormatPounds(150))
}
