package profile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsightapp/finsight/internal/models"
)

func TestHashDeterministic(t *testing.T) {
	p := &models.Profile{
		Salary: models.NewFlexValue("85000"),
		Goals:  "Retire early",
		Liabilities: map[string]string{
			"car loan": "12000",
			"mortgage": "250000",
		},
	}

	assert.Equal(t, Hash(p), Hash(p))
}

func TestHashIgnoresNumberStringRepresentation(t *testing.T) {
	var fromNumber, fromString models.Profile
	require.NoError(t, json.Unmarshal([]byte(`{"salary": 5000}`), &fromNumber))
	require.NoError(t, json.Unmarshal([]byte(`{"salary": "5000"}`), &fromString))

	assert.Equal(t, Hash(&fromNumber), Hash(&fromString))
}

func TestHashIgnoresMapKeyOrder(t *testing.T) {
	a := &models.Profile{Liabilities: map[string]string{"a": "1", "b": "2", "c": "3"}}
	b := &models.Profile{Liabilities: map[string]string{"c": "3", "a": "1", "b": "2"}}

	// Run repeatedly so a nondeterministic iteration order would surface.
	for i := 0; i < 50; i++ {
		assert.Equal(t, Hash(a), Hash(b))
	}
}

func TestHashChangesOnValueChange(t *testing.T) {
	base := &models.Profile{Salary: models.NewFlexValue("85000")}
	changed := &models.Profile{Salary: models.NewFlexValue("90000")}

	assert.NotEqual(t, Hash(base), Hash(changed))
}

func TestHashChangesOnListReorder(t *testing.T) {
	a := &models.Profile{CurrentInvestments: []string{"VOO", "AAPL"}}
	b := &models.Profile{CurrentInvestments: []string{"AAPL", "VOO"}}

	assert.NotEqual(t, Hash(a), Hash(b))
}

func TestHashIgnoresNonAnalysisFields(t *testing.T) {
	base := &models.Profile{Salary: models.NewFlexValue("85000")}
	withExtras := &models.Profile{
		Salary: models.NewFlexValue("85000"),
		Name:   "Alice",
		Watchlist: []models.WatchlistEntry{
			{ID: "wl_1", Symbol: "NVDA"},
		},
		StockRecommendations: []string{"Must Buy: VTI"},
	}

	assert.Equal(t, Hash(base), Hash(withExtras))
}

func TestHashMissingFieldsMatchExplicitlyEmpty(t *testing.T) {
	var missing models.Profile
	require.NoError(t, json.Unmarshal([]byte(`{}`), &missing))
	var blank models.Profile
	require.NoError(t, json.Unmarshal([]byte(`{"salary": "", "goals": "  "}`), &blank))

	assert.Equal(t, Hash(&missing), Hash(&blank))
}

func TestHashZeroIsNotMissing(t *testing.T) {
	var zero models.Profile
	require.NoError(t, json.Unmarshal([]byte(`{"savingsAmount": 0}`), &zero))
	var missing models.Profile
	require.NoError(t, json.Unmarshal([]byte(`{}`), &missing))

	assert.NotEqual(t, Hash(&zero), Hash(&missing))
}

func TestHashNilProfile(t *testing.T) {
	assert.Equal(t, Hash(nil), Hash(&models.Profile{}))
}
