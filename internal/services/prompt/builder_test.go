package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/finsightapp/finsight/internal/models"
)

func testProfile() *models.Profile {
	return &models.Profile{
		Name:               "Alice",
		Age:                models.NewFlexValue("34"),
		Salary:             models.NewFlexValue("85000"),
		Budget:             models.NewFlexValue("3000"),
		SavingsAmount:      models.NewFlexValue("40000"),
		BigExpenses:        []string{"Wedding"},
		CurrentInvestments: []string{"VOO", "AAPL"},
		DesiredInvestments: []string{"NVDA"},
		Goals:              "Retire early",
		Liabilities:        map[string]string{"car loan": "12000"},
	}
}

func TestInvestmentAnalysisDeterministic(t *testing.T) {
	p := testProfile()
	subject := models.NewSubject("AAPL", models.AssetKindEquity)
	facts := "Company Name: Apple Inc. Latest Daily Close Price: 231.44."

	first := InvestmentAnalysis(p, subject, facts)
	second := InvestmentAnalysis(p, subject, facts)
	assert.Equal(t, first, second)
	assert.Contains(t, first, Disclaimer)
	assert.Contains(t, first, `"AAPL"`)
	assert.Contains(t, first, facts)
	assert.Contains(t, first, "under 200 words")
}

func TestInvestmentAnalysisNilProfile(t *testing.T) {
	out := InvestmentAnalysis(nil, models.NewSubject("VOO", models.AssetKindFund), "No data available.")
	assert.Contains(t, out, "No user profile available.")
}

func TestProfileBlockNormalizesValues(t *testing.T) {
	p := testProfile()
	block := ProfileBlock(p)
	assert.Contains(t, block, "- Annual Salary: 85000")
	assert.Contains(t, block, "- Current Emergency Fund: N/A")
	assert.Contains(t, block, "- Liabilities (Debts/Loans): car loan: 12000")
	// Costs are missing, so expenses fall back to the budget.
	assert.Contains(t, block, "- Monthly Expenses: 3000")
}

func TestProfileBlockDeterministicAcrossMapOrder(t *testing.T) {
	p := testProfile()
	p.Liabilities = map[string]string{"c": "3", "a": "1", "b": "2"}
	for i := 0; i < 50; i++ {
		assert.Contains(t, ProfileBlock(p), "a: 1, b: 2, c: 3")
	}
}

func TestHealthReportSections(t *testing.T) {
	out := HealthReport(testProfile())
	for _, section := range []string{
		"1. Current Risk Level:",
		"2. Monthly Savings Target:",
		"3. Emergency Fund Target:",
		"4. Asset Allocation:",
		"5. Debt Management:",
		"6. Insurance:",
		"7. Additional Actionable Changes & Financial Goals:",
		"8. Methodology:",
		"9. Conclusion:",
	} {
		assert.Contains(t, out, section)
	}
	assert.True(t, strings.HasPrefix(out, "User Profile Data:"))
}

func TestRecommendationsPromptPool(t *testing.T) {
	symbols := []string{"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA", "META", "TSLA", "BRK.B", "JPM", "V"}
	out := Recommendations(testProfile(), symbols)
	assert.Contains(t, out, "return exactly 5 stock recommendations")
	assert.Contains(t, out, "AAPL, MSFT, GOOGL")
	assert.Contains(t, out, "'Must Buy' to 'Strong Buy' to 'Buy'")
	assert.NotContains(t, out, "you may include additional stock suggestions")
}

func TestRecommendationsPromptSmallPool(t *testing.T) {
	out := Recommendations(testProfile(), []string{"AAPL", "VOO"})
	assert.Contains(t, out, "There are only 2 stocks provided")
}

func TestTickerResolutionPrompt(t *testing.T) {
	out := TickerResolution("Nvidia")
	assert.Contains(t, out, `"Nvidia"`)
	assert.Contains(t, out, TickerInvalid)
}
