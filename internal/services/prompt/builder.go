// Package prompt builds the generation prompts. Builders are pure functions
// of their inputs: identical profile and market data always produce the
// identical prompt, which is what makes cached results reproducible.
package prompt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/finsightapp/finsight/internal/models"
)

// Disclaimer is the fixed opening line every generated analysis must carry.
// Stored analyses begin with this exact text; do not reword it.
const Disclaimer = "Disclaimer: This is AI generated advice and should not be solely relied upon. Please review the details yourself before making any decisions."

// TickerInvalid is the sentinel the model is instructed to return when a
// name cannot be resolved to a listed ticker.
const TickerInvalid = "INVALID"

// RecommendationCount is the number of picks a recommendations run asks for.
const RecommendationCount = 5

// profileLine renders the compact one-line profile used by the investment
// analysis and recommendations prompts.
func profileLine(p *models.Profile) string {
	if p == nil {
		return "No user profile available."
	}
	return fmt.Sprintf(
		"User Profile: Name: %s, Age: %s, Salary: %s, Big Expenses: %s, Desired Investments: %s, Goals: %s, Current Investments: %s.",
		textOrMissing(p.Name),
		p.Age.Normalized(),
		p.Salary.Normalized(),
		listOrNone(p.BigExpenses),
		listOrNone(p.DesiredInvestments),
		textOrMissing(p.Goals),
		listOrNone(p.CurrentInvestments),
	)
}

// ProfileBlock renders the multi-line labeled profile used by the financial
// health report. Every field goes through the same normalization the hash
// uses, so a profile that hashes equal prompts equal.
func ProfileBlock(p *models.Profile) string {
	if p == nil {
		p = &models.Profile{}
	}

	// Monthly expenses fall back to the budget when costs are not recorded.
	expenses := p.Costs.Normalized()
	if expenses == models.MissingValue {
		expenses = p.Budget.Normalized()
	}

	var b strings.Builder
	b.WriteString("User Profile Data:\n")
	fmt.Fprintf(&b, "- Name: %s\n", textOrMissing(p.Name))
	fmt.Fprintf(&b, "- Age: %s\n", p.Age.Normalized())
	fmt.Fprintf(&b, "- Annual Salary: %s\n", p.Salary.Normalized())
	fmt.Fprintf(&b, "- Monthly Budget: %s\n", p.Budget.Normalized())
	fmt.Fprintf(&b, "- Monthly Expenses: %s\n", expenses)
	fmt.Fprintf(&b, "- Money Spent this Month: %s\n", p.MoneySpent.Normalized())
	fmt.Fprintf(&b, "- Current Savings: %s\n", p.SavingsAmount.Normalized())
	fmt.Fprintf(&b, "- Current Emergency Fund: %s\n", p.EmergencyFundAmount.Normalized())
	fmt.Fprintf(&b, "- Liabilities (Debts/Loans): %s\n", liabilitiesOrNone(p.Liabilities))
	fmt.Fprintf(&b, "- Insurance: %s\n", listOrNone(p.Insurance))
	fmt.Fprintf(&b, "- Big Expenses: %s\n", listOrNone(p.BigExpenses))
	fmt.Fprintf(&b, "- Current Investments: %s\n", listOrNone(p.CurrentInvestments))
	fmt.Fprintf(&b, "- Desired Investments: %s\n", listOrNone(p.DesiredInvestments))
	fmt.Fprintf(&b, "- Financial Goals: %s", textOrMissing(p.Goals))
	return b.String()
}

// InvestmentAnalysis builds the prompt for a single-subject analysis. The
// market facts come pre-rendered from the snapshot so the prompt stays a
// pure string function.
func InvestmentAnalysis(p *models.Profile, subject models.Subject, marketFacts string) string {
	var b strings.Builder
	b.WriteString(profileLine(p))
	b.WriteString(" Market Data: ")
	b.WriteString(marketFacts)
	fmt.Fprintf(&b,
		" Provide a concise investment analysis for the asset corresponding to %q using its full name (not the ticker).",
		subject.Symbol)
	fmt.Fprintf(&b, " Begin your response with: %q.", Disclaimer)
	b.WriteString(" Then, using the financial data above, present key financial ratios (with explanations), recent trends, market performance, and potential risks.")
	b.WriteString(" Explain how each piece of data supports your analysis and link it to the user's profile.")
	b.WriteString(" Keep your response under 200 words, include both positive and negative factors, and conclude with a definite yes or no on whether it is a good investment for this user.")
	b.WriteString(" Never mention your data sources or any inability to access real-time data; work with the data provided.")
	return b.String()
}

// HealthReport builds the comprehensive financial health prompt. The nine
// numbered sections are the contract the renderer and the risk extractor
// depend on.
func HealthReport(p *models.Profile) string {
	var b strings.Builder
	b.WriteString(ProfileBlock(p))
	b.WriteString("\n\nBased on the above data, please provide comprehensive financial health recommendations using your AI expertise. Ensure that you include the following clearly labeled sections:\n\n")
	b.WriteString("1. Current Risk Level:\n")
	b.WriteString("   - Clearly state \"Current Risk Level:\" followed by a determination of High, Medium, or Low risk, and provide a brief explanation.\n\n")
	b.WriteString("2. Monthly Savings Target:\n")
	b.WriteString("   - Recommend a realistic monthly savings target.\n\n")
	b.WriteString("3. Emergency Fund Target:\n")
	b.WriteString("   - Recommend an emergency fund target based on monthly expenses (or budget if expenses are not provided) and explain why a 6-month emergency fund is advisable.\n\n")
	b.WriteString("4. Asset Allocation:\n")
	b.WriteString("   - Provide an asset allocation recommendation, specifying what percentage (and approximate dollar amounts) of current savings should be allocated to stocks/ETFs, bonds, and a savings account. Consider guidelines like the 90-age heuristic if appropriate.\n\n")
	b.WriteString("5. Debt Management:\n")
	b.WriteString("   - Advise on strategies for paying down any loans or debts.\n\n")
	b.WriteString("6. Insurance:\n")
	b.WriteString("   - Advise on whether to obtain Health and/or Life Insurance if not already covered.\n\n")
	b.WriteString("7. Additional Actionable Changes & Financial Goals:\n")
	b.WriteString("   - List any additional changes or financial goals.\n")
	b.WriteString("   - At the bottom, include an \"Order of Priority\" section that explains which change should be made first (and why), followed by subsequent priorities with explanations.\n\n")
	b.WriteString("8. Methodology:\n")
	b.WriteString("   - Explain how the calculations and recommendations were derived.\n\n")
	b.WriteString("9. Conclusion:\n")
	b.WriteString("   - Summarize all the recommendations and provide an overall conclusion.\n\n")
	b.WriteString("Please return your answer in plain text with clearly labeled sections.")
	return b.String()
}

// Recommendations builds the prompt for the ranked picks run. The candidate
// pool is the default symbols plus the user's watchlist; when the pool is
// small the model is allowed to suggest beyond it.
func Recommendations(p *models.Profile, symbols []string) string {
	pool := strings.Join(symbols, ", ")

	var b strings.Builder
	b.WriteString(profileLine(p))
	fmt.Fprintf(&b,
		" Given the above user profile, return exactly %d stock recommendations from the following list: %s.",
		RecommendationCount, pool)
	if len(symbols) < 10 {
		fmt.Fprintf(&b,
			" Note: There are only %d stocks provided; you may include additional stock suggestions beyond the list.",
			len(symbols))
	}
	b.WriteString(" Ensure that there are no repeated stocks in your recommendations.")
	b.WriteString(" For each recommended stock, provide a ticker and one concise sentence (no more than 10 words) of reasoning why it is a good investment right now.")
	b.WriteString(" Label them from 'Must Buy' to 'Strong Buy' to 'Buy' in that order, with no extra commentary.")
	return b.String()
}

// TickerResolution builds the prompt that resolves a free-text name to a
// ticker symbol. The model must answer with the bare ticker or the
// TickerInvalid sentinel.
func TickerResolution(name string) string {
	return fmt.Sprintf(
		"Find the ticker symbol for the stock %q. Only respond with the ticker symbol if it is a real, publicly listed security. If not, respond with %q. Respond with nothing else.",
		name, TickerInvalid)
}

func textOrMissing(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.MissingValue
	}
	return s
}

func listOrNone(values []string) string {
	if len(values) == 0 {
		return "None"
	}
	return strings.Join(values, ", ")
}

// liabilitiesOrNone renders the liabilities map sorted by key so the prompt
// never varies with map iteration order.
func liabilitiesOrNone(m map[string]string) string {
	if len(m) == 0 {
		return "None"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, m[k]))
	}
	return strings.Join(parts, ", ")
}
