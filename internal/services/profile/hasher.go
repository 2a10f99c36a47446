// Package profile derives the change-detection fingerprint of a user
// profile. The fingerprint decides cache validity; it is never decoded and
// carries no security properties.
package profile

import (
	"encoding/base64"
	"sort"
	"strings"

	"github.com/finsightapp/finsight/internal/models"
)

// Hash returns the canonical fingerprint of the analysis-relevant profile
// fields. Two profiles that differ only in representation (5000 vs "5000",
// map key order, surrounding whitespace) produce the same hash; any change
// to an analysis-relevant value produces a different one.
//
// The encoding is a fixed-order key=value list, base64-encoded. Fields not
// listed here (name, watchlist, stored recommendations) deliberately do not
// participate: changing them must not invalidate cached analyses.
func Hash(p *models.Profile) string {
	if p == nil {
		p = &models.Profile{}
	}

	var b strings.Builder
	writePair(&b, "age", p.Age.Normalized())
	writePair(&b, "salary", p.Salary.Normalized())
	writePair(&b, "budget", p.Budget.Normalized())
	writePair(&b, "costs", p.Costs.Normalized())
	writePair(&b, "moneySpent", p.MoneySpent.Normalized())
	writePair(&b, "savingsAmount", p.SavingsAmount.Normalized())
	writePair(&b, "emergencyFundAmount", p.EmergencyFundAmount.Normalized())
	writePair(&b, "bigExpenses", canonicalList(p.BigExpenses))
	writePair(&b, "liabilities", canonicalMap(p.Liabilities))
	writePair(&b, "currentInvestments", canonicalList(p.CurrentInvestments))
	writePair(&b, "desiredInvestments", canonicalList(p.DesiredInvestments))
	writePair(&b, "insurance", canonicalList(p.Insurance))
	writePair(&b, "goals", canonicalText(p.Goals))

	return base64.StdEncoding.EncodeToString([]byte(b.String()))
}

func writePair(b *strings.Builder, key, value string) {
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(value)
	b.WriteByte(';')
}

func canonicalText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.MissingValue
	}
	return s
}

// canonicalList preserves element order: reordering investments is a real
// change. Elements are trimmed so whitespace edits do not invalidate.
func canonicalList(values []string) string {
	if len(values) == 0 {
		return models.MissingValue
	}
	trimmed := make([]string, len(values))
	for i, v := range values {
		trimmed[i] = strings.TrimSpace(v)
	}
	return strings.Join(trimmed, ",")
}

// canonicalMap sorts by key: map iteration order is not deterministic and
// must never leak into the hash.
func canonicalMap(m map[string]string) string {
	if len(m) == 0 {
		return models.MissingValue
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, strings.TrimSpace(k)+":"+strings.TrimSpace(m[k]))
	}
	return strings.Join(parts, ",")
}
