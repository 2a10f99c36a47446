package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// MissingValue is the explicit sentinel used wherever a profile field is
// absent, empty, or not a parseable number. It is never conflated with a
// literal zero: "0" normalizes to "0", while "" and nil normalize to "N/A".
const MissingValue = "N/A"

// FlexValue holds a profile field that arrives from the document store as
// either a JSON number or a JSON string. Stored profiles are user-edited and
// inconsistent about this, so the type preserves the raw text and defers
// interpretation to Normalized.
type FlexValue struct {
	raw string
	set bool
}

// NewFlexValue creates a FlexValue from a raw string.
func NewFlexValue(raw string) FlexValue {
	return FlexValue{raw: raw, set: true}
}

// UnmarshalJSON accepts numbers, strings, and null.
func (v *FlexValue) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		*v = FlexValue{}
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*v = FlexValue{raw: str, set: true}
		return nil
	}
	*v = FlexValue{raw: s, set: true}
	return nil
}

// MarshalJSON writes the raw value back as a string, or null when unset.
func (v FlexValue) MarshalJSON() ([]byte, error) {
	if !v.set {
		return []byte("null"), nil
	}
	return json.Marshal(v.raw)
}

// IsSet reports whether the field was present in the source document.
func (v FlexValue) IsSet() bool {
	return v.set
}

// Raw returns the stored text as-is.
func (v FlexValue) Raw() string {
	return v.raw
}

// Normalized returns the canonical token for hashing and prompting.
//
// Rules, in order:
//   - unset or whitespace-only  -> "N/A"
//   - parseable as float        -> strconv.FormatFloat canonical form, so
//     5000, "5000" and "5000.0" all normalize to "5000"
//   - anything else             -> trimmed text unchanged
func (v FlexValue) Normalized() string {
	if !v.set {
		return MissingValue
	}
	s := strings.TrimSpace(v.raw)
	if s == "" {
		return MissingValue
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return s
}

// Profile is the externally owned user record read from the document store.
// Field names mirror the stored document; only the fields below participate
// in hashing and prompting.
type Profile struct {
	Name                string            `json:"name,omitempty"`
	Age                 FlexValue         `json:"age,omitempty"`
	Salary              FlexValue         `json:"salary,omitempty"`
	Budget              FlexValue         `json:"budget,omitempty"`
	Costs               FlexValue         `json:"costs,omitempty"`
	MoneySpent          FlexValue         `json:"moneySpent,omitempty"`
	SavingsAmount       FlexValue         `json:"savingsAmount,omitempty"`
	EmergencyFundAmount FlexValue         `json:"emergencyFundAmount,omitempty"`
	BigExpenses         []string          `json:"bigExpenses,omitempty"`
	Liabilities         map[string]string `json:"liabilities,omitempty"`
	CurrentInvestments  []string          `json:"currentInvestments,omitempty"`
	DesiredInvestments  []string          `json:"desiredInvestments,omitempty"`
	Insurance           []string          `json:"insurance,omitempty"`
	Goals               string            `json:"goals,omitempty"`

	// Persisted analysis artifacts, merged into the same document the way
	// the application always has (watchlist and recommendations ride along
	// with the profile rather than living in their own collections).
	Watchlist            []WatchlistEntry `json:"watchlist,omitempty"`
	StockRecommendations []string         `json:"stockRecommendations,omitempty"`
}

// WatchlistEntry is one user-added symbol. Append-only per owner; uniqueness
// is by symbol, not display name.
type WatchlistEntry struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Symbol      string    `json:"symbol"`
	DisplayName string    `json:"displayName"`
	AddedAt     time.Time `json:"addedAt"`
}

// WatchlistSymbols returns the saved symbols in insertion order.
func (p *Profile) WatchlistSymbols() []string {
	symbols := make([]string, 0, len(p.Watchlist))
	for _, e := range p.Watchlist {
		symbols = append(symbols, e.Symbol)
	}
	return symbols
}

// HasWatchlistSymbol reports whether symbol is already saved, compared
// case-insensitively.
func (p *Profile) HasWatchlistSymbol(symbol string) bool {
	for _, e := range p.Watchlist {
		if strings.EqualFold(e.Symbol, symbol) {
			return true
		}
	}
	return false
}
