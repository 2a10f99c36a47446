package models

import (
	"fmt"
	"strings"
)

// AssetKind identifies the class of a tradable subject.
type AssetKind string

const (
	// AssetKindEquity is an individual listed stock.
	AssetKindEquity AssetKind = "equity"

	// AssetKindFund is an exchange-traded fund.
	AssetKindFund AssetKind = "fund"
)

// ParseAssetKind converts a user-supplied string to an AssetKind.
func ParseAssetKind(s string) (AssetKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "equity", "stock":
		return AssetKindEquity, nil
	case "fund", "etf":
		return AssetKindFund, nil
	default:
		return "", fmt.Errorf("unknown asset kind %q", s)
	}
}

// Subject is a ticker plus asset kind being analyzed. Immutable once created;
// identity is the case-normalized symbol, independent of kind.
type Subject struct {
	Symbol string    `json:"symbol"`
	Kind   AssetKind `json:"kind"`
}

// NewSubject builds a Subject with the symbol trimmed and upper-cased.
func NewSubject(symbol string, kind AssetKind) Subject {
	return Subject{
		Symbol: strings.ToUpper(strings.TrimSpace(symbol)),
		Kind:   kind,
	}
}

// String returns the canonical symbol.
func (s Subject) String() string {
	return s.Symbol
}

// Valid reports whether the subject has a non-empty symbol and a known kind.
func (s Subject) Valid() bool {
	return s.Symbol != "" && (s.Kind == AssetKindEquity || s.Kind == AssetKindFund)
}
