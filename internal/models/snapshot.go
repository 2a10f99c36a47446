package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// PricePoint is one close in a time series.
type PricePoint struct {
	Date  time.Time
	Close float64
}

// OverviewFacts holds the descriptive fields for a subject. For an equity the
// fund fields are empty and vice versa; a field the provider did not return
// stays empty and is simply omitted from the summary.
type OverviewFacts struct {
	Name          string
	Sector        string
	Industry      string
	MarketCap     string
	PERatio       string
	InceptionDate string
	NetAssets     string
	ExpenseRatio  string
}

// MarketSnapshot is the transient aggregate of one round of market-data
// fetches for a subject. It is rebuilt on every cache miss and never
// persisted.
type MarketSnapshot struct {
	Subject        Subject
	Overview       OverviewFacts
	Daily          []PricePoint
	Monthly        []PricePoint
	LatestClose    string
	IntradayPrice  string
	// Failed lists the sub-fetches that did not complete, e.g. "overview",
	// "daily". Partial failure degrades the summary; it does not abort.
	Failed []string
}

// HasAnyData reports whether at least one sub-fetch produced data.
func (s *MarketSnapshot) HasAnyData() bool {
	return s.Overview != (OverviewFacts{}) ||
		len(s.Daily) > 0 || len(s.Monthly) > 0 ||
		s.IntradayPrice != ""
}

// FactsSummary renders the snapshot as the single-line market facts string
// handed to the prompt builder. Identical snapshots always produce identical
// output: fields are appended in a fixed order and no timestamps or other
// ambient state are included.
func (s *MarketSnapshot) FactsSummary() string {
	if !s.HasAnyData() {
		return "No data available."
	}

	var b strings.Builder
	o := s.Overview
	switch s.Subject.Kind {
	case AssetKindFund:
		appendFact(&b, "ETF Name", o.Name)
		appendFact(&b, "Inception", o.InceptionDate)
		appendFact(&b, "Net Assets", o.NetAssets)
		appendFact(&b, "Expense Ratio", o.ExpenseRatio)
	default:
		appendFact(&b, "Company Name", o.Name)
		appendFact(&b, "Sector", o.Sector)
		appendFact(&b, "Industry", o.Industry)
		appendFact(&b, "Market Cap", o.MarketCap)
		appendFact(&b, "PE Ratio", o.PERatio)
	}

	latest := s.LatestClose
	if latest == "" {
		latest = MissingValue
	}
	appendFact(&b, "Latest Daily Close Price", latest)
	if s.IntradayPrice != "" {
		appendFact(&b, "Latest Intraday Price", s.IntradayPrice)
	}
	return strings.TrimSpace(b.String())
}

func appendFact(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "%s: %s. ", label, value)
}

// LatestPoint returns the most recent point of a series regardless of input
// order. Providers return series in descending date order, but the ordering
// is verified rather than assumed.
func LatestPoint(points []PricePoint) (PricePoint, bool) {
	if len(points) == 0 {
		return PricePoint{}, false
	}
	latest := points[0]
	for _, p := range points[1:] {
		if p.Date.After(latest.Date) {
			latest = p
		}
	}
	return latest, true
}

// SortDescending orders a series newest-first in place.
func SortDescending(points []PricePoint) {
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.After(points[j].Date)
	})
}
