package alphavantage

// companyOverview is the OVERVIEW response for an equity. Only the fields
// surfaced in analysis prompts are decoded.
type companyOverview struct {
	throttleFields
	Name                 string `json:"Name"`
	Sector               string `json:"Sector"`
	Industry             string `json:"Industry"`
	MarketCapitalization string `json:"MarketCapitalization"`
	PERatio              string `json:"PERatio"`
}

// etfProfile is the ETF_PROFILE response for a fund.
type etfProfile struct {
	throttleFields
	ETFName      string `json:"ETFName"`
	Inception    string `json:"InceptionDate"`
	NetAssets    string `json:"NetAssets"`
	ExpenseRatio string `json:"ExpenseRatio"`
}

// seriesEntry is one dated entry of an adjusted time series.
type seriesEntry struct {
	Close         string `json:"4. close"`
	AdjustedClose string `json:"5. adjusted close"`
}

// dailyResponse wraps TIME_SERIES_DAILY_ADJUSTED. The series object is keyed
// by date string; JSON object order is not preserved by Go maps, so recency
// is always computed from the date keys, never from iteration order.
type dailyResponse struct {
	throttleFields
	Series map[string]seriesEntry `json:"Time Series (Daily)"`
}

// monthlyResponse wraps TIME_SERIES_MONTHLY_ADJUSTED.
type monthlyResponse struct {
	throttleFields
	Series map[string]seriesEntry `json:"Monthly Adjusted Time Series"`
}

// quoteResponse wraps GLOBAL_QUOTE.
type quoteResponse struct {
	throttleFields
	Quote struct {
		Price string `json:"05. price"`
	} `json:"Global Quote"`
}

// throttleFields carries the soft-failure fields Alpha Vantage returns with
// HTTP 200 when the key is throttled or the request malformed.
type throttleFields struct {
	Note         string `json:"Note"`
	Information  string `json:"Information"`
	ErrorMessage string `json:"Error Message"`
}
