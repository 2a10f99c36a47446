// Package common provides shared configuration, logging, and defaults.
package common

// DefaultConfig returns the baseline configuration before any file or
// environment overrides are applied.
func DefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8085,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data/finsight",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
		},
		LLM: LLMConfig{
			Provider: "openai",
			OpenAI: OpenAIConfig{
				Model:   "gpt-4",
				Timeout: "60s",
			},
			Claude: ClaudeConfig{
				Model:     "claude-sonnet-4-20250514",
				Timeout:   "60s",
				MaxTokens: 4096,
			},
			Gemini: GeminiConfig{
				Model:   "gemini-2.0-flash",
				Timeout: "60s",
			},
		},
		MarketData: MarketDataConfig{
			BaseURL:   "https://www.alphavantage.co",
			RateLimit: 5,
			Timeout:   "30s",
		},
	}
}

// DefaultEquitySymbols is the built-in candidate list shown on the stock
// explorer before the user adds any of their own.
var DefaultEquitySymbols = []string{
	"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA", "NVDA", "META", "JPM", "UNH", "V",
	"RELIANCE", "TCS", "HDFC", "INFY", "ICICIBANK",
}

// DefaultFundSymbols is the built-in ETF candidate list.
var DefaultFundSymbols = []string{
	"SPY", "VOO", "QQQ", "IVV", "DIA", "EFA", "IEMG", "VTI", "SCHB", "XLF",
	"NIFTYBEES", "BANKBEES", "ICICINIFTY", "SBINIFTY", "UTINIFTY",
}

// IsDefaultSymbol reports whether symbol is in either built-in list,
// compared against the upper-cased form.
func IsDefaultSymbol(symbol string) bool {
	for _, s := range DefaultEquitySymbols {
		if s == symbol {
			return true
		}
	}
	for _, s := range DefaultFundSymbols {
		if s == symbol {
			return true
		}
	}
	return false
}
