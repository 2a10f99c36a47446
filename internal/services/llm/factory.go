package llm

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/finsightapp/finsight/internal/common"
	"github.com/finsightapp/finsight/internal/interfaces"
)

// NewLLMService creates the appropriate LLM service implementation based on
// configuration.
func NewLLMService(cfg *common.LLMConfig, logger arbor.ILogger) (interfaces.LLMService, error) {
	logger.Info().Str("provider", cfg.Provider).Msg("Initializing LLM service")

	switch cfg.Provider {
	case "openai":
		return NewOpenAIService(&cfg.OpenAI, logger)

	case "claude":
		return NewClaudeService(&cfg.Claude, logger)

	case "gemini":
		return NewGeminiService(&cfg.Gemini, logger)

	default:
		return nil, fmt.Errorf("unsupported LLM provider '%s': must be 'openai', 'claude', or 'gemini'", cfg.Provider)
	}
}
