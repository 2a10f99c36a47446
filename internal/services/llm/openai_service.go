// Package llm wraps the supported generative-text providers behind the
// LLMService interface.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/ternarybob/arbor"

	"github.com/finsightapp/finsight/internal/common"
	"github.com/finsightapp/finsight/internal/interfaces"
	"github.com/finsightapp/finsight/internal/models"
)

// OpenAIService implements the LLMService interface using the OpenAI API.
type OpenAIService struct {
	config  *common.OpenAIConfig
	logger  arbor.ILogger
	client  *openai.Client
	timeout time.Duration
}

// NewOpenAIService creates a new OpenAI LLM service instance.
func NewOpenAIService(config *common.OpenAIConfig, logger arbor.ILogger) (*OpenAIService, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required (set via OPENAI_API_KEY or llm.openai.api_key in config)")
	}

	if config.Model == "" {
		config.Model = "gpt-4"
	}

	timeout, err := time.ParseDuration(config.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid timeout duration '%s': %w", config.Timeout, err)
	}

	service := &OpenAIService{
		config:  config,
		logger:  logger,
		client:  openai.NewClient(config.APIKey),
		timeout: timeout,
	}

	logger.Debug().
		Str("model", config.Model).
		Dur("timeout", timeout).
		Msg("OpenAI LLM service initialized successfully")

	return service, nil
}

// Complete sends a single prompt and returns the text completion.
func (s *OpenAIService) Complete(ctx context.Context, prompt string) (string, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	startTime := time.Now()

	resp, err := s.client.CreateChatCompletion(timeoutCtx, openai.ChatCompletionRequest{
		Model: s.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("OpenAI completion failed")
		return "", wrapOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", &models.GenerationError{Message: "no response from openai"}
	}

	text := resp.Choices[0].Message.Content
	s.logger.Debug().
		Int("prompt_length", len(prompt)).
		Int("response_length", len(text)).
		Dur("duration", time.Since(startTime)).
		Msg("OpenAI completion completed")

	return text, nil
}

// wrapOpenAIError maps provider errors onto the shared taxonomy, keeping the
// upstream HTTP status so 429 surfaces as ErrRateLimited.
func wrapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &models.GenerationError{
			Status:  apiErr.HTTPStatusCode,
			Message: apiErr.Message,
		}
	}
	return &models.GenerationError{Message: err.Error()}
}

// HealthCheck verifies the OpenAI service is operational.
func (s *OpenAIService) HealthCheck(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("OpenAI client is not initialized")
	}

	healthCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	response, err := s.Complete(healthCtx, "ping")
	if err != nil {
		return fmt.Errorf("OpenAI health check failed: %w", err)
	}
	if len(strings.TrimSpace(response)) == 0 {
		return fmt.Errorf("OpenAI probe returned empty response")
	}

	s.logger.Debug().Str("model", s.config.Model).Msg("OpenAI LLM service health check passed")
	return nil
}

// Provider returns the provider name.
func (s *OpenAIService) Provider() string {
	return "openai"
}

// Close releases resources.
func (s *OpenAIService) Close() error {
	s.logger.Debug().Msg("Closing OpenAI LLM service")
	s.client = nil
	return nil
}

var _ interfaces.LLMService = (*OpenAIService)(nil)
