package answer

import (
	"context"
	"errors"
	"fmt"

	"github.com/ppiankov/clipverity/internal/model"
)

// Provider defines the interface for search/answer providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Answer sends one query and returns the provider's answer with its citations
	Answer(ctx context.Context, query string) (*model.AnswerResponse, error)
}

// StatusError is returned when the provider replies with a non-2xx status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Body)
}

// ErrMalformedResponse is wrapped when a 2xx reply cannot be decoded
var ErrMalformedResponse = errors.New("malformed response")

// Config holds answer provider configuration
type Config struct {
	// Provider name: "exa", "openai"
	Provider string

	// BaseURL overrides the provider endpoint
	BaseURL string

	// Model is used by OpenAI-compatible backends only
	Model string

	APIKey string

	// Timeout for a single call, in seconds
	Timeout int

	UserAgent  string
	HTTPProxy  string
	HTTPSProxy string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider: "exa",
		Timeout:  30,
	}
}

// ConfigFromModel converts the application config sections to answer.Config
func ConfigFromModel(ac model.AnswerConfig, hc model.HTTPConfig) Config {
	return Config{
		Provider:   ac.Provider,
		BaseURL:    ac.BaseURL,
		Model:      ac.Model,
		APIKey:     ac.APIKey,
		Timeout:    ac.Timeout,
		UserAgent:  hc.UserAgent,
		HTTPProxy:  hc.HTTPProxy,
		HTTPSProxy: hc.HTTPSProxy,
	}
}
