package answer

import (
	"fmt"
	"strings"
)

// NewProvider creates an answer provider based on configuration
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "exa", "":
		return NewExaProvider(config)

	case "openai":
		return NewOpenAIProvider(config)

	default:
		return nil, fmt.Errorf("unknown answer provider: %s (supported: exa, openai)", config.Provider)
	}
}
