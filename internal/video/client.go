package video

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ppiankov/clipverity/internal/model"
	"github.com/ppiankov/clipverity/internal/util"
)

// maxErrorBody caps how much of an error reply is kept
const maxErrorBody = 4096

// ErrUnavailable is wrapped when the indexing provider cannot be reached
var ErrUnavailable = errors.New("video provider unavailable")

// StatusError is a non-2xx reply from the indexing provider
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: TwelveLabs API error (%d): %s", e.Op, e.StatusCode, e.Body)
}

// Config holds video provider configuration
type Config struct {
	BaseURL      string
	APIKey       string
	IndexName    string
	ModelName    string
	ModelOptions []string
	Prompt       string
	Temperature  float64
	MaxTokens    int

	// PollInterval between task status checks, in seconds
	PollInterval int

	// Timeout for a single call, in seconds
	Timeout int

	UserAgent  string
	HTTPProxy  string
	HTTPSProxy string
}

// ConfigFromModel converts the application config sections to video.Config
func ConfigFromModel(vc model.VideoConfig, hc model.HTTPConfig) Config {
	return Config{
		BaseURL:      vc.BaseURL,
		APIKey:       vc.APIKey,
		IndexName:    vc.IndexName,
		ModelName:    vc.ModelName,
		ModelOptions: vc.ModelOptions,
		Prompt:       vc.Prompt,
		Temperature:  vc.Temperature,
		MaxTokens:    vc.MaxTokens,
		PollInterval: vc.PollInterval,
		Timeout:      vc.Timeout,
		UserAgent:    hc.UserAgent,
		HTTPProxy:    hc.HTTPProxy,
		HTTPSProxy:   hc.HTTPSProxy,
	}
}

// Client talks to the TwelveLabs REST API
type Client struct {
	config     Config
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a TwelveLabs client
func NewClient(config Config, logger *slog.Logger) (*Client, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("TwelveLabs API key is required (set TL_API_KEY or TWELVELABS_API_KEY)")
	}

	if config.BaseURL == "" {
		config.BaseURL = "https://api.twelvelabs.io/v1.3"
	}
	if config.ModelName == "" {
		config.ModelName = "pegasus1.2"
	}
	if len(config.ModelOptions) == 0 {
		config.ModelOptions = []string{"visual", "audio"}
	}
	if config.Prompt == "" {
		config.Prompt = model.DefaultAnalysisPrompt
	}
	if config.MaxTokens <= 0 {
		config.MaxTokens = 2048
	}
	if config.PollInterval <= 0 {
		config.PollInterval = 5
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		config:     config,
		baseURL:    strings.TrimSuffix(config.BaseURL, "/"),
		httpClient: util.NewHTTPClient(timeout, config.HTTPProxy, config.HTTPSProxy),
		log:        logger,
	}, nil
}

// doJSON sends a JSON body (nil for none) and decodes a JSON reply into out
func (c *Client) doJSON(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", op, err)
		}
		body = bytes.NewReader(data)
	}
	contentType := ""
	if in != nil {
		contentType = "application/json"
	}
	return c.do(ctx, op, method, path, body, contentType, out)
}

func (c *Client) do(ctx context.Context, op, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", op, err)
	}

	req.Header.Set("x-api-key", c.config.APIKey)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}

	return nil
}
