package answer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ppiankov/clipverity/internal/model"
	"github.com/ppiankov/clipverity/internal/util"
)

// maxErrorBody caps how much of an error reply is kept
const maxErrorBody = 4096

// ExaProvider implements Provider against the Exa /answer endpoint
type ExaProvider struct {
	apiKey     string
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

type exaRequest struct {
	Query  string `json:"query"`
	Stream bool   `json:"stream"`
	Text   bool   `json:"text"`
}

// NewExaProvider creates a new Exa provider
func NewExaProvider(config Config) (*ExaProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Exa API key is required (set EXA_API_KEY)")
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "https://api.exa.ai"
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &ExaProvider{
		apiKey:     config.APIKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		userAgent:  config.UserAgent,
		httpClient: util.NewHTTPClient(timeout, config.HTTPProxy, config.HTTPSProxy),
	}, nil
}

// Name returns the provider name
func (p *ExaProvider) Name() string {
	return "exa"
}

// Answer calls POST /answer without streaming and with source text included
func (p *ExaProvider) Answer(ctx context.Context, query string) (*model.AnswerResponse, error) {
	body, err := json.Marshal(exaRequest{Query: query, Stream: false, Text: true})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/answer", p.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", p.apiKey)
	if p.userAgent != "" {
		httpReq.Header.Set("User-Agent", p.userAgent)
	}

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(httpResp.Body, maxErrorBody))
		return nil, &StatusError{StatusCode: httpResp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var resp model.AnswerResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return &resp, nil
}
