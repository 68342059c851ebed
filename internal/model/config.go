package model

import "time"

// DefaultAnalysisPrompt asks the indexing provider for claim-bearing segments
const DefaultAnalysisPrompt = "Identify all contiguous time spans where: " +
	"(a) a claim or factual assertion is spoken or clearly stated, " +
	"(b) statistics, numbers, percentages, dates, or counts are mentioned, or " +
	"(c) charts/graphs/tables or numeric overlays appear on screen. " +
	"Return concise clips that begin slightly before and end shortly after the relevant content so the context is preserved. " +
	"Keep descriptions short and concrete."

// Config is the complete clipverity configuration
type Config struct {
	Answer  AnswerConfig  `yaml:"answer" mapstructure:"answer"`
	Video   VideoConfig   `yaml:"video" mapstructure:"video"`
	Enrich  EnrichConfig  `yaml:"enrich" mapstructure:"enrich"`
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	HTTP    HTTPConfig    `yaml:"http" mapstructure:"http"`
	Sources SourcesConfig `yaml:"sources" mapstructure:"sources"`
}

// AnswerConfig configures the search/answer provider used for fact-checks
type AnswerConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"` // exa, openai
	BaseURL  string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Model    string `yaml:"model,omitempty" mapstructure:"model"` // openai-compatible backends only
	APIKey   string `yaml:"-" mapstructure:"api_key"`
	Timeout  int    `yaml:"timeout" mapstructure:"timeout"` // seconds, per call
}

// VideoConfig configures the video indexing/analysis provider
type VideoConfig struct {
	BaseURL      string   `yaml:"base_url" mapstructure:"base_url"`
	APIKey       string   `yaml:"-" mapstructure:"api_key"`
	IndexName    string   `yaml:"index_name,omitempty" mapstructure:"index_name"` // empty = derive from URL
	ModelName    string   `yaml:"model_name" mapstructure:"model_name"`
	ModelOptions []string `yaml:"model_options" mapstructure:"model_options"`
	Prompt       string   `yaml:"prompt" mapstructure:"prompt"`
	Temperature  float64  `yaml:"temperature" mapstructure:"temperature"`
	MaxTokens    int      `yaml:"max_tokens" mapstructure:"max_tokens"`
	PollInterval int      `yaml:"poll_interval" mapstructure:"poll_interval"` // seconds
	Timeout      int      `yaml:"timeout" mapstructure:"timeout"`             // seconds, per call
}

// EnrichConfig configures the rate-limited fact-check fan-out
type EnrichConfig struct {
	RequestsPerSecond int     `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Cushion           float64 `yaml:"cushion" mapstructure:"cushion"` // multiplier on the one-second window
	SortByStart       bool    `yaml:"sort_by_start" mapstructure:"sort_by_start"`
	// ProviderRPS overrides the client-side ceiling per answer provider, e.g. {exa: 5}
	ProviderRPS map[string]float64 `yaml:"provider_rps,omitempty" mapstructure:"provider_rps"`
}

// CacheConfig configures fact-check caching
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
	Dir     string        `yaml:"dir,omitempty" mapstructure:"dir"` // empty = memory only
}

// ServerConfig configures the HTTP surface
type ServerConfig struct {
	Addr         string   `yaml:"addr" mapstructure:"addr"`
	AllowOrigins []string `yaml:"allow_origins,omitempty" mapstructure:"allow_origins"`
	Debug        bool     `yaml:"debug" mapstructure:"debug"`
}

// HTTPConfig configures outbound HTTP
type HTTPConfig struct {
	UserAgent  string `yaml:"user_agent" mapstructure:"user_agent"`
	HTTPProxy  string `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Answer: AnswerConfig{
			Provider: "exa",
			BaseURL:  "https://api.exa.ai",
			Timeout:  30,
		},
		Video: VideoConfig{
			BaseURL:      "https://api.twelvelabs.io/v1.3",
			ModelName:    "pegasus1.2",
			ModelOptions: []string{"visual", "audio"},
			Prompt:       DefaultAnalysisPrompt,
			Temperature:  0.5,
			MaxTokens:    2048,
			PollInterval: 5,
			Timeout:      60,
		},
		Enrich: EnrichConfig{
			RequestsPerSecond: 3,
			Cushion:           1.05,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     24 * time.Hour,
		},
		Server: ServerConfig{
			Addr:         ":8000",
			AllowOrigins: []string{"*"},
		},
		HTTP: HTTPConfig{
			UserAgent: "clipverity/0.1 (+https://github.com/ppiankov/clipverity)",
		},
		Sources: DefaultSourcesConfig(),
	}
}
