package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/ppiankov/clipverity/internal/model"
)

func newTestViper() *viper.Viper {
	v := viper.New()
	setDefaults(v, model.DefaultConfig())
	configureEnv(v)
	return v
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("EXA_API_KEY", "")

	cfg, err := loadConfig(newTestViper())
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}

	if cfg.Enrich.RequestsPerSecond != 3 || cfg.Enrich.Cushion != 1.05 {
		t.Errorf("unexpected enrich defaults: %+v", cfg.Enrich)
	}
	if cfg.Video.Temperature != 0.5 || cfg.Video.ModelName != "pegasus1.2" {
		t.Errorf("unexpected video defaults: %+v", cfg.Video)
	}
	if cfg.Answer.Timeout != 30 || cfg.Cache.TTL != 24*time.Hour {
		t.Errorf("unexpected defaults: %+v %+v", cfg.Answer, cfg.Cache)
	}
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("EXA_API_KEY", "exa-key")
	t.Setenv("TL_API_KEY", "")
	t.Setenv("TWELVELABS_API_KEY", "tl-key")
	t.Setenv("TL_INDEX_NAME", "shared-index")
	t.Setenv("CLIPVERITY_ENRICH_REQUESTS_PER_SECOND", "5")
	t.Setenv("CLIPVERITY_CACHE_TTL", "1h")

	cfg, err := loadConfig(newTestViper())
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}

	if cfg.Answer.APIKey != "exa-key" {
		t.Errorf("expected EXA_API_KEY to be used, got %q", cfg.Answer.APIKey)
	}
	if cfg.Video.APIKey != "tl-key" {
		t.Errorf("expected TWELVELABS_API_KEY fallback, got %q", cfg.Video.APIKey)
	}
	if cfg.Video.IndexName != "shared-index" {
		t.Errorf("expected TL_INDEX_NAME, got %q", cfg.Video.IndexName)
	}
	if cfg.Enrich.RequestsPerSecond != 5 {
		t.Errorf("expected rps 5, got %d", cfg.Enrich.RequestsPerSecond)
	}
	if cfg.Cache.TTL != time.Hour {
		t.Errorf("expected ttl 1h, got %v", cfg.Cache.TTL)
	}
}

func TestLoadConfig_OpenAIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("CLIPVERITY_ANSWER_PROVIDER", "openai")

	cfg, err := loadConfig(newTestViper())
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Answer.Provider != "openai" || cfg.Answer.APIKey != "sk-test" {
		t.Errorf("unexpected answer config: %+v", cfg.Answer)
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "enrich:\n  requests_per_second: 2\n  sort_by_start: true\nserver:\n  addr: \":9000\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	v := newTestViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("read config: %v", err)
	}

	cfg, err := loadConfig(v)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Enrich.RequestsPerSecond != 2 || !cfg.Enrich.SortByStart || cfg.Server.Addr != ":9000" {
		t.Errorf("unexpected config from file: %+v %+v", cfg.Enrich, cfg.Server)
	}
	if cfg.Enrich.Cushion != 1.05 {
		t.Errorf("expected default cushion to survive, got %v", cfg.Enrich.Cushion)
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := writeDefaultConfig(path); err != nil {
		t.Fatalf("writeDefaultConfig failed: %v", err)
	}

	v := newTestViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("written config does not parse: %v", err)
	}
	cfg, err := loadConfig(v)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Cache.TTL != 24*time.Hour || cfg.Video.PollInterval != 5 {
		t.Errorf("round-trip lost defaults: %+v %+v", cfg.Cache, cfg.Video)
	}

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "api_key") {
		t.Error("default config must not contain API keys")
	}
}
