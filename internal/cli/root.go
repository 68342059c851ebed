package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/clipverity/internal/model"
)

// version is overridden at build time with -ldflags "-X .../internal/cli.version=..."
var version = "0.1.0"

var (
	cfgFile  string
	verbose  bool
	rps      int
	provider string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "clipverity",
	Short: "clipverity - find claims in videos and fact-check them",
	Long: `clipverity indexes a video, extracts the clips where someone states a
fact, quotes a number or shows a chart, and fact-checks each clip against a
search/answer provider.

Every fact-check carries a 1-5 truthfulness score and the sources it was
based on. A failed check never fails the run; the clip is kept without one.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		slog.SetDefault(newLogger(verbose))
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("clipverity v%s\n", version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.clipverity/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().IntVar(&rps, "rps", 3, "fact-check requests per second")
	rootCmd.PersistentFlags().StringVar(&provider, "provider", "exa", "answer provider (exa, openai)")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("enrich.requests_per_second", rootCmd.PersistentFlags().Lookup("rps"))
	_ = viper.BindPFlag("answer.provider", rootCmd.PersistentFlags().Lookup("provider"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in .env, config file and ENV variables
func initConfig() {
	// .env is optional; real environment variables win over it
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: could not load .env: %v\n", err)
	}

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(filepath.Join(home, ".clipverity"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	setDefaults(viper.GetViper(), model.DefaultConfig())

	configureEnv(viper.GetViper())

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so env vars and Unmarshal see them
func setDefaults(v *viper.Viper, d *model.Config) {
	v.SetDefault("answer.provider", d.Answer.Provider)
	v.SetDefault("answer.base_url", d.Answer.BaseURL)
	v.SetDefault("answer.model", d.Answer.Model)
	v.SetDefault("answer.timeout", d.Answer.Timeout)

	v.SetDefault("video.base_url", d.Video.BaseURL)
	v.SetDefault("video.index_name", d.Video.IndexName)
	v.SetDefault("video.model_name", d.Video.ModelName)
	v.SetDefault("video.model_options", d.Video.ModelOptions)
	v.SetDefault("video.prompt", d.Video.Prompt)
	v.SetDefault("video.temperature", d.Video.Temperature)
	v.SetDefault("video.max_tokens", d.Video.MaxTokens)
	v.SetDefault("video.poll_interval", d.Video.PollInterval)
	v.SetDefault("video.timeout", d.Video.Timeout)

	v.SetDefault("enrich.requests_per_second", d.Enrich.RequestsPerSecond)
	v.SetDefault("enrich.cushion", d.Enrich.Cushion)
	v.SetDefault("enrich.sort_by_start", d.Enrich.SortByStart)
	v.SetDefault("enrich.provider_rps", d.Enrich.ProviderRPS)

	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("cache.dir", d.Cache.Dir)

	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.allow_origins", d.Server.AllowOrigins)
	v.SetDefault("server.debug", d.Server.Debug)

	v.SetDefault("http.user_agent", d.HTTP.UserAgent)
	v.SetDefault("http.http_proxy", d.HTTP.HTTPProxy)
	v.SetDefault("http.https_proxy", d.HTTP.HTTPSProxy)

	v.SetDefault("sources.primary_domains", d.Sources.PrimaryDomains)
	v.SetDefault("sources.secondary_domains", d.Sources.SecondaryDomains)
	v.SetDefault("sources.domain_map", d.Sources.DomainMap)
}

// configureEnv reads environment variables that match CLIPVERITY_*
func configureEnv(v *viper.Viper) {
	v.SetEnvPrefix("CLIPVERITY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindProviderEnv(v)
}

// bindProviderEnv accepts the provider-native variable names next to CLIPVERITY_*
func bindProviderEnv(v *viper.Viper) {
	_ = v.BindEnv("answer.api_key", "CLIPVERITY_ANSWER_API_KEY")
	_ = v.BindEnv("video.api_key", "CLIPVERITY_VIDEO_API_KEY", "TL_API_KEY", "TWELVELABS_API_KEY")
	_ = v.BindEnv("video.base_url", "CLIPVERITY_VIDEO_BASE_URL", "TL_BASE_URL")
	_ = v.BindEnv("video.index_name", "CLIPVERITY_VIDEO_INDEX_NAME", "TL_INDEX_NAME")
	_ = v.BindEnv("video.model_name", "CLIPVERITY_VIDEO_MODEL_NAME", "TL_MODEL_NAME")
	_ = v.BindEnv("video.timeout", "CLIPVERITY_VIDEO_TIMEOUT", "TL_TIMEOUT")
}

// loadConfig merges defaults, config file, env and flags into a Config
func loadConfig(v *viper.Viper) (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Answer API key from environment when not set explicitly
	if cfg.Answer.APIKey == "" {
		switch strings.ToLower(cfg.Answer.Provider) {
		case "exa", "":
			cfg.Answer.APIKey = os.Getenv("EXA_API_KEY")
		case "openai":
			cfg.Answer.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}

	return cfg, nil
}

// newLogger returns a text logger on stderr; verbose enables debug output
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
