package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/clipverity/internal/pipeline"
)

var highlightsTimeout time.Duration

// highlightsCmd represents the highlights command
var highlightsCmd = &cobra.Command{
	Use:   "highlights <video-url>",
	Short: "Extract claim clips from a video without fact-checking",
	Long: `Highlights indexes a video and prints the clips that carry claims,
statistics or charts as JSON. No answer provider key is needed.

Example:
  clipverity highlights https://cdn.example.com/talk.mp4`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), highlightsTimeout)
		defer cancel()

		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}

		clips, err := pipeline.New(cfg, slog.Default()).Highlights(ctx, args[0])
		if err != nil {
			return fmt.Errorf("highlights failed: %w", err)
		}

		return pipeline.WriteJSON(os.Stdout, clips)
	},
}

func init() {
	rootCmd.AddCommand(highlightsCmd)
	highlightsCmd.Flags().DurationVar(&highlightsTimeout, "timeout", 30*time.Minute, "overall timeout")
}
