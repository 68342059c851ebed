package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/clipverity/internal/model"
	"github.com/ppiankov/clipverity/internal/pipeline"
	"github.com/ppiankov/clipverity/internal/worker"
)

var (
	claimsFile       string
	factCheckTimeout time.Duration
	factCheckJSON    bool
)

// factCheckCmd represents the factcheck command
var factCheckCmd = &cobra.Command{
	Use:   "factcheck [claim]",
	Short: "Fact-check a claim, or a file of claims",
	Long: `Factcheck sends a claim to the answer provider and prints its verdict,
score and sources.

With --file, claims are read one per line (blank lines and # comments are
skipped, duplicates removed) and checked under the --rps ceiling.

Example:
  clipverity factcheck "Unemployment fell to 3% last year"
  clipverity factcheck --file claims.txt --rps 2`,
	Args: func(cmd *cobra.Command, args []string) error {
		if claimsFile == "" && len(args) != 1 {
			return fmt.Errorf("requires a claim argument or --file")
		}
		if claimsFile != "" && len(args) != 0 {
			return fmt.Errorf("use either a claim argument or --file, not both")
		}
		return nil
	},
	RunE: runFactCheck,
}

func init() {
	rootCmd.AddCommand(factCheckCmd)
	factCheckCmd.Flags().StringVarP(&claimsFile, "file", "f", "", "file with one claim per line")
	factCheckCmd.Flags().DurationVar(&factCheckTimeout, "timeout", 5*time.Minute, "overall timeout")
	factCheckCmd.Flags().BoolVar(&factCheckJSON, "json", false, "print JSON instead of text")
}

func runFactCheck(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), factCheckTimeout)
	defer cancel()

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	p := pipeline.New(cfg, slog.Default())

	if claimsFile != "" {
		claims, err := worker.ReadClaimsFromFile(claimsFile)
		if err != nil {
			return err
		}
		if len(claims) == 0 {
			return fmt.Errorf("no claims found in %s", claimsFile)
		}

		results, err := p.CheckClaims(ctx, claims)
		if err != nil {
			return fmt.Errorf("fact-check failed: %w", err)
		}
		if factCheckJSON {
			return pipeline.WriteJSON(os.Stdout, results)
		}
		for _, r := range results {
			printClaimResult(r)
		}
		return nil
	}

	result, err := p.FactCheck(ctx, args[0])
	if err != nil {
		return fmt.Errorf("fact-check failed: %w", err)
	}
	if factCheckJSON {
		return pipeline.WriteJSON(os.Stdout, result)
	}
	printRecord(result.Claim, result.FactCheck)
	return nil
}

func printClaimResult(r worker.ClaimResult) {
	if r.FactCheck == nil {
		fmt.Printf("\n%s\n  ✗ %s\n", r.Claim, r.Error)
		return
	}
	printRecord(r.Claim, r.FactCheck)
}

func printRecord(claim string, fc *model.FactCheckRecord) {
	fmt.Printf("\n%s\n", claim)
	fmt.Printf("  %s: %s (%d/%d)\n", fc.Title, model.ScoreLabel(fc.TruthfulnessScore), fc.TruthfulnessScore, model.MaxTruthfulnessScore)
	fmt.Printf("  %s\n\n", fc.Description)
	for _, line := range strings.Split(fc.Narrative, "\n") {
		fmt.Printf("  %s\n", line)
	}
	if len(fc.Sources) > 0 {
		fmt.Println("\n  Sources:")
		for _, s := range fc.Sources {
			fmt.Printf("    - %s (%s, %s)\n", s.URL, s.Domain(), s.Authority)
		}
	}
}
