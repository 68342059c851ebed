package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/clipverity/internal/cache"
	"github.com/ppiankov/clipverity/internal/model"
)

// cacheCmd represents the cache command
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the fact-check cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove cached fact-checks from cache.dir",
	Long: `Clear removes the cached fact-check entries kept in cache.dir.
Only cache entries are removed; other files in the directory are left alone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		return clearCache(cfg, os.Stdout)
	},
}

// clearCache empties the persistent cache layer; the memory layer dies with the process
func clearCache(cfg *model.Config, w io.Writer) error {
	if cfg.Cache.Dir == "" {
		fmt.Fprintln(w, "No cache.dir configured; the memory cache is not persisted")
		return nil
	}

	if err := cache.NewDiskCache(cfg.Cache.Dir, cfg.Cache.TTL).Clear(); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}

	fmt.Fprintf(w, "✓ Cleared cache: %s\n", cfg.Cache.Dir)
	return nil
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
