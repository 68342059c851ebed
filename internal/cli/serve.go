package cli

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/clipverity/internal/pipeline"
	"github.com/ppiankov/clipverity/internal/server"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	Long: `Serve exposes the pipeline over HTTP:

  GET  /health       liveness
  GET  /             name and version
  POST /highlights   {"downloadUrl": "..."} -> clips
  POST /enrich       {"downloadUrl": "..."} or {"clips": [...]} -> clips with fact-checks
  POST /factcheck    {"claim": "..."} -> fact-check with the raw answer

Example:
  clipverity serve --addr :8000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}

		logger := slog.Default()
		p := pipeline.New(cfg, logger)
		srv := server.New(p, server.Options{
			Name:         "clipverity",
			Version:      version,
			AllowOrigins: cfg.Server.AllowOrigins,
			Debug:        cfg.Server.Debug,
			Logger:       logger,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return srv.ListenAndServe(ctx, cfg.Server.Addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8000", "listen address")
	serveCmd.Flags().Bool("debug", false, "gin debug mode")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("server.debug", serveCmd.Flags().Lookup("debug"))
}
