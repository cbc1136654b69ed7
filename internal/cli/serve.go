package cli

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"senti/internal/adapter/analyzer"
	"senti/internal/adapter/fs"
	"senti/internal/adapter/identity"
	"senti/internal/adapter/memstore"
	"senti/internal/port"
	"senti/internal/server"
	"senti/internal/usecase"
)

var (
	serveAddr      string
	serveEphemeral bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard API server",
	Long: `Run the HTTP API the dashboard UI talks to: text and file-upload
analysis, stored results, chartable summaries and CSV export. When auth
is enabled in the config, login and signup are proxied to the external
identity backend and all analysis endpoints require a session token.

Examples:
  senti serve
  senti serve --addr :9090 --ephemeral`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	serveCmd.Flags().BoolVar(&serveEphemeral, "ephemeral", false, "keep results in memory only")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	logger, err := newLogger(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	cls, err := newClassifier(cfg)
	if err != nil {
		return err
	}

	var st port.ResultStore
	if serveEphemeral {
		st = memstore.NewMemoryStore()
	} else {
		st, err = openHistory(cfg, GetRootDir())
		if err != nil {
			return err
		}
	}
	defer st.Close()

	var id port.Identity
	if cfg.Auth.Enabled {
		id, err = identity.NewHTTPIdentity(
			cfg.Auth.BaseURL,
			cfg.Auth.APIKeyEnv,
			time.Duration(cfg.Auth.TimeoutSeconds)*time.Second,
		)
		if err != nil {
			return fmt.Errorf("failed to create identity client: %w", err)
		}
	}

	serverCfg := cfg.Server
	if serveAddr != "" {
		serverCfg.Addr = serveAddr
	}

	analyzeUC := usecase.NewAnalyzeUseCase(cls, analyzer.NewExtractor(), st, cfg.Analyze.TopKeywords)
	batchUC := usecase.NewBatchUseCase(analyzeUC, fs.NewWalker(cfg.Batch.Includes, cfg.Batch.Excludes), cfg.Batch.Workers)
	reportUC := usecase.NewReportUseCase(st)

	srv := server.New(serverCfg, analyzeUC, batchUC, reportUC, id, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}

func newLogger(level string) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		zapCfg.Level = zap.NewAtomicLevelAt(parsed)
	}
	return zapCfg.Build()
}
